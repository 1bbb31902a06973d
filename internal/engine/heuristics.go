package engine

import (
	"github.com/Zoidburgh/hexuki/internal/board"
)

// killerTable holds two killer moves per ply: moves that recently caused a
// beta cutoff at the same distance from the root.
type killerTable struct {
	killer1 [MaxSearchPly]board.Move
	killer2 [MaxSearchPly]board.Move
}

// update records a cutoff move at ply, shifting the previous primary killer
// to the secondary slot unless the move is already the primary.
func (k *killerTable) update(ply int, m board.Move) {
	if ply < 0 || ply >= MaxSearchPly {
		return
	}
	if m != k.killer1[ply] {
		k.killer2[ply] = k.killer1[ply]
		k.killer1[ply] = m
	}
}

// isKiller reports whether m is one of the killers at ply.
func (k *killerTable) isKiller(ply int, m board.Move) bool {
	if ply < 0 || ply >= MaxSearchPly {
		return false
	}
	return m == k.killer1[ply] || m == k.killer2[ply]
}

// historyTable accumulates cutoff credit per (hex, tileValue). Deeper
// cutoffs weigh more. Overflow within a realistic deadline is not expected
// and would only degrade ordering quality, never correctness.
type historyTable struct {
	scores [board.NumHexes][board.MaxTileValue + 1]int32
}

// update credits a cutoff move found with the given remaining depth.
func (h *historyTable) update(m board.Move, depth int) {
	h.scores[m.Hex()][m.Tile()] += int32(depth * depth)
}

// score returns the accumulated credit for a move.
func (h *historyTable) score(m board.Move) int32 {
	return h.scores[m.Hex()][m.Tile()]
}
