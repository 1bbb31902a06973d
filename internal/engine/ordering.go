package engine

import (
	"sort"

	"github.com/Zoidburgh/hexuki/internal/board"
)

// Move-ordering score tiers.
const (
	ttMoveScore = 10_000_000
	killerScore = 1_000_000
)

// positionalBonus rewards strategically placed hexes: the center, the ring
// around it, and the corners (which seed multiple chains).
var positionalBonus = [board.NumHexes]int32{
	0:  20,
	2:  20,
	4:  30,
	6:  30,
	7:  30,
	9:  50,
	11: 30,
	12: 30,
	16: 20,
	18: 20,
}

type scoredMove struct {
	move  board.Move
	score int32
}

// orderMoves sorts moves in place, best candidates first. The ordering is a
// heuristic: it changes node counts, never the search result. The sort is
// stable so identical heuristic state yields identical orderings.
func orderMoves(moves []board.Move, ttMove board.Move, killers *killerTable, history *historyTable, ply int) {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var score int32
		switch {
		case ttMove != board.NoMove && m == ttMove:
			// Proven best from a previous search of this node.
			score = ttMoveScore
		case killers.isKiller(ply, m):
			score = killerScore + int32(m.Tile())*10
		default:
			score = history.score(m)
			score += int32(m.Tile()) * 100
			score += positionalBonus[m.Hex()]
		}
		scored[i] = scoredMove{move: m, score: score}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	for i, sm := range scored {
		moves[i] = sm.move
	}
}
