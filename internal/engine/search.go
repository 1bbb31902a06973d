package engine

import (
	"time"

	"github.com/Zoidburgh/hexuki/internal/board"
)

// Search constants
const (
	Infinity     = 1_000_000
	MateScore    = 900_000
	MaxSearchPly = 50
)

// Wall-clock sampling cadence inside negamax, in nodes.
const timeoutCheckInterval = 1000

// searcher owns the state of one FindBestMove invocation: the board it
// mutates and restores, the transposition table, the heuristic tables and
// the deadline. There is no sharing; the search is single-threaded.
type searcher struct {
	pos     *board.Position
	tt      *TranspositionTable // nil when the table is disabled
	killers killerTable
	history historyTable

	nodes   uint64
	start   time.Time
	limit   time.Duration // <= 0 means no deadline
	aborted bool
}

// timedOut samples the wall clock against the deadline.
func (s *searcher) timedOut() bool {
	return s.limit > 0 && time.Since(s.start) >= s.limit
}

// Evaluate returns the static leaf score from the side to move's
// perspective: own chain score minus the opponent's. The game's scoring is
// monotone in terminal chains, so material is a serviceable baseline; the
// search depth does the rest.
func Evaluate(pos *board.Position) int {
	stm := pos.SideToMove()
	return pos.Score(stm) - pos.Score(stm.Opponent())
}

// negamax searches to the given remaining depth and returns a score from
// the side to move's perspective.
func (s *searcher) negamax(depth, alpha, beta, ply int) int {
	s.nodes++
	if s.nodes%timeoutCheckInterval == 0 && s.timedOut() {
		s.aborted = true
	}
	if s.aborted {
		// Sentinel; the driver discards every result from an aborted
		// depth, so the value is immaterial.
		return 0
	}

	if depth <= 0 || s.pos.IsGameOver() {
		return Evaluate(s.pos)
	}

	hash := s.pos.Hash()

	// Probe the transposition table. Entries from shallower searches must
	// not be used, neither for cutoffs nor as the ordering hint: a best
	// move recorded at shallow depth is systematically biased and injects
	// non-determinism once heuristic state carries across iterations.
	ttMove := board.NoMove
	if s.tt != nil {
		if entry, ok := s.tt.Probe(hash); ok && int(entry.Depth) >= depth {
			switch entry.Flag {
			case TTExact:
				return int(entry.Score)
			case TTLowerBound:
				if int(entry.Score) > alpha {
					alpha = int(entry.Score)
				}
			case TTUpperBound:
				if int(entry.Score) < beta {
					beta = int(entry.Score)
				}
			}
			if alpha >= beta {
				return int(entry.Score)
			}
			ttMove = entry.BestMove
		}
	}

	var ml board.MoveList
	s.pos.GenerateMoves(&ml)
	moves := ml.Slice()
	if len(moves) == 0 {
		return Evaluate(s.pos)
	}

	orderMoves(moves, ttMove, &s.killers, &s.history, ply)

	bestScore := -Infinity
	bestMove := moves[0]
	flag := TTUpperBound

	for _, m := range moves {
		s.pos.MakeMove(m)
		score := -s.negamax(depth-1, -beta, -alpha, ply+1)
		s.pos.UnmakeMove(m)

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				flag = TTExact
			}
		}

		if alpha >= beta {
			flag = TTLowerBound
			s.killers.update(ply, bestMove)
			s.history.update(bestMove, depth)
			break
		}
	}

	if s.tt != nil && !s.aborted {
		s.tt.Store(hash, TTEntry{
			Score:    int32(bestScore),
			Depth:    int8(depth),
			Flag:     flag,
			BestMove: bestMove,
		})
	}

	return bestScore
}

// quiescence returns the stand-pat score, capped at beta. Hexuki has no capture-like
// tactical moves to resolve, so the horizon search reduces to the static
// evaluation; the function is the extension point if sharper leaf handling
// is ever needed.
func (s *searcher) quiescence(alpha, beta int) int {
	s.nodes++

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	return standPat
}
