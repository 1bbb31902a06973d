package engine

import (
	"fmt"
	"time"

	"github.com/Zoidburgh/hexuki/internal/board"
)

// Config controls a FindBestMove call.
type Config struct {
	MaxDepth              int           // upper bound on iterative-deepening depth
	TimeLimit             time.Duration // wall-clock deadline for the whole call; <= 0 disables
	UseIterativeDeepening bool          // if false, search directly at MaxDepth
	UseMoveOrdering       bool          // if false, skip ordering at the root (inner nodes still order)
	UseTranspositionTable bool          // if false, TT operations are no-ops
	TTSizeMB              int           // target transposition table capacity
	Verbose               bool          // per-depth diagnostic line on stdout

	// TT optionally seeds the search with a pre-warmed table, e.g. one
	// restored from a snapshot. Nil means a fresh table.
	TT *TranspositionTable

	// OnDepth, if set, is called after every completed iteration.
	OnDepth func(DepthInfo)
}

// DefaultConfig returns the standard search configuration.
func DefaultConfig() Config {
	return Config{
		MaxDepth:              20,
		TimeLimit:             30 * time.Second,
		UseIterativeDeepening: true,
		UseMoveOrdering:       true,
		UseTranspositionTable: true,
		TTSizeMB:              128,
	}
}

// DepthInfo describes one completed iterative-deepening iteration.
type DepthInfo struct {
	Depth    int
	Score    int
	BestMove board.Move
	Nodes    uint64
	Elapsed  time.Duration
}

// Result is the outcome of a FindBestMove call. BestMove and Score always
// come from the last fully-completed depth; partial searches never produce
// the reported move.
type Result struct {
	BestMove board.Move
	Score    int
	Nodes    uint64
	Time     time.Duration
	Depth    int
	Timeout  bool
	TTHits   uint64
	TTMisses uint64
}

// FindBestMove computes the best move for the side to move. The position is
// mutated in place during the search and restored before returning.
func FindBestMove(pos *board.Position, cfg Config) (result Result) {
	start := time.Now()

	var tt *TranspositionTable
	if cfg.UseTranspositionTable {
		tt = cfg.TT
		if tt == nil {
			tt = NewTranspositionTable(cfg.TTSizeMB)
		}
	}
	s := &searcher{
		pos:   pos,
		tt:    tt,
		start: start,
		limit: cfg.TimeLimit,
	}

	// A supplied table may carry counts from earlier calls; report only
	// this call's probes.
	var baseHits, baseMisses uint64
	if tt != nil {
		baseHits, baseMisses = tt.Hits(), tt.Misses()
	}

	defer func() {
		result.Time = time.Since(start)
		if tt != nil {
			result.TTHits = tt.Hits() - baseHits
			result.TTMisses = tt.Misses() - baseMisses
		}
	}()

	if cfg.MaxDepth <= 0 {
		result.BestMove = board.NoMove
		result.Score = Evaluate(pos)
		return result
	}

	moves := pos.ValidMoves()

	if len(moves) == 0 {
		result.BestMove = board.NoMove
		result.Score = Evaluate(pos)
		return result
	}

	if len(moves) == 1 {
		// Forced move: still search ahead so the reported score reflects
		// the resulting position, not the current one.
		result.BestMove = moves[0]
		pos.MakeMove(moves[0])
		result.Score = -s.negamax(cfg.MaxDepth-1, -Infinity, Infinity, 0)
		pos.UnmakeMove(moves[0])
		result.Depth = cfg.MaxDepth
		result.Nodes = s.nodes
		result.Timeout = s.aborted
		return result
	}

	bestMove := moves[0]
	bestScore := -Infinity

	if cfg.UseIterativeDeepening {
		for depth := 1; depth <= cfg.MaxDepth; depth++ {
			s.nodes = 0
			alpha, beta := -Infinity, Infinity
			currentBest := board.NoMove
			currentScore := -Infinity

			// Re-order root moves with what previous iterations learned.
			if depth > 1 && cfg.UseMoveOrdering {
				orderMoves(moves, board.NoMove, &s.killers, &s.history, 0)
			}

			timedOut := false
			for _, m := range moves {
				pos.MakeMove(m)
				score := -s.negamax(depth-1, -beta, -alpha, 1)
				pos.UnmakeMove(m)

				if s.aborted || s.timedOut() {
					timedOut = true
					break
				}

				if score > currentScore {
					currentScore = score
					currentBest = m
					if score > alpha {
						alpha = score
					}
				}
			}

			if timedOut {
				// Abandon the partial depth entirely; the previous
				// completed depth stands.
				result.Timeout = true
				break
			}

			bestMove = currentBest
			bestScore = currentScore
			result.Depth = depth
			result.Nodes += s.nodes

			elapsed := time.Since(start)
			if cfg.Verbose {
				fmt.Printf("depth %d: score=%d move=%s nodes=%d time=%dms\n",
					depth, bestScore, bestMove, s.nodes, elapsed.Milliseconds())
			}
			if cfg.OnDepth != nil {
				cfg.OnDepth(DepthInfo{
					Depth:    depth,
					Score:    bestScore,
					BestMove: bestMove,
					Nodes:    s.nodes,
					Elapsed:  elapsed,
				})
			}

			if abs(bestScore) > MateScore-100 {
				break
			}
		}
	} else {
		alpha, beta := -Infinity, Infinity
		if cfg.UseMoveOrdering {
			orderMoves(moves, board.NoMove, &s.killers, &s.history, 0)
		}
		for _, m := range moves {
			pos.MakeMove(m)
			score := -s.negamax(cfg.MaxDepth-1, -beta, -alpha, 1)
			pos.UnmakeMove(m)

			if score > bestScore {
				bestScore = score
				bestMove = m
				if score > alpha {
					alpha = score
				}
			}
		}
		result.Depth = cfg.MaxDepth
		result.Nodes = s.nodes
		result.Timeout = s.aborted
	}

	result.BestMove = bestMove
	result.Score = bestScore
	return result
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
