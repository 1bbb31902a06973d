package engine

import (
	"testing"
	"time"

	"github.com/Zoidburgh/hexuki/internal/board"
)

func testConfig(depth int) Config {
	cfg := DefaultConfig()
	cfg.MaxDepth = depth
	cfg.TimeLimit = 0 // no deadline in tests unless set explicitly
	cfg.TTSizeMB = 1
	return cfg
}

func TestSearchInitialDepthOne(t *testing.T) {
	pos := board.NewPosition()
	result := FindBestMove(pos, testConfig(1))

	neighbors := map[int]bool{4: true, 6: true, 7: true, 11: true, 12: true, 14: true}
	if !neighbors[result.BestMove.Hex()] {
		t.Errorf("best move %s does not border the center", result.BestMove)
	}
	if tile := result.BestMove.Tile(); tile < 1 || tile > board.MaxTileValue {
		t.Errorf("best move tile %d out of range", tile)
	}
	if result.Nodes == 0 {
		t.Error("no nodes searched")
	}
	if result.Depth != 1 {
		t.Errorf("depth = %d, want 1", result.Depth)
	}
}

func TestSearchRestoresPosition(t *testing.T) {
	pos := board.NewPosition()
	hash := pos.Hash()
	saved := pos.SavePosition()

	FindBestMove(pos, testConfig(3))

	if pos.Hash() != hash {
		t.Errorf("search changed the hash: %#x vs %#x", pos.Hash(), hash)
	}
	if pos.SavePosition() != saved {
		t.Error("search left the position mutated")
	}
}

func TestSearchForcedMove(t *testing.T) {
	pos := board.ParsePosition("h0:1,h1:1,h2:1,h3:1,h4:1,h5:1,h6:1,h7:1,h8:1,h9:1,h10:1,h11:1,h12:1,h13:1,h14:1,h15:1,h16:1,h17:1|p1:1|p2:|turn:1")

	result := FindBestMove(pos, testConfig(5))
	if result.BestMove != board.NewMove(18, 1) {
		t.Fatalf("best move = %s, want h18:1", result.BestMove)
	}
	if result.Depth != 5 {
		t.Errorf("forced move reported depth %d, want maxDepth", result.Depth)
	}

	pos.MakeMove(result.BestMove)
	if !pos.IsGameOver() {
		t.Error("applying the forced move should end the game")
	}
}

func TestSearchNoMoves(t *testing.T) {
	pos := board.ParsePosition("h0:1,h1:1,h2:1,h3:1,h4:1,h5:1,h6:1,h7:1,h8:1,h9:1,h10:1,h11:1,h12:1,h13:1,h14:1,h15:1,h16:1,h17:1,h18:1|p1:|p2:|turn:1")

	result := FindBestMove(pos, testConfig(5))
	if result.BestMove != board.NoMove {
		t.Errorf("best move = %s, want none", result.BestMove)
	}
	if result.Score != Evaluate(pos) {
		t.Errorf("score = %d, want static eval %d", result.Score, Evaluate(pos))
	}
}

func TestSearchDeterministic(t *testing.T) {
	first := FindBestMove(board.NewPosition(), testConfig(3))
	second := FindBestMove(board.NewPosition(), testConfig(3))

	if first.BestMove != second.BestMove {
		t.Errorf("best move differs across runs: %s vs %s", first.BestMove, second.BestMove)
	}
	if first.Score != second.Score {
		t.Errorf("score differs across runs: %d vs %d", first.Score, second.Score)
	}
}

func TestSearchScoreIndependentOfTT(t *testing.T) {
	withTT := testConfig(3)
	withoutTT := testConfig(3)
	withoutTT.UseTranspositionTable = false

	a := FindBestMove(board.NewPosition(), withTT)
	b := FindBestMove(board.NewPosition(), withoutTT)

	if a.Score != b.Score {
		t.Errorf("TT changed the search result: %d vs %d", a.Score, b.Score)
	}
	if b.TTHits != 0 || b.TTMisses != 0 {
		t.Errorf("disabled TT still counted probes: %d/%d", b.TTHits, b.TTMisses)
	}
}

func TestSearchScoreIndependentOfIterativeDeepening(t *testing.T) {
	id := testConfig(2)
	direct := testConfig(2)
	direct.UseIterativeDeepening = false

	a := FindBestMove(board.NewPosition(), id)
	b := FindBestMove(board.NewPosition(), direct)

	if a.Score != b.Score {
		t.Errorf("direct search scored %d, iterative deepening %d", b.Score, a.Score)
	}
}

func TestSearchTimeoutFallback(t *testing.T) {
	if testing.Short() {
		t.Skip("timing-dependent")
	}
	cfg := testConfig(20)
	cfg.TimeLimit = 50 * time.Millisecond

	pos := board.NewPosition()
	valid := make(map[board.Move]bool)
	for _, m := range pos.ValidMoves() {
		valid[m] = true
	}

	result := FindBestMove(pos, cfg)
	if !result.Timeout {
		t.Fatal("50ms budget at depth 20 should time out")
	}
	if result.Depth < 1 {
		t.Errorf("depth = %d, want at least one completed iteration", result.Depth)
	}
	if !valid[result.BestMove] {
		t.Errorf("best move %s is not a valid move of the root position", result.BestMove)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	a := board.ParsePosition("h9:2,h4:3,h2:5|p1:1,2|p2:8,9|turn:1")
	b := board.ParsePosition("h9:2,h4:3,h2:5|p1:1,2|p2:8,9|turn:2")

	if Evaluate(a) != -Evaluate(b) {
		t.Errorf("Evaluate not antisymmetric in side to move: %d vs %d", Evaluate(a), Evaluate(b))
	}
}

func TestDepthZeroWithoutIterativeDeepening(t *testing.T) {
	cfg := testConfig(0)
	cfg.UseIterativeDeepening = false

	pos := board.NewPosition()
	result := FindBestMove(pos, cfg)

	if result.BestMove != board.NoMove {
		t.Errorf("depth 0 returned a move: %s", result.BestMove)
	}
	if result.Score != Evaluate(pos) {
		t.Errorf("depth 0 score = %d, want static eval %d", result.Score, Evaluate(pos))
	}
}

func TestOnDepthCallback(t *testing.T) {
	cfg := testConfig(2)
	var depths []int
	cfg.OnDepth = func(info DepthInfo) {
		depths = append(depths, info.Depth)
		if info.BestMove == board.NoMove {
			t.Error("callback delivered an empty best move")
		}
	}

	FindBestMove(board.NewPosition(), cfg)
	if len(depths) != 2 || depths[0] != 1 || depths[1] != 2 {
		t.Errorf("callback depths = %v, want [1 2]", depths)
	}
}

func TestWarmStartTTReused(t *testing.T) {
	tt := NewTranspositionTable(1)
	cfg := testConfig(3)
	cfg.TT = tt

	FindBestMove(board.NewPosition(), cfg)
	if tt.Len() == 0 {
		t.Fatal("search did not populate the supplied table")
	}

	second := FindBestMove(board.NewPosition(), cfg)
	if second.TTHits == 0 {
		t.Error("re-search with a warm table produced no hits")
	}
}

func TestTTHitsReported(t *testing.T) {
	result := FindBestMove(board.NewPosition(), testConfig(4))
	if result.TTHits == 0 {
		t.Error("a depth-4 search should report table hits")
	}
	if result.TTMisses == 0 {
		t.Error("a depth-4 search should probe the table")
	}
	if result.Nodes == 0 {
		t.Error("no nodes accumulated")
	}
}
