package protocol

import (
	"strings"
	"testing"

	"github.com/Zoidburgh/hexuki/internal/board"
	"github.com/Zoidburgh/hexuki/internal/engine"
)

func run(t *testing.T, script string) string {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.MaxDepth = 2
	cfg.TimeLimit = 0
	cfg.TTSizeMB = 1

	var out strings.Builder
	p := New(strings.NewReader(script), &out, cfg)
	if err := p.Run(); err != nil {
		t.Fatalf("protocol run: %v", err)
	}
	return out.String()
}

func TestGoEmitsBestMove(t *testing.T) {
	out := run(t, "position start\ngo depth 1\nquit\n")

	if !strings.Contains(out, "bestmove h") {
		t.Errorf("no bestmove line in output:\n%s", out)
	}
	if !strings.Contains(out, "depth 1") {
		t.Errorf("depth not reported:\n%s", out)
	}
}

func TestSaveReflectsLoadedPosition(t *testing.T) {
	position := "h9:3|p1:1,2|p2:8,9|turn:2"
	out := run(t, "position "+position+"\nsave\nquit\n")

	if !strings.Contains(out, position) {
		t.Errorf("save did not echo the loaded position:\n%s", out)
	}
}

func TestPlayValidatesMoves(t *testing.T) {
	out := run(t, "position start\nplay h0:5\nplay h4:5\nsave\nquit\n")

	if !strings.Contains(out, "illegal move: h0:5") {
		t.Errorf("disconnected placement not rejected:\n%s", out)
	}
	if !strings.Contains(out, "h4:5") || !strings.Contains(out, "turn:2") {
		t.Errorf("legal move not applied:\n%s", out)
	}
}

func TestMovesListsForcedMove(t *testing.T) {
	position := "h0:1,h1:1,h2:1,h3:1,h4:1,h5:1,h6:1,h7:1,h8:1,h9:1,h10:1,h11:1,h12:1,h13:1,h14:1,h15:1,h16:1,h17:1|p1:1|p2:|turn:1"
	out := run(t, "position "+position+"\nmoves\nquit\n")

	if !strings.Contains(out, "1 moves: h18:1") {
		t.Errorf("forced move not listed:\n%s", out)
	}
}

func TestEvalAndUnknownCommand(t *testing.T) {
	out := run(t, "eval\nbogus\nquit\n")

	if !strings.Contains(out, "eval ") {
		t.Errorf("eval not answered:\n%s", out)
	}
	if !strings.Contains(out, "unknown command: bogus") {
		t.Errorf("unknown command not reported:\n%s", out)
	}
}

func TestNewGameResets(t *testing.T) {
	out := run(t, "position h9:5|p1:1|p2:1|turn:2\nnewgame\nsave\nquit\n")

	if !strings.Contains(out, board.StartPosition) {
		t.Errorf("newgame did not restore the start position:\n%s", out)
	}
}
