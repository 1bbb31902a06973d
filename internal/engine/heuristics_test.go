package engine

import (
	"testing"

	"github.com/Zoidburgh/hexuki/internal/board"
)

func TestKillerUpdateShifts(t *testing.T) {
	var k killerTable
	a := board.NewMove(4, 1)
	b := board.NewMove(6, 2)

	k.update(3, a)
	if !k.isKiller(3, a) {
		t.Fatal("first killer not recorded")
	}

	k.update(3, b)
	if !k.isKiller(3, b) || !k.isKiller(3, a) {
		t.Error("second killer should shift the first into slot two")
	}

	// Re-recording the primary killer must not evict the secondary.
	k.update(3, b)
	if !k.isKiller(3, a) {
		t.Error("re-recording the primary killer evicted the secondary")
	}

	if k.isKiller(4, a) {
		t.Error("killer leaked across plies")
	}
}

func TestKillerPlyBounds(t *testing.T) {
	var k killerTable
	m := board.NewMove(4, 1)

	k.update(-1, m)
	k.update(MaxSearchPly, m)
	if k.isKiller(-1, m) || k.isKiller(MaxSearchPly, m) {
		t.Error("out-of-range plies must be ignored")
	}
}

func TestHistoryAccumulatesDepthSquared(t *testing.T) {
	var h historyTable
	m := board.NewMove(9, 5)

	h.update(m, 3)
	h.update(m, 4)
	if got := h.score(m); got != 25 {
		t.Errorf("history score = %d, want 25 (9+16)", got)
	}
	if got := h.score(board.NewMove(9, 6)); got != 0 {
		t.Errorf("untouched move has history %d, want 0", got)
	}
}
