package board

import (
	"sort"
	"testing"
)

func TestChainLengthsInitial(t *testing.T) {
	p := NewPosition()

	// The lone center tile sits on one line of each of the three axes.
	lengths := p.ChainLengths()
	if len(lengths) != 3 {
		t.Fatalf("got %d chains, want 3: %v", len(lengths), lengths)
	}
	for _, l := range lengths {
		if l != 1 {
			t.Errorf("chain length %d, want 1", l)
		}
	}

	first, second := p.LongestChainLengths()
	if first != 1 || second != 1 {
		t.Errorf("longest = (%d, %d), want (1, 1)", first, second)
	}
}

func TestChainLengthsColumn(t *testing.T) {
	p := ParsePosition("h0:1,h4:1,h9:1")

	first, second := p.LongestChainLengths()
	if first != 3 {
		t.Errorf("longest chain = %d, want 3", first)
	}
	if second != 1 {
		t.Errorf("second-longest chain = %d, want 1", second)
	}
}

func TestChainsWithMembers(t *testing.T) {
	// 0-4 are a vertical pair; 18 is isolated and must surface as a 1-chain.
	p := ParsePosition("h0:1,h4:1,h18:2")

	chains := p.Chains()
	var sawPair, sawIsolated bool
	for _, c := range chains {
		hexes := append([]int(nil), c.Hexes...)
		sort.Ints(hexes)
		if len(hexes) == 2 && hexes[0] == 0 && hexes[1] == 4 {
			sawPair = true
		}
		if len(hexes) == 1 && hexes[0] == 18 {
			sawIsolated = true
		}
	}
	if !sawPair {
		t.Errorf("vertical pair 0-4 not reported: %v", chains)
	}
	if !sawIsolated {
		t.Errorf("isolated hex 18 not reported as a 1-chain: %v", chains)
	}
}

func TestScoreEmptyChainsContributeOne(t *testing.T) {
	p := &Position{}
	p.ClearBoard()

	// Five chains per family, each an empty product.
	if got := p.Score(P1); got != 5 {
		t.Errorf("P1 score on empty board = %d, want 5", got)
	}
	if got := p.Score(P2); got != 5 {
		t.Errorf("P2 score on empty board = %d, want 5", got)
	}
}

func TestScoreChainProducts(t *testing.T) {
	p := ParsePosition("h9:2,h4:3,h2:5")

	// P1 (down-right): {0,2,5}->5, {1,4,7,10}->3, {3,6,9,12,15}->2, rest 1.
	if got := p.Score(P1); got != 12 {
		t.Errorf("P1 score = %d, want 12", got)
	}
	// P2 (down-left): {2,4,6,8}->15, {5,7,9,11,13}->2, rest 1 each.
	if got := p.Score(P2); got != 20 {
		t.Errorf("P2 score = %d, want 20", got)
	}
}

func TestChainConstraintRestoresState(t *testing.T) {
	p := ParsePosition("h0:1,h4:1,h9:1|p1:1,2|p2:3|turn:2")
	before := *p

	p.ChainConstraintSatisfied(14)
	p.ChainConstraintSatisfied(2)

	if *p != before {
		t.Error("ChainConstraintSatisfied mutated the position")
	}
}
