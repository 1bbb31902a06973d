package storage

import (
	"testing"
	"time"

	"github.com/Zoidburgh/hexuki/internal/board"
	"github.com/Zoidburgh/hexuki/internal/engine"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPreferencesDefaults(t *testing.T) {
	s := openTestStorage(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := engine.DefaultConfig()
	if prefs.MaxDepth != def.MaxDepth || prefs.TimeLimit != def.TimeLimit || prefs.TTSizeMB != def.TTSizeMB {
		t.Errorf("defaults mismatch: %+v vs config %+v", prefs, def)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	want := &Preferences{
		MaxDepth:  8,
		TimeLimit: 5 * time.Second,
		TTSizeMB:  32,
		Verbose:   true,
	}
	if err := s.SavePreferences(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MaxDepth != 8 || got.TimeLimit != 5*time.Second || got.TTSizeMB != 32 || !got.Verbose {
		t.Errorf("round trip lost data: %+v", got)
	}
	if got.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped on save")
	}
}

func TestTTSnapshotRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	// No snapshot yet.
	tt, meta, err := s.LoadTTSnapshot(1)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if tt != nil || meta != nil {
		t.Fatal("expected no snapshot in a fresh store")
	}

	src := engine.NewTranspositionTable(1)
	src.Store(0xABC, engine.TTEntry{Score: 7, Depth: 4, Flag: engine.TTExact, BestMove: board.NewMove(4, 2)})
	src.Store(0xDEF, engine.TTEntry{Score: -3, Depth: 2, Flag: engine.TTUpperBound, BestMove: board.NewMove(6, 1)})

	if err := s.SaveTTSnapshot(board.StartPosition, src); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	tt, meta, err = s.LoadTTSnapshot(1)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if tt == nil || meta == nil {
		t.Fatal("snapshot not found after save")
	}
	if meta.Entries != 2 || meta.Position != board.StartPosition {
		t.Errorf("meta = %+v", meta)
	}
	if tt.Len() != 2 {
		t.Fatalf("restored table has %d entries, want 2", tt.Len())
	}
	entry, ok := tt.Probe(0xABC)
	if !ok || entry.Score != 7 || entry.Depth != 4 || entry.BestMove != board.NewMove(4, 2) {
		t.Errorf("restored entry mismatch: %+v", entry)
	}
}
