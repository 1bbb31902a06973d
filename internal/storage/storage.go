package storage

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Zoidburgh/hexuki/internal/engine"
)

// Storage keys
const (
	keyPreferences    = "preferences"
	keyTTSnapshot     = "tt_snapshot"
	keyTTSnapshotMeta = "tt_snapshot_meta"
)

// Preferences stores the engine settings a user last ran with.
type Preferences struct {
	MaxDepth    int           `json:"max_depth"`
	TimeLimit   time.Duration `json:"time_limit"`
	TTSizeMB    int           `json:"tt_size_mb"`
	Verbose     bool          `json:"verbose"`
	LastUpdated time.Time     `json:"last_updated"`
}

// DefaultPreferences mirrors the engine's default search configuration.
func DefaultPreferences() *Preferences {
	cfg := engine.DefaultConfig()
	return &Preferences{
		MaxDepth:  cfg.MaxDepth,
		TimeLimit: cfg.TimeLimit,
		TTSizeMB:  cfg.TTSizeMB,
	}
}

// SnapshotMeta describes a persisted transposition table snapshot.
type SnapshotMeta struct {
	Entries  int       `json:"entries"`
	Position string    `json:"position"`
	SavedAt  time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database at an explicit directory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves engine preferences.
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastUpdated = time.Now()

	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPreferences), data)
	})
}

// LoadPreferences loads engine preferences, returning defaults if none are
// stored yet.
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPreferences))
		if err == badger.ErrKeyNotFound {
			return nil // Use defaults
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, prefs)
		})
	})

	return prefs, err
}

// SaveTTSnapshot persists a transposition table snapshot together with the
// position it was searched from, so a later session can warm-start analysis
// of the same position.
func (s *Storage) SaveTTSnapshot(position string, tt *engine.TranspositionTable) error {
	records := tt.Export()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(records); err != nil {
		return err
	}
	meta, err := json.Marshal(SnapshotMeta{
		Entries:  len(records),
		Position: position,
		SavedAt:  time.Now(),
	})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(keyTTSnapshot), buf.Bytes()); err != nil {
			return err
		}
		return txn.Set([]byte(keyTTSnapshotMeta), meta)
	})
}

// LoadTTSnapshot restores the persisted snapshot into a fresh table sized
// for sizeMB. Returns the table and the snapshot metadata; both are nil
// when no snapshot is stored.
func (s *Storage) LoadTTSnapshot(sizeMB int) (*engine.TranspositionTable, *SnapshotMeta, error) {
	var records []engine.TTRecord
	var meta SnapshotMeta
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTTSnapshot))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		if err := item.Value(func(val []byte) error {
			return gob.NewDecoder(bytes.NewReader(val)).Decode(&records)
		}); err != nil {
			return err
		}
		found = true

		metaItem, err := txn.Get([]byte(keyTTSnapshotMeta))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return metaItem.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil || !found {
		return nil, nil, err
	}

	tt := engine.NewTranspositionTable(sizeMB)
	tt.Import(records)
	return tt, &meta, nil
}
