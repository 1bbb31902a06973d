package engine

import (
	"github.com/Zoidburgh/hexuki/internal/board"
)

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score
	TTLowerBound               // Failed high (beta cutoff)
	TTUpperBound               // Failed low
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Score    int32
	Depth    int8
	Flag     TTFlag
	BestMove board.Move
}

// Approximate bytes per stored entry including map overhead, used to turn a
// megabyte target into a capacity hint.
const ttEntryBytes = 32

// TranspositionTable caches search results keyed by Zobrist hash. The table
// reserves capacity for the megabyte target up front but grows past it
// rather than evicting: result stability is preferred over a strict memory
// bound. Replacement within a slot is depth-preferred. The table is used by
// one search at a time, so counters need no synchronization.
type TranspositionTable struct {
	table  map[uint64]TTEntry
	hits   uint64
	misses uint64
}

// NewTranspositionTable creates a transposition table with the given target
// size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	capacity := sizeMB * (1 << 20) / ttEntryBytes
	if capacity < 0 {
		capacity = 0
	}
	return &TranspositionTable{
		table: make(map[uint64]TTEntry, capacity),
	}
}

// Probe looks up a position. Counts a hit or a miss on every call.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	entry, ok := tt.table[hash]
	if ok {
		tt.hits++
		return entry, true
	}
	tt.misses++
	return TTEntry{}, false
}

// Store saves an entry. An existing deeper entry under the same hash is
// kept; equal or shallower entries are overwritten.
func (tt *TranspositionTable) Store(hash uint64, entry TTEntry) {
	if existing, ok := tt.table[hash]; ok && existing.Depth > entry.Depth {
		return
	}
	tt.table[hash] = entry
}

// Clear empties the table and resets the counters.
func (tt *TranspositionTable) Clear() {
	clear(tt.table)
	tt.hits = 0
	tt.misses = 0
}

// Len returns the number of stored entries.
func (tt *TranspositionTable) Len() int {
	return len(tt.table)
}

// Hits returns the probe hit count.
func (tt *TranspositionTable) Hits() uint64 {
	return tt.hits
}

// Misses returns the probe miss count.
func (tt *TranspositionTable) Misses() uint64 {
	return tt.misses
}

// TTRecord is a stored entry paired with its hash, used for snapshots.
type TTRecord struct {
	Hash  uint64
	Entry TTEntry
}

// Export returns every entry for snapshot persistence.
func (tt *TranspositionTable) Export() []TTRecord {
	records := make([]TTRecord, 0, len(tt.table))
	for hash, entry := range tt.table {
		records = append(records, TTRecord{Hash: hash, Entry: entry})
	}
	return records
}

// Import loads snapshot records, keeping the deeper entry on collision.
func (tt *TranspositionTable) Import(records []TTRecord) {
	for _, r := range records {
		tt.Store(r.Hash, r.Entry)
	}
}
