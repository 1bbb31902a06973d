package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Move encodes a tile placement in 16 bits:
// bits 0-4: hex ID (0-18)
// bits 5-8: tile value (1-9)
type Move uint16

// NoMove represents an invalid or null move (tile value 0 is never legal).
const NoMove Move = 0

// NewMove creates a move placing tileValue on hex.
func NewMove(hex, tileValue int) Move {
	return Move(hex) | Move(tileValue)<<5
}

// Hex returns the destination hex ID.
func (m Move) Hex() int {
	return int(m & 0x1F)
}

// Tile returns the tile value being placed.
func (m Move) Tile() int {
	return int(m>>5) & 0xF
}

// IsValid reports whether the move encodes an on-board hex and a real tile.
func (m Move) IsValid() bool {
	return m.Hex() < NumHexes && m.Tile() >= 1 && m.Tile() <= MaxTileValue
}

// String returns the move in position-string notation, e.g. "h9:1".
func (m Move) String() string {
	if !m.IsValid() {
		return "none"
	}
	return "h" + strconv.Itoa(m.Hex()) + ":" + strconv.Itoa(m.Tile())
}

// ParseMove parses a move in "h<hex>:<tile>" notation.
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || s[0] != 'h' {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	hex, err := strconv.Atoi(s[1:colon])
	if err != nil {
		return NoMove, fmt.Errorf("invalid hex in move %q: %w", s, err)
	}
	tile, err := strconv.Atoi(s[colon+1:])
	if err != nil {
		return NoMove, fmt.Errorf("invalid tile in move %q: %w", s, err)
	}
	if hex < 0 || hex >= NumHexes || tile < 1 || tile > MaxTileValue {
		return NoMove, fmt.Errorf("move %q out of range", s)
	}
	return NewMove(hex, tile), nil
}

// MaxMoves bounds the number of moves in any position (19 hexes x 9 values).
const MaxMoves = NumHexes * MaxTileValue

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
