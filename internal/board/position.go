package board

import (
	"math/bits"
	"strconv"
	"strings"
)

// Player identifies a side. P1 moves first from the initial position.
type Player uint8

const (
	P1 Player = iota
	P2
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return p ^ 1
}

func (p Player) String() string {
	if p == P1 {
		return "P1"
	}
	return "P2"
}

// Position is the mutable board state. It is mutated in place only by
// MakeMove/UnmakeMove and the puzzle setters; MakeMove followed by
// UnmakeMove with the same move restores every field bit-exactly,
// including the incremental hash.
type Position struct {
	occupied uint32              // 19-bit occupancy mask, bit i set iff values[i] != 0
	values   [NumHexes]uint8     // tile value per hex, 0 = empty
	bags     [2][MaxTileValue + 1]uint8 // remaining tiles per side, counted by value
	side     Player
	hash     uint64

	// Derived on load only; never consulted by move legality.
	symmetryPossible bool
	tilesIdentical   bool
}

// NewPosition returns the initial position: tile 1 on the center hex, full
// {1..9} bags for both sides, P1 to move.
func NewPosition() *Position {
	p := &Position{}
	p.Reset()
	return p
}

// Reset restores the initial position.
func (p *Position) Reset() {
	p.occupied = 0
	p.values = [NumHexes]uint8{}
	for v := 1; v <= MaxTileValue; v++ {
		p.bags[P1][v] = 1
		p.bags[P2][v] = 1
	}
	p.occupied = 1 << CenterHex
	p.values[CenterHex] = StartingTile
	p.side = P1
	p.symmetryPossible = true
	p.tilesIdentical = true
	p.hash = p.ComputeHash()
}

// Clone returns a deep copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// IsHexOccupied reports whether the hex holds a tile.
func (p *Position) IsHexOccupied(hex int) bool {
	return p.occupied&(1<<uint(hex)) != 0
}

// TileValue returns the tile value on a hex, 0 if empty.
func (p *Position) TileValue(hex int) int {
	return int(p.values[hex])
}

// SideToMove returns the player who plays next.
func (p *Position) SideToMove() Player {
	return p.side
}

// Hash returns the incrementally-maintained Zobrist hash.
func (p *Position) Hash() uint64 {
	return p.hash
}

// SymmetryPossible reports the flag derived by the last LoadPosition.
func (p *Position) SymmetryPossible() bool {
	return p.symmetryPossible
}

// TilesIdentical reports whether both bags held the same multiset at load.
func (p *Position) TilesIdentical() bool {
	return p.tilesIdentical
}

// OccupiedCount returns the number of occupied hexes.
func (p *Position) OccupiedCount() int {
	return bits.OnesCount32(p.occupied)
}

// IsGameOver reports whether all hexes are occupied. Occupancy is counted
// rather than moves so that puzzle positions starting partially filled work.
func (p *Position) IsGameOver() bool {
	return bits.OnesCount32(p.occupied) >= NumHexes
}

// IsTileAvailable reports whether the player's bag still holds the value.
func (p *Position) IsTileAvailable(player Player, tileValue int) bool {
	if tileValue < 1 || tileValue > MaxTileValue {
		return false
	}
	return p.bags[player][tileValue] > 0
}

// AvailableTiles returns the player's remaining tiles in ascending order,
// duplicates expanded.
func (p *Position) AvailableTiles(player Player) []int {
	tiles := make([]int, 0, MaxTileValue)
	for v := 1; v <= MaxTileValue; v++ {
		for n := uint8(0); n < p.bags[player][v]; n++ {
			tiles = append(tiles, v)
		}
	}
	return tiles
}

// SetAvailableTiles replaces the player's bag. Duplicates are permitted,
// e.g. a puzzle bag of nine 1s. Values outside 1..9 are ignored.
func (p *Position) SetAvailableTiles(player Player, tiles []int) {
	p.bags[player] = [MaxTileValue + 1]uint8{}
	for _, v := range tiles {
		if v >= 1 && v <= MaxTileValue {
			p.bags[player][v]++
		}
	}
}

// MakeMove applies a move: places the tile, removes it from the mover's bag,
// updates the hash incrementally and flips the side to move. The caller is
// responsible for only applying valid moves.
func (p *Position) MakeMove(m Move) {
	hex, tile := m.Hex(), m.Tile()
	p.occupied |= 1 << uint(hex)
	p.values[hex] = uint8(tile)
	p.bags[p.side][tile]--

	p.hash ^= zobristTile[hex][tile]
	p.hash ^= zobristSide[p.side]
	p.side = p.side.Opponent()
	p.hash ^= zobristSide[p.side]
}

// UnmakeMove reverses MakeMove exactly.
func (p *Position) UnmakeMove(m Move) {
	hex, tile := m.Hex(), m.Tile()
	p.hash ^= zobristSide[p.side]
	p.side = p.side.Opponent()
	p.hash ^= zobristSide[p.side]
	p.hash ^= zobristTile[hex][tile]

	p.bags[p.side][tile]++
	p.occupied &^= 1 << uint(hex)
	p.values[hex] = 0
}

// ComputeHash recomputes the Zobrist hash from scratch: the XOR of every
// placed tile's key and the side-to-move key.
func (p *Position) ComputeHash() uint64 {
	var h uint64
	for hex := 0; hex < NumHexes; hex++ {
		if v := p.values[hex]; v != 0 {
			h ^= zobristTile[hex][v]
		}
	}
	return h ^ zobristSide[p.side]
}

// SetHexValue places a tile directly for puzzle setup and rehashes.
func (p *Position) SetHexValue(hex, tileValue int) {
	if hex < 0 || hex >= NumHexes {
		return
	}
	p.occupied |= 1 << uint(hex)
	p.values[hex] = uint8(tileValue)
	p.hash = p.ComputeHash()
}

// RemoveHexValue clears a hex for puzzle setup and rehashes.
func (p *Position) RemoveHexValue(hex int) {
	if hex < 0 || hex >= NumHexes {
		return
	}
	p.occupied &^= 1 << uint(hex)
	p.values[hex] = 0
	p.hash = p.ComputeHash()
}

// SetSideToMove sets the player to move and rehashes.
func (p *Position) SetSideToMove(player Player) {
	p.side = player
	p.hash = p.ComputeHash()
}

// ClearBoard removes every tile but keeps bags and side to move.
func (p *Position) ClearBoard() {
	p.occupied = 0
	p.values = [NumHexes]uint8{}
	p.hash = p.ComputeHash()
}

// String renders the board state for debugging.
func (p *Position) String() string {
	var b strings.Builder
	b.WriteString("occupied ")
	b.WriteString(strconv.Itoa(p.OccupiedCount()))
	b.WriteString("/")
	b.WriteString(strconv.Itoa(NumHexes))
	b.WriteString(", ")
	b.WriteString(p.side.String())
	b.WriteString(" to move, scores P1=")
	b.WriteString(strconv.Itoa(p.Score(P1)))
	b.WriteString(" P2=")
	b.WriteString(strconv.Itoa(p.Score(P2)))
	b.WriteString("\n")
	for hex := 0; hex < NumHexes; hex++ {
		if !p.IsHexOccupied(hex) {
			continue
		}
		b.WriteString("  h")
		b.WriteString(strconv.Itoa(hex))
		b.WriteString(" (row=")
		b.WriteString(strconv.Itoa(HexRow(hex)))
		b.WriteString(", col=")
		b.WriteString(strconv.Itoa(HexCol(hex)))
		b.WriteString(") = ")
		b.WriteString(strconv.Itoa(p.TileValue(hex)))
		b.WriteString("\n")
	}
	b.WriteString("  P1 tiles: ")
	b.WriteString(tilesString(p.AvailableTiles(P1)))
	b.WriteString("\n  P2 tiles: ")
	b.WriteString(tilesString(p.AvailableTiles(P2)))
	return b.String()
}

func tilesString(tiles []int) string {
	parts := make([]string, len(tiles))
	for i, v := range tiles {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
