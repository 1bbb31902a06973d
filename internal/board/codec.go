package board

import (
	"strconv"
	"strings"
)

// Position string codec.
//
// Format, pipe-delimited sections in fixed order:
//
//	h<ID>:<VAL>,h<ID>:<VAL>,...|p1:<v>,<v>,...|p2:<v>,<v>,...|turn:<N>
//
// The parser is tolerant: empty sections are skipped and malformed pairs are
// ignored, since the upstream producing these strings is trusted. Missing
// sections default to an empty board, {1..9} bags and P1 to move.

// StartPosition is the saved form of the initial position.
const StartPosition = "h9:1|p1:1,2,3,4,5,6,7,8,9|p2:1,2,3,4,5,6,7,8,9|turn:1"

// ParsePosition parses a position string into a fresh Position.
func ParsePosition(s string) *Position {
	p := &Position{}
	p.LoadPosition(s)
	return p
}

// LoadPosition replaces the position with the one described by s.
func (p *Position) LoadPosition(s string) {
	p.occupied = 0
	p.values = [NumHexes]uint8{}
	for v := 1; v <= MaxTileValue; v++ {
		p.bags[P1][v] = 1
		p.bags[P2][v] = 1
	}
	p.side = P1

	for _, section := range strings.Split(s, "|") {
		if section == "" {
			continue
		}
		switch {
		case section[0] == 'h':
			for _, pair := range strings.Split(section, ",") {
				hex, val, ok := parseHexPair(pair)
				if !ok {
					continue
				}
				p.occupied |= 1 << uint(hex)
				p.values[hex] = uint8(val)
			}
		case strings.HasPrefix(section, "p1:"):
			p.SetAvailableTiles(P1, parseTileList(section[3:]))
		case strings.HasPrefix(section, "p2:"):
			p.SetAvailableTiles(P2, parseTileList(section[3:]))
		case strings.HasPrefix(section, "turn:"):
			if n, err := strconv.Atoi(section[5:]); err == nil && n == 2 {
				p.side = P2
			}
		}
	}

	p.symmetryPossible = p.computeSymmetryPossible()
	p.tilesIdentical = p.bags[P1] == p.bags[P2]
	p.hash = p.ComputeHash()
}

// SavePosition emits the position string. Sections are written in fixed
// order; bags list ascending, so save -> load -> save is stable.
func (p *Position) SavePosition() string {
	var b strings.Builder
	first := true
	for hex := 0; hex < NumHexes; hex++ {
		if !p.IsHexOccupied(hex) {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		b.WriteByte('h')
		b.WriteString(strconv.Itoa(hex))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(p.TileValue(hex)))
		first = false
	}

	b.WriteString("|p1:")
	writeTileList(&b, p.AvailableTiles(P1))
	b.WriteString("|p2:")
	writeTileList(&b, p.AvailableTiles(P2))

	b.WriteString("|turn:")
	if p.side == P2 {
		b.WriteByte('2')
	} else {
		b.WriteByte('1')
	}
	return b.String()
}

// parseHexPair parses "h<ID>:<VAL>"; ok is false for malformed pairs.
func parseHexPair(s string) (hex, val int, ok bool) {
	if len(s) < 4 || s[0] != 'h' {
		return 0, 0, false
	}
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return 0, 0, false
	}
	hex, err := strconv.Atoi(s[1:colon])
	if err != nil || hex < 0 || hex >= NumHexes {
		return 0, 0, false
	}
	val, err = strconv.Atoi(s[colon+1:])
	if err != nil || val < 1 || val > MaxTileValue {
		return 0, 0, false
	}
	return hex, val, true
}

func parseTileList(s string) []int {
	if s == "" {
		return nil
	}
	var tiles []int
	for _, part := range strings.Split(s, ",") {
		if v, err := strconv.Atoi(part); err == nil {
			tiles = append(tiles, v)
		}
	}
	return tiles
}

func writeTileList(b *strings.Builder, tiles []int) {
	for i, v := range tiles {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
}

// computeSymmetryPossible reports whether the board could still reach a
// vertically-mirrored state: no mirror pair holds two different values.
// The flag is informational; legality never reads it.
func (p *Position) computeSymmetryPossible() bool {
	for hex := 0; hex < NumHexes; hex++ {
		if int(verticalMirror[hex]) == hex {
			continue
		}
		v1 := p.values[hex]
		v2 := p.values[verticalMirror[hex]]
		if v1 != 0 && v2 != 0 && v1 != v2 {
			return false
		}
	}
	return true
}
