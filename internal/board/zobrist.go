package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed so equal positions hash equal across runs.
var (
	zobristTile [NumHexes][MaxTileValue + 1]uint64 // [hex][tileValue], index 0 unused
	zobristSide [2]uint64                          // one key per side to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0xC0FFEE1915D00D42) // Fixed seed

	for hex := 0; hex < NumHexes; hex++ {
		for tile := 1; tile <= MaxTileValue; tile++ {
			zobristTile[hex][tile] = rng.next()
		}
	}
	zobristSide[P1] = rng.next()
	zobristSide[P2] = rng.next()
}

// ZobristTile returns the Zobrist key for a tile value on a hex.
func ZobristTile(hex, tileValue int) uint64 {
	return zobristTile[hex][tileValue]
}

// ZobristSide returns the Zobrist key for the side to move.
func ZobristSide(p Player) uint64 {
	return zobristSide[p]
}
