package board

// Board geometry constants.
const (
	NumHexes     = 19 // Cells on the board
	CenterHex    = 9  // The pre-seeded center cell
	MaxTileValue = 9  // Tile values run 1..9; 0 marks an empty cell
	StartingTile = 1  // Tile on the center hex in the initial position

	gridRows = 9
	gridCols = 5
)

// hexPosition is the (row, col) of a hex on the banded 9x5 grid.
// Columns hold 3-4-5-4-3 hexes; rows use a doubled vertical coordinate so
// that all six hex-grid neighbor directions become fixed (dr, dc) offsets.
type hexPosition struct {
	Row, Col int8
}

// hexPositions maps hex ID -> grid cell, numbered row-major top to bottom.
var hexPositions = [NumHexes]hexPosition{
	{0, 2},                 // 0
	{1, 1}, {1, 3},         // 1, 2
	{2, 0}, {2, 2}, {2, 4}, // 3, 4, 5
	{3, 1}, {3, 3},         // 6, 7
	{4, 0}, {4, 2}, {4, 4}, // 8, 9, 10
	{5, 1}, {5, 3},         // 11, 12
	{6, 0}, {6, 2}, {6, 4}, // 13, 14, 15
	{7, 1}, {7, 3},         // 16, 17
	{8, 2},                 // 18
}

// gridOffset is a step along one of the hex-grid directions.
type gridOffset struct {
	dr, dc int8
}

// The six neighbor directions on the doubled-row grid.
var hexDirections = [6]gridOffset{
	{-2, 0}, {2, 0}, // up, down
	{-1, -1}, {-1, 1}, // up-left, up-right
	{1, -1}, {1, 1}, // down-left, down-right
}

// chainStarter is the first hex of a straight line plus its walk direction.
// The 15 starters enumerate every line on the board exactly once: the five
// columns, the five down-right diagonals and the five down-left diagonals.
type chainStarter struct {
	start int8
	dir   gridOffset
}

var chainStarters = [15]chainStarter{
	// Columns, left to right.
	{3, gridOffset{2, 0}},
	{1, gridOffset{2, 0}},
	{0, gridOffset{2, 0}},
	{2, gridOffset{2, 0}},
	{5, gridOffset{2, 0}},
	// Down-right diagonals.
	{0, gridOffset{1, 1}},
	{1, gridOffset{1, 1}},
	{3, gridOffset{1, 1}},
	{8, gridOffset{1, 1}},
	{13, gridOffset{1, 1}},
	// Down-left diagonals.
	{0, gridOffset{1, -1}},
	{2, gridOffset{1, -1}},
	{5, gridOffset{1, -1}},
	{10, gridOffset{1, -1}},
	{15, gridOffset{1, -1}},
}

// Scoring chain families. P1 scores along the down-right diagonals, P2 along
// the down-left diagonals; a player's score is the sum over its chains of the
// product of tile values on the occupied hexes of the chain.
var (
	p1Chains = [5][]int8{
		{0, 2, 5},
		{1, 4, 7, 10},
		{3, 6, 9, 12, 15},
		{8, 11, 14, 17},
		{13, 16, 18},
	}
	p2Chains = [5][]int8{
		{0, 1, 3},
		{2, 4, 6, 8},
		{5, 7, 9, 11, 13},
		{10, 12, 14, 16},
		{15, 17, 18},
	}
)

// verticalMirror maps each hex to its left-right reflection (col -> 4-col).
var verticalMirror = [NumHexes]int8{
	0,
	2, 1,
	5, 4, 3,
	7, 6,
	10, 9, 8,
	12, 11,
	15, 14, 13,
	17, 16,
	18,
}

// centerColumnHexes mirror onto themselves.
var centerColumnHexes = [5]int8{0, 4, 9, 14, 18}

// rowColToHex is the O(1) reverse lookup; -1 marks grid cells with no hex.
var rowColToHex [gridRows][gridCols]int8

// adjacencyList holds a hex's neighbors without heap allocation.
type adjacencyList struct {
	hexes [6]int8
	count int8
}

var adjacentHexes [NumHexes]adjacencyList

func init() {
	for r := range rowColToHex {
		for c := range rowColToHex[r] {
			rowColToHex[r][c] = -1
		}
	}
	for id, pos := range hexPositions {
		rowColToHex[pos.Row][pos.Col] = int8(id)
	}
	for id, pos := range hexPositions {
		adj := &adjacentHexes[id]
		for _, d := range hexDirections {
			n := FindHexAt(int(pos.Row+d.dr), int(pos.Col+d.dc))
			if n >= 0 {
				adj.hexes[adj.count] = int8(n)
				adj.count++
			}
		}
	}
}

// FindHexAt returns the hex ID at a grid cell, or -1 if the cell is off the
// board or not one of the 19 hexes.
func FindHexAt(row, col int) int {
	if row < 0 || row >= gridRows || col < 0 || col >= gridCols {
		return -1
	}
	return int(rowColToHex[row][col])
}

// HexRow returns the grid row of a hex.
func HexRow(hex int) int { return int(hexPositions[hex].Row) }

// HexCol returns the grid column of a hex.
func HexCol(hex int) int { return int(hexPositions[hex].Col) }

// AdjacentHexes returns the IDs of the hexes bordering hex.
func AdjacentHexes(hex int) []int {
	if hex < 0 || hex >= NumHexes {
		return nil
	}
	adj := adjacentHexes[hex]
	out := make([]int, adj.count)
	for i := int8(0); i < adj.count; i++ {
		out[i] = int(adj.hexes[i])
	}
	return out
}

// MirrorHex returns the vertical-mirror counterpart of a hex.
func MirrorHex(hex int) int { return int(verticalMirror[hex]) }
