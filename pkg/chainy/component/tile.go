package component

import "github.com/rotisserie/eris"

// GridSize is the width and height of a tile's cell grid.
const GridSize = 10

// Tile is a patch of ground at world position (X, Y). Its Grid holds the markers placed on it and
// is indexed by local cell coordinates, independent of the world position.
type Tile struct {
	X     int64    `json:"x"`
	Y     int64    `json:"y"`
	Owner Identity `json:"owner"`
	Grid  Grid     `json:"grid"`
}

func (Tile) Name() string {
	return "tile"
}

// Grid is a fixed GridSize x GridSize matrix of cells, indexed as Grid[x][y].
type Grid [GridSize][GridSize]Cell

// InBounds reports whether (x, y) addresses a cell of the grid.
func InBounds(x, y int64) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// Cell is the marker stored in one grid slot. Cells carry no payload and any cell may be replaced
// by any other.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellTree
	CellTrap
	CellEgg

	// CellCount is the number of cell kinds.
	CellCount = 4
)

var cellNames = [CellCount]string{ //nolint:gochecknoglobals // lookup table
	CellEmpty: "empty",
	CellTree:  "tree",
	CellTrap:  "trap",
	CellEgg:   "egg",
}

func (c Cell) Valid() bool {
	return c < CellCount
}

func (c Cell) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return cellNames[c]
}

// ParseCell returns the cell with the given lowercase name.
func ParseCell(s string) (Cell, error) {
	for i, name := range cellNames {
		if name == s {
			return Cell(i), nil //nolint:gosec // i < CellCount
		}
	}
	return 0, eris.Errorf("unknown cell %q", s)
}

func (c Cell) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, eris.Errorf("invalid cell %d", uint8(c))
	}
	return []byte(cellNames[c]), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	parsed, err := ParseCell(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
