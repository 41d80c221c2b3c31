package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Grid is a boolean occupancy matrix indexed as grid[row][column].
type Grid [][]bool

// NewGrid allocates an empty grid.
func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]bool, width)
	}
	return g
}

// Width returns the number of columns.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// Height returns the number of rows.
func (g Grid) Height() int {
	return len(g)
}

// Occupied reports whether the cell at p is taken. p must be inside the grid.
func (g Grid) Occupied(p core.Point) bool {
	invariant(p.X >= 0 && p.X < g.Width() && p.Y >= 0 && p.Y < g.Height(),
		"grid query out of bounds at (%d, %d)", p.X, p.Y)
	return g[p.Y][p.X]
}

// IsLegal reports whether cells can be placed on grid.
// A cell is rejected if it is left of column 0, right of the last column,
// below the last row, or on an occupied cell. Cells above row 0 are allowed:
// pieces spawn partly above the field, and losing is decided elsewhere.
func IsLegal(cells []core.Point, grid Grid) bool {
	w, h := grid.Width(), grid.Height()
	for _, c := range cells {
		if c.X < 0 || c.X >= w || c.Y >= h {
			return false
		}
		if c.Y >= 0 && grid[c.Y][c.X] {
			return false
		}
	}
	return true
}
