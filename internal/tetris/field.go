package tetris

import (
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Block is a settled cell and its display color.
type Block struct {
	Cell  core.Point
	Color core.Color
}

// Field holds the blocks that have locked in place, keyed by position so that
// no two blocks can share a cell.
type Field struct {
	width  int
	height int
	blocks *intmap.Map[int, Block]
}

// NewField creates an empty field.
func NewField(width, height int) *Field {
	invariant(width > 0 && height > 0, "field size %dx%d", width, height)
	return &Field{
		width:  width,
		height: height,
		blocks: intmap.New[int, Block](width * height),
	}
}

// Width returns the number of columns.
func (f *Field) Width() int {
	return f.width
}

// Height returns the number of rows.
func (f *Field) Height() int {
	return f.height
}

// Len returns the number of settled blocks.
func (f *Field) Len() int {
	return f.blocks.Len()
}

func (f *Field) key(p core.Point) int {
	return p.Y*f.width + p.X
}

func (f *Field) inBounds(p core.Point) bool {
	return p.X >= 0 && p.X < f.width && p.Y >= 0 && p.Y < f.height
}

// Occupied reports whether a block sits at p. p must be inside the field.
func (f *Field) Occupied(p core.Point) bool {
	invariant(f.inBounds(p), "field query out of bounds at (%d, %d)", p.X, p.Y)
	return f.blocks.Has(f.key(p))
}

// OccupancyGrid projects the blocks onto a fresh grid. The grid is never
// cached, so it always reflects the current blocks.
func (f *Field) OccupancyGrid() Grid {
	grid := NewGrid(f.width, f.height)
	f.blocks.ForEach(func(_ int, b Block) bool {
		grid[b.Cell.Y][b.Cell.X] = true
		return true
	})
	return grid
}

// Lock adds cells as blocks of the given color. Cells must be inside the
// field and free; a piece only locks from a legal resting position.
func (f *Field) Lock(cells []core.Point, color core.Color) {
	for _, c := range cells {
		invariant(f.inBounds(c), "locking cell out of bounds at (%d, %d)", c.X, c.Y)
		k := f.key(c)
		invariant(!f.blocks.Has(k), "locking onto occupied cell (%d, %d)", c.X, c.Y)
		f.blocks.Put(k, Block{Cell: c, Color: color})
	}
}

// FullRows returns, in ascending order, the rows of grid whose every column
// is occupied.
func (f *Field) FullRows(grid Grid) []int {
	var rows []int
	for y, row := range grid {
		full := true
		for _, occupied := range row {
			if !occupied {
				full = false
				break
			}
		}
		if full {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes every block on the given rows. Blocks above the lowest
// cleared row (the largest index) move down by the number of cleared rows;
// blocks below it stay where they are.
//
// When the cleared rows are not contiguous, a block between them can land on
// a cell below the lowest cleared row. The moved block then replaces the one
// that was there. A block pushed past the floor is dropped.
func (f *Field) ClearRows(rows []int) {
	if len(rows) == 0 {
		return
	}

	cleared := slices.Clone(rows)
	slices.Sort(cleared)
	cleared = slices.Compact(cleared)
	lowest := cleared[len(cleared)-1]
	shift := len(cleared)

	var kept, moved []Block
	f.blocks.ForEach(func(_ int, b Block) bool {
		switch {
		case slices.Contains(cleared, b.Cell.Y):
		case b.Cell.Y < lowest:
			b.Cell.Y += shift
			if b.Cell.Y < f.height {
				moved = append(moved, b)
			}
		default:
			kept = append(kept, b)
		}
		return true
	})

	next := intmap.New[int, Block](f.width * f.height)
	for _, b := range kept {
		next.Put(f.key(b.Cell), b)
	}
	for _, b := range moved {
		next.Put(f.key(b.Cell), b)
	}
	f.blocks = next
}

// Reset removes all blocks.
func (f *Field) Reset() {
	f.blocks.Clear()
}

// Blocks returns the settled blocks ordered by row, then column.
func (f *Field) Blocks() []Block {
	out := make([]Block, 0, f.blocks.Len())
	f.blocks.ForEach(func(_ int, b Block) bool {
		out = append(out, b)
		return true
	})
	slices.SortFunc(out, func(a, b Block) int {
		if a.Cell.Y != b.Cell.Y {
			return a.Cell.Y - b.Cell.Y
		}
		return a.Cell.X - b.Cell.X
	})
	return out
}
