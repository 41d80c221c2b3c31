// Package tetris implements the falling-block simulation: the shape catalog,
// the settled-block field, the active piece, collision checks and the
// move/lock controller. It has no UI dependencies; front-ends query its state
// once per frame and feed it discrete commands.
package tetris

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ShapeID identifies a tetromino type by its conventional letter.
type ShapeID byte

const (
	ShapeI ShapeID = 'I'
	ShapeJ ShapeID = 'J'
	ShapeO ShapeID = 'O'
	ShapeL ShapeID = 'L'
	ShapeS ShapeID = 'S'
	ShapeZ ShapeID = 'Z'
	ShapeT ShapeID = 'T'
)

func (id ShapeID) String() string {
	return string(rune(id))
}

// Offsets are the four cells of a rotation state relative to the piece anchor.
type Offsets [4]core.Point

// RotationState is one orientation of a shape.
type RotationState struct {
	Offsets Offsets
}

// Shape is a tetromino type with its cyclic sequence of rotation states.
type Shape struct {
	ID     ShapeID
	Color  core.Color
	States []RotationState
}

// Catalog is the read-only lookup from shape id to shape.
// Build it once before the first spawn and share it; nothing mutates it.
type Catalog struct {
	shapes map[ShapeID]*Shape
	order  []ShapeID
}

// NewCatalog builds a catalog from the given shapes, keeping their order for
// random selection. It panics if a shape is malformed.
func NewCatalog(shapes ...Shape) *Catalog {
	c := &Catalog{
		shapes: make(map[ShapeID]*Shape, len(shapes)),
		order:  make([]ShapeID, 0, len(shapes)),
	}
	for i := range shapes {
		s := shapes[i]
		invariant(len(s.States) > 0, "shape %s has no rotation states", s.ID)
		invariant(c.shapes[s.ID] == nil, "shape %s registered twice", s.ID)
		for idx, st := range s.States {
			invariant(distinct(st.Offsets), "shape %s state %d repeats a cell", s.ID, idx)
		}
		c.shapes[s.ID] = &s
		c.order = append(c.order, s.ID)
	}
	return c
}

// DefaultCatalog returns the seven standard shapes.
var DefaultCatalog = sync.OnceValue(func() *Catalog {
	return NewCatalog(defaultShapes()...)
})

// Shape returns the shape for id. Unknown ids are a programming error.
func (c *Catalog) Shape(id ShapeID) *Shape {
	s, ok := c.shapes[id]
	invariant(ok, "unknown shape %q", id)
	return s
}

// RotationStates returns the ordered rotation states of a shape.
func (c *Catalog) RotationStates(id ShapeID) []RotationState {
	return c.Shape(id).States
}

// Color returns the display color of a shape.
func (c *Catalog) Color(id ShapeID) core.Color {
	return c.Shape(id).Color
}

// IDs returns the shape ids in catalog order.
func (c *Catalog) IDs() []ShapeID {
	ids := make([]ShapeID, len(c.order))
	copy(ids, c.order)
	return ids
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Per-state offsets are literal data, not derived from a rotation matrix.
func defaultShapes() []Shape {
	return []Shape{
		{
			ID:    ShapeI,
			Color: core.ColorCyan,
			States: states(
				Offsets{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
				Offsets{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
			),
		},
		{
			ID:    ShapeJ,
			Color: core.ColorOrange,
			States: states(
				Offsets{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}},
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 0}},
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 2}},
				Offsets{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0}},
			),
		},
		{
			ID:    ShapeO,
			Color: core.ColorYellow,
			States: states(
				Offsets{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
			),
		},
		{
			ID:    ShapeL,
			Color: core.ColorBlue,
			States: states(
				Offsets{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2}},
				Offsets{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
				Offsets{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 0}},
				Offsets{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
			),
		},
		{
			ID:    ShapeS,
			Color: core.ColorRed,
			States: states(
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}},
				Offsets{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 2, Y: 0}},
				Offsets{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
			),
		},
		{
			ID:    ShapeZ,
			Color: core.ColorGreen,
			States: states(
				Offsets{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}},
			),
		},
		{
			ID:    ShapeT,
			Color: core.ColorMagenta,
			States: states(
				Offsets{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
				Offsets{{X: 2, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
				Offsets{{X: 2, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
				Offsets{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
			),
		},
	}
}

func states(offsets ...Offsets) []RotationState {
	out := make([]RotationState, len(offsets))
	for i, o := range offsets {
		out[i] = RotationState{Offsets: o}
	}
	return out
}

func distinct(o Offsets) bool {
	seen := make(map[core.Point]bool, len(o))
	for _, p := range o {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

// invariant panics when an internal contract is broken. These conditions are
// unreachable through the public commands.
func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("tetris: "+format, args...))
	}
}
