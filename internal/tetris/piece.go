package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type moveKind uint8

const (
	moveNone moveKind = iota
	moveTranslate
	moveRotate
)

// lastMove remembers the most recent mutation so it can be undone exactly.
type lastMove struct {
	kind   moveKind
	dx, dy int
}

// Piece is the player-controlled tetromino. It is a small value: copying it
// yields an independent candidate that can be moved and then either assigned
// back or dropped.
//
// Piece never checks bounds; legality is decided by IsLegal.
type Piece struct {
	shape    *Shape
	rotation int
	anchor   core.Point
	last     lastMove
}

// NewPiece places shape at anchor in its first rotation state.
func NewPiece(shape *Shape, anchor core.Point) Piece {
	invariant(shape != nil, "piece without a shape")
	return Piece{shape: shape, anchor: anchor}
}

// SpawnAnchor is where new pieces appear: horizontal center, top row.
func SpawnAnchor(fieldWidth int) core.Point {
	return core.Pt(fieldWidth/2-1, 0)
}

// ShapeID returns the piece's shape identifier.
func (p Piece) ShapeID() ShapeID {
	return p.shape.ID
}

// Color returns the piece's display color.
func (p Piece) Color() core.Color {
	return p.shape.Color
}

// Rotation returns the index of the current rotation state.
func (p Piece) Rotation() int {
	return p.rotation
}

// Anchor returns the reference position the offsets are relative to.
func (p Piece) Anchor() core.Point {
	return p.anchor
}

// Cells returns the four absolute cell positions.
func (p Piece) Cells() []core.Point {
	invariant(p.rotation >= 0 && p.rotation < len(p.shape.States),
		"rotation %d out of range for shape %s", p.rotation, p.shape.ID)

	offsets := p.shape.States[p.rotation].Offsets
	cells := make([]core.Point, len(offsets))
	for i, o := range offsets {
		cells[i] = p.anchor.Add(o)
	}
	return cells
}

// Translate moves the anchor by (dx, dy).
func (p *Piece) Translate(dx, dy int) {
	p.anchor = p.anchor.Add(core.Pt(dx, dy))
	p.last = lastMove{kind: moveTranslate, dx: dx, dy: dy}
}

// Rotate advances to the next rotation state, wrapping around.
func (p *Piece) Rotate() {
	p.rotation = (p.rotation + 1) % len(p.shape.States)
	p.last = lastMove{kind: moveRotate}
}

// Revert undoes the last Translate or Rotate. A second Revert is a no-op.
func (p *Piece) Revert() {
	switch p.last.kind {
	case moveTranslate:
		p.anchor = p.anchor.Add(core.Pt(-p.last.dx, -p.last.dy))
	case moveRotate:
		n := len(p.shape.States)
		p.rotation = (p.rotation - 1 + n) % n
	}
	p.last = lastMove{}
}

// ShapeSource picks the shape of the next piece.
type ShapeSource func() ShapeID

// RandomSource draws shapes uniformly from the catalog.
func RandomSource(c *Catalog, rng *rand.Rand) ShapeSource {
	ids := c.IDs()
	invariant(len(ids) > 0, "empty catalog")
	return func() ShapeID {
		return ids[rng.Intn(len(ids))]
	}
}
