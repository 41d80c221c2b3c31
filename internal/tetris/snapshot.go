package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Snapshot captures everything a front-end draws in one frame.
type Snapshot struct {
	State    State
	Score    int
	Level    int
	Pieces   int
	Interval time.Duration

	Shape      ShapeID
	Rotation   int
	Anchor     core.Point
	PieceCells []core.Point
	PieceColor core.Color

	Blocks []Block
}

// Snapshot returns the current controller state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:      c.State(),
		Score:      c.score,
		Level:      c.Level(),
		Pieces:     c.pieces,
		Interval:   c.interval,
		Shape:      c.piece.ShapeID(),
		Rotation:   c.piece.Rotation(),
		Anchor:     c.piece.Anchor(),
		PieceCells: c.piece.Cells(),
		PieceColor: c.piece.Color(),
		Blocks:     c.field.Blocks(),
	}
}
