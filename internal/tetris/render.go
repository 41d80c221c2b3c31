package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

const (
	cellWidth = 2  // Terminal columns per field column
	hudWidth  = 24 // Width of the side panel
	hudGap    = 2
)

// Render draws the visible part of the field, the active piece, the side
// panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	snap := g.ctrl.Snapshot()
	cfg := g.ctrl.Config().Field
	visible := cfg.Height - cfg.HiddenRows

	boardW := cfg.Width*cellWidth + 2
	boardH := visible + 2
	totalW := boardW + hudGap + hudWidth

	if dst.Width() < boardW || dst.Height() < boardH {
		renderTooSmall(dst)
		return
	}

	// Drop the side panel before the board when space is short.
	showHUD := dst.Width() >= totalW
	if !showHUD {
		totalW = boardW
	}
	board := core.NewRect((dst.Width()-totalW)/2, (dst.Height()-boardH)/2, boardW, boardH)

	dst.DrawBox(board, core.ColorGray)
	renderField(dst, board, snap, cfg.Width, cfg.HiddenRows, visible)

	if showHUD {
		renderHUD(dst, board.Right()+hudGap, board.Y, snap)
	}

	switch snap.State {
	case StateGameOver:
		renderOverlay(dst, board, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), "R to restart")
	case StatePaused:
		renderOverlay(dst, board, "PAUSED", "P to resume")
	}
}

func renderField(dst *core.Screen, board core.Rect, snap Snapshot, width, hidden, visible int) {
	originX := board.X + 1
	originY := board.Y + 1

	for y := range visible {
		for x := range width {
			dst.SetColored(originX+x*cellWidth, originY+y, ' ', core.ColorDefault)
			dst.SetColored(originX+x*cellWidth+1, originY+y, '.', core.ColorGray)
		}
	}

	shown := core.NewRect(0, hidden, width, visible)
	plot := func(p core.Point, c core.Color) {
		if !shown.Contains(p.X, p.Y) {
			return
		}
		dst.DrawTextColored(originX+p.X*cellWidth, originY+p.Y-hidden, "██", c)
	}

	for _, b := range snap.Blocks {
		plot(b.Cell, b.Color)
	}
	if snap.State != StateGameOver {
		for _, p := range snap.PieceCells {
			plot(p, snap.PieceColor)
		}
	}
}

func renderHUD(dst *core.Screen, x, y int, snap Snapshot) {
	dst.DrawTextColored(x, y, "TETRIS", core.ColorCyan)
	dst.DrawText(x, y+2, fmt.Sprintf("Score:  %d", snap.Score))
	dst.DrawText(x, y+3, fmt.Sprintf("Level:  %d", snap.Level))
	dst.DrawText(x, y+4, fmt.Sprintf("Speed:  %dms", snap.Interval.Milliseconds()))
	dst.DrawText(x, y+5, fmt.Sprintf("Pieces: %d", snap.Pieces))
}

func renderOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2

	cx, cy := board.Center()
	box := core.NewRect(
		core.Clamp(cx-w/2, 0, max(dst.Width()-w, 0)),
		core.Clamp(cy-h/2, 0, max(dst.Height()-h, 0)),
		w, h,
	)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	for i, l := range lines {
		lx := box.X + (w-len([]rune(l)))/2
		dst.DrawTextColored(lx, box.Y+1+i, l, core.ColorWhite)
	}
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// DrawShape draws one rotation state of shape with its top-left offset at
// (x, y), using the same two-column cells as the field.
func DrawShape(dst *core.Screen, shape *Shape, state, x, y int) {
	for _, o := range shape.States[state].Offsets {
		dst.DrawTextColored(x+o.X*cellWidth, y+o.Y, "██", shape.Color)
	}
}
