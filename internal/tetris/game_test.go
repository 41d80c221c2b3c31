package tetris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := New(config.DefaultTetrisConfig(), nil)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 1})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestGameIdentity(t *testing.T) {
	g := New(config.DefaultTetrisConfig(), nil)
	assert.Equal(t, "tetris", g.ID())
	assert.Equal(t, "Tetris", g.Title())

	var _ core.Game = g
}

func TestGameStepAppliesActions(t *testing.T) {
	g := newTestGame(t)

	res := g.Step(frame(core.ActionHardDrop))

	assert.Equal(t, 1, g.Controller().Pieces())
	assert.False(t, res.State.GameOver)
	assert.Equal(t, uint64(1), g.frames)
}

func TestGameStepPause(t *testing.T) {
	g := newTestGame(t)

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)

	anchor := g.Controller().Piece().Anchor()
	for range 120 {
		g.Step(frame())
	}
	assert.Equal(t, anchor, g.Controller().Piece().Anchor())
}

func TestGameStepAdvancesFallTimer(t *testing.T) {
	g := newTestGame(t)
	start := g.Controller().Piece().Anchor().Y

	// A tick at 60 per second is just under 1/60s, so 300ms takes 19 frames.
	for range 18 {
		g.Step(frame())
	}
	require.Equal(t, start, g.Controller().Piece().Anchor().Y)

	g.Step(frame())
	assert.Equal(t, start+1, g.Controller().Piece().Anchor().Y)
}

func TestGameStepUsesFrameElapsed(t *testing.T) {
	g := newTestGame(t)
	start := g.Controller().Piece().Anchor().Y

	late := frame()
	late.Elapsed = 300 * time.Millisecond
	g.Step(late)
	assert.Equal(t, start+1, g.Controller().Piece().Anchor().Y)

	// A stalled frame advances at most maxFrameTime, less than one interval.
	stalled := frame()
	stalled.Elapsed = 10 * time.Second
	g.Step(stalled)
	assert.Equal(t, start+1, g.Controller().Piece().Anchor().Y)
	g.Step(stalled)
	assert.Equal(t, start+2, g.Controller().Piece().Anchor().Y)
}

func TestGameResetDefaultsTickRate(t *testing.T) {
	g := New(config.DefaultTetrisConfig(), nil)
	g.Reset(core.RuntimeConfig{})
	assert.Equal(t, StateFalling, g.Controller().State())
	assert.Equal(t, uint64(0), g.frames)
}

func TestRenderBoardAndHUD(t *testing.T) {
	g := newTestGame(t)
	dst := core.NewScreen(80, 30)

	g.Render(dst)
	out := dst.String()

	assert.Contains(t, out, "TETRIS")
	assert.Contains(t, out, "Score:  0")
	assert.Contains(t, out, "Speed:  300ms")
	assert.Contains(t, out, "┌")
	assert.NotContains(t, out, "PAUSED")
}

func TestRenderSkipsHiddenRows(t *testing.T) {
	g := newTestGame(t)
	g.Controller().field.Lock([]core.Point{{X: 0, Y: 1}, {X: 0, Y: 21}}, core.ColorRed)
	dst := core.NewScreen(80, 30)

	g.Render(dst)

	// 80x30 centers the board (22x22) and side panel at x=16, y=4. Field
	// row 2 is the first one drawn, at y=5.
	assert.Equal(t, '─', dst.Get(17, 4), "hidden row 1 is covered by the border")
	assert.Equal(t, '█', dst.Get(17, 24))
	assert.Equal(t, core.ColorRed, dst.GetCell(18, 24).Color)
	assert.Equal(t, '└', dst.Get(16, 25))
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t)
	dst := core.NewScreen(80, 30)

	g.Step(frame(core.ActionPause))
	g.Render(dst)
	assert.Contains(t, dst.String(), "PAUSED")

	g.Step(frame(core.ActionPause))
	for g.Controller().State() != StateGameOver {
		g.Step(frame(core.ActionHardDrop))
	}
	g.Render(dst)
	assert.Contains(t, dst.String(), "GAME OVER")
	assert.Contains(t, dst.String(), "R to restart")
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	dst := core.NewScreen(30, 10)

	g.Render(dst)

	assert.Contains(t, dst.String(), "Window too small")
}

func TestRenderNarrowScreenHidesHUD(t *testing.T) {
	g := newTestGame(t)
	dst := core.NewScreen(30, 24)

	g.Render(dst)

	assert.Contains(t, dst.String(), "┌")
	assert.NotContains(t, dst.String(), "TETRIS")
}

func TestDrawShape(t *testing.T) {
	dst := core.NewScreen(4, 2)

	DrawShape(dst, DefaultCatalog().Shape(ShapeO), 0, 0, 0)

	assert.Equal(t, "████\n████", dst.String())
	assert.Equal(t, core.ColorYellow, dst.GetCell(0, 0).Color)
}
