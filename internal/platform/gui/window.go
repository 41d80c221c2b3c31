// Package gui runs the game in a desktop window with Ebiten.
package gui

import (
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

const (
	cellSize   = 24  // Pixels per field cell at scale 1
	margin     = 16  // Border around the board
	panelWidth = 160 // Side panel for score and help

	// Held keys repeat after repeatDelay frames, then every repeatEvery frames.
	repeatDelay = 12
	repeatEvery = 3
)

var (
	backgroundColor = color.RGBA{0x14, 0x14, 0x1c, 0xff}
	wellColor       = color.RGBA{0x22, 0x22, 0x2e, 0xff}
	borderColor     = color.RGBA{0x70, 0x70, 0x80, 0xff}
	overlayColor    = color.RGBA{0x00, 0x00, 0x00, 0xb0}
)

// palette maps core colors to RGB.
var palette = map[core.Color]color.RGBA{
	core.ColorDefault: {0xdd, 0xdd, 0xdd, 0xff},
	core.ColorRed:     {0xe0, 0x3c, 0x3c, 0xff},
	core.ColorGreen:   {0x3c, 0xc8, 0x50, 0xff},
	core.ColorYellow:  {0xf0, 0xd2, 0x32, 0xff},
	core.ColorBlue:    {0x32, 0x64, 0xdc, 0xff},
	core.ColorMagenta: {0xb4, 0x3c, 0xd2, 0xff},
	core.ColorCyan:    {0x32, 0xd2, 0xdc, 0xff},
	core.ColorWhite:   {0xff, 0xff, 0xff, 0xff},
	core.ColorOrange:  {0xf0, 0x8c, 0x28, 0xff},
	core.ColorGray:    {0x80, 0x80, 0x80, 0xff},
}

type binding struct {
	keys   []ebiten.Key
	action core.Action
	repeat bool
}

var bindings = []binding{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyH}, core.ActionLeft, true},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyL}, core.ActionRight, true},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyK}, core.ActionRotate, false},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyJ}, core.ActionSoftDrop, true},
	{[]ebiten.Key{ebiten.KeySpace}, core.ActionHardDrop, false},
	{[]ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}, core.ActionPause, false},
	{[]ebiten.Key{ebiten.KeyR}, core.ActionRestart, false},
}

// Window is the ebiten.Game that drives one tetris.Game.
type Window struct {
	game   *tetris.Game
	frame  core.InputFrame
	logger *log.Logger
	width  int
	height int
}

// NewWindow wraps game. Call Run to open the window.
func NewWindow(game *tetris.Game, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Window{
		game:   game,
		frame:  core.NewInputFrame(),
		logger: logger,
	}
}

// Run resets the game and blocks until the window is closed or q is pressed.
func Run(game *tetris.Game, cfg core.RuntimeConfig, scale float64, logger *log.Logger) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if scale <= 0 {
		scale = 1
	}

	w := NewWindow(game, logger)
	game.Reset(cfg)
	w.width, w.height = w.layoutSize()

	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowSize(int(float64(w.width)*scale), int(float64(w.height)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	w.logger.Debug("window opened", "width", w.width, "height", w.height, "tps", cfg.TickRate)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}

// Update collects this frame's key presses and advances the game one tick.
func (w *Window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	for _, b := range bindings {
		for _, k := range b.keys {
			if triggered(inpututil.KeyPressDuration(k), b.repeat) {
				w.frame.Set(b.action)
				break
			}
		}
	}

	w.game.Step(w.frame)
	w.frame.Clear()
	return nil
}

// triggered reports whether a key held for d frames fires this frame.
func triggered(d int, repeat bool) bool {
	if d == 1 {
		return true
	}
	return repeat && d > repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// Draw paints the well, settled blocks, the falling piece and the panel.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	ctrl := w.game.Controller()
	snap := ctrl.Snapshot()
	field := ctrl.Config().Field
	visible := field.Height - field.HiddenRows

	wellW := float32(field.Width * cellSize)
	wellH := float32(visible * cellSize)
	vector.DrawFilledRect(screen, margin, margin, wellW, wellH, wellColor, false)
	vector.StrokeRect(screen, margin-1, margin-1, wellW+2, wellH+2, 2, borderColor, false)

	drawCell := func(p core.Point, c core.Color) {
		row := p.Y - field.HiddenRows
		if row < 0 || row >= visible {
			return
		}
		x := float32(margin + p.X*cellSize)
		y := float32(margin + row*cellSize)
		vector.DrawFilledRect(screen, x+1, y+1, cellSize-2, cellSize-2, palette[c], false)
	}

	for _, b := range snap.Blocks {
		drawCell(b.Cell, b.Color)
	}
	if snap.State != tetris.StateGameOver {
		for _, p := range snap.PieceCells {
			drawCell(p, snap.PieceColor)
		}
	}

	panelX := margin*2 + field.Width*cellSize
	ebitenutil.DebugPrintAt(screen, panelText(snap), panelX, margin)

	switch snap.State {
	case tetris.StatePaused:
		drawOverlay(screen, wellW, wellH, "PAUSED\n\nP to resume")
	case tetris.StateGameOver:
		drawOverlay(screen, wellW, wellH, fmt.Sprintf("GAME OVER\n\nScore: %d\nR to restart", snap.Score))
	}
}

func panelText(snap tetris.Snapshot) string {
	return fmt.Sprintf(
		"TETRIS\n\nScore:  %d\nLevel:  %d\nSpeed:  %dms\nPieces: %d\n\n"+
			"arrows/hjkl  move\nspace  drop\np  pause\nq  quit",
		snap.Score, snap.Level, snap.Interval.Milliseconds(), snap.Pieces,
	)
}

func drawOverlay(screen *ebiten.Image, wellW, wellH float32, msg string) {
	vector.DrawFilledRect(screen, margin, margin, wellW, wellH, overlayColor, false)
	ebitenutil.DebugPrintAt(screen, msg, margin+cellSize, margin+int(wellH)/3)
}

// Layout keeps a fixed logical size; the window scales it.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width, w.height
}

func (w *Window) layoutSize() (int, int) {
	field := w.game.Controller().Config().Field
	width := margin*3 + field.Width*cellSize + panelWidth
	height := margin*2 + (field.Height-field.HiddenRows)*cellSize
	return width, height
}
