package tetris

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// maxFrameTime bounds how much time a single Step can advance the fall timer.
const maxFrameTime = 250 * time.Millisecond

// Game adapts the Controller to the platform's core.Game contract:
// actions collected during a frame become commands, and each Step advances
// the fall timer by the frame's elapsed time.
type Game struct {
	cfg    config.TetrisConfig
	logger *log.Logger
	ctrl   *Controller
	tick   time.Duration
	frames uint64
}

// New creates a game with the given configuration. Call Reset before use.
func New(cfg config.TetrisConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		logger: logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// Reset starts a new game seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.tick = time.Second / time.Duration(rate)
	g.frames = 0
	g.ctrl = NewController(Options{
		Config: g.cfg,
		Seed:   cfg.Seed,
		Logger: g.logger,
	})
}

// Step applies the frame's actions in order, then advances the timer by
// in.Elapsed, or by one nominal tick when the frame carries no duration.
// A late frame advances the timer by at most maxFrameTime.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.frames++
	if !in.Empty() {
		g.logger.Debug("input", "frame", g.frames, "actions", in.Actions)
	}
	for _, a := range in.Actions {
		if cmd, ok := commandFor(a); ok {
			g.ctrl.Apply(cmd)
		}
	}

	elapsed := g.tick
	if in.Elapsed > 0 {
		elapsed = min(in.Elapsed, maxFrameTime)
	}
	g.ctrl.Tick(elapsed)
	return core.StepResult{State: g.State()}
}

// State returns the platform-level game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.ctrl.Score(),
		GameOver: g.ctrl.State() == StateGameOver,
		Paused:   g.ctrl.State() == StatePaused,
	}
}

// Controller exposes the running controller to front-ends that draw from
// snapshots instead of a screen buffer.
func (g *Game) Controller() *Controller {
	return g.ctrl
}

func commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft, true
	case core.ActionRight:
		return CmdMoveRight, true
	case core.ActionRotate:
		return CmdRotateCW, true
	case core.ActionSoftDrop:
		return CmdSoftDrop, true
	case core.ActionHardDrop:
		return CmdHardDrop, true
	case core.ActionPause:
		return CmdTogglePause, true
	case core.ActionRestart:
		return CmdRestart, true
	default:
		return 0, false
	}
}
