package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// State is the externally visible game state.
type State int

const (
	StateFalling State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateFalling:
		return "falling"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// phase is the controller's position in the lock sequence. Only Falling and
// GameOver survive between commands.
type phase int

const (
	phaseFalling phase = iota
	phaseLocking
	phaseRowClearCheck
	phaseSpawnNext
	phaseGameOver
)

// Command is a discrete player input.
type Command int

const (
	CmdMoveLeft Command = iota + 1
	CmdMoveRight
	CmdRotateCW
	CmdSoftDrop
	CmdHardDrop
	CmdTogglePause
	CmdRestart
)

func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdRotateCW:
		return "rotate_cw"
	case CmdSoftDrop:
		return "soft_drop"
	case CmdHardDrop:
		return "hard_drop"
	case CmdTogglePause:
		return "toggle_pause"
	case CmdRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Result describes what a command or tick did.
type Result struct {
	Moved    bool  // The piece changed position or rotation
	Dropped  int   // Rows fallen during a hard drop
	Locked   bool  // A piece was committed to the field
	Cleared  []int // Rows removed, ascending
	GameOver bool  // The game ended during this call
}

func (r Result) merge(o Result) Result {
	r.Moved = r.Moved || o.Moved
	r.Dropped += o.Dropped
	r.Locked = r.Locked || o.Locked
	r.Cleared = append(r.Cleared, o.Cleared...)
	r.GameOver = r.GameOver || o.GameOver
	return r
}

// Options configures a Controller. Zero values fall back to defaults.
type Options struct {
	Config  config.TetrisConfig
	Catalog *Catalog    // Defaults to DefaultCatalog()
	Next    ShapeSource // Defaults to RandomSource seeded with Seed
	Seed    int64
	Logger  *log.Logger // Defaults to a discarding logger
}

// Controller runs the game: it applies commands to the active piece, locks
// it when it can fall no further, clears full rows, tracks the score and the
// fall speed, and spawns the next piece.
//
// A Controller is not safe for concurrent use; it is owned by one game loop.
type Controller struct {
	cfg        config.TetrisConfig
	catalog    *Catalog
	next       ShapeSource
	logger     *log.Logger
	difficulty *config.DifficultyManager

	field    *Field
	piece    Piece
	phase    phase
	paused   bool
	score    int
	pieces   int
	interval time.Duration
	elapsed  time.Duration
}

// NewController creates a controller and spawns the first piece.
func NewController(opts Options) *Controller {
	cfg := opts.Config
	if cfg.Field.Width == 0 {
		cfg = config.DefaultTetrisConfig()
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	next := opts.Next
	if next == nil {
		next = RandomSource(catalog, rand.New(rand.NewSource(opts.Seed)))
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	c := &Controller{
		cfg:        cfg,
		catalog:    catalog,
		next:       next,
		logger:     logger,
		difficulty: config.NewDifficultyManager(cfg),
		field:      NewField(cfg.Field.Width, cfg.Field.Height),
	}
	c.Reset()
	return c
}

// Reset clears the field and score and starts a new game.
func (c *Controller) Reset() {
	c.field.Reset()
	c.score = 0
	c.pieces = 0
	c.paused = false
	c.elapsed = 0
	c.interval = c.difficulty.Interval(0)
	invariant(c.interval > 0, "fall interval must be positive, got %v", c.interval)
	c.phase = phaseSpawnNext
	c.spawn()
	c.logger.Debug("new game", "interval", c.interval, "speed_ups", c.difficulty.IsEnabled())
}

// Apply runs one command. Movement commands are ignored while paused or
// after the game has ended.
func (c *Controller) Apply(cmd Command) Result {
	switch cmd {
	case CmdTogglePause:
		c.togglePause()
		return Result{}
	case CmdRestart:
		if c.phase == phaseGameOver {
			c.Reset()
		}
		return Result{}
	}

	if !c.active() {
		return Result{}
	}

	switch cmd {
	case CmdMoveLeft:
		return c.shift(-1)
	case CmdMoveRight:
		return c.shift(1)
	case CmdRotateCW:
		return c.rotate()
	case CmdSoftDrop:
		return c.softDrop()
	case CmdHardDrop:
		return c.hardDrop()
	}
	invariant(false, "unknown command %d", cmd)
	return Result{}
}

// Tick advances the fall timer. Each time the accumulated time reaches the
// fall interval, the piece moves down one row and the interval is subtracted,
// so leftover time carries into the next tick.
func (c *Controller) Tick(elapsed time.Duration) Result {
	if !c.active() {
		return Result{}
	}

	c.elapsed += elapsed
	var res Result
	for c.phase == phaseFalling && c.elapsed >= c.interval {
		c.elapsed -= c.interval
		res = res.merge(c.softDrop())
	}
	return res
}

func (c *Controller) active() bool {
	return c.phase == phaseFalling && !c.paused
}

func (c *Controller) togglePause() {
	if c.phase == phaseGameOver {
		return
	}
	c.paused = !c.paused
	c.logger.Debug("pause toggled", "paused", c.paused)
}

// propose commits candidate if its cells are legal and reports whether it did.
func (c *Controller) propose(candidate Piece) bool {
	if !IsLegal(candidate.Cells(), c.field.OccupancyGrid()) {
		return false
	}
	c.piece = candidate
	return true
}

func (c *Controller) shift(dx int) Result {
	candidate := c.piece
	candidate.Translate(dx, 0)
	return Result{Moved: c.propose(candidate)}
}

// rotate either fully succeeds or leaves the piece untouched; there is no
// wall-kick search.
func (c *Controller) rotate() Result {
	candidate := c.piece
	candidate.Rotate()
	return Result{Moved: c.propose(candidate)}
}

func (c *Controller) softDrop() Result {
	candidate := c.piece
	candidate.Translate(0, 1)
	if c.propose(candidate) {
		return Result{Moved: true}
	}
	return c.lock()
}

func (c *Controller) hardDrop() Result {
	grid := c.field.OccupancyGrid()
	candidate := c.piece
	rows := 0
	for {
		candidate.Translate(0, 1)
		if !IsLegal(candidate.Cells(), grid) {
			candidate.Revert()
			break
		}
		rows++
	}
	c.piece = candidate

	res := c.lock()
	res.Moved = rows > 0
	res.Dropped = rows
	return res
}

// lock runs the sequence Locking -> RowClearCheck -> SpawnNext | GameOver
// starting from the piece's current, legal resting position.
func (c *Controller) lock() Result {
	res := Result{Locked: true}
	var locked []core.Point
	aboveField := false

	c.phase = phaseLocking
	for {
		switch c.phase {
		case phaseLocking:
			for _, cell := range c.piece.Cells() {
				if cell.Y < 0 {
					aboveField = true
					continue
				}
				locked = append(locked, cell)
			}
			c.field.Lock(locked, c.piece.Color())
			c.pieces++
			c.logger.Debug("piece locked", "shape", c.piece.ShapeID(), "anchor", c.piece.Anchor())
			c.phase = phaseRowClearCheck

		case phaseRowClearCheck:
			rows := c.field.FullRows(c.field.OccupancyGrid())
			if len(rows) > 0 {
				c.field.ClearRows(rows)
				c.addScore(len(rows))
				res.Cleared = rows
			}
			if aboveField || (len(rows) == 0 && c.toppedOut(locked)) {
				c.endGame("lock out")
				continue
			}
			c.phase = phaseSpawnNext

		case phaseSpawnNext:
			c.spawn()

		case phaseFalling:
			return res

		case phaseGameOver:
			res.GameOver = true
			return res
		}
	}
}

// toppedOut reports whether any locked cell is at or above the top-out row.
func (c *Controller) toppedOut(cells []core.Point) bool {
	for _, cell := range cells {
		if cell.Y <= c.cfg.Field.TopOutRow {
			return true
		}
	}
	return false
}

// spawn places a new piece. A piece that does not fit ends the game.
func (c *Controller) spawn() {
	id := c.next()
	c.piece = NewPiece(c.catalog.Shape(id), SpawnAnchor(c.cfg.Field.Width))
	if !IsLegal(c.piece.Cells(), c.field.OccupancyGrid()) {
		c.endGame("block out")
		return
	}
	c.phase = phaseFalling
}

func (c *Controller) endGame(reason string) {
	c.phase = phaseGameOver
	c.paused = false
	c.logger.Info("game over", "reason", reason, "score", c.score, "pieces", c.pieces)
}

func (c *Controller) addScore(rows int) {
	before := c.difficulty.Level(c.score)
	c.score += rows
	c.logger.Info("rows cleared", "count", rows, "score", c.score)

	if after := c.difficulty.Level(c.score); after > before {
		c.interval = c.difficulty.Interval(c.score)
		c.logger.Info("speed up", "level", after, "interval", c.interval)
	}
}

// State returns the visible game state.
func (c *Controller) State() State {
	switch {
	case c.phase == phaseGameOver:
		return StateGameOver
	case c.paused:
		return StatePaused
	default:
		return StateFalling
	}
}

// Score returns the number of rows cleared since the game started.
func (c *Controller) Score() int {
	return c.score
}

// Level returns how many speed-ups have happened.
func (c *Controller) Level() int {
	return c.difficulty.Level(c.score)
}

// Pieces returns the number of pieces locked since the game started.
func (c *Controller) Pieces() int {
	return c.pieces
}

// Interval returns the current fall interval.
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Piece returns a copy of the active piece.
func (c *Controller) Piece() Piece {
	return c.piece
}

// Blocks returns the settled blocks ordered by row, then column.
func (c *Controller) Blocks() []Block {
	return c.field.Blocks()
}

// Config returns the configuration the controller runs with.
func (c *Controller) Config() config.TetrisConfig {
	return c.cfg
}
