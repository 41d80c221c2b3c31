package tetris

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// testConfig is a 10x20 field with no hidden rows.
func testConfig() config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Field.Height = 20
	cfg.Field.HiddenRows = 0
	return cfg
}

// sequence returns a source that cycles through ids.
func sequence(ids ...ShapeID) ShapeSource {
	i := 0
	return func() ShapeID {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func newTestController(t *testing.T, cfg config.TetrisConfig, ids ...ShapeID) *Controller {
	t.Helper()
	return NewController(Options{Config: cfg, Next: sequence(ids...)})
}

func TestControllerSpawnsCentered(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	assert.Equal(t, StateFalling, c.State())
	assert.Equal(t, core.Pt(4, 0), c.Piece().Anchor())
	assert.Equal(t, []core.Point{{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 4, Y: 1}, {X: 5, Y: 1}}, c.Piece().Cells())
	assert.Equal(t, 300*time.Millisecond, c.Interval())
}

func TestSoftDropLocksAtFloor(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	for i := range 18 {
		res := c.Apply(CmdSoftDrop)
		require.True(t, res.Moved, "drop %d", i+1)
		require.False(t, res.Locked, "drop %d", i+1)
	}
	assert.Equal(t, []core.Point{{X: 4, Y: 18}, {X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}}, c.Piece().Cells())

	res := c.Apply(CmdSoftDrop)
	assert.True(t, res.Locked)
	assert.False(t, res.Moved)
	assert.False(t, res.GameOver)
	assert.Equal(t, StateFalling, c.State())
	assert.Equal(t, []core.Point{{X: 4, Y: 18}, {X: 5, Y: 18}, {X: 4, Y: 19}, {X: 5, Y: 19}}, cellsOf(c.Blocks()))
	assert.Equal(t, 1, c.Pieces())
	assert.Equal(t, core.Pt(4, 0), c.Piece().Anchor(), "next piece spawned")
}

func TestSingleRowClearScores(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeI)
	fillRow(c.field, 19, 4)

	res := c.Apply(CmdHardDrop)

	assert.Equal(t, []int{19}, res.Cleared)
	assert.Equal(t, 16, res.Dropped)
	assert.Equal(t, 1, c.Score())
	assert.Equal(t, []core.Point{{X: 4, Y: 17}, {X: 4, Y: 18}, {X: 4, Y: 19}}, cellsOf(c.Blocks()))
	assert.Equal(t, StateFalling, c.State())
}

func TestMultipleRowClear(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeI)
	for y := 16; y < 20; y++ {
		fillRow(c.field, y, 4)
	}

	res := c.Apply(CmdHardDrop)

	assert.Equal(t, []int{16, 17, 18, 19}, res.Cleared)
	assert.Equal(t, 4, c.Score())
	assert.Empty(t, c.Blocks())
}

func TestNonContiguousRowClearAtFloor(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeI)
	fillRow(c.field, 17, 4)
	fillRow(c.field, 18, 0, 4)
	fillRow(c.field, 19, 4)

	var res Result
	require.NotPanics(t, func() { res = c.Apply(CmdHardDrop) })

	assert.Equal(t, []int{17, 19}, res.Cleared)
	assert.Equal(t, 2, c.Score())
	assert.Equal(t, StateFalling, c.State())
	// Row 16 shifts onto row 18; row 18 is pushed past the floor.
	assert.Equal(t, []core.Point{{X: 4, Y: 18}}, cellsOf(c.Blocks()))
	for _, b := range c.Blocks() {
		assert.True(t, b.Cell.Y >= 0 && b.Cell.Y < c.Config().Field.Height, "block %v in bounds", b.Cell)
	}
}

func TestSpawnOntoOccupiedCellEndsGame(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)
	c.field.Lock([]core.Point{{X: 4, Y: 0}}, core.ColorGray)

	c.spawn()

	assert.Equal(t, StateGameOver, c.State())
	assert.False(t, c.Apply(CmdMoveLeft).Moved)
	assert.Equal(t, Result{}, c.Tick(time.Hour))
}

func TestBlockOutAfterStackReachesTop(t *testing.T) {
	cfg := testConfig()
	cfg.Field.TopOutRow = -1
	c := newTestController(t, cfg, ShapeO)

	// Ten O pieces fill columns 4-5 from the floor to row 0.
	for i := range 9 {
		res := c.Apply(CmdHardDrop)
		require.False(t, res.GameOver, "piece %d", i+1)
	}
	res := c.Apply(CmdHardDrop)

	assert.Equal(t, 0, res.Dropped)
	assert.True(t, res.Locked)
	assert.True(t, res.GameOver)
	assert.Equal(t, StateGameOver, c.State())
	assert.Equal(t, 10, c.Pieces())
}

func TestLockOutAtTopOutRow(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	// With top_out_row 2, the ninth O locks at rows 2-3.
	for i := range 8 {
		require.False(t, c.Apply(CmdHardDrop).GameOver, "piece %d", i+1)
	}
	res := c.Apply(CmdHardDrop)

	assert.True(t, res.GameOver)
	assert.Equal(t, StateGameOver, c.State())
}

func TestRowClearPreventsLockOut(t *testing.T) {
	cfg := testConfig()
	cfg.Field.TopOutRow = 19
	c := newTestController(t, cfg, ShapeI)
	fillRow(c.field, 19, 4)

	res := c.Apply(CmdHardDrop)

	assert.False(t, res.GameOver)
	assert.Equal(t, StateFalling, c.State())
}

func TestShiftStopsAtWalls(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	moved := 0
	for range 10 {
		if c.Apply(CmdMoveLeft).Moved {
			moved++
		}
	}
	assert.Equal(t, 4, moved)
	assert.Equal(t, core.Pt(0, 0), c.Piece().Anchor())

	moved = 0
	for range 12 {
		if c.Apply(CmdMoveRight).Moved {
			moved++
		}
	}
	assert.Equal(t, 8, moved)
	assert.Equal(t, core.Pt(8, 0), c.Piece().Anchor())
}

func TestShiftBlockedBySettledBlock(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)
	c.field.Lock([]core.Point{{X: 3, Y: 1}}, core.ColorGray)

	assert.False(t, c.Apply(CmdMoveLeft).Moved)
	assert.Equal(t, core.Pt(4, 0), c.Piece().Anchor())
}

func TestRejectedRotationLeavesPieceUntouched(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeI)
	for range 5 {
		require.True(t, c.Apply(CmdMoveRight).Moved)
	}
	before := c.Piece()

	res := c.Apply(CmdRotateCW)

	assert.False(t, res.Moved)
	assert.Equal(t, before.Rotation(), c.Piece().Rotation())
	assert.Equal(t, before.Cells(), c.Piece().Cells())
}

func TestRotate(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeI)

	res := c.Apply(CmdRotateCW)

	assert.True(t, res.Moved)
	assert.Equal(t, 1, c.Piece().Rotation())
	assert.Equal(t, []core.Point{{X: 4, Y: 0}, {X: 5, Y: 0}, {X: 6, Y: 0}, {X: 7, Y: 0}}, c.Piece().Cells())
}

func TestTickCarriesLeftoverTime(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	assert.False(t, c.Tick(299*time.Millisecond).Moved)
	assert.Equal(t, 0, c.Piece().Anchor().Y)

	assert.True(t, c.Tick(time.Millisecond).Moved)
	assert.Equal(t, 1, c.Piece().Anchor().Y)

	c.Tick(650 * time.Millisecond)
	assert.Equal(t, 3, c.Piece().Anchor().Y)

	c.Tick(250 * time.Millisecond)
	assert.Equal(t, 4, c.Piece().Anchor().Y)
}

func TestTickLocksAtFloor(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	res := c.Tick(19 * 300 * time.Millisecond)

	assert.True(t, res.Locked)
	assert.Equal(t, 1, c.Pieces())
	assert.Len(t, c.Blocks(), 4)
}

func TestPauseFreezesGame(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)

	c.Apply(CmdTogglePause)
	require.Equal(t, StatePaused, c.State())

	assert.Equal(t, Result{}, c.Tick(10*time.Second))
	assert.False(t, c.Apply(CmdMoveLeft).Moved)
	assert.False(t, c.Apply(CmdHardDrop).Locked)
	assert.Equal(t, core.Pt(4, 0), c.Piece().Anchor())

	c.Apply(CmdTogglePause)
	assert.Equal(t, StateFalling, c.State())
	assert.True(t, c.Apply(CmdMoveLeft).Moved)
}

func TestRestart(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)
	c.Apply(CmdHardDrop)

	c.Apply(CmdRestart)
	assert.Equal(t, 1, c.Pieces(), "restart is ignored while playing")

	c.field.Lock([]core.Point{{X: 4, Y: 0}}, core.ColorGray)
	c.spawn()
	require.Equal(t, StateGameOver, c.State())

	c.Apply(CmdTogglePause)
	assert.Equal(t, StateGameOver, c.State(), "pause is ignored after game over")

	c.Apply(CmdRestart)
	assert.Equal(t, StateFalling, c.State())
	assert.Equal(t, 0, c.Score())
	assert.Equal(t, 0, c.Pieces())
	assert.Empty(t, c.Blocks())
}

func TestSpeedUpOnThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.Speed.SpeedUpEvery = 1
	c := newTestController(t, cfg, ShapeI)
	fillRow(c.field, 19, 4)

	c.Apply(CmdHardDrop)

	assert.Equal(t, 1, c.Level())
	assert.Equal(t, 275*time.Millisecond, c.Interval())
}

func TestSpeedUpCountsThresholdCrossings(t *testing.T) {
	tests := []struct {
		name  string
		score int
		add   int
		want  time.Duration
	}{
		{"below threshold", 0, 4, 300 * time.Millisecond},
		{"reaches threshold", 4, 1, 275 * time.Millisecond},
		{"jumps past one", 4, 2, 275 * time.Millisecond},
		{"jumps past two", 4, 7, 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, testConfig(), ShapeO)
			c.score = tt.score
			c.addScore(tt.add)
			assert.Equal(t, tt.want, c.Interval())
		})
	}
}

func TestSpeedUpClampsToMinimum(t *testing.T) {
	cfg := testConfig()
	cfg.Speed.InitialIntervalMs = 60
	cfg.Speed.SpeedUpEvery = 1
	c := newTestController(t, cfg, ShapeO)

	c.addScore(3)

	assert.Equal(t, 50*time.Millisecond, c.Interval())
}

func TestSpeedUpDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Difficulty.Enabled = false
	c := newTestController(t, cfg, ShapeO)

	c.addScore(50)

	assert.Equal(t, 0, c.Level())
	assert.Equal(t, 300*time.Millisecond, c.Interval())
}

func TestSnapshot(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeT)
	c.field.Lock([]core.Point{{X: 0, Y: 19}}, core.ColorRed)

	want := Snapshot{
		State:      StateFalling,
		Interval:   300 * time.Millisecond,
		Shape:      ShapeT,
		Anchor:     core.Pt(4, 0),
		PieceCells: []core.Point{{X: 4, Y: 1}, {X: 5, Y: 0}, {X: 5, Y: 1}, {X: 6, Y: 1}},
		PieceColor: core.ColorMagenta,
		Blocks:     []Block{{Cell: core.Pt(0, 19), Color: core.ColorRed}},
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultOptions(t *testing.T) {
	c := NewController(Options{Seed: 7})

	assert.Equal(t, config.DefaultTetrisConfig(), c.Config())
	assert.Equal(t, StateFalling, c.State())

	other := NewController(Options{Seed: 7})
	assert.Equal(t, c.Piece().ShapeID(), other.Piece().ShapeID())
}

func TestUnknownCommandPanics(t *testing.T) {
	c := newTestController(t, testConfig(), ShapeO)
	assert.Panics(t, func() { c.Apply(Command(99)) })
}
