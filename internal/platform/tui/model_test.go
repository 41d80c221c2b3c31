package tui

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// stubGame records what the model feeds it.
type stubGame struct {
	resets []core.RuntimeConfig
	frames []core.InputFrame
	state  core.GameState
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(cfg core.RuntimeConfig) {
	g.resets = append(g.resets, cfg)
	g.state = core.GameState{}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, core.InputFrame{Actions: slices.Clone(in.Actions), Elapsed: in.Elapsed})
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func newStubModel(t *testing.T, opts ...Option) (Model, *stubGame) {
	t.Helper()
	game := &stubGame{}
	m := NewModel(game, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}, opts...)
	m.Init()
	return m, game
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(&stubGame{}, core.RuntimeConfig{})

	def := core.DefaultConfig()
	assert.Equal(t, def.TickRate, m.config.TickRate)
	assert.NotZero(t, m.config.Seed)
	assert.Equal(t, def.ScreenW, m.screen.Width())
	assert.Equal(t, def.ScreenH-helpHeight, m.screen.Height())
}

func TestModelKeysReachNextTick(t *testing.T) {
	m, game := newStubModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runeKey('k'))
	m, cmd := update(t, m, TickMsg{})
	assert.NotNil(t, cmd, "tick loop continues")

	require.Len(t, game.frames, 1)
	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionRotate}, game.frames[0].Actions)

	_, _ = update(t, m, TickMsg{})
	require.Len(t, game.frames, 2)
	assert.True(t, game.frames[1].Empty())
}

func TestModelTickMeasuresElapsed(t *testing.T) {
	m, game := newStubModel(t)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, TickMsg(start.Add(45*time.Millisecond)))
	_, _ = update(t, m, TickMsg(start.Add(45*time.Millisecond)))

	require.Len(t, game.frames, 3)
	assert.Zero(t, game.frames[0].Elapsed, "first tick has no previous tick")
	assert.Equal(t, 45*time.Millisecond, game.frames[1].Elapsed)
	assert.Zero(t, game.frames[2].Elapsed)
}

func TestModelQuit(t *testing.T) {
	m, game := newStubModel(t)

	m, cmd := update(t, m, runeKey('q'))

	assert.NotNil(t, cmd)
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
	assert.Empty(t, game.frames)
}

func TestModelRestartAfterGameOver(t *testing.T) {
	m, game := newStubModel(t)
	game.state = core.GameState{GameOver: true, Score: 3}
	m, _ = update(t, m, TickMsg{})
	require.True(t, m.GameState().GameOver)

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})

	assert.Len(t, game.resets, 2)
	assert.False(t, m.GameState().GameOver)
	assert.Len(t, game.frames, 1, "restart tick does not step")
}

func TestModelResizeKeepsGame(t *testing.T) {
	m, game := newStubModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Len(t, game.resets, 1)
	assert.Equal(t, 100, m.screen.Width())
	assert.Equal(t, 40-helpHeight, m.screen.Height())
}

func TestModelViewIncludesHelp(t *testing.T) {
	m, _ := newStubModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 12})

	view := m.View()

	assert.Contains(t, view, "stub")
	assert.Contains(t, view, "rotate")
	assert.Contains(t, view, "quit")
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m, _ := newStubModel(t, WithScreenshotDir(dir))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "stub_")

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "stub")
	assert.Contains(t, m.View(), "saved ")
}

func TestRenderScreenWithoutColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawTextColored(2, 0, "cd", core.ColorBlue)
	s.DrawText(0, 1, "xyz")

	assert.Equal(t, s.String(), RenderScreen(s, NewStyles(r)))
}

func TestRenderScreenWithColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	s := core.NewScreen(2, 1)
	s.DrawTextColored(0, 0, "██", core.ColorOrange)

	out := RenderScreen(s, NewStyles(r))
	assert.Contains(t, out, "██")
	assert.Contains(t, out, "208")
}

func TestNewStylesCoversEveryColor(t *testing.T) {
	styles := NewStyles(nil)
	for c := core.ColorDefault; c <= core.ColorGray; c++ {
		_, ok := styles[c]
		assert.True(t, ok, "color %s", c)
	}
}
