package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMenu       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Left/H, Right/L  - Move
  Up/K             - Rotate
  Down/J           - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow (400ms per row), speeds up as you clear rows
  normal - Start at 300ms per row, speeds up as you clear rows
  hard   - Start fast (200ms per row), speeds up as you clear rows
  fixed  - No speed-ups, stays at the config's initial speed

Examples:
  tetris play
  tetris play --difficulty easy
  tetris play --menu
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, windowCmd, serveCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the difficulty from a menu before playing")
}

// loadGameConfig loads the config file and applies the difficulty preset.
func loadGameConfig(path, preset string) (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(path)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	p, err := config.ParsePreset(preset)
	if err != nil {
		return config.TetrisConfig{}, err
	}
	config.ApplyTetrisPreset(&cfg, p)
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if flagMenu {
		base, loadErr := config.LoadTetris(flagConfig)
		if loadErr != nil {
			return loadErr
		}
		preset, ok, menuErr := tui.RunDifficultySelector(base, cfg)
		if menuErr != nil {
			return fmt.Errorf("difficulty menu: %w", menuErr)
		}
		if !ok {
			return nil
		}
		config.ApplyTetrisPreset(&base, preset)
		gameCfg = base
		logger.Debug("difficulty chosen", "preset", preset)
	}

	game := tetris.New(gameCfg, logger)
	if err := tui.Run(game, cfg, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
