package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/gui"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

var flagScale float64

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the game in a desktop window.

Controls are the same as in the terminal: arrows or H/J/K/L to move and
rotate, Space to drop, P to pause, R to restart, Q to quit.

Examples:
  tetris window
  tetris window --scale 2 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window scale factor")
}

func runWindow(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(flagLogLevel, flagLogFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := core.RuntimeConfig{TickRate: flagFPS, Seed: seed}
	return gui.Run(tetris.New(gameCfg, logger), cfg, flagScale, logger)
}
