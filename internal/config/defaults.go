package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the default configuration.
// It mirrors defaults/tetris.yaml and is used if the embedded file cannot be parsed.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Field: TetrisField{
			Width:      10,
			Height:     22,
			HiddenRows: 2,
			TopOutRow:  2,
		},
		Speed: TetrisSpeed{
			InitialIntervalMs: 300,
			MinIntervalMs:     50,
			IntervalStepMs:    25,
			SpeedUpEvery:      5,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
