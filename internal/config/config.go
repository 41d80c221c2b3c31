// Package config provides YAML-based game configuration loading and
// difficulty management for the game.
package config

import (
	"fmt"
	"time"
)

// TetrisConfig contains all configuration for the game.
type TetrisConfig struct {
	Field      TetrisField      `yaml:"field"`
	Speed      TetrisSpeed      `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TetrisField defines the playing field geometry.
type TetrisField struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	HiddenRows int `yaml:"hidden_rows"` // Spawn rows that renderers skip
	TopOutRow  int `yaml:"top_out_row"` // Locking at or above this row loses
}

// TetrisSpeed defines the fall timing and its progression.
type TetrisSpeed struct {
	InitialIntervalMs int `yaml:"initial_interval_ms"`
	MinIntervalMs     int `yaml:"min_interval_ms"`
	IntervalStepMs    int `yaml:"interval_step_ms"`
	SpeedUpEvery      int `yaml:"speed_up_every"` // Score threshold between speed-ups
}

// DifficultyConfig toggles speed progression.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
}

// InitialInterval returns the fall interval at score 0.
func (s TetrisSpeed) InitialInterval() time.Duration {
	return time.Duration(s.InitialIntervalMs) * time.Millisecond
}

// MinInterval returns the shortest fall interval.
func (s TetrisSpeed) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMs) * time.Millisecond
}

// IntervalStep returns how much each speed-up shortens the interval.
func (s TetrisSpeed) IntervalStep() time.Duration {
	return time.Duration(s.IntervalStepMs) * time.Millisecond
}

// Validate checks that the configuration describes a playable field.
func (c TetrisConfig) Validate() error {
	f := c.Field
	if f.Width < 4 || f.Height < 4 {
		return fmt.Errorf("config: field must be at least 4x4, got %dx%d", f.Width, f.Height)
	}
	if f.HiddenRows < 0 || f.HiddenRows >= f.Height {
		return fmt.Errorf("config: hidden_rows %d out of range [0, %d)", f.HiddenRows, f.Height)
	}
	if f.TopOutRow >= f.Height {
		return fmt.Errorf("config: top_out_row %d must be above the floor (height %d)", f.TopOutRow, f.Height)
	}

	s := c.Speed
	if s.InitialIntervalMs <= 0 || s.MinIntervalMs <= 0 {
		return fmt.Errorf("config: fall intervals must be positive")
	}
	if s.MinIntervalMs > s.InitialIntervalMs {
		return fmt.Errorf("config: min_interval_ms %d exceeds initial_interval_ms %d", s.MinIntervalMs, s.InitialIntervalMs)
	}
	if s.IntervalStepMs < 0 {
		return fmt.Errorf("config: interval_step_ms must not be negative")
	}
	if s.SpeedUpEvery <= 0 {
		return fmt.Errorf("config: speed_up_every must be positive")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialIntervalForPreset returns the starting fall interval in milliseconds.
func InitialIntervalForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 400
	case DifficultyHard:
		return 200
	default:
		return 300
	}
}
