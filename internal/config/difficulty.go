package config

import "time"

// DifficultyManager derives the fall interval from the score.
type DifficultyManager struct {
	speed   TetrisSpeed
	enabled bool
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg TetrisConfig) *DifficultyManager {
	return &DifficultyManager{
		speed:   cfg.Speed,
		enabled: cfg.Difficulty.Enabled,
	}
}

// IsEnabled returns whether speed progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// Level returns how many score thresholds have been passed.
// A jump from 4 to 6 with a threshold of 5 counts as passing one threshold;
// a jump from 4 to 11 counts as two.
func (d *DifficultyManager) Level(score int) int {
	if !d.enabled || d.speed.SpeedUpEvery <= 0 || score <= 0 {
		return 0
	}
	return score / d.speed.SpeedUpEvery
}

// Interval returns the fall interval for the given score.
func (d *DifficultyManager) Interval(score int) time.Duration {
	interval := d.speed.InitialInterval() - time.Duration(d.Level(score))*d.speed.IntervalStep()
	return max(interval, d.speed.MinInterval())
}
