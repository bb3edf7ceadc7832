package config

import (
	"math"
	"time"
)

// DifficultyManager turns progress (lines cleared or gravity ticks) into a
// difficulty level and a gravity interval.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a manager for cfg.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled reports whether the level changes with progress.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty in [initial, 1]. It interpolates linearly
// from the initial level to 1 as progress approaches max_at.
func (d *DifficultyManager) Level(lines, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionLines, "":
		progress = float64(lines) / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// DisplayLevel is Level scaled to a whole number from 0 to 10 for the HUD
// and run history.
func (d *DifficultyManager) DisplayLevel(lines, ticks int) int {
	return int(math.Round(d.Level(lines, ticks) * 10))
}

// DropInterval returns the gravity interval for the current progress.
// Gravity runs (1 + level*speed_multiplier) times faster than base, and
// never faster than floor.
func (d *DifficultyManager) DropInterval(base, floor time.Duration, lines, ticks int) time.Duration {
	speed := 1.0 + d.Level(lines, ticks)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		speed = 1
	}
	interval := time.Duration(float64(base) / speed)
	return max(interval, floor)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
