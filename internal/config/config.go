// Package config loads the YAML game configuration and turns difficulty
// settings into a gravity interval.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// TetrisConfig is the full configuration for a game.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Rules      RulesConfig      `yaml:"rules"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig sets how fast gravity pulls the piece down.
type TimingConfig struct {
	DropIntervalMS    int `yaml:"drop_interval_ms"`
	MinDropIntervalMS int `yaml:"min_drop_interval_ms"`
}

// DropInterval returns the base gravity interval.
func (t TimingConfig) DropInterval() time.Duration {
	return time.Duration(t.DropIntervalMS) * time.Millisecond
}

// MinDropInterval returns the fastest gravity interval progression may reach.
func (t TimingConfig) MinDropInterval() time.Duration {
	return time.Duration(t.MinDropIntervalMS) * time.Millisecond
}

// RulesConfig toggles rule details.
type RulesConfig struct {
	LockOnHardDrop bool `yaml:"lock_on_hard_drop"`
	HardDrop       bool `yaml:"hard_drop"` // false ignores the hard drop key
}

// DifficultyConfig defines how gravity speeds up.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = slowest, 1.0 = fastest
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time" or "none"
	MaxAt int    `yaml:"max_at"` // lines or gravity ticks at which the level peaks
}

// ScalingConfig defines how much faster gravity gets at full difficulty.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// Validate checks values the game cannot run with.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 5 || c.Board.Height < 4:
		return fmt.Errorf("%w: board %dx%d is smaller than 5x4", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	case c.Timing.DropIntervalMS <= 0:
		return fmt.Errorf("%w: drop_interval_ms must be positive, got %d", ErrInvalidConfig, c.Timing.DropIntervalMS)
	case c.Timing.MinDropIntervalMS <= 0:
		return fmt.Errorf("%w: min_drop_interval_ms must be positive, got %d", ErrInvalidConfig, c.Timing.MinDropIntervalMS)
	case c.Timing.MinDropIntervalMS > c.Timing.DropIntervalMS:
		return fmt.Errorf("%w: min_drop_interval_ms %d exceeds drop_interval_ms %d",
			ErrInvalidConfig, c.Timing.MinDropIntervalMS, c.Timing.DropIntervalMS)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("%w: initial_level %.2f outside [0, 1]", ErrInvalidConfig, c.Difficulty.InitialLevel)
	}

	switch c.Difficulty.Progression.Type {
	case "", ProgressionLines, ProgressionTime, ProgressionNone:
	default:
		return fmt.Errorf("%w: unknown progression type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// Progression types.
const (
	ProgressionLines = "lines"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// DifficultyPreset is a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means "keep the
// loaded config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
}

// InitialLevelForPreset returns the starting level for a preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
