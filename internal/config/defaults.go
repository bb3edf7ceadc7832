package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration. It matches
// defaults/tetris.yaml and is used when even the embedded file is unusable.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 19,
		},
		Timing: TimingConfig{
			DropIntervalMS:    800,
			MinDropIntervalMS: 100,
		},
		Rules: RulesConfig{
			LockOnHardDrop: false,
			HardDrop:       true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLines,
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}
