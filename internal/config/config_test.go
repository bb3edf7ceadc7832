package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parseTetris(defaultTetrisYAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "board:\n  width: 12\n  height: 22\nrules:\n  lock_on_hard_drop: true\n")

	cfg, err := LoadTetris(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Board.Width)
	assert.Equal(t, 22, cfg.Board.Height)
	assert.True(t, cfg.Rules.LockOnHardDrop)
	// Fields the file leaves out keep their defaults.
	assert.Equal(t, 800, cfg.Timing.DropIntervalMS)
	assert.True(t, cfg.Rules.HardDrop)
}

func TestLoadTetrisCustomPathErrors(t *testing.T) {
	_, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "board: [not, a, map\n")
	_, err = LoadTetris(bad)
	assert.Error(t, err)
}

func TestLoadTetrisSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTetrisConfig(), cfg, "no files should give the embedded default")

	writeFile(t, filepath.Join(work, "configs", "tetris.yaml"), "board:\n  width: 8\n")
	cfg, err = LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Board.Width, "local configs dir should be used")

	writeFile(t, filepath.Join(home, ".tetris", "configs", "tetris.yaml"), "board:\n  width: 6\n")
	cfg, err = LoadTetris("")
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Board.Width, "user config should win over local")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TetrisConfig)
		ok     bool
	}{
		{"defaults", func(*TetrisConfig) {}, true},
		{"narrow board", func(c *TetrisConfig) { c.Board.Width = 4 }, false},
		{"narrowest board", func(c *TetrisConfig) { c.Board.Width = 5 }, true},
		{"short board", func(c *TetrisConfig) { c.Board.Height = 3 }, false},
		{"zero interval", func(c *TetrisConfig) { c.Timing.DropIntervalMS = 0 }, false},
		{"zero floor", func(c *TetrisConfig) { c.Timing.MinDropIntervalMS = 0 }, false},
		{"floor above base", func(c *TetrisConfig) { c.Timing.MinDropIntervalMS = 900 }, false},
		{"initial level too high", func(c *TetrisConfig) { c.Difficulty.InitialLevel = 1.5 }, false},
		{"unknown progression", func(c *TetrisConfig) { c.Difficulty.Progression.Type = "score" }, false},
		{"time progression", func(c *TetrisConfig) { c.Difficulty.Progression.Type = ProgressionTime }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	_, err := ParsePreset("brutal")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	p, err := ParsePreset("hard")
	require.NoError(t, err)

	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, p)
	assert.True(t, cfg.Difficulty.Enabled)
	assert.InDelta(t, 0.7, cfg.Difficulty.InitialLevel, 1e-9)

	ApplyTetrisPreset(&cfg, DifficultyFixed)
	assert.False(t, cfg.Difficulty.Enabled)

	before := cfg
	ApplyTetrisPreset(&cfg, "")
	assert.Equal(t, before, cfg)
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DefaultTetrisConfig().Difficulty)

	assert.InDelta(t, 0.0, d.Level(0, 0), 1e-9)
	assert.InDelta(t, 0.5, d.Level(50, 0), 1e-9)
	assert.InDelta(t, 1.0, d.Level(500, 0), 1e-9, "level caps at 1")

	fixed := DefaultTetrisConfig().Difficulty
	fixed.Enabled = false
	fixed.InitialLevel = 0.3
	assert.InDelta(t, 0.3, NewDifficultyManager(fixed).Level(90, 9000), 1e-9)

	timed := DefaultTetrisConfig().Difficulty
	timed.Progression = ProgressionConfig{Type: ProgressionTime, MaxAt: 10}
	assert.InDelta(t, 0.5, NewDifficultyManager(timed).Level(0, 5), 1e-9)
}

func TestDisplayLevel(t *testing.T) {
	d := NewDifficultyManager(DefaultTetrisConfig().Difficulty)
	assert.Equal(t, 0, d.DisplayLevel(0, 0))
	assert.Equal(t, 5, d.DisplayLevel(50, 0))
	assert.Equal(t, 10, d.DisplayLevel(500, 0))

	cfg := DefaultTetrisConfig()
	ApplyTetrisPreset(&cfg, DifficultyFixed)
	fixed := NewDifficultyManager(cfg.Difficulty)
	assert.Equal(t, fixed.DisplayLevel(0, 0), fixed.DisplayLevel(90, 9000), "fixed difficulty never levels up")
}

func TestDropInterval(t *testing.T) {
	cfg := DefaultTetrisConfig()
	d := NewDifficultyManager(cfg.Difficulty)
	base, floor := cfg.Timing.DropInterval(), cfg.Timing.MinDropInterval()

	assert.Equal(t, 800*time.Millisecond, d.DropInterval(base, floor, 0, 0))
	assert.Equal(t, 160*time.Millisecond, d.DropInterval(base, floor, 100, 0))

	fast := cfg.Difficulty
	fast.Scaling.SpeedMultiplier = 100
	assert.Equal(t, floor, NewDifficultyManager(fast).DropInterval(base, floor, 100, 0), "interval never drops below the floor")
}
