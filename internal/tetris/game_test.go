package tetris

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

// newTestGame isolates the game from any config files on the machine.
func newTestGame(t *testing.T, id string, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g, err := registry.Create(id)
	require.NoError(t, err)
	g.Reset(testRuntime(seed))
	return g.(*Game)
}

func frame(actions ...core.Action) core.InputFrame {
	return core.NewInputFrame(actions...)
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		assert.True(t, registry.Exists(v.ID), v.ID)
	}

	g := newTestGame(t, "tetris_t", 1)
	assert.Equal(t, "Tetris (T only)", g.Title())
	assert.Equal(t, "t-only", g.Board().Library().Name())
	assert.Equal(t, KindT, g.Board().Piece().Kind)
}

func TestGravityFollowsDropInterval(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	require.Equal(t, 48, g.framesPerDrop(), "800ms at 60 frames per second")

	for range 47 {
		g.Step(frame())
	}
	assert.Equal(t, SpawnY, g.Board().Piece().Y)
	assert.Equal(t, 0, g.State().Ticks)

	g.Step(frame())
	assert.Equal(t, SpawnY+1, g.Board().Piece().Y)
	assert.Equal(t, 1, g.State().Ticks)
}

func TestLevelFollowsDifficulty(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	assert.Equal(t, 0, g.State().Level)
	g.board.stats.Lines = 90
	assert.Equal(t, 9, g.State().Level)

	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })
	g.Reset(testRuntime(5))
	assert.Equal(t, 7, g.State().Level)
	assert.Equal(t, 7, g.Snapshot().Level)

	SetDifficultyPreset("fixed")
	g.Reset(testRuntime(5))
	before := g.State().Level
	g.board.stats.Lines = 90
	assert.Equal(t, before, g.State().Level, "fixed difficulty keeps its level")
}

func TestActionsApplyInOrder(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	x := g.Board().Piece().X

	g.Step(frame(core.ActionMoveLeft, core.ActionMoveLeft, core.ActionMoveRight))
	assert.Equal(t, x-1, g.Board().Piece().X)
}

func TestSoftDropCountsAsTick(t *testing.T) {
	g := newTestGame(t, "tetris", 5)

	g.Step(frame(core.ActionSoftDrop))
	assert.Equal(t, SpawnY+1, g.Board().Piece().Y)
	assert.Equal(t, 1, g.State().Ticks)
}

func TestHardDropAction(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	landing := g.Board().ShadowPiece().Y

	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, landing, g.Board().Piece().Y)

	res := g.Step(frame(core.ActionSoftDrop))
	assert.Equal(t, 1, res.Locked)
	assert.Equal(t, 1, res.State.Pieces)
}

func TestHardDropCanBeDisabled(t *testing.T) {
	g := newTestGame(t, "tetris", 5)

	path := filepath.Join(t.TempDir(), "tetris.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  hard_drop: false\n"), 0o644))
	SetConfigPath(path)
	t.Cleanup(func() { SetConfigPath("") })
	g.Reset(testRuntime(5))
	require.False(t, g.Config().Rules.HardDrop)

	g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, SpawnY, g.Board().Piece().Y)
}

func TestPauseToggle(t *testing.T) {
	g := newTestGame(t, "tetris", 5)

	res := g.Step(frame(core.ActionPause))
	assert.True(t, res.State.Paused)
	assert.Equal(t, GameStatePaused, g.Snapshot().State)

	g.Step(frame(core.ActionSoftDrop, core.ActionMoveLeft))
	assert.Equal(t, SpawnY, g.Board().Piece().Y, "paused games ignore input")

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestTooSmallPausesUntilResized(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 24, TickRate: 60, Seed: 5})

	assert.Equal(t, GameStatePausedSmall, g.Snapshot().State)
	g.Step(frame(core.ActionSoftDrop))
	assert.Equal(t, SpawnY, g.Board().Piece().Y)

	g.Resize(80, 24)
	assert.Equal(t, GameStatePlaying, g.Snapshot().State)
	g.Step(frame(core.ActionSoftDrop))
	assert.Equal(t, SpawnY+1, g.Board().Piece().Y)
}

func TestGameOverStopsStepping(t *testing.T) {
	g := newTestGame(t, "tetris_t", 5)
	require.NoError(t, g.Board().SetCell(5, 0, CellI))

	var res core.StepResult
	for range 4 {
		res = g.Step(frame(core.ActionSoftDrop))
	}
	require.True(t, res.State.GameOver)
	assert.Equal(t, GameStateOver, g.Snapshot().State)

	frozen := g.Snapshot()
	g.Step(frame(core.ActionMoveLeft, core.ActionHardDrop))
	assert.Equal(t, frozen, g.Snapshot())
}

func TestGameIsDeterministic(t *testing.T) {
	script := []core.Action{
		core.ActionMoveLeft, core.ActionNone, core.ActionRotateCW, core.ActionNone,
		core.ActionMoveRight, core.ActionHardDrop, core.ActionRotateCCW, core.ActionNone,
	}
	run := func() GameSnapshot {
		g := newTestGame(t, "tetris", 1234)
		for i := range 600 {
			g.Step(frame(script[i%len(script)]))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
	assert.Positive(t, a.Board.Stats.Pieces)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, "tetris", 5)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "Lines  0")
	assert.Contains(t, out, "┌"+strings.Repeat("─", 20)+"┐")
	assert.Contains(t, out, "░░", "shadow is drawn")

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")

	small := core.NewScreen(20, 10)
	g.Render(small)
	assert.Contains(t, small.String(), "TOO SMALL")
}
