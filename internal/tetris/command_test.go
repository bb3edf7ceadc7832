package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in       string
		expected Command
	}{
		{"move_left", CommandMoveLeft},
		{"Left", CommandMoveLeft},
		{"right", CommandMoveRight},
		{"rotate_cw", CommandRotateClockwise},
		{"CCW", CommandRotateCounterClockwise},
		{" hard_drop ", CommandHardDrop},
		{"drop", CommandHardDrop},
		{"tick", CommandTick},
		{"down", CommandTick},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseCommand(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := ParseCommand("hold")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommandStringParsesBack(t *testing.T) {
	for c := CommandMoveLeft; c <= CommandTick; c++ {
		got, err := ParseCommand(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestApplyReportsRejection(t *testing.T) {
	b := newTestBoard(t, 10, 19)
	spawn(t, b, KindT, 0)
	for b.Move(-1, 0) {
	}

	out := b.Apply(CommandMoveLeft)
	assert.True(t, out.Rejected)
	assert.Equal(t, OutcomeContinued, out.Kind)
	assert.Equal(t, "Rejected", out.String())

	out = b.Apply(CommandMoveRight)
	assert.False(t, out.Rejected)
	assert.Equal(t, "Continued", out.String())
}
