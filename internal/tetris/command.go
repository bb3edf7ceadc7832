package tetris

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned by ParseCommand for unrecognised names.
var ErrUnknownCommand = errors.New("tetris: unknown command")

// Command is one discrete input to the board. Player commands and the
// gravity tick all go through Board.Apply.
type Command uint8

const (
	CommandMoveLeft Command = iota
	CommandMoveRight
	CommandRotateClockwise
	CommandRotateCounterClockwise
	CommandHardDrop
	CommandTick
)

// String returns the canonical snake_case name used in scripts.
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "move_left"
	case CommandMoveRight:
		return "move_right"
	case CommandRotateClockwise:
		return "rotate_cw"
	case CommandRotateCounterClockwise:
		return "rotate_ccw"
	case CommandHardDrop:
		return "hard_drop"
	case CommandTick:
		return "tick"
	default:
		return "unknown"
	}
}

// ParseCommand accepts canonical names plus a few short aliases
// ("left", "right", "cw", "ccw", "drop", "down"), case-insensitively.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move_left", "moveleft", "left":
		return CommandMoveLeft, nil
	case "move_right", "moveright", "right":
		return CommandMoveRight, nil
	case "rotate_cw", "rotateclockwise", "rotate_clockwise", "cw":
		return CommandRotateClockwise, nil
	case "rotate_ccw", "rotatecounterclockwise", "rotate_counter_clockwise", "ccw":
		return CommandRotateCounterClockwise, nil
	case "hard_drop", "harddrop", "drop":
		return CommandHardDrop, nil
	case "tick", "soft_drop", "down":
		return CommandTick, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// Apply runs one command to completion and reports the outcome.
func (b *Board) Apply(cmd Command) Outcome {
	if b.state == StateGameOver {
		return gameOver
	}

	var ok bool
	switch cmd {
	case CommandMoveLeft:
		ok = b.Move(-1, 0)
	case CommandMoveRight:
		ok = b.Move(1, 0)
	case CommandRotateClockwise:
		ok = b.Rotate(true)
	case CommandRotateCounterClockwise:
		ok = b.Rotate(false)
	case CommandHardDrop:
		return b.HardDrop()
	case CommandTick:
		return b.SoftDropTick()
	default:
		return continued
	}

	if !ok {
		return Outcome{Kind: OutcomeContinued, Rejected: true}
	}
	return continued
}
