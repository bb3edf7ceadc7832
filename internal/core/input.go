package core

import "slices"

// Action is a semantic input, abstracted from physical keys.
type Action int

const (
	ActionNone Action = iota
	ActionMoveLeft
	ActionMoveRight
	ActionRotateCW
	ActionRotateCCW
	ActionHardDrop
	ActionSoftDrop
	ActionPause
	ActionRestart
	ActionQuit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionHardDrop:
		return "HardDrop"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions collected between two simulation steps, in
// the order they arrived. Order matters: "left, rotate" and "rotate, left"
// can end in different places.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{}
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set appends an action. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has reports whether the action occurs anywhere in the frame.
func (f InputFrame) Has(a Action) bool {
	return slices.Contains(f.actions, a)
}

// Actions returns the actions in arrival order.
func (f InputFrame) Actions() []Action {
	return slices.Clone(f.actions)
}

// Len returns the number of queued actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear empties the frame, keeping its storage.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}

// Clone returns an independent copy.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{actions: slices.Clone(f.actions)}
}
