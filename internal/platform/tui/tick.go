// Package tui runs a registered game in the terminal with Bubble Tea. It
// maps keys to actions, paces simulation steps and records finished runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one TickMsg after a frame
// interval at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
