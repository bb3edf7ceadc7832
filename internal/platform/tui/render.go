package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

var helpStyle = lipgloss.NewStyle().Faint(true)

// RenderView stacks the screen buffer above the help line. The help line is
// centered under the frame and dropped when there is no room for it.
func RenderView(s *core.Screen, helpLine string) string {
	frame := s.String()
	if helpLine == "" || s.Width() == 0 {
		return frame
	}

	line := lipgloss.PlaceHorizontal(s.Width(), lipgloss.Center, helpStyle.Render(helpLine))
	if lipgloss.Width(line) > s.Width() {
		return frame
	}
	return lipgloss.JoinVertical(lipgloss.Left, frame, line)
}
