package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

type fakeLister struct {
	runs  map[string][]storage.Run
	err   error
	calls []string
}

func (f *fakeLister) BestRuns(variant string, limit int) ([]storage.Run, error) {
	f.calls = append(f.calls, variant)
	if f.err != nil {
		return nil, f.err
	}
	return f.runs[variant], nil
}

var testVariants = []registry.GameInfo{
	{ID: "tetris", Title: "Tetris"},
	{ID: "tetris_t", Title: "Tetris (T only)"},
}

func TestHistoryStartsOnRequestedVariant(t *testing.T) {
	lister := &fakeLister{runs: map[string][]storage.Run{
		"tetris_t": {{Variant: "tetris_t", Lines: 4, CreatedAt: time.Now()}},
	}}

	m := NewHistoryModel(lister, testVariants, "tetris_t", 80, 24)
	assert.Equal(t, "tetris_t", m.Selected())
	assert.Len(t, m.Runs(), 1)

	m = NewHistoryModel(lister, testVariants, "nope", 80, 24)
	assert.Equal(t, "tetris", m.Selected())
	assert.Empty(t, m.Runs())
}

func TestHistoryCyclesVariants(t *testing.T) {
	lister := &fakeLister{}
	m := NewHistoryModel(lister, testVariants, "", 80, 24)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	assert.Equal(t, "tetris_t", m.Selected())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	assert.Equal(t, "tetris", m.Selected())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	assert.Equal(t, "tetris_t", m.Selected())

	assert.Equal(t, []string{"tetris", "tetris_t", "tetris", "tetris_t"}, lister.calls)
}

func TestHistoryView(t *testing.T) {
	lister := &fakeLister{runs: map[string][]storage.Run{
		"tetris": {{Variant: "tetris", Lines: 12, Pieces: 40, GameOver: true, CreatedAt: time.Now()}},
	}}
	m := NewHistoryModel(lister, testVariants, "", 80, 24)

	view := m.View()
	assert.Contains(t, view, "RUN HISTORY")
	assert.Contains(t, view, "[Tetris]")
	assert.Contains(t, view, "topped out")

	m = NewHistoryModel(&fakeLister{err: errors.New("locked")}, testVariants, "", 80, 24)
	assert.Contains(t, m.View(), "Cannot load runs")
}

func TestHistoryQuit(t *testing.T) {
	m := NewHistoryModel(nil, testVariants, "", 80, 24)

	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())
}
