package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// History layout constants
const (
	maxRuns       = 100 // runs loaded per variant
	historyChrome = 8   // rows taken by title, tabs, borders and help
)

// RunLister loads ranked runs. *storage.Store implements it.
type RunLister interface {
	BestRuns(variant string, limit int) ([]storage.Run, error)
}

// HistoryKeyMap defines the key bindings for the run history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Prev, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses the best runs of each registered variant.
type HistoryModel struct {
	variants []registry.GameInfo
	cursor   int
	store    RunLister
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a browser over variants. The cursor starts on
// the variant named by start, or the first one when start is empty or
// unknown.
func NewHistoryModel(store RunLister, variants []registry.GameInfo, start string, width, height int) HistoryModel {
	m := HistoryModel{
		variants: variants,
		store:    store,
		keys:     DefaultHistoryKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
	for i, v := range variants {
		if v.ID == start {
			m.cursor = i
		}
	}
	m.help.Width = width

	m.table = m.createTable()
	if len(m.variants) > 0 {
		m.loadRuns(m.variants[m.cursor].ID)
	}
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Lines", Width: 6},
		{Title: "Pieces", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "End", Width: 10},
		{Title: "Date", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-historyChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) loadRuns(variant string) {
	m.runs, m.loadErr = nil, nil
	if m.store != nil {
		m.runs, m.loadErr = m.store.BestRuns(variant, maxRuns)
	}
	m.updateTableRows()
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		end := "quit"
		if r.GameOver {
			end = "topped out"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.Level),
			end,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Selected returns the variant under the cursor, or "" when there are none.
func (m HistoryModel) Selected() string {
	if len(m.variants) == 0 {
		return ""
	}
	return m.variants[m.cursor].ID
}

// Runs returns the runs currently listed.
func (m HistoryModel) Runs() []storage.Run {
	return m.runs
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.loadRuns(m.variants[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor - 1 + len(m.variants)) % len(m.variants)
				m.loadRuns(m.variants[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render("RUN HISTORY")))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.variants))
	for i, v := range m.variants {
		if i == m.cursor {
			tabs[i] = "[" + v.Title + "]"
		} else {
			tabs[i] = " " + v.Title + " "
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(tabs, " ")))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.renderTableContent())))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().Italic(true).Padding(1, 4)
	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Cannot load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to start the history!")
	}
	return m.table.View()
}

// RunHistory opens the run history browser in the alternate screen.
func RunHistory(store RunLister, variants []registry.GameInfo, start string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, variants, start, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
