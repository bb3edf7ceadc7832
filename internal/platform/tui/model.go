package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// helpRows is the number of screen rows reserved below the game for the
// key help line.
const helpRows = 1

// RunRecorder persists finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// boardSizer is implemented by games that can report their grid size for
// run history.
type boardSizer interface {
	BoardSize() (w, h int)
}

// Model is the Bubble Tea model for playing one game variant.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      RunRecorder
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	runSaved   bool // whether the current run has been recorded
}

// NewModel creates a model for game. A nil store disables run history and a
// nil logger discards log output.
func NewModel(game registry.Game, store RunRecorder, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	cfg.ScreenH = max(0, cfg.ScreenH-helpRows)
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game started", "variant", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the mapped action for the next step. Quit and screenshot
// take effect immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.gameState = m.game.State()
		if m.gameState.Pieces > 0 {
			m.recordRun()
		}
		m.quitting = true
		return m, tea.Quit
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize follows the new terminal size. Games that cannot resize in
// place are restarted, as long as they are still running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(0, msg.Height-helpRows)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	m.gameState = m.game.State()

	return m, nil
}

// handleTick runs one simulation step with the queued input.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Cleared > 0 {
		m.logger.Debug("lines cleared", "count", result.Cleared, "total", m.gameState.Lines)
	}

	if m.gameState.GameOver {
		m.recordRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// restart records an abandoned run, if it got anywhere, and starts a new
// game on a fresh time-based seed.
func (m *Model) restart() {
	if m.gameState.Pieces > 0 {
		m.recordRun()
	}
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.inputFrame.Clear()
	m.logger.Info("game restarted", "variant", m.game.ID(), "seed", m.config.Seed)
}

// recordRun saves the current run once. Storage errors are logged and play
// continues.
func (m *Model) recordRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	st := m.gameState
	run := storage.Run{
		Variant:  m.game.ID(),
		Seed:     m.config.Seed,
		Lines:    st.Lines,
		Pieces:   st.Pieces,
		Level:    st.Level,
		Ticks:    st.Ticks,
		GameOver: st.GameOver,
	}
	if bs, ok := m.game.(boardSizer); ok {
		run.Width, run.Height = bs.BoardSize()
	}

	m.logger.Info("run finished",
		"variant", run.Variant,
		"lines", run.Lines,
		"pieces", run.Pieces,
		"game_over", run.GameOver,
	)

	if m.store == nil {
		return
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("cannot save run", "error", err)
	}
}

// screenshotDir returns ~/.tetris/screenshots.
func screenshotDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tetris", "screenshots"), nil
}

// saveScreenshot writes the current text frame to the screenshot directory
// and returns the file path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir, err := screenshotDir()
	if err != nil {
		return "", fmt.Errorf("tui: cannot resolve screenshot dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the game frame followed by the key help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderView(m.screen, m.help.View(m.keys))
}

// State returns the progress summary as of the last step.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for game and blocks until the player
// quits.
func Run(game registry.Game, store RunRecorder, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
