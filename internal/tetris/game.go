package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant is a named rule set the registry exposes.
type Variant struct {
	ID      string
	Title   string
	Library func() Library
}

// Variants lists every registered rule set.
var Variants = []Variant{
	{ID: "tetris", Title: "Tetris", Library: ClassicLibrary},
	{ID: "tetris_t", Title: "Tetris (T only)", Library: TOnlyLibrary},
}

// configPath and difficultyPreset are set from the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the loaded config.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// Game drives a Board from platform input frames. One Step is one frame;
// gravity fires every few frames depending on the drop interval.
type Game struct {
	variant    Variant
	runtime    core.RuntimeConfig
	cfg        config.TetrisConfig
	difficulty *config.DifficultyManager
	board      *Board

	frame    int // frames since the last gravity tick
	ticks    int // gravity and soft-drop ticks applied
	paused   bool
	tooSmall bool
}

// New creates a game for v. It must be Reset before use.
func New(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the variant ID.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the variant display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Reset loads the configuration and starts a fresh board seeded from runtime.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadTetris(configPath)
	if err != nil || cfg.Validate() != nil {
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyTetrisPreset(&cfg, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	opts := Options{
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		Library:        g.variant.Library(),
		Seed:           runtime.Seed,
		LockOnHardDrop: cfg.Rules.LockOnHardDrop,
	}
	board, err := NewBoard(opts)
	if err != nil {
		opts.Width, opts.Height = DefaultWidth, DefaultHeight
		board, _ = NewBoard(opts)
	}
	g.board = board

	g.frame = 0
	g.ticks = 0
	g.paused = false
	g.tooSmall = !g.fits(runtime.ScreenW, runtime.ScreenH)
}

// Resize records a new terminal size. Play pauses while the board does not fit.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW, g.runtime.ScreenH = w, h
	g.tooSmall = !g.fits(w, h)
}

// Board exposes the underlying board for read-only inspection.
func (g *Game) Board() *Board {
	return g.board
}

// BoardSize returns the grid dimensions in cells.
func (g *Game) BoardSize() (w, h int) {
	return g.board.Width(), g.board.Height()
}

// Config returns the configuration in effect since the last Reset.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Step applies queued actions in order, then advances gravity by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var res core.StepResult
	if g.board.GameOver() || g.tooSmall {
		res.State = g.State()
		return res
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		res.State = g.State()
		return res
	}

	for _, a := range in.Actions() {
		cmd, ok := g.commandFor(a)
		if !ok {
			continue
		}
		if g.apply(cmd, &res) {
			res.State = g.State()
			return res
		}
	}

	g.frame++
	if g.frame >= g.framesPerDrop() {
		g.frame = 0
		g.apply(CommandTick, &res)
	}

	res.State = g.State()
	return res
}

// apply runs one command and folds its outcome into res. It reports
// whether the game ended.
func (g *Game) apply(cmd Command, res *core.StepResult) bool {
	if cmd == CommandTick {
		g.ticks++
		g.frame = 0
	}
	out := g.board.Apply(cmd)
	switch out.Kind {
	case OutcomeLocked:
		res.Locked++
		res.Cleared += out.Lines
	case OutcomeGameOver:
		return true
	}
	return false
}

func (g *Game) commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionMoveLeft:
		return CommandMoveLeft, true
	case core.ActionMoveRight:
		return CommandMoveRight, true
	case core.ActionRotateCW:
		return CommandRotateClockwise, true
	case core.ActionRotateCCW:
		return CommandRotateCounterClockwise, true
	case core.ActionHardDrop:
		return CommandHardDrop, g.cfg.Rules.HardDrop
	case core.ActionSoftDrop:
		return CommandTick, true
	}
	return 0, false
}

// DropInterval returns the current gravity interval.
func (g *Game) DropInterval() time.Duration {
	stats := g.board.Stats()
	return g.difficulty.DropInterval(
		g.cfg.Timing.DropInterval(),
		g.cfg.Timing.MinDropInterval(),
		stats.Lines,
		g.ticks,
	)
}

// framesPerDrop converts the drop interval to a whole number of frames at
// the runtime tick rate, rounding to nearest and never below one.
func (g *Game) framesPerDrop() int {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	interval := g.DropInterval() * time.Duration(rate)
	return max(1, int((interval+time.Second/2)/time.Second))
}

// level is the difficulty level gravity is currently running at.
func (g *Game) level() int {
	return g.difficulty.DisplayLevel(g.board.Stats().Lines, g.ticks)
}

// State returns the progress summary.
func (g *Game) State() core.GameState {
	stats := g.board.Stats()
	return core.GameState{
		Lines:    stats.Lines,
		Pieces:   stats.Pieces,
		Level:    g.level(),
		Ticks:    g.ticks,
		GameOver: g.board.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}
