package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris"
)

const defaultVariant = "tetris"

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given rule variant (default: tetris).

Controls:
  Left/H/A      - Move left
  Right/L/D     - Move right
  Up/X/W        - Rotate clockwise
  Z             - Rotate counter-clockwise
  Down/J/S      - Soft drop (one row)
  Space         - Hard drop
  P/Esc         - Pause
  R             - Restart (when paused or after game over)
  Ctrl+S        - Save a text screenshot to ~/.tetris/screenshots
  Q/Ctrl+C      - Quit

Difficulty options:
  easy   - Start at the slowest gravity, speeds up with lines cleared
  normal - Start at 30% of the speed-up
  hard   - Start at 70% of the speed-up
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play tetris_t
  tetris play --difficulty hard
  tetris play --seed 42 --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := defaultVariant
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
		os.Exit(1)
	}

	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// A broken custom config is reported here instead of silently falling
	// back to defaults inside the game.
	if flagConfig != "" {
		cfg, err := config.LoadTetris(flagConfig)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The alternate screen owns stdout, so logs only go to --log-file.
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var recorder tui.RunRecorder
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open run history: %v\n", err)
		logger.Warn("run history disabled", "error", err)
	} else {
		recorder = store
	}

	runErr := tui.Run(game, recorder, runtime, logger)

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("cannot close run history", "error", err)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
