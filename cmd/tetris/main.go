// tetris is a terminal Tetris built on a small, deterministic simulation core.
//
// Usage:
//
//	tetris list                  - List rule variants
//	tetris play [variant]        - Play a variant (default: tetris)
//	tetris replay <script.yaml>  - Run a command script headlessly and check it
//	tetris runs [variant]        - Show recorded runs
//
// Global flags:
//
//	--fps <rate>        - Set step rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set run history database (default: ~/.tetris/runs.db)
//	--config <path>     - Use a custom tetris.yaml
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the core to register its variants
	_ "github.com/vovakirdan/tui-tetris/internal/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A terminal Tetris with a deterministic simulation core.

Available commands:
  list     - Show the rule variants
  play     - Play a variant
  replay   - Run a YAML command script without a terminal UI
  runs     - View recorded runs

Examples:
  tetris play
  tetris play tetris_t --difficulty hard
  tetris replay ./scripts/single_clear.yaml
  tetris runs --best`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Step rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetris/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
}
