package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/script"
)

var flagOutcomes bool

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>...",
	Short: "Run command scripts headlessly",
	Long: `Run one or more YAML command scripts against a board without a
terminal UI, print the final grid and check the script's expectations.

The exit status is 1 when any script fails to load or misses an expectation.
--seed overrides the seed stored in each script.

Examples:
  tetris replay internal/script/testdata/single_clear.yaml
  tetris replay --outcomes scripts/*.yaml
  tetris replay --seed 7 my_script.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagOutcomes, "outcomes", false, "Print the outcome of every command")
}

func runReplay(cmd *cobra.Command, args []string) {
	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	failed := 0
	for _, path := range args {
		s, err := script.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed++
			continue
		}
		if cmd.Flags().Changed("seed") {
			s.Seed = flagSeed
		}

		res, err := script.Run(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", path, err)
			failed++
			continue
		}
		logger.Debug("script finished", "path", path, "commands", len(res.Outcomes))

		printResult(path, res)
		if !res.Passed() {
			failed++
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d scripts failed\n", failed, len(args))
		closeLog()
		os.Exit(1)
	}
}

func printResult(path string, res *script.Result) {
	name := res.Name
	if name == "" {
		name = path
	}

	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	fmt.Printf("%s  %s\n", status, name)
	fmt.Println()
	fmt.Print(res.Render())
	fmt.Println()

	stats := res.Final.Stats
	fmt.Printf("  state: %s  lines: %d  pieces: %d  commands: %d\n",
		res.Final.State, stats.Lines, stats.Pieces, len(res.Outcomes))

	if flagOutcomes {
		names := make([]string, len(res.Outcomes))
		for i, o := range res.Outcomes {
			names[i] = o.String()
		}
		fmt.Printf("  outcomes: %s\n", strings.Join(names, ", "))
	}

	for _, f := range res.Failures {
		fmt.Printf("  - %s\n", f)
	}
	fmt.Println()
}
