package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagRunsBest        bool
	flagRunsStats       bool
	flagRunsLimit       int
	flagRunsInteractive bool
	flagRunsClear       bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show recorded runs",
	Long: `Display recorded runs, newest first. Without a variant every variant
is listed.

Examples:
  tetris runs
  tetris runs tetris --best
  tetris runs --stats
  tetris runs -i
  tetris runs tetris_t --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Rank by lines cleared instead of date")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-variant totals")
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "Maximum runs to show")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the recorded runs of the variant")
}

func runRuns(cmd *cobra.Command, args []string) {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'tetris list' to see available variants.")
			os.Exit(1)
		}
	}

	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Debug("run history opened", "path", flagDBPath)

	switch {
	case flagRunsClear:
		err = clearRuns(store, variant)
	case flagRunsInteractive:
		err = browseRuns(store, variant)
	case flagRunsStats:
		err = printStats(store)
	default:
		err = printRuns(store, variant)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		closeLog()
		os.Exit(1)
	}
}

func clearRuns(store *storage.Store, variant string) error {
	if variant == "" {
		return errors.New("--clear needs a variant")
	}
	if err := store.ClearRuns(variant); err != nil {
		return err
	}
	fmt.Printf("Cleared runs for %s.\n", variant)
	return nil
}

func browseRuns(store *storage.Store, variant string) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunHistory(store, registry.List(), variant, width, height)
}

func printRuns(store *storage.Store, variant string) error {
	var (
		runs []storage.Run
		err  error
	)
	title := "Recent runs"
	if flagRunsBest {
		title = "Best runs"
		runs, err = store.BestRuns(variant, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(variant, flagRunsLimit)
	}
	if err != nil {
		return err
	}

	if variant != "" {
		title += " - " + variant
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to record the first run!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-5s  %-5s  %-10s  %s\n",
		"#", "Variant", "Lines", "Pieces", "Level", "Board", "End", "Date")
	fmt.Printf("  %-4s  %-9s  %-5s  %-6s  %-5s  %-5s  %-10s  %s\n",
		"-", "-------", "-----", "------", "-----", "-----", "---", "----")
	for i, r := range runs {
		end := "quit"
		if r.GameOver {
			end = "topped out"
		}
		fmt.Printf("  %-4d  %-9s  %-5d  %-6d  %-5d  %-5s  %-10s  %s\n",
			i+1, r.Variant, r.Lines, r.Pieces, r.Level,
			fmt.Sprintf("%dx%d", r.Width, r.Height), end,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if variant != "" {
		best, err := store.BestLines(variant)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best: %d lines\n", best)
		}
	}
	return nil
}

func printStats(store *storage.Store) error {
	all, err := store.AllVariantStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-9s  %-5s  %-5s  %-8s  %-11s  %s\n", "Variant", "Runs", "Best", "Avg", "Total lines", "Last played")
	fmt.Printf("  %-9s  %-5s  %-5s  %-8s  %-11s  %s\n", "-------", "----", "----", "---", "-----------", "-----------")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-9s  %-5d  %-5d  %-8.1f  %-11d  %s\n",
			s.Variant, s.Runs, s.BestLines, s.AvgLines, s.TotalLines,
			s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
