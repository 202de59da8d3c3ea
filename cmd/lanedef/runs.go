package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-defense/internal/storage"
)

var (
	flagRunsLimit int
	flagClear     bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [level]",
	Short: "Show recorded runs",
	Long: `Display the best runs for a level, or the most recent runs across all
levels when no level is given.

Examples:
  lanedef runs
  lanedef runs 01-crossing --limit 20
  lanedef runs 01-crossing --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs of the level")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening runs database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			store.Close()
			exitf("--clear needs a level")
		}
		runs, err := store.RecentRuns(flagRunsLimit)
		if err != nil {
			store.Close()
			exitf("retrieving runs: %v", err)
		}
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs, true)
		return
	}

	levelID := args[0]
	if flagClear {
		if err := store.ClearRuns(levelID); err != nil {
			store.Close()
			exitf("clearing runs: %v", err)
		}
		fmt.Printf("Cleared runs of %s.\n", levelID)
		return
	}

	runs, err := store.TopRuns(levelID, flagRunsLimit)
	if err != nil {
		store.Close()
		exitf("retrieving runs: %v", err)
	}

	fmt.Printf("Best runs - %s\n", levelID)
	fmt.Println()
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lanedef play %s' to record the first one!\n", levelID)
		return
	}
	printRuns(runs, false)

	if st, err := store.LevelStats(levelID); err == nil && st.Runs > 0 {
		fmt.Println()
		fmt.Printf("Runs: %d  Won: %.1f%%  Kills/run: %.1f  Leaks: %d\n",
			st.Runs, st.WinRate()*100, st.AvgKills, st.TotalLeaks)
	}
}

func printRuns(runs []storage.RunRecord, withLevel bool) {
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs recorded yet.")
		return
	}

	if withLevel {
		fmt.Printf("  %-4s  %-14s  %-8s  %-5s  %-5s  %-6s  %-5s  %s\n", "#", "Level", "Result", "Lives", "Kills", "Time", "Src", "Date")
		fmt.Printf("  %-4s  %-14s  %-8s  %-5s  %-5s  %-6s  %-5s  %s\n", "-", "-----", "------", "-----", "-----", "----", "---", "----")
	} else {
		fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-5s  %s\n", "Rank", "Result", "Lives", "Kills", "Time", "Src", "Date")
		fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %-5s  %s\n", "----", "------", "-----", "-----", "----", "---", "----")
	}

	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		elapsed := gameClock(float64(r.ElapsedMS))
		if withLevel {
			fmt.Printf("  %-4d  %-14s  %-8s  %-5d  %-5d  %-6s  %-5s  %s\n",
				i+1, r.LevelID, r.Outcome, r.Lives, r.Kills, elapsed, r.Source, dateStr)
		} else {
			fmt.Printf("  %-4d  %-8s  %-5d  %-5d  %-6s  %-5s  %s\n",
				i+1, r.Outcome, r.Lives, r.Kills, elapsed, r.Source, dateStr)
		}
	}
}
