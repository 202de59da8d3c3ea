package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-defense/internal/battle/runner"
	"github.com/vovakirdan/lane-defense/internal/storage"
)

var (
	flagRuns    int
	flagWorkers int
	flagStep    float64
	flagLimit   time.Duration
	flagNoSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a level headless",
	Long: `Play a level without a viewer. The level's deployment plan issues the
commands and game time advances in fixed steps, so a seed always gives the
same result.

Runs are spread over worker goroutines and recorded in the runs database
unless --no-save is given.

Examples:
  lanedef sim 01-crossing
  lanedef sim 02-fork --runs 500 --workers 8
  lanedef sim 03-endless --seed 42 --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs (seeds are consecutive from --seed)")
	simCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Concurrent runs (0 = number of CPUs)")
	simCmd.Flags().Float64Var(&flagStep, "step", 50, "Tick length in game milliseconds")
	simCmd.Flags().DurationVar(&flagLimit, "limit", 30*time.Minute, "Game-time cap per run")
	simCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record runs")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := newLogger("lanedef-sim")

	pack, err := loadPack(logger)
	if err != nil {
		exitf("%v", err)
	}
	lvl, err := pack.Level(args[0])
	if err != nil {
		exitf("%v", err)
	}
	battle, err := loadBattleConfig()
	if err != nil {
		exitf("%v", err)
	}
	if flagRuns <= 0 {
		exitf("--runs must be positive")
	}

	base := flagSeed
	if base == 0 {
		base = time.Now().UnixNano()
	}
	seeds := make([]int64, flagRuns)
	for i := range seeds {
		seeds[i] = base + int64(i)
	}

	opts := runner.Options{
		Step:  flagStep,
		Limit: float64(flagLimit.Milliseconds()),
	}
	// Per-event logging only makes sense for a single run.
	if flagRuns == 1 {
		opts.Logger = logger
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	logger.Info("simulating", "level", lvl.ID, "runs", flagRuns, "difficulty", battle.Difficulty)
	start := time.Now()
	outcomes, err := runner.Batch(ctx, pack.Catalog, battle, lvl, seeds, flagWorkers, opts)
	if err != nil {
		exitf("simulation: %v", err)
	}
	logger.Info("done", "took", time.Since(start).Round(time.Millisecond))

	printOutcomes(outcomes)

	if flagNoSave {
		return
	}
	if err := saveOutcomes(outcomes); err != nil {
		logger.Warn("could not record runs", "error", err)
	}
}

func printOutcomes(outcomes []runner.Outcome) {
	if len(outcomes) <= 20 {
		fmt.Printf("  %-20s  %-8s  %-5s  %-5s  %-5s  %s\n", "Seed", "Result", "Kills", "Leaks", "Lives", "Time")
		fmt.Printf("  %-20s  %-8s  %-5s  %-5s  %-5s  %s\n", "----", "------", "-----", "-----", "-----", "----")
		for _, o := range outcomes {
			rec := o.Record("sim")
			fmt.Printf("  %-20d  %-8s  %-5d  %-5d  %-5d  %s\n",
				o.Seed, rec.Outcome, o.Stats.Kills, o.Stats.Leaks, o.Stats.Lives, gameClock(o.Elapsed))
		}
		fmt.Println()
	}

	s := runner.Summarize(outcomes)
	fmt.Printf("Runs: %d  Won: %d (%.1f%%)  Lost: %d  Timed out: %d\n",
		s.Runs, s.Wins, s.WinRate()*100, s.Losses, s.TimedOut)
	if s.Runs > 0 {
		fmt.Printf("Kills/run: %.1f  Leaks/run: %.1f\n",
			float64(s.Kills)/float64(s.Runs), float64(s.Leaks)/float64(s.Runs))
	}
}

func saveOutcomes(outcomes []runner.Outcome) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records := make([]storage.RunRecord, len(outcomes))
	for i, o := range outcomes {
		records[i] = o.Record("sim")
	}
	return store.SaveRuns(records)
}

// gameClock formats game milliseconds as m:ss.
func gameClock(ms float64) string {
	s := int(ms / 1000)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
