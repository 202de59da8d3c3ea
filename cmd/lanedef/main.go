// lanedef plays lane-defense battles in the terminal and headless.
//
// Usage:
//
//	lanedef levels            - List available levels
//	lanedef play [level]      - Play a level, or pick one from the menu
//	lanedef sim <level>       - Run a level headless with its deployment plan
//	lanedef runs [level]      - Show recorded runs
//	lanedef serve             - Start SSH server for remote play
//	lanedef schema            - Print the JSON schema of battle files
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible battles
//	--db <path>          - Set database path (default: ~/.lanedef/runs.db)
//	--config <path>      - Battle tuning YAML
//	--levels <dir>       - Extra level directory merged over the built-in pack
//	--difficulty <name>  - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-defense/internal/battle/levels"
	"github.com/vovakirdan/lane-defense/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagDifficulty string
	flagLogLevel   string
	flagSpeed      float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanedef",
	Short: "Lane Defense - real-time tactical battles in your terminal",
	Long: `Lane Defense is a real-time tile-based tactics game: hostiles walk
fixed lanes toward your base while you deploy operators to stop them.

Available commands:
  levels   - Show all available levels
  play     - Play a level (menu when no level is given)
  sim      - Run a level headless using its deployment plan
  runs     - View recorded runs
  serve    - Start SSH server for remote play
  schema   - Print the JSON schema of battle files

Examples:
  lanedef levels
  lanedef play 01-crossing
  lanedef sim 02-fork --runs 200
  lanedef serve --ssh :2222
  lanedef runs 01-crossing`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanedef/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to battle tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory of extra battle files")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Float64Var(&flagSpeed, "speed", 1, "Game speed multiplier")

	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(schemaCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadPack loads the level pack and reports files that were skipped.
func loadPack(logger *log.Logger) (*levels.Pack, error) {
	pack, err := levels.Load(flagLevelsDir)
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	for _, skipped := range pack.Skipped {
		logger.Warn("skipped battle file", "error", skipped)
	}
	return pack, nil
}

// loadBattleConfig loads tuning and applies --difficulty.
func loadBattleConfig() (config.BattleConfig, error) {
	cfg, err := config.LoadBattle(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty == "" && cfg.Difficulty != "" {
		if preset, err = config.ParsePreset(string(cfg.Difficulty)); err != nil {
			return cfg, err
		}
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// exitf prints an error and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
