package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-defense/internal/core"
	"github.com/vovakirdan/lane-defense/internal/platform/tui"
	"github.com/vovakirdan/lane-defense/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start a battle on the specified level, or open the level menu when
no level is given. After a battle in the menu you return to it.

Controls:
  Arrows/hjkl   - Move cursor (aim while placing)
  Tab/S-Tab     - Select operator from the roster
  Enter/Space   - Place, then confirm facing
  Mouse         - Click to place, drag to aim, release to confirm
  E             - Activate skill of the operator under the cursor
  Del           - Retreat the operator under the cursor
  Esc           - Cancel placement
  P             - Pause
  F             - Toggle 2x speed
  R             - New run (after the battle or while paused)
  B             - Back to menu
  Q/Ctrl+C      - Quit

Examples:
  lanedef play
  lanedef play 01-crossing
  lanedef play 02-fork --difficulty hard
  lanedef play 03-endless --config ./battle.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	logger := newLogger("lanedef")

	pack, err := loadPack(logger)
	if err != nil {
		exitf("%v", err)
	}
	battle, err := loadBattleConfig()
	if err != nil {
		exitf("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Speed:    flagSpeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - battles still work
		store = nil
	}

	// The terminal belongs to Bubble Tea from here on.
	logger.SetOutput(io.Discard)

	var runErr error
	if len(args) == 0 {
		runErr = tui.RunSession(pack, battle, store, cfg, logger)
	} else {
		lvl, lvlErr := pack.Level(args[0])
		if lvlErr != nil {
			if store != nil {
				store.Close()
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", lvlErr)
			fmt.Fprintln(os.Stderr, "Run 'lanedef levels' to see available levels.")
			os.Exit(1)
		}
		runErr = tui.RunBattle(tui.Setup{
			Catalog: pack.Catalog,
			Config:  battle,
			Level:   lvl,
			Store:   store,
			Logger:  logger,
			Source:  "play",
		}, cfg)
	}

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		exitf("running battle: %v", runErr)
	}
}
