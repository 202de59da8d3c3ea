package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long:  `Shows the built-in levels and any found in --levels.`,
	Run:   runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	pack, err := loadPack(newLogger("lanedef"))
	if err != nil {
		exitf("%v", err)
	}

	if len(pack.Levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, lvl := range pack.Levels {
		if len(lvl.ID) > maxIDLen {
			maxIDLen = len(lvl.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %s\n", maxIDLen, "ID", "Size", "Waves", "Lives", "Name")
	fmt.Printf("  %-*s  %-7s  %-6s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "-----", "----")

	for _, lvl := range pack.Levels {
		size := "-"
		if len(lvl.Map) > 0 {
			size = fmt.Sprintf("%dx%d", len(lvl.Map[0]), len(lvl.Map))
		}
		waves := fmt.Sprint(len(lvl.Waves))
		if len(lvl.Waves) == 0 {
			waves = "auto"
		}
		fmt.Printf("  %-*s  %-7s  %-6s  %-5d  %s\n", maxIDLen, lvl.ID, size, waves, lvl.Lives, lvl.Name)
	}

	fmt.Println()
	fmt.Println("Run 'lanedef play <id>' to play a level.")
}
