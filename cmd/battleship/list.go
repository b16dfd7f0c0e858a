package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all CPU difficulties",
	Long:  `Shows every registered CPU targeting engine, easiest first.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	tiers := registry.List()

	if len(tiers) == 0 {
		fmt.Println("No CPU opponents available.")
		return
	}

	fmt.Println("CPU difficulties:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, t := range tiers {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, t := range tiers {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Println()
	fmt.Println("Run 'battleship play <id>' to play against it.")
}
