package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var flagRecent int

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores and match stats",
	Long: `Display the top 10 scores and match statistics for a CPU difficulty.
Without an argument a summary of every difficulty is shown.

Examples:
  battleship scores
  battleship scores hard
  battleship scores easy --recent 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list this many recent matches")
}

func runScores(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		printAllStats(store)
		return
	}

	difficulty := args[0]
	if !registry.Exists(difficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", difficulty)
		fmt.Fprintln(os.Stderr, "Run 'battleship list' to see available difficulties.")
		store.Close()
		os.Exit(1)
	}

	scores, err := store.TopScores(difficulty, 10)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s CPU\n", registry.Title(difficulty))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'battleship play %s' to set the first high score!\n", difficulty)
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	if st, err := store.DifficultyStats(difficulty); err == nil && st.Games > 0 {
		fmt.Println()
		fmt.Printf("Matches: %d  Won: %d  Lost: %d  Win rate: %.0f%%  Accuracy: %.0f%%\n",
			st.Games, st.Wins, st.Losses, st.WinRate()*100, st.Accuracy*100)
		if st.AvgShots > 0 {
			fmt.Printf("Average shots per win: %.1f\n", st.AvgShots)
		}
	}

	if flagRecent > 0 {
		printRecent(store, difficulty)
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		store.Close()
		fail("retrieving stats: %v", err)
	}

	fmt.Println("Match statistics")
	fmt.Println()
	fmt.Printf("  %-8s  %-7s  %-4s  %-4s  %-8s  %s\n", "CPU", "Matches", "Won", "Lost", "Accuracy", "Best")
	fmt.Printf("  %-8s  %-7s  %-4s  %-4s  %-8s  %s\n", "---", "-------", "---", "----", "--------", "----")
	for _, t := range registry.List() {
		st, ok := all[t.ID]
		if !ok {
			fmt.Printf("  %-8s  %-7d  %-4d  %-4d  %-8s  %s\n", t.ID, 0, 0, 0, "-", "-")
			continue
		}
		fmt.Printf("  %-8s  %-7d  %-4d  %-4d  %-7.0f%%  %d\n",
			t.ID, st.Games, st.Wins, st.Losses, st.Accuracy*100, st.HighScore)
	}

	if flagRecent > 0 {
		printRecent(store, "")
	}
}

func printRecent(store *storage.Store, difficulty string) {
	recs, err := store.RecentMatches(difficulty, flagRecent)
	if err != nil {
		store.Close()
		fail("retrieving matches: %v", err)
	}

	fmt.Println()
	fmt.Println("Recent matches")
	if len(recs) == 0 {
		fmt.Println("  none")
		return
	}
	for _, r := range recs {
		fmt.Printf("  %s  %-6s  winner %-6s  you %d/%d  cpu %d/%d  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Difficulty, r.Winner,
			r.PlayerHits, r.PlayerShots, r.CPUHits, r.CPUShots, r.Duration)
	}
}
