package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/sim"
)

var (
	flagBenchGames int
	flagDuelGames  int
)

var benchCmd = &cobra.Command{
	Use:   "bench <difficulty>",
	Short: "Measure how many shots a targeting engine needs",
	Long: `Play headless games where one engine fires at a random fleet until
every ship is sunk, then report shot statistics. The board and fleet
come from the config file.

Examples:
  battleship bench hard
  battleship bench medium --games 5000 --seed 7
  battleship bench easy --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

var duelCmd = &cobra.Command{
	Use:   "duel <cpu1> <cpu2>",
	Short: "Pit two targeting engines against each other",
	Long: `Play full matches between two CPU difficulties with the turn rules
from the config file. The side that fires first alternates every match.

Examples:
  battleship duel hard medium
  battleship duel easy hard --games 500`,
	Args: cobra.ExactArgs(2),
	Run:  runDuel,
}

func init() {
	benchCmd.Flags().IntVar(&flagBenchGames, "games", 1000, "Number of games to simulate")
	duelCmd.Flags().IntVar(&flagDuelGames, "games", 100, "Number of matches to simulate")
}

func boardFromConfig(cfg config.Config) sim.Board {
	return sim.Board{
		Height:        cfg.Grid.Height,
		Width:         cfg.Grid.Width,
		Fleet:         cfg.Fleet,
		AllowTouching: cfg.Rules.AllowTouching,
	}
}

func simSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func runBench(_ *cobra.Command, args []string) {
	difficulty := args[0]
	if !registry.Exists(difficulty) {
		fail("unknown difficulty %q", difficulty)
	}
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	rep, err := sim.Run(ctx, sim.Options{
		Difficulty: difficulty,
		Games:      flagBenchGames,
		Seed:       simSeed(),
		Board:      boardFromConfig(cfg),
		Logger:     newLogger(os.Stderr, "bench"),
	})
	if err != nil {
		stop()
		fail("%v", err)
	}

	shots := make([]int, len(rep.Games))
	for i, g := range rep.Games {
		shots[i] = g.Shots
	}
	slices.Sort(shots)

	fmt.Printf("%s CPU on %dx%d, %d games in %s\n",
		registry.Title(difficulty), cfg.Grid.Height, cfg.Grid.Width, len(rep.Games), time.Since(start).Round(time.Millisecond))
	fmt.Println()
	fmt.Printf("  Shots to win  min %d  median %d  mean %.1f  max %d\n",
		rep.MinShots, shots[len(shots)/2], rep.MeanShots, rep.MaxShots)
	fmt.Printf("  Engine faults %d\n", rep.Faults)
}

func runDuel(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := sim.Duel(ctx, sim.DuelOptions{
		Player1:        args[0],
		Player2:        args[1],
		Games:          flagDuelGames,
		Seed:           simSeed(),
		Board:          boardFromConfig(cfg),
		ExtraTurnOnHit: cfg.Rules.ExtraTurnOnHit,
		Logger:         newLogger(os.Stderr, "duel"),
	})
	if err != nil {
		stop()
		fail("%v", err)
	}

	faults := 0
	for _, s := range rep.Summaries {
		faults += s.Faults
	}
	n := len(rep.Summaries)

	fmt.Printf("%s vs %s, %d matches\n", rep.Player1, rep.Player2, n)
	fmt.Println()
	fmt.Printf("  %-8s %4d wins (%.0f%%)\n", rep.Player1, rep.Wins1, 100*float64(rep.Wins1)/float64(n))
	fmt.Printf("  %-8s %4d wins (%.0f%%)\n", rep.Player2, rep.Wins2, 100*float64(rep.Wins2)/float64(n))
	fmt.Printf("  Engine faults %d\n", faults)
}
