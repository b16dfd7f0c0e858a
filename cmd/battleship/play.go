package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-battleship/internal/platform/tui"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play a match against the CPU",
	Long: `Start a match against the CPU. Without an argument the difficulty
from the config file is used.

Controls:
  Arrows/WASD  - Move the cursor on the enemy grid
  Space/Enter  - Fire
  P            - Pause
  R            - Restart (after game over)
  B/Esc        - Leave the match
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Examples:
  battleship play
  battleship play easy
  battleship play hard --seed 42
  battleship play medium --config ./small-board.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	difficulty := cfg.AI.Difficulty
	if len(args) == 1 {
		difficulty = args[0]
	}
	if !registry.Exists(difficulty) {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", difficulty)
		fmt.Fprintln(os.Stderr, "Run 'battleship list' to see available difficulties.")
		os.Exit(1)
	}

	logger, closeLog := tuiLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	game := tui.NewGame(cfg, difficulty, logger)
	_, runErr := tui.Run(game, store, runtimeConfig(), logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
