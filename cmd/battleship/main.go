// battleship is a terminal Battleship game against a CPU opponent.
//
// Usage:
//
//	battleship list                  - List CPU difficulties
//	battleship play [difficulty]     - Play a match
//	battleship menu                  - Pick a difficulty interactively
//	battleship serve                 - Start SSH server for remote play
//	battleship scores [difficulty]   - Show high scores and match stats
//	battleship bench <difficulty>    - Measure a targeting engine headlessly
//	battleship duel <cpu1> <cpu2>    - Pit two targeting engines against each other
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.battleship/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write game logs to a file while the TUI runs
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Import the targeting engines to register them
	_ "github.com/vovakirdan/tui-battleship/internal/ai"
	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "battleship",
	Short: "Battleship - sink the CPU fleet in your terminal",
	Long: `Battleship is a terminal game where you hunt a hidden fleet while a CPU
opponent hunts yours. Three CPU difficulties are available: easy fires at
random, medium follows up on hits, hard traces ships along their line.

Available commands:
  list     - Show all CPU difficulties
  play     - Play a match directly
  menu     - Interactive difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and match stats
  bench    - Measure a targeting engine headlessly
  duel     - Pit two targeting engines against each other

Examples:
  battleship list
  battleship play hard
  battleship menu
  battleship serve --ssh :2222
  battleship bench hard --games 1000`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.battleship/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write game logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(duelCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fail("%v", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// tuiLogger returns the logger used while the TUI owns the terminal.
// Without --log-file logs are discarded. The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard, "battleship"), func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fail("cannot open log file: %v", err)
	}
	return newLogger(f, "battleship"), func() { f.Close() }
}

// loadConfig loads the game config from --config or the default search path.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
