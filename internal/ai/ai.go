// Package ai implements the CPU targeting engines, one per difficulty tier.
//
// Easy fires at random unresolved tiles. Medium probes the four neighbors of
// every hit. Hard runs a three-state machine: it probes around a first hit,
// infers the ship's orientation from a second hit and fires along that line
// first, and when a ship sinks it walks back through the hits that ship took
// to drop every lead they queued.
//
// Engines are single-threaded and owned by one player for one game. All
// randomness comes from a per-engine RNG seeded through registry.Options.
package ai

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// Tier IDs as registered with the opponent registry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// State is the targeting state of an engine.
type State int

const (
	// StateSearching fires at random unresolved tiles.
	StateSearching State = iota
	// StateTargetingShip probes around a single known hit, direction unknown.
	StateTargetingShip
	// StateHittingShip has two or more hits on a line and fires along it first.
	StateHittingShip
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSearching:
		return "Searching"
	case StateTargetingShip:
		return "TargetingShip"
	case StateHittingShip:
		return "HittingShip"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func engineLogger(l *log.Logger, tier string) *log.Logger {
	if l == nil {
		return nil
	}
	return l.With("engine", tier)
}

// unresolved reports whether loc is on the grid and has never been fired upon.
func unresolved(grid core.GridView, loc core.Location) bool {
	return loc.InBounds(grid.Height(), grid.Width()) &&
		grid.TileState(loc.Row, loc.Column) == core.TileUnresolved
}

func hasFreeTile(grid core.GridView) bool {
	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if grid.TileState(row, col) == core.TileUnresolved {
				return true
			}
		}
	}
	return false
}

// searchShot draws row and column uniformly and independently, redrawing
// until it lands on an unresolved tile.
func searchShot(grid core.GridView, rng *rand.Rand) (core.Location, error) {
	if !hasFreeTile(grid) {
		return core.Location{}, ErrNoFreeTiles
	}
	for {
		loc := core.L(rng.Intn(grid.Height()), rng.Intn(grid.Width()))
		if unresolved(grid, loc) {
			return loc, nil
		}
	}
}

func init() {
	registry.Register(registry.OpponentInfo{ID: DifficultyEasy, Title: "Easy", Level: 0},
		func(grid core.GridView, opts registry.Options) registry.Opponent {
			return NewEasy(grid, opts)
		})
	registry.Register(registry.OpponentInfo{ID: DifficultyMedium, Title: "Medium", Level: 1},
		func(grid core.GridView, opts registry.Options) registry.Opponent {
			return NewMedium(grid, opts)
		})
	registry.Register(registry.OpponentInfo{ID: DifficultyHard, Title: "Hard", Level: 2},
		func(grid core.GridView, opts registry.Options) registry.Opponent {
			return NewHard(grid, opts)
		})
}
