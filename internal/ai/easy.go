package ai

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// Easy fires at random unresolved tiles and ignores every result.
type Easy struct {
	grid core.GridView
	rng  *rand.Rand

	last    core.Location
	hasLast bool
	over    bool
}

// NewEasy creates an easy-tier engine firing at grid.
func NewEasy(grid core.GridView, opts registry.Options) *Easy {
	return &Easy{grid: grid, rng: newRNG(opts.Seed)}
}

// Difficulty returns the tier ID.
func (e *Easy) Difficulty() string {
	return DifficultyEasy
}

// NextShot returns a random unresolved tile.
func (e *Easy) NextShot() (core.Location, error) {
	if e.over {
		return core.Location{}, ErrGameOver
	}
	loc, err := searchShot(e.grid, e.rng)
	if err != nil {
		e.hasLast = false
		return core.Location{}, err
	}
	e.last, e.hasLast = loc, true
	return loc, nil
}

// ReportResult validates the report; easy never learns from it.
func (e *Easy) ReportResult(shot core.Location, outcome core.AttackOutcome) error {
	if e.over {
		return ErrGameOver
	}
	if !e.hasLast || e.last != shot {
		return fmt.Errorf("%w: %v", ErrUnexpectedShot, shot)
	}
	e.hasLast = false
	switch outcome.Result {
	case core.ResultAlreadyShot:
		return fmt.Errorf("%w: %v", ErrAlreadyShot, shot)
	case core.ResultGameOver:
		e.over = true
	}
	return nil
}
