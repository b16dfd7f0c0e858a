package ai

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// Medium probes around hits but never infers orientation or cleans up
// after a sinking.
type Medium struct {
	grid    core.GridView
	rng     *rand.Rand
	logger  *log.Logger
	state   State
	targets targetStack

	last    core.Location
	hasLast bool
	over    bool
}

// NewMedium creates a medium-tier engine firing at grid.
func NewMedium(grid core.GridView, opts registry.Options) *Medium {
	return &Medium{
		grid:   grid,
		rng:    newRNG(opts.Seed),
		logger: engineLogger(opts.Logger, DifficultyMedium),
		state:  StateSearching,
	}
}

// Difficulty returns the tier ID.
func (m *Medium) Difficulty() string {
	return DifficultyMedium
}

// State returns StateSearching or StateTargetingShip.
func (m *Medium) State() State {
	return m.state
}

// Pending returns the queued targets in the order they will be fired.
func (m *Medium) Pending() []Target {
	return m.targets.topFirst()
}

// NextShot returns the next coordinate to fire at.
func (m *Medium) NextShot() (core.Location, error) {
	if m.over {
		return core.Location{}, ErrGameOver
	}
	m.hasLast = false

	for m.state == StateTargetingShip {
		t, ok := m.targets.pop()
		if !ok {
			m.setState(StateSearching)
			break
		}
		if len(m.targets) == 0 {
			m.setState(StateSearching)
		}
		if unresolved(m.grid, t.ShotAt) {
			m.last, m.hasLast = t.ShotAt, true
			return t.ShotAt, nil
		}
	}

	loc, err := searchShot(m.grid, m.rng)
	if err != nil {
		return core.Location{}, err
	}
	m.last, m.hasLast = loc, true
	return loc, nil
}

// ReportResult updates the engine with the outcome of the last shot.
func (m *Medium) ReportResult(shot core.Location, outcome core.AttackOutcome) error {
	if m.over {
		return ErrGameOver
	}
	if !m.hasLast || m.last != shot {
		return fmt.Errorf("%w: %v", ErrUnexpectedShot, shot)
	}
	m.hasLast = false

	switch outcome.Result {
	case core.ResultMiss, core.ResultDestroyed:
	case core.ResultHit:
		for _, n := range shot.Neighbors() {
			if unresolved(m.grid, n) {
				m.targets.push(Target{ShotAt: n, Source: shot, HasSource: true})
			}
		}
		if len(m.targets) > 0 {
			m.setState(StateTargetingShip)
		}
	case core.ResultGameOver:
		m.over = true
	case core.ResultAlreadyShot:
		return fmt.Errorf("%w: %v", ErrAlreadyShot, shot)
	default:
		return fmt.Errorf("%w: unknown result %d", ErrInvalidState, outcome.Result)
	}
	return nil
}

func (m *Medium) setState(to State) {
	if m.state == to {
		return
	}
	if m.logger != nil {
		m.logger.Debug("state change", "from", m.state, "to", to, "pending", len(m.targets))
	}
	m.state = to
}
