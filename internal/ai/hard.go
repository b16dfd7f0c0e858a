package ai

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// Hard is the full targeting state machine.
//
// After a first hit it queues the four neighbors (TargetingShip). A second
// hit on a line moves every queued target on that line to the top of the
// stack (HittingShip). When a ship sinks, the hits it took are walked back
// from the sinking shot to the hit that found it, and every lead they queued
// is dropped.
type Hard struct {
	grid   core.GridView
	rng    *rand.Rand
	logger *log.Logger

	state   State
	targets targetStack
	lastHit []Target // hits on ships that are still being pursued, oldest first

	current    Target // most recently returned shot
	hasCurrent bool
	over       bool
}

// NewHard creates a hard-tier engine firing at grid.
func NewHard(grid core.GridView, opts registry.Options) *Hard {
	return &Hard{
		grid:   grid,
		rng:    newRNG(opts.Seed),
		logger: engineLogger(opts.Logger, DifficultyHard),
		state:  StateSearching,
	}
}

// Difficulty returns the tier ID.
func (h *Hard) Difficulty() string {
	return DifficultyHard
}

// State returns the current targeting state.
func (h *Hard) State() State {
	return h.state
}

// Pending returns the queued targets in the order they will be fired.
func (h *Hard) Pending() []Target {
	return h.targets.topFirst()
}

// HitHistory returns the hits still attributed to ships afloat, oldest first.
func (h *Hard) HitHistory() []Target {
	return slices.Clone(h.lastHit)
}

// NextShot returns the next coordinate to fire at.
func (h *Hard) NextShot() (core.Location, error) {
	if h.over {
		return core.Location{}, ErrGameOver
	}
	h.hasCurrent = false

	for {
		switch h.state {
		case StateSearching:
			loc, err := searchShot(h.grid, h.rng)
			if err != nil {
				return core.Location{}, err
			}
			h.setCurrent(Target{ShotAt: loc})
			return loc, nil

		case StateTargetingShip, StateHittingShip:
			t, ok := h.targets.pop()
			if !ok {
				return core.Location{}, fmt.Errorf("%w: state %s", ErrTargetsExhausted, h.state)
			}
			if !unresolved(h.grid, t.ShotAt) {
				h.debug("discarding stale target", "at", t.ShotAt)
				continue
			}
			h.setCurrent(t)
			return t.ShotAt, nil

		default:
			return core.Location{}, fmt.Errorf("%w: %s", ErrInvalidState, h.state)
		}
	}
}

// ReportResult updates the engine with the outcome of the last shot.
func (h *Hard) ReportResult(shot core.Location, outcome core.AttackOutcome) error {
	if h.over {
		return ErrGameOver
	}
	if !h.hasCurrent || h.current.ShotAt != shot {
		return fmt.Errorf("%w: %v", ErrUnexpectedShot, shot)
	}

	switch outcome.Result {
	case core.ResultMiss:
		h.hasCurrent = false
	case core.ResultHit:
		h.processHit()
	case core.ResultDestroyed:
		if err := h.processDestroy(outcome.ShipHits); err != nil {
			return err
		}
	case core.ResultGameOver:
		h.over = true
		h.hasCurrent = false
		return nil
	case core.ResultAlreadyShot:
		return fmt.Errorf("%w: %v", ErrAlreadyShot, shot)
	default:
		return fmt.Errorf("%w: unknown result %d", ErrInvalidState, outcome.Result)
	}

	// The tile is resolved now; any duplicate of it still queued is dead.
	h.targets.filter(func(t Target) bool { return t.ShotAt != shot })

	if len(h.targets) == 0 && h.state != StateSearching {
		h.transition(StateSearching)
	}
	return nil
}

func (h *Hard) processHit() {
	h.lastHit = append(h.lastHit, h.current)

	for _, n := range h.current.ShotAt.Neighbors() {
		h.addTarget(n, h.current.ShotAt)
	}

	if h.state == StateSearching {
		h.transition(StateTargetingShip)
		return
	}
	h.transition(StateHittingShip)
	h.reorderTargets()
}

// addTarget queues loc if it is on the grid and unresolved.
func (h *Hard) addTarget(loc, source core.Location) {
	if !unresolved(h.grid, loc) {
		return
	}
	h.targets.push(Target{ShotAt: loc, Source: source, HasSource: true})
}

// reorderTargets fires along the line formed by the current hit and the hit
// that queued it before anything else.
func (h *Hard) reorderTargets() {
	at := h.current.ShotAt
	switch {
	case h.current.SameRow():
		h.targets.promote(func(t Target) bool { return t.ShotAt.Row == at.Row })
		h.debug("prioritizing row", "row", at.Row)
	case h.current.SameColumn():
		h.targets.promote(func(t Target) bool { return t.ShotAt.Column == at.Column })
		h.debug("prioritizing column", "column", at.Column)
	}
}

// processDestroy consumes the shipHits-1 earlier hits of the sunk ship from
// the hit history, dropping every pending target they queued.
//
// The walk follows Source links back from the sinking shot. A ship found in
// its middle has hits on both sides of the discovery hit; once the walk
// reaches the hit without a source it continues forward, looking for hits
// whose Source is the one just consumed.
func (h *Hard) processDestroy(shipHits int) error {
	current := h.current
	forward := false

	for step := 1; step < shipHits; step++ {
		var link core.Location
		switch {
		case forward:
			link = current.ShotAt
		case current.HasSource:
			link = current.Source
		default:
			link = current.ShotAt
			forward = true
		}

		idx := slices.IndexFunc(h.lastHit, func(t Target) bool {
			if forward {
				return t.HasSource && t.Source == link
			}
			return t.ShotAt == link
		})
		if idx < 0 {
			return fmt.Errorf("%w: no hit linked to %v at step %d of %d", ErrStaleHistory, link, step, shipHits-1)
		}

		current = h.lastHit[idx]
		h.lastHit = slices.Delete(h.lastHit, idx, idx+1)
		h.removeShotsAround(current.ShotAt)
	}

	h.hasCurrent = false
	return nil
}

// removeShotsAround drops every pending target queued by the hit at loc.
func (h *Hard) removeShotsAround(loc core.Location) {
	h.targets.filter(func(t Target) bool { return !t.HasSource || t.Source != loc })
}

func (h *Hard) setCurrent(t Target) {
	h.current = t
	h.hasCurrent = true
}

func (h *Hard) transition(to State) {
	if h.state == to {
		return
	}
	h.debug("state change", "from", h.state, "to", to, "pending", len(h.targets))
	h.state = to
}

func (h *Hard) debug(msg string, keyvals ...any) {
	if h.logger != nil {
		h.logger.Debug(msg, keyvals...)
	}
}
