// Package registry provides a global registry for CPU opponent factories.
// Targeting engines register themselves in init() functions, allowing the
// platform to discover and instantiate difficulty tiers without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// Opponent is the contract between a CPU targeting engine and the turn controller.
//
// The controller calls NextShot, resolves the returned coordinate against the
// opponent grid, then calls ReportResult exactly once with the outcome before
// any other call. Errors are contract violations or internal faults; none of
// them is transient.
type Opponent interface {
	// Difficulty returns the registered tier ID (e.g., "hard").
	Difficulty() string

	// NextShot returns an in-bounds coordinate that has never been fired upon.
	NextShot() (core.Location, error)

	// ReportResult feeds the outcome of the last shot back into the engine.
	ReportResult(shot core.Location, outcome core.AttackOutcome) error
}

// Options configures a new opponent instance.
type Options struct {
	// Seed drives the engine's private RNG. Equal seeds give equal games.
	Seed int64

	// Logger receives debug traces of state transitions. Nil disables logging.
	Logger *log.Logger
}

// Factory creates a new opponent that fires at the given grid.
type Factory func(grid core.GridView, opts Options) Opponent

// OpponentInfo contains metadata about a registered tier.
type OpponentInfo struct {
	ID    string
	Title string
	Level int // Sort key, lower is easier
}

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]OpponentInfo)
	mu        sync.RWMutex
)

// Register adds an opponent factory to the registry.
// Typically called from an engine package's init() function.
// Panics if a tier with the same ID is already registered.
func Register(info OpponentInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: opponent %q already registered", info.ID))
	}

	factories[info.ID] = f
	infos[info.ID] = info
}

// List returns all registered tiers, easiest first.
func List() []OpponentInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]OpponentInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Level != result[j].Level {
			return result[i].Level < result[j].Level
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new opponent by its tier ID.
// Returns an error if the ID is not registered.
func Create(id string, grid core.GridView, opts Options) (Opponent, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown opponent %q", id)
	}

	return f(grid, opts), nil
}

// Exists checks if a tier with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the display title of a tier, or the ID itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if info, ok := infos[id]; ok {
		return info.Title
	}
	return id
}
