// Package match sequences the turns of a two-player battleship match.
// The human is always Player1 and fires at Player2's grid; CPU players are
// driven through registry.Opponent.
package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// MatchID uniquely identifies a match.
type MatchID string

// NewMatchID returns a fresh random match ID.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// Short returns the first eight characters of the ID for display.
func (id MatchID) Short() string {
	if len(id) > 8 {
		return string(id[:8])
	}
	return string(id)
}

// EndReason describes why a match ended.
type EndReason int

const (
	EndReasonNone      EndReason = iota // Still in progress
	EndReasonCompleted                  // A fleet was sunk
	EndReasonAbandoned                  // A player quit
)

func (r EndReason) String() string {
	switch r {
	case EndReasonNone:
		return "In progress"
	case EndReasonCompleted:
		return "Match completed"
	case EndReasonAbandoned:
		return "Match abandoned"
	default:
		return "Unknown"
	}
}

// Event records one resolved shot.
type Event struct {
	Seq     int
	Player  core.PlayerID // who fired
	At      core.Location
	Outcome core.AttackOutcome
	Time    time.Time
}

// String formats the event for the in-game log, e.g. "CPU fires C7: Hit".
func (e Event) String() string {
	return fmt.Sprintf("%s fires %s: %s", e.Player, e.At.Label(), e.Outcome)
}

// Listener receives every event of a match as it happens.
type Listener func(Event)

// Summary is the outcome of a match.
type Summary struct {
	ID       MatchID
	Reason   EndReason
	Winner   core.PlayerID
	Shots1   int
	Hits1    int
	Shots2   int
	Hits2    int
	Faults   int // CPU engines replaced after an error
	Started  time.Time
	Duration time.Duration
}

// Accuracy returns a player's hit ratio in [0, 1].
func (s Summary) Accuracy(p core.PlayerID) float64 {
	shots, hits := s.Shots1, s.Hits1
	if p == core.Player2 {
		shots, hits = s.Shots2, s.Hits2
	}
	if shots == 0 {
		return 0
	}
	return float64(hits) / float64(shots)
}

// ResultSaver persists finished matches.
type ResultSaver interface {
	SaveSummary(difficulty string, s Summary) error
}
