package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

var (
	// ErrMatchOver is returned when a shot is fired after the match ended.
	ErrMatchOver = errors.New("match: match is over")
	// ErrNotYourTurn is returned when a player fires out of turn.
	ErrNotYourTurn = errors.New("match: not this player's turn")
)

// Options configures a new match.
type Options struct {
	ID MatchID // Generated when empty

	// First is the player who fires first. Defaults to Player1.
	First core.PlayerID

	// ExtraTurnOnHit keeps the turn with the shooter until a miss.
	// When false the turn passes after every counted shot.
	ExtraTurnOnHit bool

	Logger *log.Logger
	Now    func() time.Time
}

// Match is a two-player battleship match.
type Match struct {
	id      MatchID
	grids   [2]*sea.Grid
	turn    core.PlayerID
	shots   [2]int
	hits    [2]int
	faults  int
	seq     int
	winner  core.PlayerID
	reason  EndReason
	started time.Time
	ended   time.Time

	extraTurn bool
	listener  Listener
	logger    *log.Logger
	now       func() time.Time
}

// New creates a match between two deployed grids. grid1 belongs to Player1.
func New(grid1, grid2 *sea.Grid, opts Options) *Match {
	if opts.ID == "" {
		opts.ID = NewMatchID()
	}
	if opts.First == core.NoPlayer {
		opts.First = core.Player1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Match{
		id:        opts.ID,
		grids:     [2]*sea.Grid{grid1, grid2},
		turn:      opts.First,
		extraTurn: opts.ExtraTurnOnHit,
		logger:    opts.Logger,
		now:       opts.Now,
		started:   opts.Now(),
	}
}

func slot(p core.PlayerID) int {
	if p == core.Player2 {
		return 1
	}
	return 0
}

// ID returns the match identifier.
func (m *Match) ID() MatchID { return m.id }

// Turn returns the player who fires next.
func (m *Match) Turn() core.PlayerID { return m.turn }

// Over reports whether the match has ended.
func (m *Match) Over() bool { return m.reason != EndReasonNone }

// Winner returns the winning player, or NoPlayer.
func (m *Match) Winner() core.PlayerID { return m.winner }

// Grid returns the player's own grid.
func (m *Match) Grid(p core.PlayerID) *sea.Grid { return m.grids[slot(p)] }

// Target returns the grid the player fires at.
func (m *Match) Target(p core.PlayerID) *sea.Grid { return m.grids[slot(p.Other())] }

// Shots returns the number of counted shots the player has fired.
func (m *Match) Shots(p core.PlayerID) int { return m.shots[slot(p)] }

// Hits returns the number of the player's shots that struck a ship.
func (m *Match) Hits(p core.PlayerID) int { return m.hits[slot(p)] }

// Faults returns how many CPU engines were replaced after an error.
func (m *Match) Faults() int { return m.faults }

// SetListener registers a function called with every event.
func (m *Match) SetListener(l Listener) { m.listener = l }

// Shoot fires the current player's shot at loc.
//
// Sinking the last ship is reported as GameOver. A miss passes the turn;
// an AlreadyShot result keeps the turn and is not counted.
func (m *Match) Shoot(loc core.Location) (Event, error) {
	if m.Over() {
		return Event{}, ErrMatchOver
	}
	shooter := m.turn
	target := m.Target(shooter)

	out, err := target.Shoot(loc)
	if err != nil {
		return Event{}, fmt.Errorf("match: %s shot: %w", shooter, err)
	}

	i := slot(shooter)
	switch out.Result {
	case core.ResultMiss:
		m.shots[i]++
		m.turn = shooter.Other()
	case core.ResultHit, core.ResultDestroyed:
		m.shots[i]++
		m.hits[i]++
		if out.Result == core.ResultDestroyed && target.AllDestroyed() {
			out.Result = core.ResultGameOver
			m.finish(shooter, EndReasonCompleted)
		} else if !m.extraTurn {
			m.turn = shooter.Other()
		}
	}

	m.seq++
	ev := Event{Seq: m.seq, Player: shooter, At: loc, Outcome: out, Time: m.now()}
	if m.logger != nil {
		m.logger.Debug("shot", "match", m.id.Short(), "player", shooter, "at", loc.Label(), "result", out)
	}
	if m.listener != nil {
		m.listener(ev)
	}
	return ev, nil
}

// FireAs fires loc for player p, failing if it is not p's turn.
func (m *Match) FireAs(p core.PlayerID, loc core.Location) (Event, error) {
	if m.Over() {
		return Event{}, ErrMatchOver
	}
	if m.turn != p {
		return Event{}, fmt.Errorf("%w: %s", ErrNotYourTurn, p)
	}
	return m.Shoot(loc)
}

// PlayCPUTurn lets op take the current player's shot.
// The shot is applied before the outcome is reported back, so an engine
// error leaves the match consistent; the caller should replace the engine.
func (m *Match) PlayCPUTurn(op registry.Opponent) (Event, error) {
	if m.Over() {
		return Event{}, ErrMatchOver
	}
	loc, err := op.NextShot()
	if err != nil {
		return Event{}, fmt.Errorf("match: %s engine: %w", op.Difficulty(), err)
	}
	ev, err := m.Shoot(loc)
	if err != nil {
		return Event{}, fmt.Errorf("match: %s engine fired %v: %w", op.Difficulty(), loc, err)
	}
	if err := op.ReportResult(loc, ev.Outcome); err != nil {
		return ev, fmt.Errorf("match: %s engine: %w", op.Difficulty(), err)
	}
	return ev, nil
}

// ReplaceFaulted logs an engine error and returns a fresh engine of the
// same tier firing for player p. The fault is counted in the summary.
func (m *Match) ReplaceFaulted(p core.PlayerID, op registry.Opponent, cause error, opts registry.Options) (registry.Opponent, error) {
	m.faults++
	if m.logger != nil {
		m.logger.Error("engine fault, replacing", "match", m.id.Short(), "player", p, "tier", op.Difficulty(), "err", cause)
	}
	if opts.Logger == nil {
		opts.Logger = m.logger
	}
	fresh, err := registry.Create(op.Difficulty(), m.Target(p).View(), opts)
	if err != nil {
		return nil, fmt.Errorf("match: replace engine: %w", err)
	}
	return fresh, nil
}

// Abandon ends the match without a winner.
func (m *Match) Abandon() {
	if !m.Over() {
		m.finish(core.NoPlayer, EndReasonAbandoned)
	}
}

func (m *Match) finish(winner core.PlayerID, reason EndReason) {
	m.winner = winner
	m.reason = reason
	m.ended = m.now()
	if m.logger != nil {
		m.logger.Info("match ended", "match", m.id.Short(), "reason", reason, "winner", winner)
	}
}

// Summary returns the match outcome so far.
func (m *Match) Summary() Summary {
	end := m.ended
	if !m.Over() {
		end = m.now()
	}
	return Summary{
		ID:       m.id,
		Reason:   m.reason,
		Winner:   m.winner,
		Shots1:   m.shots[0],
		Hits1:    m.hits[0],
		Shots2:   m.shots[1],
		Hits2:    m.hits[1],
		Faults:   m.faults,
		Started:  m.started,
		Duration: end.Sub(m.started),
	}
}
