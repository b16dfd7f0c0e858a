package match

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/ai"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

func gridWith(t *testing.T, ships map[core.Location]sea.ShipKind) *sea.Grid {
	t.Helper()
	g := sea.NewGrid(6, 6)
	for origin, kind := range ships {
		if err := g.Place(kind, origin, sea.Horizontal, false); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func smallMatch(t *testing.T, extraTurn bool) *Match {
	t.Helper()
	g1 := gridWith(t, map[core.Location]sea.ShipKind{core.L(0, 0): {Name: "Submarine", Size: 2}})
	g2 := gridWith(t, map[core.Location]sea.ShipKind{
		core.L(1, 1): {Name: "Submarine", Size: 2},
		core.L(4, 4): {Name: "Tug", Size: 1},
	})
	return New(g1, g2, Options{ID: "test-match", ExtraTurnOnHit: extraTurn})
}

func TestTurnOrder(t *testing.T) {
	m := smallMatch(t, true)

	steps := []struct {
		name   string
		at     core.Location
		result core.ShotResult
		turn   core.PlayerID // after the shot
	}{
		{"player hits", core.L(1, 1), core.ResultHit, core.Player1},
		{"player repeats", core.L(1, 1), core.ResultAlreadyShot, core.Player1},
		{"player sinks", core.L(1, 2), core.ResultDestroyed, core.Player1},
		{"player misses", core.L(5, 0), core.ResultMiss, core.Player2},
		{"cpu misses", core.L(5, 5), core.ResultMiss, core.Player1},
		{"player wins", core.L(4, 4), core.ResultGameOver, core.Player1},
	}
	for _, s := range steps {
		ev, err := m.Shoot(s.at)
		if err != nil {
			t.Fatalf("%s: Shoot() failed: %v", s.name, err)
		}
		if ev.Outcome.Result != s.result {
			t.Errorf("%s: result = %v, expected %v", s.name, ev.Outcome.Result, s.result)
		}
		if m.Turn() != s.turn {
			t.Errorf("%s: turn = %v, expected %v", s.name, m.Turn(), s.turn)
		}
	}

	if !m.Over() || m.Winner() != core.Player1 {
		t.Errorf("match should be won by Player1, got over=%v winner=%v", m.Over(), m.Winner())
	}
	if m.Shots(core.Player1) != 4 || m.Hits(core.Player1) != 3 {
		t.Errorf("player shots/hits = %d/%d, expected 4/3", m.Shots(core.Player1), m.Hits(core.Player1))
	}
	if m.Shots(core.Player2) != 1 || m.Hits(core.Player2) != 0 {
		t.Errorf("cpu shots/hits = %d/%d, expected 1/0", m.Shots(core.Player2), m.Hits(core.Player2))
	}
	if _, err := m.Shoot(core.L(0, 0)); !errors.Is(err, ErrMatchOver) {
		t.Errorf("Shoot() after end = %v, expected ErrMatchOver", err)
	}
}

func TestTurnPassesOnHitWithoutExtraTurn(t *testing.T) {
	m := smallMatch(t, false)
	if _, err := m.Shoot(core.L(1, 1)); err != nil {
		t.Fatal(err)
	}
	if m.Turn() != core.Player2 {
		t.Errorf("turn = %v, expected CPU", m.Turn())
	}
}

func TestGameOverCarriesShip(t *testing.T) {
	m := smallMatch(t, true)
	m.Shoot(core.L(4, 4))
	m.Shoot(core.L(1, 1))
	ev, _ := m.Shoot(core.L(1, 2))
	if ev.Outcome.Result != core.ResultGameOver || ev.Outcome.Ship != "Submarine" || ev.Outcome.ShipHits != 2 {
		t.Errorf("final outcome = %+v", ev.Outcome)
	}
}

func TestFireAs(t *testing.T) {
	m := smallMatch(t, true)
	if _, err := m.FireAs(core.Player2, core.L(0, 0)); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("FireAs(CPU) = %v, expected ErrNotYourTurn", err)
	}
	if _, err := m.FireAs(core.Player1, core.L(0, 0)); err != nil {
		t.Errorf("FireAs(Player) failed: %v", err)
	}
}

func TestOutOfBoundsShot(t *testing.T) {
	m := smallMatch(t, true)
	if _, err := m.Shoot(core.L(6, 0)); !errors.Is(err, sea.ErrOutOfBounds) {
		t.Errorf("Shoot() = %v, expected ErrOutOfBounds", err)
	}
	if m.Shots(core.Player1) != 0 || m.Turn() != core.Player1 {
		t.Error("rejected shot should not change the match")
	}
}

func TestCPUDuel(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g1, g2 := sea.NewGrid(10, 10), sea.NewGrid(10, 10)
	if err := g1.Deploy(sea.DefaultFleet, rng, false); err != nil {
		t.Fatal(err)
	}
	if err := g2.Deploy(sea.DefaultFleet, rng, false); err != nil {
		t.Fatal(err)
	}
	m := New(g1, g2, Options{ExtraTurnOnHit: true})

	var events []Event
	m.SetListener(func(e Event) { events = append(events, e) })

	p1, _ := registry.Create(ai.DifficultyHard, m.Target(core.Player1).View(), registry.Options{Seed: 1})
	p2, _ := registry.Create(ai.DifficultyMedium, m.Target(core.Player2).View(), registry.Options{Seed: 2})

	for turns := 0; !m.Over(); turns++ {
		if turns > 200 {
			t.Fatal("match did not finish")
		}
		op := p1
		if m.Turn() == core.Player2 {
			op = p2
		}
		if _, err := m.PlayCPUTurn(op); err != nil {
			t.Fatalf("PlayCPUTurn() failed: %v", err)
		}
	}

	s := m.Summary()
	if s.Reason != EndReasonCompleted || s.Winner == core.NoPlayer {
		t.Errorf("summary = %+v", s)
	}
	if len(events) != s.Shots1+s.Shots2 {
		t.Errorf("%d events for %d shots", len(events), s.Shots1+s.Shots2)
	}
	if last := events[len(events)-1]; last.Outcome.Result != core.ResultGameOver || last.Player != s.Winner {
		t.Errorf("last event = %v", last)
	}
	if s.Faults != 0 {
		t.Errorf("faults = %d, expected 0", s.Faults)
	}
}

type brokenOpponent struct{}

func (brokenOpponent) Difficulty() string { return ai.DifficultyEasy }

func (brokenOpponent) NextShot() (core.Location, error) {
	return core.Location{}, ai.ErrTargetsExhausted
}

func (brokenOpponent) ReportResult(core.Location, core.AttackOutcome) error { return nil }

func TestReplaceFaulted(t *testing.T) {
	m := smallMatch(t, true)
	m.Shoot(core.L(5, 0)) // miss, CPU to move

	var op registry.Opponent = brokenOpponent{}
	_, err := m.PlayCPUTurn(op)
	if !errors.Is(err, ai.ErrTargetsExhausted) {
		t.Fatalf("PlayCPUTurn() = %v, expected ErrTargetsExhausted", err)
	}

	op, err = m.ReplaceFaulted(core.Player2, op, err, registry.Options{Seed: 1})
	if err != nil {
		t.Fatalf("ReplaceFaulted() failed: %v", err)
	}
	if _, ok := op.(*ai.Easy); !ok {
		t.Errorf("replacement is %T, expected *ai.Easy", op)
	}
	if _, err := m.PlayCPUTurn(op); err != nil {
		t.Errorf("PlayCPUTurn() with replacement failed: %v", err)
	}
	if m.Summary().Faults != 1 {
		t.Errorf("faults = %d, expected 1", m.Summary().Faults)
	}
}

func TestSummaryTiming(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	m := New(sea.NewGrid(3, 3), sea.NewGrid(3, 3), Options{Now: func() time.Time { return now }})

	now = start.Add(90 * time.Second)
	m.Abandon()
	now = start.Add(time.Hour)

	s := m.Summary()
	if s.Reason != EndReasonAbandoned || s.Winner != core.NoPlayer {
		t.Errorf("summary = %+v", s)
	}
	if s.Duration != 90*time.Second {
		t.Errorf("duration = %v, expected 1m30s", s.Duration)
	}
	if s.ID == "" {
		t.Error("match ID should be generated")
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Player: core.Player2, At: core.L(6, 2), Outcome: core.Destroyed("Destroyer", 3)}
	if got := ev.String(); got != "CPU fires C7: Destroyed Destroyer" {
		t.Errorf("String() = %q", got)
	}
}

func TestAccuracy(t *testing.T) {
	s := Summary{Shots1: 4, Hits1: 1}
	if s.Accuracy(core.Player1) != 0.25 || s.Accuracy(core.Player2) != 0 {
		t.Error("unexpected accuracy")
	}
}
