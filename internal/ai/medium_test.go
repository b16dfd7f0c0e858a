package ai

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

func TestMediumProbesNeighbors(t *testing.T) {
	b := newTestBoard(10, 10)
	b.addShip("Destroyer", core.L(5, 5), core.L(5, 6), core.L(5, 7))
	m := NewMedium(b, registry.Options{Seed: 1})

	m.last, m.hasLast = core.L(5, 5), true
	if err := m.ReportResult(core.L(5, 5), b.shoot(core.L(5, 5))); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateTargetingShip {
		t.Fatalf("state = %v, expected TargetingShip", m.State())
	}
	want := []core.Location{core.L(5, 6), core.L(6, 5), core.L(5, 4), core.L(4, 5)}
	if got := locsOf(m.Pending()); !slices.Equal(got, want) {
		t.Fatalf("pending = %v, expected %v", got, want)
	}

	// Hit on (5,6) pushes its neighbors on top without reordering.
	loc, _ := m.NextShot()
	if loc != core.L(5, 6) {
		t.Fatalf("NextShot() = %v, expected (5,6)", loc)
	}
	if err := m.ReportResult(loc, b.shoot(loc)); err != nil {
		t.Fatal(err)
	}
	want = []core.Location{core.L(5, 7), core.L(6, 6), core.L(4, 6), core.L(6, 5), core.L(5, 4), core.L(4, 5)}
	if got := locsOf(m.Pending()); !slices.Equal(got, want) {
		t.Fatalf("pending = %v, expected %v", got, want)
	}
}

func TestMediumReturnsToSearch(t *testing.T) {
	b := newTestBoard(10, 10)
	b.addShip("Tug", core.L(0, 0))
	b.addShip("Tug 2", core.L(9, 9))
	m := NewMedium(b, registry.Options{Seed: 1})

	m.last, m.hasLast = core.L(0, 0), true
	// A tug sinks on its only hit; medium does not probe around it.
	if err := m.ReportResult(core.L(0, 0), b.shoot(core.L(0, 0))); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateSearching || len(m.Pending()) != 0 {
		t.Errorf("state = %v with %d pending, expected Searching and empty", m.State(), len(m.Pending()))
	}

	// A lone hit in a corner queues two targets; popping the last one
	// returns the engine to searching.
	b2 := newTestBoard(10, 10)
	b2.addShip("Submarine", core.L(0, 0), core.L(1, 0))
	m2 := NewMedium(b2, registry.Options{Seed: 1})
	m2.last, m2.hasLast = core.L(0, 0), true
	if err := m2.ReportResult(core.L(0, 0), b2.shoot(core.L(0, 0))); err != nil {
		t.Fatal(err)
	}
	first, _ := m2.NextShot()
	if err := m2.ReportResult(first, b2.shoot(first)); err != nil {
		t.Fatal(err)
	}
	if first != core.L(0, 1) {
		t.Fatalf("first probe = %v, expected (0,1)", first)
	}
	second, _ := m2.NextShot()
	if second != core.L(1, 0) {
		t.Fatalf("second probe = %v, expected (1,0)", second)
	}
	if m2.State() != StateSearching {
		t.Errorf("state after popping last target = %v, expected Searching", m2.State())
	}
}
