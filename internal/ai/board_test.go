package ai

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/registry"
)

// testShip is a ship on a testBoard.
type testShip struct {
	name  string
	cells []core.Location
	hits  int
}

// testBoard is a minimal opponent grid that resolves shots the way the
// match controller does.
type testBoard struct {
	h, w     int
	resolved map[core.Location]bool
	ships    []*testShip
	owner    map[core.Location]*testShip
}

func newTestBoard(h, w int) *testBoard {
	return &testBoard{
		h:        h,
		w:        w,
		resolved: make(map[core.Location]bool),
		owner:    make(map[core.Location]*testShip),
	}
}

func (b *testBoard) Height() int { return b.h }
func (b *testBoard) Width() int  { return b.w }

func (b *testBoard) TileState(row, column int) core.TileState {
	if b.resolved[core.L(row, column)] {
		return core.TileResolved
	}
	return core.TileUnresolved
}

func (b *testBoard) addShip(name string, cells ...core.Location) {
	s := &testShip{name: name, cells: cells}
	b.ships = append(b.ships, s)
	for _, c := range cells {
		b.owner[c] = s
	}
}

// mark resolves loc without any ship bookkeeping.
func (b *testBoard) mark(locs ...core.Location) {
	for _, l := range locs {
		b.resolved[l] = true
	}
}

func (b *testBoard) fillAll() {
	for r := 0; r < b.h; r++ {
		for c := 0; c < b.w; c++ {
			b.resolved[core.L(r, c)] = true
		}
	}
}

func (b *testBoard) shoot(loc core.Location) core.AttackOutcome {
	if b.resolved[loc] {
		return core.AttackOutcome{Result: core.ResultAlreadyShot}
	}
	b.resolved[loc] = true

	s := b.owner[loc]
	if s == nil {
		return core.Miss()
	}
	s.hits++
	if s.hits < len(s.cells) {
		return core.Hit()
	}
	for _, other := range b.ships {
		if other.hits < len(other.cells) {
			return core.Destroyed(s.name, s.hits)
		}
	}
	return core.AttackOutcome{Result: core.ResultGameOver, Ship: s.name, ShipHits: s.hits}
}

// placeNoTouch places ships of the given lengths at random so that no two
// ships share an edge or a corner.
func placeNoTouch(t *testing.T, b *testBoard, rng *rand.Rand, lengths ...int) {
	t.Helper()
	for i, n := range lengths {
		placed := false
		for attempt := 0; attempt < 10000 && !placed; attempt++ {
			dir := core.L(0, 1)
			if rng.Intn(2) == 0 {
				dir = core.L(1, 0)
			}
			start := core.L(rng.Intn(b.h), rng.Intn(b.w))
			cells := make([]core.Location, 0, n)
			ok := true
			for k := 0; k < n && ok; k++ {
				c := core.L(start.Row+dir.Row*k, start.Column+dir.Column*k)
				if !c.InBounds(b.h, b.w) {
					ok = false
					break
				}
				for dr := -1; dr <= 1 && ok; dr++ {
					for dc := -1; dc <= 1; dc++ {
						if b.owner[c.Add(dr, dc)] != nil {
							ok = false
							break
						}
					}
				}
				cells = append(cells, c)
			}
			if ok {
				b.addShip(string(rune('A'+i)), cells...)
				placed = true
			}
		}
		if !placed {
			t.Fatalf("could not place ship of length %d", n)
		}
	}
}

// fire runs one NextShot/ReportResult exchange.
func fire(t *testing.T, op registry.Opponent, b *testBoard) (core.Location, core.AttackOutcome) {
	t.Helper()
	loc, err := op.NextShot()
	if err != nil {
		t.Fatalf("NextShot() failed: %v", err)
	}
	out := b.shoot(loc)
	if err := op.ReportResult(loc, out); err != nil {
		t.Fatalf("ReportResult(%v, %v) failed: %v", loc, out, err)
	}
	return loc, out
}

func locsOf(targets []Target) []core.Location {
	out := make([]core.Location, len(targets))
	for i, t := range targets {
		out[i] = t.ShotAt
	}
	return out
}
