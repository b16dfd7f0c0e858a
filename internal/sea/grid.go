package sea

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// Placement and shot errors.
var (
	ErrOutOfBounds  = errors.New("sea: location out of bounds")
	ErrOverlap      = errors.New("sea: ship overlaps another ship")
	ErrTouching     = errors.New("sea: ship touches another ship")
	ErrInvalidShip  = errors.New("sea: ship size must be positive")
	ErrDeployFailed = errors.New("sea: could not deploy fleet")
)

const (
	placeAttempts = 500 // random tries per ship
	deployRounds  = 50  // full restarts before giving up
)

// Tile is what the grid's owner sees in a cell.
type Tile int

const (
	TileSea  Tile = iota // water, not fired upon
	TileShip             // intact ship segment
	TileHit              // ship segment that was hit
	TileMiss             // water that was fired upon
)

// Grid is one player's ocean.
type Grid struct {
	height, width int
	ships         []*Ship
	owner         []int // ship index+1 per cell, 0 for water
	shot          []bool
}

// NewGrid creates an empty height×width grid.
func NewGrid(height, width int) *Grid {
	return &Grid{
		height: height,
		width:  width,
		owner:  make([]int, height*width),
		shot:   make([]bool, height*width),
	}
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

func (g *Grid) index(loc core.Location) int {
	return loc.Row*g.width + loc.Column
}

// TileState reports whether a cell has been fired upon.
func (g *Grid) TileState(row, column int) core.TileState {
	loc := core.L(row, column)
	if loc.InBounds(g.height, g.width) && g.shot[g.index(loc)] {
		return core.TileResolved
	}
	return core.TileUnresolved
}

// View returns the grid as an opponent sees it: tile resolution only.
func (g *Grid) View() core.GridView {
	return view{g: g}
}

type view struct{ g *Grid }

func (v view) Height() int { return v.g.height }
func (v view) Width() int  { return v.g.width }

func (v view) TileState(row, column int) core.TileState {
	return v.g.TileState(row, column)
}

// Tile returns the owner's view of a cell.
func (g *Grid) Tile(row, column int) Tile {
	loc := core.L(row, column)
	if !loc.InBounds(g.height, g.width) {
		return TileSea
	}
	i := g.index(loc)
	switch {
	case g.owner[i] != 0 && g.shot[i]:
		return TileHit
	case g.owner[i] != 0:
		return TileShip
	case g.shot[i]:
		return TileMiss
	default:
		return TileSea
	}
}

// ShipAt returns the ship occupying loc, or nil.
func (g *Grid) ShipAt(loc core.Location) *Ship {
	if !loc.InBounds(g.height, g.width) {
		return nil
	}
	if id := g.owner[g.index(loc)]; id != 0 {
		return g.ships[id-1]
	}
	return nil
}

// Ships returns the placed ships in placement order.
func (g *Grid) Ships() []*Ship {
	return slices.Clone(g.ships)
}

// Remaining returns the number of ships still afloat.
func (g *Grid) Remaining() int {
	n := 0
	for _, s := range g.ships {
		if !s.Destroyed() {
			n++
		}
	}
	return n
}

// AllDestroyed reports whether every placed ship has been sunk.
func (g *Grid) AllDestroyed() bool {
	return len(g.ships) > 0 && g.Remaining() == 0
}

// Place puts a ship of the given kind on the grid starting at origin.
// Unless allowTouching is set, the ship may not share an edge or a corner
// with another ship.
func (g *Grid) Place(kind ShipKind, origin core.Location, o Orientation, allowTouching bool) error {
	if kind.Size <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidShip, kind.Name)
	}
	cells := shipCells(kind, origin, o)
	for _, c := range cells {
		if !c.InBounds(g.height, g.width) {
			return fmt.Errorf("%w: %s at %v", ErrOutOfBounds, kind.Name, c)
		}
		if g.owner[g.index(c)] != 0 {
			return fmt.Errorf("%w: %s at %v", ErrOverlap, kind.Name, c)
		}
	}
	if !allowTouching {
		for _, c := range cells {
			if g.touches(c) {
				return fmt.Errorf("%w: %s at %v", ErrTouching, kind.Name, c)
			}
		}
	}

	g.ships = append(g.ships, &Ship{Kind: kind, Cells: cells})
	id := len(g.ships)
	for _, c := range cells {
		g.owner[g.index(c)] = id
	}
	return nil
}

func (g *Grid) touches(c core.Location) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := c.Add(dr, dc)
			if n.InBounds(g.height, g.width) && g.owner[g.index(n)] != 0 {
				return true
			}
		}
	}
	return false
}

// Clear removes every ship and every shot.
func (g *Grid) Clear() {
	g.ships = nil
	clear(g.owner)
	clear(g.shot)
}

// Deploy places the fleet at random, largest ships first. The grid is
// cleared before each attempt.
func (g *Grid) Deploy(fleet []ShipKind, rng *rand.Rand, allowTouching bool) error {
	order := slices.Clone(fleet)
	slices.SortStableFunc(order, func(a, b ShipKind) int { return b.Size - a.Size })

	for _, k := range order {
		if k.Size <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidShip, k.Name)
		}
		if k.Size > max(g.height, g.width) {
			return fmt.Errorf("%w: %s (size %d) on %dx%d", ErrDeployFailed, k.Name, k.Size, g.height, g.width)
		}
	}

	for round := 0; round < deployRounds; round++ {
		g.Clear()
		if g.tryDeploy(order, rng, allowTouching) {
			return nil
		}
	}
	g.Clear()
	return fmt.Errorf("%w: %d ships on %dx%d", ErrDeployFailed, len(fleet), g.height, g.width)
}

func (g *Grid) tryDeploy(order []ShipKind, rng *rand.Rand, allowTouching bool) bool {
	for _, k := range order {
		placed := false
		for attempt := 0; attempt < placeAttempts && !placed; attempt++ {
			o := Orientation(rng.Intn(2))
			origin := core.L(rng.Intn(g.height), rng.Intn(g.width))
			placed = g.Place(k, origin, o, allowTouching) == nil
		}
		if !placed {
			return false
		}
	}
	return true
}

// Shoot resolves a shot at loc. It reports Miss, Hit, Destroyed with the
// sunk ship's hit count, or AlreadyShot for a cell fired upon before.
func (g *Grid) Shoot(loc core.Location) (core.AttackOutcome, error) {
	if !loc.InBounds(g.height, g.width) {
		return core.AttackOutcome{}, fmt.Errorf("%w: %v", ErrOutOfBounds, loc)
	}
	i := g.index(loc)
	if g.shot[i] {
		return core.AttackOutcome{Result: core.ResultAlreadyShot}, nil
	}
	g.shot[i] = true

	id := g.owner[i]
	if id == 0 {
		return core.Miss(), nil
	}
	ship := g.ships[id-1]
	ship.Hits++
	if ship.Destroyed() {
		return core.Destroyed(ship.Name(), ship.Hits), nil
	}
	return core.Hit(), nil
}
