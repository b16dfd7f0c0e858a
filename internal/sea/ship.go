// Package sea models a player's ocean: the grid, the ships placed on it and
// the resolution of shots fired at it.
package sea

import (
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/core"
)

// ShipKind is a class of ship.
type ShipKind struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
}

// DefaultFleet is the standard five-ship fleet.
var DefaultFleet = []ShipKind{
	{Name: "Tug", Size: 1},
	{Name: "Submarine", Size: 2},
	{Name: "Destroyer", Size: 3},
	{Name: "Battleship", Size: 4},
	{Name: "Aircraft Carrier", Size: 5},
}

// FleetCells returns the number of grid cells the fleet occupies.
func FleetCells(fleet []ShipKind) int {
	n := 0
	for _, k := range fleet {
		n += k.Size
	}
	return n
}

// Orientation is the direction a ship extends from its origin.
type Orientation int

const (
	Horizontal Orientation = iota // towards higher columns
	Vertical                      // towards higher rows
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

func (o Orientation) step() core.Location {
	if o == Vertical {
		return core.L(1, 0)
	}
	return core.L(0, 1)
}

// Ship is a placed ship and the damage it has taken.
type Ship struct {
	Kind  ShipKind
	Cells []core.Location
	Hits  int
}

// Name returns the ship's class name.
func (s *Ship) Name() string {
	return s.Kind.Name
}

// Destroyed reports whether every cell of the ship has been hit.
func (s *Ship) Destroyed() bool {
	return s.Hits >= s.Kind.Size
}

func shipCells(kind ShipKind, origin core.Location, o Orientation) []core.Location {
	step := o.step()
	cells := make([]core.Location, kind.Size)
	for i := range cells {
		cells[i] = core.L(origin.Row+step.Row*i, origin.Column+step.Column*i)
	}
	return cells
}
