package core

// TileState is the resolution state of one grid cell as seen by a shooter.
type TileState int

const (
	// TileUnresolved means the cell has never been fired upon.
	TileUnresolved TileState = iota
	// TileResolved means the cell was fired upon, hit or miss.
	TileResolved
)

// String returns a human-readable name for the tile state.
func (s TileState) String() string {
	switch s {
	case TileUnresolved:
		return "Unresolved"
	case TileResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// GridView is a read-only view of an opponent grid.
// Dimensions never change during a game; TileState reflects every shot
// already resolved against the grid.
type GridView interface {
	Height() int
	Width() int
	TileState(row, column int) TileState
}

// ShotResult is the outcome category of a single shot.
type ShotResult int

const (
	ResultMiss        ShotResult = iota // Water
	ResultHit                           // Ship hit, still afloat
	ResultDestroyed                     // Ship hit and sunk
	ResultAlreadyShot                   // Cell was fired upon before
	ResultGameOver                      // Last ship of the fleet sunk
)

// String returns a human-readable name for the result.
func (r ShotResult) String() string {
	switch r {
	case ResultMiss:
		return "Miss"
	case ResultHit:
		return "Hit"
	case ResultDestroyed:
		return "Destroyed"
	case ResultAlreadyShot:
		return "AlreadyShot"
	case ResultGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// AttackOutcome is what the controller reports back to a shooter.
// Ship and ShipHits are set for Destroyed and GameOver; ShipHits is the total
// number of hits the sunk ship had taken, including the final one.
type AttackOutcome struct {
	Result   ShotResult
	Ship     string
	ShipHits int
}

// Miss returns a miss outcome.
func Miss() AttackOutcome { return AttackOutcome{Result: ResultMiss} }

// Hit returns a hit outcome.
func Hit() AttackOutcome { return AttackOutcome{Result: ResultHit} }

// Destroyed returns a sunk-ship outcome.
func Destroyed(ship string, hits int) AttackOutcome {
	return AttackOutcome{Result: ResultDestroyed, Ship: ship, ShipHits: hits}
}

// String describes the outcome, naming the ship when one was sunk.
func (o AttackOutcome) String() string {
	if o.Ship == "" {
		return o.Result.String()
	}
	return o.Result.String() + " " + o.Ship
}
