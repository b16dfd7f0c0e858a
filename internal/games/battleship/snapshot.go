package battleship

import "github.com/vovakirdan/tui-battleship/internal/core"

// Snapshot contains the observable state of a game.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick         int
	CursorRow    int
	CursorCol    int
	Turn         core.PlayerID
	PlayerShots  int
	PlayerHits   int
	CPUShots     int
	CPUHits      int
	PlayerAfloat int // Player ships still afloat
	CPUAfloat    int // CPU ships still afloat
	GameOver     bool
	Winner       core.PlayerID
	Score        int
	Faults       int
	LastEvent    string
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      g.tickCount,
		CursorRow: g.cursor.Row,
		CursorCol: g.cursor.Column,
		GameOver:  g.gameOver,
		Score:     g.score,
	}
	if n := len(g.events); n > 0 {
		snap.LastEvent = g.events[n-1]
	}
	if g.match == nil {
		return snap
	}
	snap.Turn = g.match.Turn()
	snap.PlayerShots = g.match.Shots(core.Player1)
	snap.PlayerHits = g.match.Hits(core.Player1)
	snap.CPUShots = g.match.Shots(core.Player2)
	snap.CPUHits = g.match.Hits(core.Player2)
	snap.PlayerAfloat = g.match.Grid(core.Player1).Remaining()
	snap.CPUAfloat = g.match.Grid(core.Player2).Remaining()
	snap.Winner = g.match.Winner()
	snap.Faults = g.match.Faults()
	return snap
}
