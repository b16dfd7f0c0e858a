package battleship

import (
	"strings"
	"testing"

	_ "github.com/vovakirdan/tui-battleship/internal/ai"
	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

func testConfig(difficulty string, think int) config.Config {
	cfg := config.DefaultConfig()
	cfg.AI.Difficulty = difficulty
	cfg.AI.ThinkTicks = think
	return cfg
}

func newGame(t *testing.T, cfg config.Config, seed int64) *Game {
	t.Helper()
	g := New(cfg, Options{})
	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: seed})
	if g.Err() != nil {
		t.Fatalf("Reset() failed: %v", g.Err())
	}
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// playOut fires at every cell in row-major order whenever it is the
// player's turn, until the game ends.
func playOut(t *testing.T, g *Game) {
	t.Helper()
	h, w := g.cfg.Grid.Height, g.cfg.Grid.Width
	next := 0
	for ticks := 0; !g.State().GameOver; ticks++ {
		if ticks > 100000 {
			t.Fatal("game did not finish")
		}
		if g.match.Turn() == core.Player1 && next < h*w {
			g.cursor = core.L(next/w, next%w)
			next++
			g.Step(frame(core.ActionFire))
			continue
		}
		g.Step(frame())
	}
}

func TestDeterminism(t *testing.T) {
	cfg := testConfig("hard", 2)
	g1 := newGame(t, cfg, 12345)
	g2 := newGame(t, cfg, 12345)

	inputs := []core.Action{core.ActionRight, core.ActionFire, core.ActionDown, core.ActionFire, core.ActionNone}
	for i := 0; i < 200; i++ {
		f := frame(inputs[i%len(inputs)])
		g1.Step(f)
		g2.Step(f)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestCursorClamped(t *testing.T) {
	g := newGame(t, testConfig("easy", 0), 1)

	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionUp))
		g.Step(frame(core.ActionLeft))
	}
	if snap := g.Snapshot(); snap.CursorRow != 0 || snap.CursorCol != 0 {
		t.Errorf("cursor = (%d,%d), expected (0,0)", snap.CursorRow, snap.CursorCol)
	}
	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionDown))
		g.Step(frame(core.ActionRight))
	}
	if snap := g.Snapshot(); snap.CursorRow != 9 || snap.CursorCol != 9 {
		t.Errorf("cursor = (%d,%d), expected (9,9)", snap.CursorRow, snap.CursorCol)
	}
}

func TestPlayerShot(t *testing.T) {
	g := newGame(t, testConfig("easy", 5), 7)

	g.Step(frame(core.ActionFire))
	snap := g.Snapshot()
	if snap.PlayerShots != 1 {
		t.Fatalf("player shots = %d, expected 1", snap.PlayerShots)
	}
	if snap.LastEvent == "" || !strings.HasPrefix(snap.LastEvent, "Player fires A1") {
		t.Errorf("last event = %q", snap.LastEvent)
	}

	// Firing at the same cell again is ignored.
	if snap.Turn == core.Player1 {
		g.Step(frame(core.ActionFire))
		if g.Snapshot().PlayerShots != 1 {
			t.Error("repeated shot should not be counted")
		}
	}
}

func TestCPUWaitsThinkTicks(t *testing.T) {
	cfg := testConfig("medium", 10)
	cfg.Rules.First = config.FirstCPU
	g := newGame(t, cfg, 3)

	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	if g.Snapshot().CPUShots != 0 {
		t.Fatal("CPU fired before its think delay")
	}
	g.Step(frame())
	if g.Snapshot().CPUShots != 1 {
		t.Errorf("CPU shots = %d, expected 1", g.Snapshot().CPUShots)
	}
}

func TestPauseStopsCPU(t *testing.T) {
	cfg := testConfig("hard", 0)
	cfg.Rules.First = config.FirstCPU
	g := newGame(t, cfg, 3)

	g.Step(frame(core.ActionPause))
	for i := 0; i < 50; i++ {
		g.Step(frame())
	}
	if !g.State().Paused || g.Snapshot().CPUShots != 0 {
		t.Error("CPU should not fire while paused")
	}
	g.Step(frame(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestFullGame(t *testing.T) {
	for _, difficulty := range []string{"easy", "medium", "hard"} {
		t.Run(difficulty, func(t *testing.T) {
			g := newGame(t, testConfig(difficulty, 1), 99)
			playOut(t, g)

			snap := g.Snapshot()
			if !snap.GameOver || snap.Winner == core.NoPlayer {
				t.Fatalf("game over=%v winner=%v", snap.GameOver, snap.Winner)
			}
			if snap.Winner == core.Player1 {
				if snap.CPUAfloat != 0 {
					t.Error("player won with CPU ships afloat")
				}
				if want := Score(100, snap.PlayerShots, snap.PlayerHits); snap.Score != want {
					t.Errorf("score = %d, expected %d", snap.Score, want)
				}
			} else {
				if snap.PlayerAfloat != 0 {
					t.Error("CPU won with player ships afloat")
				}
				if snap.Score != 0 {
					t.Errorf("score on a loss = %d, expected 0", snap.Score)
				}
			}
			if snap.Faults != 0 {
				t.Errorf("faults = %d, expected 0", snap.Faults)
			}

			sum, ok := g.Summary()
			if !ok || sum.Winner != snap.Winner {
				t.Errorf("summary = %+v", sum)
			}
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		cells, shots, hits, want int
	}{
		{100, 0, 0, 0},
		{100, 15, 15, 950},
		{100, 60, 15, 425},
		{100, 100, 15, 15},
	}
	for _, tt := range tests {
		if got := Score(tt.cells, tt.shots, tt.hits); got != tt.want {
			t.Errorf("Score(%d, %d, %d) = %d, expected %d", tt.cells, tt.shots, tt.hits, got, tt.want)
		}
	}
}

func TestSetupFailure(t *testing.T) {
	cfg := testConfig("hard", 0)
	cfg.Grid = config.GridConfig{Height: 3, Width: 3}
	cfg.Fleet = []sea.ShipKind{{Name: "A", Size: 3}, {Name: "B", Size: 3}, {Name: "C", Size: 3}}

	g := New(cfg, Options{})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g.Err() == nil || !g.State().GameOver {
		t.Fatal("impossible fleet should fail setup")
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CANNOT START GAME") {
		t.Error("setup error should be rendered")
	}
	g.Step(frame(core.ActionFire)) // must not panic
}

func TestUnknownDifficulty(t *testing.T) {
	g := New(testConfig("impossible", 0), Options{})
	g.Reset(core.RuntimeConfig{Seed: 1})
	if g.Err() == nil {
		t.Error("unknown difficulty should fail setup")
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, testConfig("hard", 0), 5)
	g.Step(frame(core.ActionFire))

	screen := core.NewScreen(100, 30)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"YOUR FLEET", "ENEMY WATERS", "LOG", "Player fires A1"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	// Narrow screens move the log below the boards.
	narrow := core.NewScreen(60, 30)
	g.Render(narrow)
	if !strings.Contains(narrow.String(), "LOG") {
		t.Error("narrow render should still show the log")
	}
}

func TestEventLogBounded(t *testing.T) {
	g := newGame(t, testConfig("easy", 0), 1)
	for i := 0; i < maxEvents+10; i++ {
		g.addEvent("line")
	}
	if len(g.Events()) != maxEvents {
		t.Errorf("events = %d, expected %d", len(g.Events()), maxEvents)
	}
}
