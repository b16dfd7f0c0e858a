// Package battleship implements the playable Player vs CPU battleship game.
// The human fires at the enemy grid with a cursor; the CPU answers through a
// targeting engine chosen by difficulty.
package battleship

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/match"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

// Game identity
const (
	ID    = "battleship"
	Title = "Battleship"
)

const maxEvents = 50 // Event log lines kept for the side panel

// Options configures a game instance.
type Options struct {
	Logger *log.Logger
}

// Game implements the battleship game logic.
type Game struct {
	cfg    config.Config
	logger *log.Logger

	runtime core.RuntimeConfig
	rng     *rand.Rand
	match   *match.Match
	cpu     registry.Opponent

	cursor     core.Location
	lastCPU    core.Location
	hasLastCPU bool
	think      int // Ticks until the CPU fires
	events     []string

	gameOver  bool
	paused    bool
	score     int
	tickCount int
	err       error // Setup failure shown instead of the boards
}

// New creates a new game instance.
func New(cfg config.Config, opts Options) *Game {
	return &Game{cfg: cfg, logger: opts.Logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Difficulty returns the CPU tier ID.
func (g *Game) Difficulty() string {
	return g.cfg.AI.Difficulty
}

// Err returns the setup error of the current game, if any.
func (g *Game) Err() error {
	return g.err
}

// Reset deploys both fleets and starts a new match.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	g.cursor = core.L(0, 0)
	g.hasLastCPU = false
	g.think = g.cfg.AI.ThinkTicks
	g.events = nil
	g.gameOver = false
	g.paused = false
	g.score = 0
	g.tickCount = 0
	g.err = nil
	g.match = nil
	g.cpu = nil

	if err := g.setup(); err != nil {
		g.err = err
		g.gameOver = true
		g.logAt(log.ErrorLevel, "game setup failed", "err", err)
		return
	}
	g.logAt(log.InfoLevel, "game started", "match", g.match.ID().Short(), "difficulty", g.cfg.AI.Difficulty, "first", g.match.Turn())
}

func (g *Game) setup() error {
	h, w := g.cfg.Grid.Height, g.cfg.Grid.Width

	own, enemy := sea.NewGrid(h, w), sea.NewGrid(h, w)
	if err := own.Deploy(g.cfg.Fleet, g.rng, g.cfg.Rules.AllowTouching); err != nil {
		return fmt.Errorf("deploy player fleet: %w", err)
	}
	if err := enemy.Deploy(g.cfg.Fleet, g.rng, g.cfg.Rules.AllowTouching); err != nil {
		return fmt.Errorf("deploy cpu fleet: %w", err)
	}

	first := core.Player1
	switch g.cfg.Rules.First {
	case config.FirstCPU:
		first = core.Player2
	case config.FirstRandom:
		if g.rng.Intn(2) == 1 {
			first = core.Player2
		}
	}

	g.match = match.New(own, enemy, match.Options{
		First:          first,
		ExtraTurnOnHit: g.cfg.Rules.ExtraTurnOnHit,
		Logger:         g.logger,
	})
	g.match.SetListener(g.onEvent)

	cpu, err := registry.Create(g.cfg.AI.Difficulty, g.match.Target(core.Player2).View(), g.engineOptions())
	if err != nil {
		return err
	}
	g.cpu = cpu
	return nil
}

func (g *Game) engineOptions() registry.Options {
	return registry.Options{Seed: g.rng.Int63(), Logger: g.logger}
}

func (g *Game) onEvent(ev match.Event) {
	g.addEvent(ev.String())
	if ev.Player == core.Player2 {
		g.lastCPU, g.hasLastCPU = ev.At, true
	}
}

func (g *Game) addEvent(line string) {
	g.events = append(g.events, line)
	if len(g.events) > maxEvents {
		g.events = g.events[len(g.events)-maxEvents:]
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	g.moveCursor(in)

	if g.match.Turn() == core.Player1 {
		if in.Has(core.ActionFire) {
			g.playerFire()
		}
	} else {
		g.cpuTick()
	}

	if g.match.Over() {
		g.finish()
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	h, w := g.cfg.Grid.Height, g.cfg.Grid.Width
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Column--
	case in.Has(core.ActionRight):
		g.cursor.Column++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, h-1)
	g.cursor.Column = core.Clamp(g.cursor.Column, 0, w-1)
}

func (g *Game) playerFire() {
	ev, err := g.match.Shoot(g.cursor)
	if err != nil {
		g.logAt(log.WarnLevel, "player shot rejected", "at", g.cursor, "err", err)
		return
	}
	if ev.Outcome.Result == core.ResultAlreadyShot {
		return
	}
	if g.match.Turn() == core.Player2 {
		g.think = g.cfg.AI.ThinkTicks
	}
}

// cpuTick counts down the think delay and lets the CPU fire once it expires.
// A faulted engine is replaced by a fresh one of the same tier.
func (g *Game) cpuTick() {
	if g.think > 0 {
		g.think--
		return
	}
	g.think = g.cfg.AI.ThinkTicks

	_, err := g.match.PlayCPUTurn(g.cpu)
	if err == nil || errors.Is(err, match.ErrMatchOver) {
		return
	}
	fresh, rerr := g.match.ReplaceFaulted(core.Player2, g.cpu, err, g.engineOptions())
	if rerr != nil {
		g.err = rerr
		g.gameOver = true
		g.logAt(log.ErrorLevel, "cannot replace cpu engine", "err", rerr)
		return
	}
	g.cpu = fresh
	g.addEvent("CPU regroups its targeting")
}

func (g *Game) finish() {
	g.gameOver = true
	sum := g.match.Summary()
	if sum.Winner == core.Player1 {
		g.score = Score(g.cfg.Grid.Height*g.cfg.Grid.Width, sum.Shots1, sum.Hits1)
	}
}

// Score rates a win: ten points per cell left unfired plus an accuracy
// bonus of up to 100.
func Score(cells, shots, hits int) int {
	if shots == 0 {
		return 0
	}
	return max(0, (cells-shots)*10+hits*100/shots)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
	if g.match != nil {
		st.Winner = g.match.Winner()
	}
	return st
}

// Summary returns the match summary, or false if no match is running.
func (g *Game) Summary() (match.Summary, bool) {
	if g.match == nil {
		return match.Summary{}, false
	}
	return g.match.Summary(), true
}

// Abandon ends a running match without a winner.
func (g *Game) Abandon() {
	if g.match != nil && !g.match.Over() {
		g.match.Abandon()
	}
}

// Events returns the event log, oldest first.
func (g *Game) Events() []string {
	return g.events
}

func (g *Game) logAt(level log.Level, msg string, keyvals ...any) {
	if g.logger == nil {
		return
	}
	g.logger.Log(level, msg, keyvals...)
}
