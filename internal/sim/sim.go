// Package sim runs headless games for benchmarking the targeting engines.
package sim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/match"
	"github.com/vovakirdan/tui-battleship/internal/registry"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

// Board describes the grid and fleet every simulated game uses.
type Board struct {
	Height        int
	Width         int
	Fleet         []sea.ShipKind
	AllowTouching bool
}

// DefaultBoard is the standard 10x10 board with the default fleet.
func DefaultBoard() Board {
	return Board{Height: 10, Width: 10, Fleet: sea.DefaultFleet}
}

func (b Board) deploy(rng *rand.Rand) (*sea.Grid, error) {
	g := sea.NewGrid(b.Height, b.Width)
	if err := g.Deploy(b.Fleet, rng, b.AllowTouching); err != nil {
		return nil, err
	}
	return g, nil
}

// Options configures a solo benchmark run.
type Options struct {
	Difficulty string
	Games      int
	Seed       int64
	Board      Board
	Logger     *log.Logger
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Shots  int
	Hits   int
	Faults int
}

// Report summarizes a benchmark run.
type Report struct {
	Difficulty string
	Games      []GameResult
	MinShots   int
	MaxShots   int
	MeanShots  float64
	Faults     int
}

// Run plays opts.Games solo games: one engine fires at a randomly deployed
// fleet until every ship is sunk.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, fmt.Errorf("sim: games must be positive, got %d", opts.Games)
	}
	if !registry.Exists(opts.Difficulty) {
		return Report{}, fmt.Errorf("sim: unknown difficulty %q", opts.Difficulty)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rep := Report{Difficulty: opts.Difficulty, MinShots: math.MaxInt}
	total := 0

	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res, err := playSolo(opts, rng)
		if err != nil {
			return rep, fmt.Errorf("sim: game %d: %w", i+1, err)
		}
		rep.Games = append(rep.Games, res)
		rep.MinShots = min(rep.MinShots, res.Shots)
		rep.MaxShots = max(rep.MaxShots, res.Shots)
		rep.Faults += res.Faults
		total += res.Shots
		if opts.Logger != nil {
			opts.Logger.Debug("game finished", "game", i+1, "shots", res.Shots, "faults", res.Faults)
		}
	}

	rep.MeanShots = float64(total) / float64(len(rep.Games))
	return rep, nil
}

// playSolo runs one engine against one fleet, replacing the engine on errors.
func playSolo(opts Options, rng *rand.Rand) (GameResult, error) {
	grid, err := opts.Board.deploy(rng)
	if err != nil {
		return GameResult{}, err
	}
	engineOpts := func() registry.Options {
		return registry.Options{Seed: rng.Int63(), Logger: opts.Logger}
	}
	op, err := registry.Create(opts.Difficulty, grid.View(), engineOpts())
	if err != nil {
		return GameResult{}, err
	}

	var res GameResult
	limit := opts.Board.Height * opts.Board.Width
	for !grid.AllDestroyed() {
		if res.Shots > limit {
			return res, errors.New("engine exceeded one shot per cell")
		}
		loc, err := op.NextShot()
		if err == nil {
			var out core.AttackOutcome
			out, err = grid.Shoot(loc)
			if err == nil {
				res.Shots++
				if out.Result == core.ResultHit || out.Result == core.ResultDestroyed {
					res.Hits++
				}
				if out.Result == core.ResultDestroyed && grid.AllDestroyed() {
					out.Result = core.ResultGameOver
				}
				err = op.ReportResult(loc, out)
			}
		}
		if err != nil {
			res.Faults++
			if opts.Logger != nil {
				opts.Logger.Error("engine fault, replacing", "tier", opts.Difficulty, "err", err)
			}
			if op, err = registry.Create(opts.Difficulty, grid.View(), engineOpts()); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

// DuelOptions configures a tier-vs-tier run.
type DuelOptions struct {
	Player1        string // Tier firing as Player1
	Player2        string // Tier firing as Player2
	Games          int
	Seed           int64
	Board          Board
	ExtraTurnOnHit bool
	Logger         *log.Logger
}

// DuelReport summarizes a duel run.
type DuelReport struct {
	Player1, Player2 string
	Wins1, Wins2     int
	Summaries        []match.Summary
}

// Duel plays full matches between two tiers. Players alternate who fires
// first.
func Duel(ctx context.Context, opts DuelOptions) (DuelReport, error) {
	if opts.Games <= 0 {
		return DuelReport{}, fmt.Errorf("sim: games must be positive, got %d", opts.Games)
	}
	for _, id := range []string{opts.Player1, opts.Player2} {
		if !registry.Exists(id) {
			return DuelReport{}, fmt.Errorf("sim: unknown difficulty %q", id)
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rep := DuelReport{Player1: opts.Player1, Player2: opts.Player2}

	for i := 0; i < opts.Games; i++ {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		first := core.Player1
		if i%2 == 1 {
			first = core.Player2
		}
		sum, err := playDuel(opts, first, rng)
		if err != nil {
			return rep, fmt.Errorf("sim: match %d: %w", i+1, err)
		}
		rep.Summaries = append(rep.Summaries, sum)
		switch sum.Winner {
		case core.Player1:
			rep.Wins1++
		case core.Player2:
			rep.Wins2++
		}
	}
	return rep, nil
}

func playDuel(opts DuelOptions, first core.PlayerID, rng *rand.Rand) (match.Summary, error) {
	g1, err := opts.Board.deploy(rng)
	if err != nil {
		return match.Summary{}, err
	}
	g2, err := opts.Board.deploy(rng)
	if err != nil {
		return match.Summary{}, err
	}

	m := match.New(g1, g2, match.Options{
		First:          first,
		ExtraTurnOnHit: opts.ExtraTurnOnHit,
		Logger:         opts.Logger,
	})

	engineOpts := func() registry.Options {
		return registry.Options{Seed: rng.Int63(), Logger: opts.Logger}
	}
	ops := map[core.PlayerID]registry.Opponent{}
	for _, p := range []core.PlayerID{core.Player1, core.Player2} {
		id := opts.Player1
		if p == core.Player2 {
			id = opts.Player2
		}
		op, err := registry.Create(id, m.Target(p).View(), engineOpts())
		if err != nil {
			return match.Summary{}, err
		}
		ops[p] = op
	}

	limit := 4 * opts.Board.Height * opts.Board.Width
	for turns := 0; !m.Over(); turns++ {
		if turns > limit {
			return m.Summary(), errors.New("match did not finish")
		}
		p := m.Turn()
		if _, err := m.PlayCPUTurn(ops[p]); err != nil {
			fresh, rerr := m.ReplaceFaulted(p, ops[p], err, engineOpts())
			if rerr != nil {
				return m.Summary(), rerr
			}
			ops[p] = fresh
		}
	}
	return m.Summary(), nil
}
