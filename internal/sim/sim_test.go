package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/ai"
	"github.com/vovakirdan/tui-battleship/internal/sea"
)

func TestRun(t *testing.T) {
	cells := sea.FleetCells(sea.DefaultFleet)
	means := map[string]float64{}

	for _, tier := range []string{ai.DifficultyEasy, ai.DifficultyMedium, ai.DifficultyHard} {
		t.Run(tier, func(t *testing.T) {
			rep, err := Run(context.Background(), Options{Difficulty: tier, Games: 30, Seed: 1, Board: DefaultBoard()})
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if len(rep.Games) != 30 {
				t.Fatalf("%d games played", len(rep.Games))
			}
			if rep.MinShots < cells || rep.MaxShots > 100 {
				t.Errorf("shots out of range: min %d max %d", rep.MinShots, rep.MaxShots)
			}
			if rep.Faults != 0 {
				t.Errorf("faults = %d, expected 0", rep.Faults)
			}
			for _, g := range rep.Games {
				if g.Hits != cells {
					t.Errorf("game with %d hits, expected %d", g.Hits, cells)
				}
			}
			means[tier] = rep.MeanShots
		})
	}

	if means[ai.DifficultyHard] >= means[ai.DifficultyEasy] {
		t.Errorf("hard (%.1f) should need fewer shots than easy (%.1f)", means[ai.DifficultyHard], means[ai.DifficultyEasy])
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Difficulty: ai.DifficultyHard, Games: 5, Seed: 42, Board: DefaultBoard()}
	a, _ := Run(context.Background(), opts)
	b, _ := Run(context.Background(), opts)
	for i := range a.Games {
		if a.Games[i] != b.Games[i] {
			t.Fatalf("game %d differs: %+v vs %+v", i, a.Games[i], b.Games[i])
		}
	}
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := Run(ctx, Options{Difficulty: "nope", Games: 1, Board: DefaultBoard()}); err == nil {
		t.Error("unknown difficulty should fail")
	}
	if _, err := Run(ctx, Options{Difficulty: ai.DifficultyEasy, Board: DefaultBoard()}); err == nil {
		t.Error("zero games should fail")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Run(cancelled, Options{Difficulty: ai.DifficultyEasy, Games: 3, Board: DefaultBoard()}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() with cancelled context = %v", err)
	}

	tiny := Board{Height: 3, Width: 3, Fleet: []sea.ShipKind{{Name: "Carrier", Size: 5}}}
	if _, err := Run(ctx, Options{Difficulty: ai.DifficultyEasy, Games: 1, Board: tiny}); !errors.Is(err, sea.ErrDeployFailed) {
		t.Errorf("Run() on an impossible board = %v", err)
	}
}

func TestDuel(t *testing.T) {
	rep, err := Duel(context.Background(), DuelOptions{
		Player1:        ai.DifficultyHard,
		Player2:        ai.DifficultyEasy,
		Games:          10,
		Seed:           7,
		Board:          DefaultBoard(),
		ExtraTurnOnHit: true,
	})
	if err != nil {
		t.Fatalf("Duel() failed: %v", err)
	}
	if rep.Wins1+rep.Wins2 != 10 || len(rep.Summaries) != 10 {
		t.Fatalf("report = %+v", rep)
	}
	if rep.Wins1 <= rep.Wins2 {
		t.Errorf("hard won %d of 10 against easy", rep.Wins1)
	}
	for _, s := range rep.Summaries {
		if s.Faults != 0 {
			t.Errorf("match %s had %d faults", s.ID.Short(), s.Faults)
		}
	}
}

func TestDuelErrors(t *testing.T) {
	if _, err := Duel(context.Background(), DuelOptions{Player1: "hard", Player2: "nope", Games: 1, Board: DefaultBoard()}); err == nil {
		t.Error("unknown difficulty should fail")
	}
}
