// Package config provides YAML-based game configuration loading and
// difficulty presets for the battleship game.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/sea"
)

// MaxGridSize bounds both grid dimensions so columns fit the A-Z labels.
const MaxGridSize = 26

// Config contains all configuration for a battleship game.
type Config struct {
	Grid  GridConfig     `yaml:"grid"`
	Fleet []sea.ShipKind `yaml:"fleet"`
	Rules RulesConfig    `yaml:"rules"`
	AI    AIConfig       `yaml:"ai"`
}

// GridConfig defines the board size shared by both players.
type GridConfig struct {
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// RulesConfig defines the turn and placement rules.
type RulesConfig struct {
	AllowTouching  bool   `yaml:"allow_touching"`    // Ships may share edges and corners
	ExtraTurnOnHit bool   `yaml:"extra_turn_on_hit"` // Shooter keeps the turn until a miss
	First          string `yaml:"first"`             // "player", "cpu" or "random"
}

// AIConfig defines the CPU opponent.
type AIConfig struct {
	Difficulty string `yaml:"difficulty"`  // Registered tier ID
	ThinkTicks int    `yaml:"think_ticks"` // Delay before the CPU fires, in ticks
}

// Who fires first.
const (
	FirstPlayer = "player"
	FirstCPU    = "cpu"
	FirstRandom = "random"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Validate checks the configuration for values no game can be played with.
func (c Config) Validate() error {
	h, w := c.Grid.Height, c.Grid.Width
	if h <= 0 || w <= 0 {
		return fmt.Errorf("%w: grid %dx%d is empty", ErrInvalid, h, w)
	}
	if h > MaxGridSize || w > MaxGridSize {
		return fmt.Errorf("%w: grid %dx%d exceeds %dx%d", ErrInvalid, h, w, MaxGridSize, MaxGridSize)
	}
	if len(c.Fleet) == 0 {
		return fmt.Errorf("%w: fleet is empty", ErrInvalid)
	}
	for _, k := range c.Fleet {
		if k.Size <= 0 {
			return fmt.Errorf("%w: ship %q has size %d", ErrInvalid, k.Name, k.Size)
		}
		if k.Size > max(h, w) {
			return fmt.Errorf("%w: ship %q (size %d) does not fit a %dx%d grid", ErrInvalid, k.Name, k.Size, h, w)
		}
	}
	if cells := sea.FleetCells(c.Fleet); cells > h*w {
		return fmt.Errorf("%w: fleet needs %d cells, grid has %d", ErrInvalid, cells, h*w)
	}
	if c.AI.Difficulty == "" {
		return fmt.Errorf("%w: ai.difficulty is empty", ErrInvalid)
	}
	if c.AI.ThinkTicks < 0 {
		return fmt.Errorf("%w: ai.think_ticks is negative", ErrInvalid)
	}
	switch c.Rules.First {
	case FirstPlayer, FirstCPU, FirstRandom:
	default:
		return fmt.Errorf("%w: rules.first %q", ErrInvalid, c.Rules.First)
	}
	return nil
}
