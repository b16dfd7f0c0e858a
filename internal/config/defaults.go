package config

import (
	_ "embed"
	"slices"

	"github.com/vovakirdan/tui-battleship/internal/sea"
)

//go:embed defaults/battleship.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Grid:  GridConfig{Height: 10, Width: 10},
		Fleet: slices.Clone(sea.DefaultFleet),
		Rules: RulesConfig{
			AllowTouching:  false,
			ExtraTurnOnHit: true,
			First:          FirstPlayer,
		},
		AI: AIConfig{
			Difficulty: string(DifficultyHard),
			ThinkTicks: 20,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
