package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets from easiest to hardest.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParsePreset validates a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, medium or hard)", s)
}

// thinkTicksForPreset returns how long the CPU pauses before firing.
func thinkTicksForPreset(p DifficultyPreset) int {
	switch p {
	case DifficultyEasy:
		return 30
	case DifficultyMedium:
		return 24
	default:
		return 20
	}
}

// ApplyPreset selects the AI tier for a preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.AI.Difficulty = string(preset)
	cfg.AI.ThinkTicks = thinkTicksForPreset(preset)
}
