package config

import (
	"fmt"
	"math"
)

// ParsePreset converts a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q (easy, normal, hard)", s)
}

// HealthScaleForPreset returns the enemy health multiplier for a preset.
func HealthScaleForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.8
	case DifficultyHard:
		return 1.3
	default:
		return 1.0
	}
}

// ExtraLivesForPreset returns the lives added on top of the level's count.
func ExtraLivesForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 2
	default:
		return 0
	}
}

// ApplyPreset modifies the rules based on a difficulty preset.
// Presets scale the configured rules rather than replacing them.
func ApplyPreset(cfg *BattleConfig, preset DifficultyPreset) {
	cfg.Difficulty = preset
	cfg.Rules.EnemyHealthScale = clampF(cfg.Rules.EnemyHealthScale*HealthScaleForPreset(preset), 0.1, 10)
	cfg.Rules.ExtraLives += ExtraLivesForPreset(preset)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
