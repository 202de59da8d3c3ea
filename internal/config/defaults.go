package config

import (
	_ "embed"
)

//go:embed defaults/battle.yaml
var defaultBattleYAML []byte

// DefaultBattleConfig returns the default battle configuration.
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Economy: EconomyConfig{
			ResourcePerPeriod: 1,
			ResourceCap:       99,
			Period:            1000,
			RetreatRefund:     0.5,
		},
		Combat: CombatConfig{
			RangeTolerance:     0.5,
			BlockTolerance:     0.5,
			ProjectileSpeed:    8,
			ProjectileHitRange: 0.2,
			DetonateMultiplier: 4,
			DetonateReapply:    600,
			SPPerSecond:        1,
			TripleShotTargets:  3,
		},
		Spawn: SpawnConfig{
			FallbackInterval: 2000,
		},
		Interaction: InteractionConfig{
			SlowMotion: 0.2,
			TileSize:   1,
		},
		Rules: RulesConfig{
			EnemyHealthScale: 1.0,
			ExtraLives:       0,
		},
		Difficulty: DifficultyNormal,
	}
}
