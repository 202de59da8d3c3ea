// Package config provides YAML-based battle tuning and difficulty presets.
package config

// BattleConfig contains all tuning for the battle simulation.
type BattleConfig struct {
	Economy     EconomyConfig     `yaml:"economy"`
	Combat      CombatConfig      `yaml:"combat"`
	Spawn       SpawnConfig       `yaml:"spawn"`
	Interaction InteractionConfig `yaml:"interaction"`
	Rules       RulesConfig       `yaml:"rules"`
	Difficulty  DifficultyPreset  `yaml:"difficulty"`
}

// EconomyConfig defines deployment point income.
type EconomyConfig struct {
	ResourcePerPeriod int     `yaml:"resource_per_period"`
	ResourceCap       int     `yaml:"resource_cap"`
	Period            float64 `yaml:"period"` // ms
	RetreatRefund     float64 `yaml:"retreat_refund"`
}

// CombatConfig defines combat tolerances and skill tuning.
type CombatConfig struct {
	RangeTolerance     float64 `yaml:"range_tolerance"`      // tiles
	BlockTolerance     float64 `yaml:"block_tolerance"`      // tiles
	ProjectileSpeed    float64 `yaml:"projectile_speed"`     // tiles per second
	ProjectileHitRange float64 `yaml:"projectile_hit_range"` // tiles
	DetonateMultiplier float64 `yaml:"detonate_multiplier"`
	DetonateReapply    float64 `yaml:"detonate_reapply"` // flat burn buildup
	SPPerSecond        float64 `yaml:"sp_per_second"`
	TripleShotTargets  int     `yaml:"triple_shot_targets"`
}

// SpawnConfig defines the fallback spawner used by levels without waves.
type SpawnConfig struct {
	FallbackInterval float64 `yaml:"fallback_interval"` // ms
}

// InteractionConfig defines how the interaction adapter scales time.
type InteractionConfig struct {
	SlowMotion float64 `yaml:"slow_motion"`
	TileSize   float64 `yaml:"tile_size"` // pointer units per tile for drag facing
}

// RulesConfig defines run-level modifiers.
type RulesConfig struct {
	EnemyHealthScale float64 `yaml:"enemy_health_scale"`
	ExtraLives       int     `yaml:"extra_lives"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
