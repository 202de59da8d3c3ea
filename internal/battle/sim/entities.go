package sim

import (
	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// GameState represents the lifecycle of a run.
type GameState int

const (
	StateIdle GameState = iota
	StatePlaying
	StateGameOver
	StateWon
)

// String returns the string representation of a game state.
func (s GameState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	case StateWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (s GameState) Terminal() bool {
	return s == StateGameOver || s == StateWon
}

// Enemy is a hostile unit walking a path.
type Enemy struct {
	ID        int
	Template  *defs.EnemyTemplate
	Pos       combat.Vec2
	HP        float64
	MaxHP     float64
	Speed     float64
	Defense   float64
	Path      grid.Path
	PathIndex int // index of the node being walked toward
	Facing    combat.Facing

	// Blocked is recomputed every tick from operator block capacity.
	Blocked   bool
	BlockedBy int
	// Frozen mirrors an active freeze or paralysis effect.
	Frozen bool

	AttackCooldown float64
	Status         anomaly.Set
	Leaked         bool
}

// Alive reports whether the enemy is still on the field.
func (e *Enemy) Alive() bool {
	return e.HP > 0 && !e.Leaked
}

// Immobile reports whether the enemy cannot move this tick.
func (e *Enemy) Immobile() bool {
	return e.Blocked || e.Frozen
}

// Progress is how far along its path the enemy is, in nodes.
func (e *Enemy) Progress() float64 {
	if e.PathIndex >= len(e.Path) {
		return float64(len(e.Path))
	}
	next := combat.TileCenter(e.Path[e.PathIndex])
	return float64(e.PathIndex) - combat.Distance(e.Pos, next)
}

// Resistance returns the enemy's resistance to a status type.
func (e *Enemy) Resistance(t anomaly.Type) float64 {
	return e.Template.Resistance(t)
}

// Enchantment is a temporary status buildup granted to an operator.
type Enchantment struct {
	Status    anomaly.Type
	Value     float64
	Remaining float64
}

// Operator is a deployed defender.
type Operator struct {
	ID             int
	Template       *defs.OperatorTemplate
	Tile           grid.Coord
	Facing         combat.Facing
	HP             float64
	MaxHP          float64
	AttackCooldown float64
	SP             float64
	SPMax          float64
	SkillActive    bool
	SkillRemaining float64
	Enchant        *Enchantment
}

// Pos returns the operator's continuous position.
func (o *Operator) Pos() combat.Vec2 {
	return combat.TileCenter(o.Tile)
}

// Alive reports whether the operator is still deployed.
func (o *Operator) Alive() bool {
	return o.HP > 0
}

// SkillReady reports whether the skill can be activated.
func (o *Operator) SkillReady() bool {
	return o.Template.Skill != nil && !o.SkillActive && o.SP >= o.SPMax
}

// Projectile is a shot travelling toward an enemy.
type Projectile struct {
	ID       int
	Kind     defs.AttackType
	Pos      combat.Vec2
	TargetID int
	SourceID int
	Speed    float64
	Damage   float64 // already mitigated by the target's defense
	Hits     []anomaly.Hit
	Done     bool
}

// TileEffect is an environmental status source anchored to a tile.
type TileEffect struct {
	Tile      grid.Coord
	Status    anomaly.Type
	Potency   float64 // buildup per second
	Remaining float64
	Duration  float64
}

// Stats holds the run-level counters shown by the HUD.
type Stats struct {
	Resource     int
	Kills        int
	Leaks        int
	Lives        int
	TotalEnemies int
	Spawned      int
	Wave         int
	WaveCount    int
	Deployed     int
	DeployCap    int
}

// Resolved returns the number of hostiles that have left the field.
func (s Stats) Resolved() int {
	return s.Kills + s.Leaks
}
