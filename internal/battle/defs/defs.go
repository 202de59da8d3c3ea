// Package defs holds the data-only templates and level definitions the
// simulation is driven by. Nothing here has behaviour beyond lookups.
package defs

import (
	"fmt"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
)

// AttackType selects how an operator resolves an attack.
type AttackType int

const (
	AttackMelee    AttackType = iota // Instant single target
	AttackRanged                     // Single target via projectile
	AttackHeal                       // Restores health to the most wounded ally
	AttackArea                       // Instant, every hostile within AreaRadius of the target
	AttackTrueArea                   // Area damage that ignores defense
)

var attackTypeNames = map[AttackType]string{
	AttackMelee:    "melee",
	AttackRanged:   "ranged",
	AttackHeal:     "heal",
	AttackArea:     "area",
	AttackTrueArea: "true_area",
}

// String returns the string representation of an attack type.
func (a AttackType) String() string {
	if s, ok := attackTypeNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAttackType converts a name into an AttackType. Empty means melee.
func ParseAttackType(s string) (AttackType, error) {
	if s == "" {
		return AttackMelee, nil
	}
	for k, v := range attackTypeNames {
		if v == s {
			return k, nil
		}
	}
	return AttackMelee, fmt.Errorf("defs: unknown attack type %q", s)
}

// DeployClass is the tile class an operator may be deployed on.
type DeployClass int

const (
	DeployGround DeployClass = iota
	DeployElevated
)

// String returns the string representation of a deploy class.
func (d DeployClass) String() string {
	if d == DeployElevated {
		return "elevated"
	}
	return "ground"
}

// Special is a capability resolved once at load time.
type Special int

const (
	SpecialNone Special = iota
	// SpecialTripleShot hits up to three targets while the skill is active.
	SpecialTripleShot
	// SpecialResistShred applies status buildup ignoring resistance.
	SpecialResistShred
)

// ParseSpecial converts a name into a Special.
func ParseSpecial(s string) (Special, error) {
	switch s {
	case "", "none":
		return SpecialNone, nil
	case "triple_shot":
		return SpecialTripleShot, nil
	case "resist_shred":
		return SpecialResistShred, nil
	}
	return SpecialNone, fmt.Errorf("defs: unknown special %q", s)
}

// String returns the string representation of a special.
func (s Special) String() string {
	switch s {
	case SpecialTripleShot:
		return "triple_shot"
	case SpecialResistShred:
		return "resist_shred"
	default:
		return "none"
	}
}

// EnemyTemplate describes a hostile unit kind.
type EnemyTemplate struct {
	ID             string
	Name           string
	Glyph          rune
	HP             float64
	Speed          float64 // tiles per second
	Defense        float64
	Attack         float64
	AttackInterval float64 // ms
	AttackRange    float64 // tiles; 0 means only the blocking operator
	Resistances    map[anomaly.Type]float64
}

// Resistance returns the resistance to a status type.
func (e *EnemyTemplate) Resistance(t anomaly.Type) float64 {
	return e.Resistances[t]
}

// TileEffectSpec describes an environmental status source.
type TileEffectSpec struct {
	Status   anomaly.Type
	Potency  float64 // buildup per second
	Duration float64 // ms
}

// OperatorTemplate describes a defender unit kind.
type OperatorTemplate struct {
	ID               string
	Name             string
	Glyph            rune
	Cost             int
	Range            []combat.Offset
	AttackInterval   float64 // ms
	Damage           float64
	HP               float64
	Defense          float64
	Block            int
	AttackType       AttackType
	Deploy           DeployClass
	DamageMultiplier float64
	AreaRadius       float64
	Buildups         map[anomaly.Type]float64
	Skill            *Skill
	Special          Special
	OnDeath          *TileEffectSpec
}

// Multiplier returns the damage multiplier, defaulting to 1.
func (o *OperatorTemplate) Multiplier() float64 {
	if o.DamageMultiplier <= 0 {
		return 1
	}
	return o.DamageMultiplier
}

// SkillEventKind is the kind of one scripted skill step.
type SkillEventKind int

const (
	SkillHeal SkillEventKind = iota
	SkillStun
	SkillGrantResource
	SkillDamage
	SkillEnchant
	SkillDetonate
)

var skillEventNames = map[SkillEventKind]string{
	SkillHeal:          "heal",
	SkillStun:          "stun",
	SkillGrantResource: "grant_resource",
	SkillDamage:        "damage",
	SkillEnchant:       "enchant",
	SkillDetonate:      "detonate",
}

// String returns the string representation of a skill event kind.
func (k SkillEventKind) String() string {
	if s, ok := skillEventNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseSkillEventKind converts a name into a SkillEventKind.
func ParseSkillEventKind(s string) (SkillEventKind, error) {
	for k, v := range skillEventNames {
		if v == s {
			return k, nil
		}
	}
	return SkillHeal, fmt.Errorf("defs: unknown skill event %q", s)
}

// SkillEvent is one scripted step run on skill activation.
type SkillEvent struct {
	Kind     SkillEventKind
	Radius   float64 // tiles around the caster
	Amount   float64 // heal, damage or resource amount
	Duration float64 // ms for stun and enchant
	Status   anomaly.Type
	Value    float64 // enchant buildup per hit
	Splash   float64 // detonate splash radius around each burning unit
}

// Skill is an operator's manually activated ability.
type Skill struct {
	Name             string
	SPMax            float64
	Duration         float64 // ms
	AttackMultiplier float64 // applied to damage while active; 0 means 1
	Events           []SkillEvent
}

// Wave is a scheduled burst of hostile spawns.
type Wave struct {
	ID       string
	Time     float64 // ms of game time
	Enemy    string
	Count    int
	Interval float64 // ms between spawns
	Spawn    int
	Exit     int // -1 means nearest exit
}

// PlanAction is the kind of a scripted deployment step.
type PlanAction int

const (
	PlanDeploy PlanAction = iota
	PlanSkill
	PlanRetreat
)

// PlanStep is a command scheduled at a game time for headless runs.
// Skill and retreat steps refer to the operator deployed at Tile.
type PlanStep struct {
	Time     float64
	Action   PlanAction
	Operator string
	TileX    int
	TileY    int
	Facing   combat.Facing
}

// TileEffectPlacement is a tile effect present from level start.
type TileEffectPlacement struct {
	X, Y int
	TileEffectSpec
}

// Level is a complete battle definition.
type Level struct {
	ID            string
	Name          string
	Map           [][]int
	Waves         []Wave
	StartResource int
	Lives         int
	DeployCap     int
	TotalEnemies  int
	// EnemyPool feeds the fallback spawner when no waves are authored.
	EnemyPool   []string
	Operators   []string // operator roster available to the player
	TileEffects []TileEffectPlacement
	Plan        []PlanStep
	FilePath    string
}

// PlannedEnemies returns the number of hostiles the level will spawn.
func (l *Level) PlannedEnemies() int {
	if len(l.Waves) == 0 {
		return l.TotalEnemies
	}
	n := 0
	for _, w := range l.Waves {
		n += w.Count
	}
	return n
}

// Catalog indexes the available templates by id.
type Catalog struct {
	Enemies   map[string]*EnemyTemplate
	Operators map[string]*OperatorTemplate
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Enemies:   make(map[string]*EnemyTemplate),
		Operators: make(map[string]*OperatorTemplate),
	}
}

// Enemy returns the enemy template with the given id.
func (c *Catalog) Enemy(id string) (*EnemyTemplate, bool) {
	e, ok := c.Enemies[id]
	return e, ok
}

// Operator returns the operator template with the given id.
func (c *Catalog) Operator(id string) (*OperatorTemplate, bool) {
	o, ok := c.Operators[id]
	return o, ok
}

// Merge adds every template of other, overriding ids already present.
func (c *Catalog) Merge(other *Catalog) {
	for k, v := range other.Enemies {
		c.Enemies[k] = v
	}
	for k, v := range other.Operators {
		c.Operators[k] = v
	}
}
