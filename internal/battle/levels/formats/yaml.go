// Package formats provides pluggable battle file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"gopkg.in/yaml.v3"
)

// YAMLDocument is the top-level structure of a battle file.
// A file may carry templates, a level, or both.
type YAMLDocument struct {
	Enemies   []YAMLEnemy    `yaml:"enemies,omitempty"`
	Operators []YAMLOperator `yaml:"operators,omitempty"`
	Level     *YAMLLevel     `yaml:"level,omitempty"`
}

// YAMLEnemy represents a hostile template.
type YAMLEnemy struct {
	ID             string             `yaml:"id"`
	Name           string             `yaml:"name"`
	Glyph          string             `yaml:"glyph,omitempty"`
	HP             float64            `yaml:"hp"`
	Speed          float64            `yaml:"speed"`
	Defense        float64            `yaml:"defense,omitempty"`
	Attack         float64            `yaml:"attack,omitempty"`
	AttackInterval float64            `yaml:"attack_interval,omitempty"`
	AttackRange    float64            `yaml:"attack_range,omitempty"`
	Resistances    map[string]float64 `yaml:"resistances,omitempty"`
}

// YAMLTileEffect represents a tile effect, optionally anchored at a tile.
type YAMLTileEffect struct {
	X        int     `yaml:"x,omitempty"`
	Y        int     `yaml:"y,omitempty"`
	Status   string  `yaml:"status"`
	Potency  float64 `yaml:"potency"`
	Duration float64 `yaml:"duration"`
}

// YAMLSkillEvent represents one scripted skill step.
type YAMLSkillEvent struct {
	Kind     string  `yaml:"kind"`
	Radius   float64 `yaml:"radius,omitempty"`
	Amount   float64 `yaml:"amount,omitempty"`
	Duration float64 `yaml:"duration,omitempty"`
	Status   string  `yaml:"status,omitempty"`
	Value    float64 `yaml:"value,omitempty"`
	Splash   float64 `yaml:"splash,omitempty"`
}

// YAMLSkill represents an operator skill.
type YAMLSkill struct {
	Name             string           `yaml:"name"`
	SP               float64          `yaml:"sp"`
	Duration         float64          `yaml:"duration"`
	AttackMultiplier float64          `yaml:"attack_multiplier,omitempty"`
	Events           []YAMLSkillEvent `yaml:"events,omitempty"`
}

// YAMLOperator represents a defender template.
type YAMLOperator struct {
	ID               string             `yaml:"id"`
	Name             string             `yaml:"name"`
	Glyph            string             `yaml:"glyph,omitempty"`
	Cost             int                `yaml:"cost"`
	Range            [][2]int           `yaml:"range"`
	AttackInterval   float64            `yaml:"attack_interval"`
	Damage           float64            `yaml:"damage"`
	HP               float64            `yaml:"hp"`
	Defense          float64            `yaml:"defense,omitempty"`
	Block            int                `yaml:"block,omitempty"`
	AttackType       string             `yaml:"attack_type,omitempty"`
	Deploy           string             `yaml:"deploy,omitempty"`
	DamageMultiplier float64            `yaml:"damage_multiplier,omitempty"`
	AreaRadius       float64            `yaml:"area_radius,omitempty"`
	Buildups         map[string]float64 `yaml:"buildups,omitempty"`
	Skill            *YAMLSkill         `yaml:"skill,omitempty"`
	Special          string             `yaml:"special,omitempty"`
	OnDeath          *YAMLTileEffect    `yaml:"on_death,omitempty"`
}

// YAMLWave represents a scheduled spawn burst.
type YAMLWave struct {
	ID       string  `yaml:"id"`
	Time     float64 `yaml:"time"`
	Enemy    string  `yaml:"enemy"`
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
	Spawn    int     `yaml:"spawn"`
	Exit     *int    `yaml:"exit,omitempty"`
}

// YAMLPlanStep represents one scripted command.
type YAMLPlanStep struct {
	Time     float64 `yaml:"time"`
	Action   string  `yaml:"action"`
	Operator string  `yaml:"operator,omitempty"`
	Tile     [2]int  `yaml:"tile"`
	Facing   string  `yaml:"facing,omitempty"`
}

// YAMLLevel represents a battle level.
type YAMLLevel struct {
	ID            string           `yaml:"id"`
	Name          string           `yaml:"name"`
	Map           [][]int          `yaml:"map"`
	StartResource int              `yaml:"start_resource"`
	Lives         int              `yaml:"lives"`
	DeployCap     int              `yaml:"deploy_cap"`
	TotalEnemies  int              `yaml:"total_enemies,omitempty"`
	EnemyPool     []string         `yaml:"enemy_pool,omitempty"`
	Operators     []string         `yaml:"operators,omitempty"`
	Waves         []YAMLWave       `yaml:"waves,omitempty"`
	TileEffects   []YAMLTileEffect `yaml:"tile_effects,omitempty"`
	Plan          []YAMLPlanStep   `yaml:"plan,omitempty"`
}

// Document is a parsed battle file.
type Document struct {
	Catalog *defs.Catalog
	Level   *defs.Level // nil if the file defines no level
}

// ParseYAML parses a YAML battle file.
func ParseYAML(data []byte) (Document, error) {
	var yd YAMLDocument
	if err := yaml.Unmarshal(data, &yd); err != nil {
		return Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	doc := Document{Catalog: defs.NewCatalog()}
	for _, ye := range yd.Enemies {
		e, err := convertEnemy(ye)
		if err != nil {
			return Document{}, err
		}
		doc.Catalog.Enemies[e.ID] = e
	}
	for _, yo := range yd.Operators {
		o, err := convertOperator(yo)
		if err != nil {
			return Document{}, err
		}
		doc.Catalog.Operators[o.ID] = o
	}
	if yd.Level != nil {
		lvl, err := convertLevel(*yd.Level)
		if err != nil {
			return Document{}, err
		}
		doc.Level = lvl
	}
	return doc, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func glyph(s, fallback string) rune {
	if s == "" {
		s = fallback
	}
	for _, r := range s {
		return r
	}
	return '?'
}

func statusMap(in map[string]float64) (map[anomaly.Type]float64, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[anomaly.Type]float64, len(in))
	for k, v := range in {
		t, err := anomaly.Parse(k)
		if err != nil {
			return nil, err
		}
		out[t] = v
	}
	return out, nil
}

func convertTileEffect(yt YAMLTileEffect) (defs.TileEffectSpec, error) {
	t, err := anomaly.Parse(yt.Status)
	if err != nil {
		return defs.TileEffectSpec{}, err
	}
	return defs.TileEffectSpec{Status: t, Potency: yt.Potency, Duration: yt.Duration}, nil
}

func convertEnemy(ye YAMLEnemy) (*defs.EnemyTemplate, error) {
	res, err := statusMap(ye.Resistances)
	if err != nil {
		return nil, fmt.Errorf("enemy %s: %w", ye.ID, err)
	}
	return &defs.EnemyTemplate{
		ID:             ye.ID,
		Name:           ye.Name,
		Glyph:          glyph(ye.Glyph, ye.ID),
		HP:             ye.HP,
		Speed:          ye.Speed,
		Defense:        ye.Defense,
		Attack:         ye.Attack,
		AttackInterval: ye.AttackInterval,
		AttackRange:    ye.AttackRange,
		Resistances:    res,
	}, nil
}

func convertOperator(yo YAMLOperator) (*defs.OperatorTemplate, error) {
	at, err := defs.ParseAttackType(yo.AttackType)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
	}
	special, err := defs.ParseSpecial(yo.Special)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
	}
	buildups, err := statusMap(yo.Buildups)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
	}

	op := &defs.OperatorTemplate{
		ID:               yo.ID,
		Name:             yo.Name,
		Glyph:            glyph(yo.Glyph, yo.ID),
		Cost:             yo.Cost,
		AttackInterval:   yo.AttackInterval,
		Damage:           yo.Damage,
		HP:               yo.HP,
		Defense:          yo.Defense,
		Block:            yo.Block,
		AttackType:       at,
		DamageMultiplier: yo.DamageMultiplier,
		AreaRadius:       yo.AreaRadius,
		Buildups:         buildups,
		Special:          special,
	}
	for _, r := range yo.Range {
		op.Range = append(op.Range, combat.Offset{DX: r[0], DY: r[1]})
	}

	// Blockers stand on the lane, everyone else on high ground unless stated.
	switch yo.Deploy {
	case "ground":
		op.Deploy = defs.DeployGround
	case "elevated":
		op.Deploy = defs.DeployElevated
	case "":
		if yo.Block > 0 {
			op.Deploy = defs.DeployGround
		} else {
			op.Deploy = defs.DeployElevated
		}
	default:
		return nil, fmt.Errorf("operator %s: unknown deploy class %q", yo.ID, yo.Deploy)
	}

	if yo.OnDeath != nil {
		spec, err := convertTileEffect(*yo.OnDeath)
		if err != nil {
			return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
		}
		op.OnDeath = &spec
	}

	if yo.Skill != nil {
		sk := &defs.Skill{
			Name:             yo.Skill.Name,
			SPMax:            yo.Skill.SP,
			Duration:         yo.Skill.Duration,
			AttackMultiplier: yo.Skill.AttackMultiplier,
		}
		for _, ye := range yo.Skill.Events {
			kind, err := defs.ParseSkillEventKind(ye.Kind)
			if err != nil {
				return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
			}
			ev := defs.SkillEvent{
				Kind:     kind,
				Radius:   ye.Radius,
				Amount:   ye.Amount,
				Duration: ye.Duration,
				Value:    ye.Value,
				Splash:   ye.Splash,
			}
			if ye.Status != "" {
				if ev.Status, err = anomaly.Parse(ye.Status); err != nil {
					return nil, fmt.Errorf("operator %s: %w", yo.ID, err)
				}
			}
			sk.Events = append(sk.Events, ev)
		}
		op.Skill = sk
	}
	return op, nil
}

func convertLevel(yl YAMLLevel) (*defs.Level, error) {
	lvl := &defs.Level{
		ID:            yl.ID,
		Name:          yl.Name,
		Map:           yl.Map,
		StartResource: yl.StartResource,
		Lives:         yl.Lives,
		DeployCap:     yl.DeployCap,
		TotalEnemies:  yl.TotalEnemies,
		EnemyPool:     yl.EnemyPool,
		Operators:     yl.Operators,
	}
	for _, yw := range yl.Waves {
		w := defs.Wave{
			ID:       yw.ID,
			Time:     yw.Time,
			Enemy:    yw.Enemy,
			Count:    yw.Count,
			Interval: yw.Interval,
			Spawn:    yw.Spawn,
			Exit:     -1,
		}
		if yw.Exit != nil {
			w.Exit = *yw.Exit
		}
		lvl.Waves = append(lvl.Waves, w)
	}
	for _, yt := range yl.TileEffects {
		spec, err := convertTileEffect(yt)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		lvl.TileEffects = append(lvl.TileEffects, defs.TileEffectPlacement{X: yt.X, Y: yt.Y, TileEffectSpec: spec})
	}
	for _, yp := range yl.Plan {
		step := defs.PlanStep{
			Time:     yp.Time,
			Operator: yp.Operator,
			TileX:    yp.Tile[0],
			TileY:    yp.Tile[1],
		}
		switch yp.Action {
		case "deploy":
			step.Action = defs.PlanDeploy
		case "skill":
			step.Action = defs.PlanSkill
		case "retreat":
			step.Action = defs.PlanRetreat
		default:
			return nil, fmt.Errorf("level %s: unknown plan action %q", yl.ID, yp.Action)
		}
		f, err := combat.ParseFacing(yp.Facing)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", yl.ID, err)
		}
		step.Facing = f
		lvl.Plan = append(lvl.Plan, step)
	}
	return lvl, nil
}
