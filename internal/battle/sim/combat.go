package sim

import (
	"math"
	"sort"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
)

// Phase 7.
func (s *Simulation) enemyCombat(dt float64) {
	for _, e := range s.enemies {
		if !e.Alive() || e.Template.Attack <= 0 {
			continue
		}
		e.AttackCooldown = math.Max(0, e.AttackCooldown-dt)
		if e.AttackCooldown > 0 || e.Frozen {
			continue
		}
		target := s.enemyTarget(e)
		if target == nil {
			continue
		}
		dmg := combat.Damage(e.Template.Attack, target.Template.Defense)
		target.HP -= dmg
		e.AttackCooldown = e.Template.AttackInterval
		s.emit(Event{Type: EventAttack, EnemyID: e.ID, OperatorID: target.ID, Template: e.Template.ID, Amount: dmg, Pos: e.Pos})
	}
}

// enemyTarget returns the blocking operator, or the nearest operator within
// attack range for units that can strike from afar.
func (s *Simulation) enemyTarget(e *Enemy) *Operator {
	if e.Blocked {
		if op := s.operator(e.BlockedBy); op != nil && op.Alive() {
			return op
		}
	}
	if e.Template.AttackRange <= 0 {
		return nil
	}
	var best *Operator
	bestDist := math.Inf(1)
	for _, op := range s.operators {
		if !op.Alive() {
			continue
		}
		d := combat.Distance(e.Pos, op.Pos())
		if d <= e.Template.AttackRange && d < bestDist && combat.LineOfSight(e.Pos, op.Pos()) {
			best, bestDist = op, d
		}
	}
	return best
}

// Phase 8.
func (s *Simulation) operatorCombat(dt float64) {
	for _, op := range s.operators {
		if !op.Alive() {
			continue
		}
		if op.SkillActive {
			op.SkillRemaining -= dt
			if op.SkillRemaining <= 0 {
				op.SkillActive = false
				op.SkillRemaining = 0
				s.emit(Event{Type: EventSkillEnd, OperatorID: op.ID, Template: op.Template.ID, Pos: op.Pos()})
			}
		} else if op.Template.Skill != nil {
			op.SP = math.Min(op.SPMax, op.SP+s.cfg.Combat.SPPerSecond*dt/1000)
		}

		op.AttackCooldown = math.Max(0, op.AttackCooldown-dt)
		if op.AttackCooldown > 0 {
			continue
		}
		if s.operatorAttack(op) {
			op.AttackCooldown = op.Template.AttackInterval
		}
	}
}

// attackPower is the operator's per-hit damage including any active skill.
func (s *Simulation) attackPower(op *Operator) float64 {
	p := op.Template.Damage * op.Template.Multiplier()
	if op.SkillActive && op.Template.Skill.AttackMultiplier > 0 {
		p *= op.Template.Skill.AttackMultiplier
	}
	return p
}

// operatorAttack resolves one attack. Returns false when nothing was in range.
func (s *Simulation) operatorAttack(op *Operator) bool {
	tpl := op.Template
	power := s.attackPower(op)

	if tpl.AttackType == defs.AttackHeal {
		if ally := s.healTarget(op); ally != nil {
			s.heal(op, ally, power)
			return true
		}
	}

	targets := s.enemiesInRange(op)
	if len(targets) == 0 {
		return false
	}
	primary := targets[0]
	s.emit(Event{Type: EventAttack, OperatorID: op.ID, EnemyID: primary.ID, Template: tpl.ID, Pos: op.Pos()})

	switch tpl.AttackType {
	case defs.AttackArea, defs.AttackTrueArea:
		for _, e := range s.enemies {
			if !e.Alive() || combat.Distance(e.Pos, primary.Pos) > tpl.AreaRadius {
				continue
			}
			def := e.Defense
			if tpl.AttackType == defs.AttackTrueArea {
				def = 0
			}
			s.strike(op.ID, CauseAttack, e, combat.Damage(power, def), s.hitsFor(op, power))
		}
	case defs.AttackRanged:
		for _, e := range targets[:s.targetCount(op, len(targets))] {
			s.projectiles = append(s.projectiles, &Projectile{
				ID:       s.newID(),
				Kind:     tpl.AttackType,
				Pos:      op.Pos(),
				TargetID: e.ID,
				SourceID: op.ID,
				Speed:    s.cfg.Combat.ProjectileSpeed,
				Damage:   combat.Damage(power, e.Defense),
				Hits:     s.hitsFor(op, power),
			})
		}
	default:
		for _, e := range targets[:s.targetCount(op, len(targets))] {
			s.strike(op.ID, CauseAttack, e, combat.Damage(power, e.Defense), s.hitsFor(op, power))
		}
	}
	return true
}

func (s *Simulation) targetCount(op *Operator, available int) int {
	n := 1
	if op.Template.Special == defs.SpecialTripleShot && op.SkillActive {
		n = s.cfg.Combat.TripleShotTargets
	}
	if n > available {
		n = available
	}
	if n < 1 {
		n = 1
	}
	return n
}

// enemiesInRange returns live hostiles inside the operator's rotated range,
// furthest along their path first, ties broken by lower id.
func (s *Simulation) enemiesInRange(op *Operator) []*Enemy {
	var out []*Enemy
	for _, e := range s.enemies {
		if !e.Alive() {
			continue
		}
		if !combat.InRange(op.Tile, op.Template.Range, op.Facing, e.Pos, s.cfg.Combat.RangeTolerance) {
			continue
		}
		if !combat.LineOfSight(op.Pos(), e.Pos) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Progress(), out[j].Progress()
		if pi != pj {
			return pi > pj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// healTarget returns the most wounded ally in range by health ratio.
func (s *Simulation) healTarget(op *Operator) *Operator {
	var best *Operator
	bestRatio := 1.0
	for _, ally := range s.operators {
		if !ally.Alive() || ally.HP >= ally.MaxHP {
			continue
		}
		if !combat.InRange(op.Tile, op.Template.Range, op.Facing, ally.Pos(), s.cfg.Combat.RangeTolerance) {
			continue
		}
		ratio := ally.HP / ally.MaxHP
		if ratio < bestRatio {
			best, bestRatio = ally, ratio
		}
	}
	return best
}

func (s *Simulation) heal(src, ally *Operator, amount float64) {
	if ally.HP >= ally.MaxHP {
		return
	}
	before := ally.HP
	ally.HP = math.Min(ally.MaxHP, ally.HP+amount)
	s.emit(Event{Type: EventHeal, OperatorID: ally.ID, Template: src.Template.ID, Amount: ally.HP - before, Pos: ally.Pos()})
}

// hitsFor returns the status buildups an operator's attack carries,
// in status type order. power is the effective attack power at the time
// of the attack and is what burn scales with.
func (s *Simulation) hitsFor(op *Operator, power float64) []anomaly.Hit {
	tpl := op.Template
	shred := tpl.Special == defs.SpecialResistShred
	var hits []anomaly.Hit
	for t := anomaly.Type(0); t < anomaly.Count; t++ {
		if v := tpl.Buildups[t]; v > 0 {
			hits = append(hits, anomaly.Hit{Type: t, Potency: v, AttackerPower: power, IgnoreResistance: shred})
		}
	}
	if en := op.Enchant; en != nil {
		hits = append(hits, anomaly.Hit{Type: en.Status, Potency: en.Value, AttackerPower: power, IgnoreResistance: shred})
	}
	return hits
}

// strike deals already-mitigated damage, scaled by the target's current
// vulnerability, then applies status buildups.
func (s *Simulation) strike(sourceID int, cause HitCause, e *Enemy, dmg float64, hits []anomaly.Hit) {
	dmg *= e.Status.VulnerabilityMultiplier()
	e.HP -= dmg
	s.emit(Event{Type: EventHit, EnemyID: e.ID, OperatorID: sourceID, Template: e.Template.ID, Cause: cause, Amount: dmg, Pos: e.Pos})
	for _, h := range hits {
		s.applyBuildup(e, h)
	}
}

func (s *Simulation) applyBuildup(e *Enemy, h anomaly.Hit) {
	if e.Status.ApplyBuildup(h, e.Resistance(h.Type), e.MaxHP) {
		if h.Type == anomaly.Freeze || h.Type == anomaly.Paralysis {
			e.Frozen = true
		}
		s.emit(Event{Type: EventStatusTriggered, EnemyID: e.ID, Template: e.Template.ID, Status: h.Type, Pos: e.Pos})
	}
}

// Phase 9.
func (s *Simulation) updateProjectiles(dt float64) {
	for _, p := range s.projectiles {
		if p.Done {
			continue
		}
		target := s.enemy(p.TargetID)
		if target == nil || !target.Alive() {
			p.Done = true
			continue
		}
		var reached bool
		p.Pos, reached = combat.MoveToward(p.Pos, target.Pos, p.Speed*dt/1000)
		if reached || combat.Distance(p.Pos, target.Pos) <= s.cfg.Combat.ProjectileHitRange {
			s.strike(p.SourceID, CauseAttack, target, p.Damage, p.Hits)
			p.Done = true
		}
	}
}

func (s *Simulation) enemy(id int) *Enemy {
	for _, e := range s.enemies {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (s *Simulation) operator(id int) *Operator {
	for _, op := range s.operators {
		if op.ID == id {
			return op
		}
	}
	return nil
}
