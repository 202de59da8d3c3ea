package sim

import (
	"math"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
)

// ActivateSkill fires an operator's skill. A skill that is not charged or
// already active is rejected with ErrSkillNotReady and changes nothing.
func (s *Simulation) ActivateSkill(operatorID int) error {
	if s.state != StatePlaying {
		return ErrNotPlaying
	}
	op := s.operator(operatorID)
	if op == nil || !op.Alive() {
		return ErrOperatorNotFound
	}
	if !op.SkillReady() {
		return ErrSkillNotReady
	}

	sk := op.Template.Skill
	op.SkillActive = true
	op.SkillRemaining = sk.Duration
	op.SP = 0
	s.emit(Event{Type: EventSkillActivated, OperatorID: op.ID, Template: op.Template.ID, Pos: op.Pos()})

	for _, ev := range sk.Events {
		s.runSkillEvent(op, ev)
	}
	return nil
}

func (s *Simulation) runSkillEvent(op *Operator, ev defs.SkillEvent) {
	origin := op.Pos()
	switch ev.Kind {
	case defs.SkillHeal:
		for _, ally := range s.operators {
			if ally.Alive() && combat.Distance(ally.Pos(), origin) <= ev.Radius {
				s.heal(op, ally, ev.Amount)
			}
		}

	case defs.SkillStun:
		if ev.Duration <= 0 {
			return
		}
		for _, e := range s.enemies {
			if !e.Alive() || combat.Distance(e.Pos, origin) > ev.Radius {
				continue
			}
			e.Status.TriggerFor(anomaly.Paralysis, op.Template.Damage, e.MaxHP, ev.Duration)
			e.Frozen = true
			s.emit(Event{Type: EventStatusTriggered, EnemyID: e.ID, Template: e.Template.ID, Status: anomaly.Paralysis, Pos: e.Pos})
		}

	case defs.SkillGrantResource:
		s.stats.Resource = int(math.Min(float64(s.cfg.Economy.ResourceCap), float64(s.stats.Resource)+ev.Amount))

	case defs.SkillDamage:
		for _, e := range s.enemies {
			if e.Alive() && combat.Distance(e.Pos, origin) <= ev.Radius {
				s.strike(op.ID, CauseSkill, e, combat.Damage(ev.Amount, e.Defense), nil)
			}
		}

	case defs.SkillEnchant:
		for _, ally := range s.operators {
			if ally.Alive() && combat.Distance(ally.Pos(), origin) <= ev.Radius {
				ally.Enchant = &Enchantment{Status: ev.Status, Value: ev.Value, Remaining: ev.Duration}
			}
		}

	case defs.SkillDetonate:
		s.detonate(op, ev)
	}
}

// detonate settles every burning hostile in radius and bursts around it.
// Burn is checked when each unit is visited, so a unit set alight by an
// earlier burst in the same activation detonates too.
func (s *Simulation) detonate(op *Operator, ev defs.SkillEvent) {
	origin := op.Pos()
	base := op.Template.Damage
	splash := ev.Splash
	if splash <= 0 {
		splash = 1
	}
	blast := base * s.cfg.Combat.DetonateMultiplier
	reapply := anomaly.Hit{Type: anomaly.Burn, Potency: s.cfg.Combat.DetonateReapply, AttackerPower: base}

	snapshot := make([]*Enemy, len(s.enemies))
	copy(snapshot, s.enemies)
	for _, e := range snapshot {
		if !e.Alive() || !e.Status.Has(anomaly.Burn) || combat.Distance(e.Pos, origin) > ev.Radius {
			continue
		}
		if dot := e.Status.SettleRemainingDOT(anomaly.Burn); dot > 0 {
			e.HP -= dot
			s.emit(Event{Type: EventHit, EnemyID: e.ID, OperatorID: op.ID, Template: e.Template.ID, Status: anomaly.Burn, Cause: CauseDetonate, Amount: dot, Pos: e.Pos})
		}
		center := e.Pos
		for _, n := range s.enemies {
			if !n.Alive() || combat.Distance(n.Pos, center) > splash {
				continue
			}
			s.strike(op.ID, CauseSkill, n, combat.Damage(blast, n.Defense), nil)
			s.applyBuildup(n, reapply)
		}
	}
}
