package anomaly

import (
	"math"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
)

// Effect is a triggered, time-limited status on a unit.
type Effect struct {
	Type          Type
	Active        bool
	Remaining     float64 // ms left
	Duration      float64 // ms at trigger
	Magnitude     float64 // type-specific, resolved at trigger
	AttackerPower float64 // power of the attacker that triggered it
}

// Elapsed returns how long the effect has been running.
func (e Effect) Elapsed() float64 {
	return e.Duration - e.Remaining
}

// Hit is one application of status buildup.
type Hit struct {
	Type          Type
	Potency       float64
	AttackerPower float64
	// IgnoreResistance applies the raw potency.
	IgnoreResistance bool
}

// Set holds one buildup slot and one effect slot per status type.
// The zero value is an empty set.
type Set struct {
	Buildups [Count]float64
	Effects  [Count]Effect

	pendingApoptosis bool
}

// ApplyBuildup accumulates a hit into its slot, mitigated by resistance.
// When the slot reaches Threshold it is reset to zero and the effect triggers.
// Returns true if an effect was triggered.
func (s *Set) ApplyBuildup(h Hit, resistance, maxHP float64) bool {
	if !h.Type.Valid() || h.Potency <= 0 {
		return false
	}
	amount := h.Potency
	if !h.IgnoreResistance {
		amount = combat.Buildup(h.Potency, resistance)
	}
	s.Buildups[h.Type] += amount
	if s.Buildups[h.Type] < Threshold {
		return false
	}
	s.Buildups[h.Type] = 0
	s.Trigger(h.Type, h.AttackerPower, maxHP)
	return true
}

// Trigger starts a fresh effect with its full duration, replacing any active
// effect of the same type.
func (s *Set) Trigger(t Type, attackerPower, maxHP float64) {
	s.TriggerFor(t, attackerPower, maxHP, definitions[t].Duration)
}

// TriggerFor starts an effect with an explicit duration.
func (s *Set) TriggerFor(t Type, attackerPower, maxHP, duration float64) {
	if !t.Valid() || duration <= 0 {
		return
	}
	def := definitions[t]
	mag := def.Magnitude
	switch t {
	case Burn:
		mag = def.Magnitude * attackerPower
	case Corrosion:
		mag = math.Max(corrosionFloor, def.Magnitude*maxHP)
	case Apoptosis:
		s.pendingApoptosis = true
	}
	s.Effects[t] = Effect{
		Type:          t,
		Active:        true,
		Remaining:     duration,
		Duration:      duration,
		Magnitude:     mag,
		AttackerPower: attackerPower,
	}
}

// Has reports whether an effect of type t is active.
func (s *Set) Has(t Type) bool {
	return t.Valid() && s.Effects[t].Active
}

// Active returns the active effects in type order.
func (s *Set) Active() []Effect {
	var out []Effect
	for _, e := range s.Effects {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// Update advances every active effect by dt milliseconds and returns the
// damage dealt this tick. Burn counts 500ms boundaries crossed during the
// update, so several ticks may fire in one large step.
func (s *Set) Update(dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	total := 0.0
	for i := range s.Effects {
		e := &s.Effects[i]
		if !e.Active {
			continue
		}
		switch e.Type {
		case Burn:
			before := e.Elapsed()
			after := math.Min(before+dt, e.Duration)
			ticks := math.Floor(after/BurnTickInterval) - math.Floor(before/BurnTickInterval)
			total += ticks * e.Magnitude
		case Corrosion:
			total += e.Magnitude * math.Min(dt, e.Remaining) / 1000
		}
		e.Remaining -= dt
		if e.Remaining <= 0 {
			*e = Effect{}
		}
	}
	return total
}

// ConsumeApoptosis returns the one-off apoptosis damage for a unit at hp
// and clears the pending flag. Returns zero when nothing is pending.
func (s *Set) ConsumeApoptosis(hp float64) float64 {
	if !s.pendingApoptosis {
		return 0
	}
	s.pendingApoptosis = false
	if hp <= 0 {
		return 0
	}
	return hp * definitions[Apoptosis].Magnitude
}

// SettleRemainingDOT returns the damage the effect would still deal over its
// remaining whole ticks and removes it. Returns zero if the effect is not active.
func (s *Set) SettleRemainingDOT(t Type) float64 {
	if !s.Has(t) {
		return 0
	}
	e := s.Effects[t]
	s.Effects[t] = Effect{}
	switch t {
	case Burn:
		left := math.Floor(e.Duration/BurnTickInterval) - math.Floor(e.Elapsed()/BurnTickInterval)
		return math.Max(left, 0) * e.Magnitude
	case Corrosion:
		return e.Magnitude * e.Remaining / 1000
	}
	return 0
}

// SpeedModifier folds movement effects. Freeze and paralysis force zero.
func (s *Set) SpeedModifier() float64 {
	if s.Effects[Freeze].Active || s.Effects[Paralysis].Active {
		return 0
	}
	m := 1.0
	if s.Effects[Sloth].Active {
		m *= s.Effects[Sloth].Magnitude
	}
	return m
}

// VulnerabilityMultiplier folds incoming-damage effects.
func (s *Set) VulnerabilityMultiplier() float64 {
	m := 1.0
	if s.Effects[Panic].Active {
		m *= s.Effects[Panic].Magnitude
	}
	return m
}

// Immobilized reports whether an effect holds the unit in place.
func (s *Set) Immobilized() bool {
	return s.Effects[Freeze].Active || s.Effects[Paralysis].Active
}

// Silenced reports whether a silence effect is active.
func (s *Set) Silenced() bool {
	return s.Effects[Silence].Active
}
