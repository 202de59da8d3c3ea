package anomaly

import (
	"math"
	"testing"
)

func TestBuildupTriggersAfterCeilApplications(t *testing.T) {
	for _, p := range []float64{100, 250, 300, 333, 999, 1000, 1500} {
		var s Set
		want := int(math.Ceil(Threshold / p))
		n := 0
		for {
			n++
			if s.ApplyBuildup(Hit{Type: Sloth, Potency: p}, 0, 1000) {
				break
			}
			if n > want {
				t.Fatalf("potency %v: no trigger after %d applications", p, n)
			}
		}
		if n != want {
			t.Errorf("potency %v: expected trigger on application %d, got %d", p, want, n)
		}
		if s.Buildups[Sloth] != 0 {
			t.Errorf("potency %v: expected slot reset to 0, got %v", p, s.Buildups[Sloth])
		}
		if !s.Has(Sloth) {
			t.Errorf("potency %v: expected sloth effect", p)
		}
	}
}

func TestBuildupNegativeResistance(t *testing.T) {
	var weak, normal Set
	weak.ApplyBuildup(Hit{Type: Burn, Potency: 100}, -50, 1000)
	normal.ApplyBuildup(Hit{Type: Burn, Potency: 100}, 0, 1000)
	if weak.Buildups[Burn] <= normal.Buildups[Burn] {
		t.Errorf("expected %v > %v", weak.Buildups[Burn], normal.Buildups[Burn])
	}
}

func TestBuildupIgnoreResistance(t *testing.T) {
	var s Set
	s.ApplyBuildup(Hit{Type: Panic, Potency: 400, IgnoreResistance: true}, 300, 1000)
	if s.Buildups[Panic] != 400 {
		t.Errorf("expected raw potency 400, got %v", s.Buildups[Panic])
	}
}

func TestBurnTickCountSingleUpdate(t *testing.T) {
	var s Set
	s.Trigger(Burn, 200, 1000)
	dmg := s.Update(2*BurnTickInterval + 10)
	want := 2 * 200 * 0.4
	if dmg != want {
		t.Errorf("expected %v damage from 2 ticks, got %v", want, dmg)
	}
}

func TestBurnTickCountManyUpdates(t *testing.T) {
	var s Set
	s.Trigger(Burn, 200, 1000)
	total := 0.0
	for i := 0; i < 101; i++ {
		total += s.Update(10)
	}
	want := 2 * 200 * 0.4
	if total != want {
		t.Errorf("expected %v damage from 2 ticks, got %v", want, total)
	}
}

func TestBurnUsesTriggeringPower(t *testing.T) {
	var s Set
	s.ApplyBuildup(Hit{Type: Burn, Potency: 1000, AttackerPower: 100}, 0, 1000)
	// A later weaker hit only builds up.
	s.ApplyBuildup(Hit{Type: Burn, Potency: 10, AttackerPower: 1}, 0, 1000)
	if got := s.Update(BurnTickInterval); got != 40 {
		t.Errorf("expected tick of 40, got %v", got)
	}
}

func TestBurnExpiresAfterDuration(t *testing.T) {
	var s Set
	s.Trigger(Burn, 100, 1000)
	total := s.Update(60000)
	if total != 10*40 {
		t.Errorf("expected 10 ticks over full duration, got %v", total)
	}
	if s.Has(Burn) {
		t.Error("burn should have expired")
	}
}

func TestCorrosionProrated(t *testing.T) {
	var once, split Set
	once.Trigger(Corrosion, 0, 10000)
	split.Trigger(Corrosion, 0, 10000)

	a := once.Update(1000)
	b := 0.0
	for i := 0; i < 10; i++ {
		b += split.Update(100)
	}
	if math.Abs(a-300) > 1e-9 {
		t.Errorf("expected 300 per second at 3%% of 10000, got %v", a)
	}
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("expected dt invariance, got %v vs %v", a, b)
	}
}

func TestCorrosionFloor(t *testing.T) {
	var s Set
	s.Trigger(Corrosion, 0, 100)
	if got := s.Update(1000); got != 80 {
		t.Errorf("expected floor of 80, got %v", got)
	}
}

func TestApoptosisAppliedOnce(t *testing.T) {
	var s Set
	s.Trigger(Apoptosis, 0, 1000)
	if got := s.ConsumeApoptosis(500); got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
	if got := s.ConsumeApoptosis(450); got != 0 {
		t.Errorf("expected no second application, got %v", got)
	}
}

func TestRetriggerReplaces(t *testing.T) {
	var s Set
	s.Trigger(Burn, 100, 1000)
	s.Update(3000)
	s.Trigger(Burn, 50, 1000)
	e := s.Effects[Burn]
	if e.Remaining != e.Duration || e.Magnitude != 20 {
		t.Errorf("expected fresh effect with magnitude 20, got %+v", e)
	}
}

func TestSettleRemainingDOT(t *testing.T) {
	var s Set
	s.Trigger(Burn, 100, 1000)
	s.Update(1200) // 2 ticks fired, 8 left
	if got := s.SettleRemainingDOT(Burn); got != 8*40 {
		t.Errorf("expected 320, got %v", got)
	}
	if s.Has(Burn) {
		t.Error("settled effect should be removed")
	}
	if got := s.Update(1000); got != 0 {
		t.Errorf("expected no ticks after settle, got %v", got)
	}
	if got := s.SettleRemainingDOT(Burn); got != 0 {
		t.Errorf("expected 0 for missing effect, got %v", got)
	}
}

func TestFreezeOverridesSloth(t *testing.T) {
	var s Set
	s.Trigger(Sloth, 0, 1000)
	if got := s.SpeedModifier(); got != 0.5 {
		t.Fatalf("expected 0.5 with sloth, got %v", got)
	}
	s.Trigger(Freeze, 0, 1000)
	if got := s.SpeedModifier(); got != 0 {
		t.Errorf("expected 0 with freeze and sloth, got %v", got)
	}
}

func TestPanicVulnerability(t *testing.T) {
	var s Set
	if got := s.VulnerabilityMultiplier(); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
	s.Trigger(Panic, 0, 1000)
	if got := s.VulnerabilityMultiplier(); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
}

func TestParseType(t *testing.T) {
	for i := Type(0); i < Count; i++ {
		got, err := Parse(i.String())
		if err != nil || got != i {
			t.Errorf("round trip of %v failed: %v %v", i, got, err)
		}
	}
	if _, err := Parse("lava"); err == nil {
		t.Error("expected error for unknown type")
	}
}
