package sim

import (
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// skillCatalog adds an instantly charged caster whose skill runs ev.
func skillCatalog(id string, ev defs.SkillEvent) *defs.Catalog {
	cat := testCatalog()
	cat.Operators[id] = &defs.OperatorTemplate{
		ID: id, Name: id, Damage: 10, AttackInterval: 1000, HP: 500, Deploy: defs.DeployGround,
		Skill: &defs.Skill{Name: id, SPMax: 0, Duration: 1000, Events: []defs.SkillEvent{ev}},
	}
	return cat
}

func TestStunSkillParalyzes(t *testing.T) {
	cat := skillCatalog("stunner", defs.SkillEvent{Kind: defs.SkillStun, Radius: 2, Duration: 800})
	s := newSimWith(t, cat, testLevel([]int{2, 1, 1, 3}, wave("w", "statue", 1)))
	op, err := s.Deploy("stunner", grid.C(1, 0), combat.FacingRight)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	s.Update(10)

	var got []Event
	s.Subscribe(ListenerFunc(func(ev Event) { got = append(got, ev) }))
	if err := s.ActivateSkill(op.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	e := s.enemies[0]
	if !e.Status.Has(anomaly.Paralysis) {
		t.Fatal("expected paralysis")
	}
	if rem := e.Status.Effects[anomaly.Paralysis].Remaining; rem != 800 {
		t.Errorf("expected 800ms of paralysis, got %v", rem)
	}
	if !e.Frozen {
		t.Error("expected the enemy to be immobile")
	}
	if n := countEvents(got, EventStatusTriggered); n != 1 {
		t.Errorf("expected 1 status event, got %d", n)
	}
}

func TestStunWithoutDurationDoesNothing(t *testing.T) {
	cat := skillCatalog("dud", defs.SkillEvent{Kind: defs.SkillStun, Radius: 2})
	s := newSimWith(t, cat, testLevel([]int{2, 1, 1, 3}, wave("w", "statue", 1)))
	op, err := s.Deploy("dud", grid.C(1, 0), combat.FacingRight)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	s.Update(10)

	var got []Event
	s.Subscribe(ListenerFunc(func(ev Event) { got = append(got, ev) }))
	if err := s.ActivateSkill(op.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	e := s.enemies[0]
	if e.Status.Has(anomaly.Paralysis) || e.Frozen {
		t.Error("zero-length stun must not immobilize")
	}
	if n := countEvents(got, EventStatusTriggered); n != 0 {
		t.Errorf("expected no status events, got %d", n)
	}
}

func TestEnchantGrantAndDecay(t *testing.T) {
	cat := skillCatalog("sage", defs.SkillEvent{
		Kind: defs.SkillEnchant, Radius: 1.5, Status: anomaly.Freeze, Value: 300, Duration: 500,
	})
	s := newSimWith(t, cat, testLevel([]int{2, 1, 1, 1, 1, 3}, wave("w", "statue", 1)))
	sage, err := s.Deploy("sage", grid.C(1, 0), combat.FacingRight)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	near, _ := s.Deploy("striker", grid.C(2, 0), combat.FacingRight)
	far, _ := s.Deploy("striker", grid.C(4, 0), combat.FacingRight)
	if near == nil || far == nil {
		t.Fatal("deploy failed")
	}

	if err := s.ActivateSkill(sage.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	for _, op := range []*Operator{sage, near} {
		en := op.Enchant
		if en == nil {
			t.Fatalf("operator %d not enchanted", op.ID)
		}
		if en.Status != anomaly.Freeze || en.Value != 300 || en.Remaining != 500 {
			t.Errorf("unexpected enchantment %+v", *en)
		}
	}
	if far.Enchant != nil {
		t.Error("operator outside the radius was enchanted")
	}

	hits := s.hitsFor(near, s.attackPower(near))
	if len(hits) != 1 || hits[0].Type != anomaly.Freeze || hits[0].Potency != 300 {
		t.Errorf("expected the enchantment to ride on attacks, got %+v", hits)
	}

	s.decayEnchantments(300)
	if near.Enchant == nil || near.Enchant.Remaining != 200 {
		t.Fatalf("expected 200ms left, got %+v", near.Enchant)
	}
	s.decayEnchantments(200)
	if near.Enchant != nil || sage.Enchant != nil {
		t.Error("expected enchantments to expire")
	}
}

func TestHealSkillSkipsFullAllies(t *testing.T) {
	cat := skillCatalog("cleric", defs.SkillEvent{Kind: defs.SkillHeal, Radius: 3, Amount: 100})
	s := newSimWith(t, cat, testLevel([]int{2, 1, 1, 1, 3}, wave("w", "statue", 1)))
	cleric, err := s.Deploy("cleric", grid.C(1, 0), combat.FacingRight)
	if err != nil {
		t.Fatalf("deploy failed: %v", err)
	}
	hurt, _ := s.Deploy("wall", grid.C(2, 0), combat.FacingRight)
	if hurt == nil {
		t.Fatal("deploy failed")
	}
	hurt.HP = 500

	var got []Event
	s.Subscribe(ListenerFunc(func(ev Event) { got = append(got, ev) }))
	if err := s.ActivateSkill(cleric.ID); err != nil {
		t.Fatalf("activate failed: %v", err)
	}

	if hurt.HP != 600 {
		t.Errorf("expected 600 hp, got %v", hurt.HP)
	}
	heals := 0
	for _, ev := range got {
		if ev.Type == EventHeal {
			heals++
			if ev.Amount <= 0 {
				t.Errorf("heal event with amount %v", ev.Amount)
			}
		}
	}
	if heals != 1 {
		t.Errorf("expected 1 heal event, got %d", heals)
	}
}
