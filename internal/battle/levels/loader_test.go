package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/levels/formats"
)

func TestEmbeddedPackLoads(t *testing.T) {
	pack, err := Load("")
	if err != nil {
		t.Fatalf("failed to load embedded pack: %v", err)
	}
	if len(pack.Skipped) != 0 {
		t.Fatalf("embedded pack has skipped entries: %v", pack.Skipped)
	}

	ids := pack.IDs()
	want := []string{"01-crossing", "02-fork", "03-endless"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected id %s at %d, got %s", want[i], i, ids[i])
		}
	}

	pyro, ok := pack.Catalog.Operator("pyro")
	if !ok {
		t.Fatal("expected pyro operator")
	}
	if pyro.AttackType != defs.AttackArea || pyro.Deploy != defs.DeployElevated {
		t.Errorf("unexpected pyro classes: %v %v", pyro.AttackType, pyro.Deploy)
	}
	if pyro.Buildups[anomaly.Burn] != 350 {
		t.Errorf("expected burn buildup 350, got %v", pyro.Buildups[anomaly.Burn])
	}
	if pyro.Skill == nil || len(pyro.Skill.Events) != 1 || pyro.Skill.Events[0].Kind != defs.SkillDetonate {
		t.Errorf("expected detonate skill, got %+v", pyro.Skill)
	}

	sniper, _ := pack.Catalog.Operator("sniper")
	if sniper.Special != defs.SpecialTripleShot {
		t.Errorf("expected triple shot special, got %v", sniper.Special)
	}
	guard, _ := pack.Catalog.Operator("guard")
	if guard.Deploy != defs.DeployGround {
		t.Errorf("blocking operator should deploy on ground")
	}
}

func TestParseWaveExitDefault(t *testing.T) {
	doc, err := formats.ParseYAML([]byte(`
level:
  id: t
  map: [[2, 1, 3]]
  lives: 1
  deploy_cap: 1
  waves:
    - {id: a, time: 0, enemy: slug, count: 1, interval: 0, spawn: 0}
    - {id: b, time: 0, enemy: slug, count: 1, interval: 0, spawn: 0, exit: 0}
`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if doc.Level.Waves[0].Exit != -1 {
		t.Errorf("expected nearest-exit marker, got %d", doc.Level.Waves[0].Exit)
	}
	if doc.Level.Waves[1].Exit != 0 {
		t.Errorf("expected exit 0, got %d", doc.Level.Waves[1].Exit)
	}
}

func TestParseRejectsUnknownStatus(t *testing.T) {
	_, err := formats.ParseYAML([]byte(`
operators:
  - id: x
    buildups: {lava: 100}
`))
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestValidateUnknownEnemy(t *testing.T) {
	lvl := &defs.Level{
		ID:        "t",
		Map:       [][]int{{2, 1, 3}},
		Lives:     1,
		DeployCap: 1,
		Waves:     []defs.Wave{{ID: "a", Enemy: "ghost", Count: 1, Exit: -1}},
	}
	err := Validate(lvl, defs.NewCatalog())
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "UNKNOWN_ENEMY" {
		t.Fatalf("expected UNKNOWN_ENEMY, got %v", err)
	}
}

func TestValidateSpawnIndex(t *testing.T) {
	cat := defs.NewCatalog()
	cat.Enemies["slug"] = &defs.EnemyTemplate{ID: "slug", HP: 1}
	lvl := &defs.Level{
		ID:        "t",
		Map:       [][]int{{2, 1, 3}},
		Lives:     1,
		DeployCap: 1,
		Waves:     []defs.Wave{{ID: "a", Enemy: "slug", Count: 1, Spawn: 1, Exit: -1}},
	}
	err := Validate(lvl, cat)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "INVALID_SPAWN" {
		t.Fatalf("expected INVALID_SPAWN, got %v", err)
	}
}

func TestValidateDuplicateWave(t *testing.T) {
	cat := defs.NewCatalog()
	cat.Enemies["slug"] = &defs.EnemyTemplate{ID: "slug", HP: 1}
	lvl := &defs.Level{
		ID:        "t",
		Map:       [][]int{{2, 1, 3}},
		Lives:     1,
		DeployCap: 1,
		Waves: []defs.Wave{
			{ID: "a", Enemy: "slug", Count: 1, Exit: -1},
			{ID: "a", Enemy: "slug", Count: 2, Exit: -1},
		},
	}
	err := Validate(lvl, cat)
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "DUPLICATE_WAVE" {
		t.Fatalf("expected DUPLICATE_WAVE, got %v", err)
	}
}

func TestLoadDirectoryOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	custom := `
enemies:
  - id: blob
    name: Blob
    hp: 10
    speed: 1
level:
  id: 01-crossing
  name: Custom Crossing
  map: [[2, 1, 1, 3]]
  lives: 2
  deploy_cap: 1
  waves:
    - {id: only, time: 0, enemy: blob, count: 2, interval: 500, spawn: 0}
`
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(custom), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte("level: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	pack, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	lvl, err := pack.Level("01-crossing")
	if err != nil {
		t.Fatalf("level missing: %v", err)
	}
	if lvl.Name != "Custom Crossing" {
		t.Errorf("expected override, got %q", lvl.Name)
	}
	if _, err := pack.Level("02-fork"); err != nil {
		t.Errorf("embedded level should remain: %v", err)
	}
	if len(pack.Skipped) != 1 {
		t.Errorf("expected broken file to be skipped, got %v", pack.Skipped)
	}
}
