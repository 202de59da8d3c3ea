package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	defer os.Chdir(wd)
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Setenv("HOME", dir)

	cfg, err := LoadBattle("")
	if err != nil {
		t.Fatalf("LoadBattle failed: %v", err)
	}
	if cfg != DefaultBattleConfig() {
		t.Errorf("embedded defaults differ from DefaultBattleConfig:\n%+v\n%+v", cfg, DefaultBattleConfig())
	}
}

func TestLoadBattleCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	data := "economy:\n  resource_cap: 40\ncombat:\n  detonate_multiplier: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadBattle(path)
	if err != nil {
		t.Fatalf("LoadBattle failed: %v", err)
	}
	if cfg.Economy.ResourceCap != 40 {
		t.Errorf("expected cap 40, got %d", cfg.Economy.ResourceCap)
	}
	if cfg.Combat.DetonateMultiplier != 2 {
		t.Errorf("expected multiplier 2, got %v", cfg.Combat.DetonateMultiplier)
	}
	if cfg.Economy.Period != 1000 {
		t.Errorf("unset fields should keep defaults, got period %v", cfg.Economy.Period)
	}
}

func TestLoadBattleMissingCustomPath(t *testing.T) {
	if _, err := LoadBattle(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultBattleConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Rules.EnemyHealthScale != 1.3 {
		t.Errorf("expected health scale 1.3, got %v", cfg.Rules.EnemyHealthScale)
	}

	cfg = DefaultBattleConfig()
	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.Rules.ExtraLives != 2 {
		t.Errorf("expected 2 extra lives, got %d", cfg.Rules.ExtraLives)
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("empty preset: %v %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
