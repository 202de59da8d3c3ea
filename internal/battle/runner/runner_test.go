package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/levels"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
	"github.com/vovakirdan/lane-defense/internal/storage"
)

func duelCatalog() *defs.Catalog {
	cat := defs.NewCatalog()
	cat.Enemies["dummy"] = &defs.EnemyTemplate{ID: "dummy", HP: 100, Speed: 1}
	cat.Operators["striker"] = &defs.OperatorTemplate{
		ID: "striker", Damage: 60, AttackInterval: 500, HP: 1000, Block: 1,
		Range: []combat.Offset{{DX: 0, DY: 0}}, Deploy: defs.DeployGround,
	}
	return cat
}

func duelLevel(plan ...defs.PlanStep) *defs.Level {
	return &defs.Level{
		ID:            "duel",
		Map:           [][]int{{2, 1, 1, 1, 3}},
		Waves:         []defs.Wave{{ID: "a", Enemy: "dummy", Count: 2, Interval: 3000, Exit: -1}},
		StartResource: 10,
		Lives:         3,
		DeployCap:     1,
		Plan:          plan,
	}
}

func TestRunFollowsPlan(t *testing.T) {
	lvl := duelLevel(defs.PlanStep{Action: defs.PlanDeploy, Operator: "striker", TileX: 2})
	out, err := Run(context.Background(), duelCatalog(), config.DefaultBattleConfig(), lvl, 1, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Won() {
		t.Fatalf("expected a win, got %v with %+v", out.State, out.Stats)
	}
	if out.Stats.Kills != 2 || out.Stats.Leaks != 0 {
		t.Errorf("expected 2 kills and no leaks, got %+v", out.Stats)
	}
	if out.Rejected != 0 {
		t.Errorf("expected no rejected steps, got %d", out.Rejected)
	}
}

func TestRunWithoutDefendersLoses(t *testing.T) {
	lvl := duelLevel()
	lvl.Lives = 1
	out, err := Run(context.Background(), duelCatalog(), config.DefaultBattleConfig(), lvl, 1, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.State != sim.StateGameOver {
		t.Errorf("expected game over, got %v", out.State)
	}
}

func TestRunCountsRejectedSteps(t *testing.T) {
	lvl := duelLevel(
		defs.PlanStep{Action: defs.PlanDeploy, Operator: "striker", TileX: 2},
		defs.PlanStep{Action: defs.PlanDeploy, Operator: "striker", TileX: 3},
	)
	out, err := Run(context.Background(), duelCatalog(), config.DefaultBattleConfig(), lvl, 1, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Rejected != 1 {
		t.Errorf("expected the second deploy to hit the cap, got %d rejections", out.Rejected)
	}
}

func TestRunTimeLimit(t *testing.T) {
	cat := duelCatalog()
	cat.Enemies["dummy"].Speed = 0
	out, err := Run(context.Background(), cat, config.DefaultBattleConfig(), duelLevel(), 1, Options{Limit: 2000})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.TimedOut || out.State != sim.StatePlaying {
		t.Errorf("expected a timed out run, got %+v", out)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, duelCatalog(), config.DefaultBattleConfig(), duelLevel(), 1, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBatchMatchesSerialRuns(t *testing.T) {
	pack, err := levels.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	lvl, err := pack.Level("03-endless")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	cfg := config.DefaultBattleConfig()
	seeds := []int64{1, 2, 3, 4, 5, 6}

	got, err := Batch(context.Background(), pack.Catalog, cfg, lvl, seeds, 3, Options{})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(got) != len(seeds) {
		t.Fatalf("expected %d outcomes, got %d", len(seeds), len(got))
	}
	for i, seed := range seeds {
		want, err := Run(context.Background(), pack.Catalog, cfg, lvl, seed, Options{})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		if got[i] != want {
			t.Errorf("seed %d: batch %+v, serial %+v", seed, got[i], want)
		}
	}

	sum := Summarize(got)
	if sum.Runs != len(seeds) || sum.Wins+sum.Losses+sum.TimedOut != sum.Runs {
		t.Errorf("inconsistent summary %+v", sum)
	}
}

func TestSummaryWinRate(t *testing.T) {
	if (Summary{}).WinRate() != 0 {
		t.Error("empty summary should have zero win rate")
	}
	s := Summarize([]Outcome{{State: sim.StateWon}, {State: sim.StateGameOver}, {TimedOut: true}, {State: sim.StateWon}})
	if s.Wins != 2 || s.Losses != 1 || s.TimedOut != 1 || s.WinRate() != 0.5 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestOutcomeRecord(t *testing.T) {
	tests := []struct {
		out      Outcome
		expected string
	}{
		{Outcome{State: sim.StateWon}, storage.OutcomeWon},
		{Outcome{State: sim.StateGameOver}, storage.OutcomeLost},
		{Outcome{State: sim.StatePlaying, TimedOut: true}, storage.OutcomeTimeout},
		{Outcome{State: sim.StatePlaying}, storage.OutcomeQuit},
	}
	for _, tt := range tests {
		if got := tt.out.Record("sim").Outcome; got != tt.expected {
			t.Errorf("Record(%v, timedOut=%v) = %q, expected %q", tt.out.State, tt.out.TimedOut, got, tt.expected)
		}
	}

	rec := Outcome{Level: "duel", Seed: 7, Elapsed: 1234.9, Stats: sim.Stats{Kills: 2, Lives: 3}}.Record("sim")
	if rec.LevelID != "duel" || rec.Seed != 7 || rec.Kills != 2 || rec.Lives != 3 || rec.ElapsedMS != 1234 || rec.Source != "sim" {
		t.Errorf("Unexpected record %+v", rec)
	}
}
