package command

import (
	"errors"
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/placement"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
)

func newBattle(t *testing.T) *sim.Simulation {
	t.Helper()
	cat := defs.NewCatalog()
	cat.Enemies["statue"] = &defs.EnemyTemplate{ID: "statue", HP: 1000, Speed: 0}
	cat.Operators["guard"] = &defs.OperatorTemplate{
		ID: "guard", Cost: 4, HP: 500, AttackInterval: 1000, Block: 1, Deploy: defs.DeployGround,
		Skill: &defs.Skill{Name: "Rally", SPMax: 0, Duration: 1000},
	}
	lvl := &defs.Level{
		ID:            "t",
		Map:           [][]int{{2, 1, 1, 1, 3}, {0, 0, 0, 0, 0}},
		Waves:         []defs.Wave{{ID: "a", Enemy: "statue", Count: 1, Exit: -1}},
		StartResource: 10,
		Lives:         1,
		DeployCap:     2,
	}
	s := sim.New(cat, config.DefaultBattleConfig(), 1)
	if err := s.Init(lvl); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

func TestQueueFlushAppliesInOrder(t *testing.T) {
	s := newBattle(t)
	q := NewQueue()
	q.Push(Command{Kind: KindDeploy, Operator: "guard", Tile: grid.C(1, 0)})
	q.Push(Command{Kind: KindSkill, Tile: grid.C(1, 0)})
	q.Push(Command{Kind: KindPause})

	if q.Len() != 3 {
		t.Fatalf("expected 3 queued commands, got %d", q.Len())
	}
	results := q.Flush(s)
	if q.Len() != 0 {
		t.Errorf("queue not drained")
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("command %d (%v) failed: %v", i, r.Command, r.Err)
		}
	}
	if results[0].Operator == nil {
		t.Fatal("deploy result carries no operator")
	}
	if !s.Paused() {
		t.Error("pause command not applied")
	}
	if got := s.Stats().Resource; got != 6 {
		t.Errorf("expected resource 6 after deploy, got %d", got)
	}
}

func TestQueueFlushEmpty(t *testing.T) {
	if results := NewQueue().Flush(newBattle(t)); results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestSkillOnEmptyTileFails(t *testing.T) {
	s := newBattle(t)
	r := Apply(s, Command{Kind: KindRetreat, Tile: grid.C(2, 0)})
	if !errors.Is(r.Err, sim.ErrOperatorNotFound) {
		t.Errorf("expected ErrOperatorNotFound, got %v", r.Err)
	}
}

func TestDeniedDeployReportsVerdict(t *testing.T) {
	s := newBattle(t)
	r := Apply(s, Command{Kind: KindDeploy, Operator: "guard", Tile: grid.C(1, 1)})
	var v placement.Verdict
	if !errors.As(r.Err, &v) {
		t.Fatalf("expected a placement verdict, got %v", r.Err)
	}
	if s.Stats().Deployed != 0 {
		t.Error("denied deploy placed an operator")
	}
}

func TestDragReleaseUsesPointerDirection(t *testing.T) {
	s := newBattle(t)
	d := NewDrag(s, config.InteractionConfig{SlowMotion: 0.2, TileSize: 10})

	if d.TimeScale() != 1 {
		t.Errorf("expected full speed when idle, got %v", d.TimeScale())
	}
	if err := d.Pick("guard", grid.C(2, 0)); err != nil {
		t.Fatalf("pick: %v", err)
	}
	if !d.Active() {
		t.Fatal("expected a pending deployment")
	}
	if d.TimeScale() != 0.2 {
		t.Errorf("expected slow motion while aiming, got %v", d.TimeScale())
	}

	// Tile (2,0) centre is (25,5); pointer well below it.
	pointer := combat.V(26, 30)
	if f, ok := d.Aim(pointer); !ok || f != combat.FacingDown {
		t.Errorf("expected aim down, got %v %v", f, ok)
	}
	op, err := d.Release(pointer)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if op.Facing != combat.FacingDown {
		t.Errorf("expected facing down, got %v", op.Facing)
	}
	if d.Active() || d.TimeScale() != 1 {
		t.Error("drag still active after release")
	}
}

func TestDragCancel(t *testing.T) {
	s := newBattle(t)
	d := NewDrag(s, config.InteractionConfig{})
	if err := d.Pick("guard", grid.C(3, 0)); err != nil {
		t.Fatalf("pick: %v", err)
	}
	d.Cancel()
	if d.Active() {
		t.Error("cancel left a pending deployment")
	}
	if _, err := d.Release(combat.V(0, 0)); !errors.Is(err, sim.ErrNoPendingDeploy) {
		t.Errorf("expected ErrNoPendingDeploy, got %v", err)
	}
	if s.Stats().Resource != 10 {
		t.Errorf("cancel spent resource: %d", s.Stats().Resource)
	}
}

func TestScriptAdvancesByTime(t *testing.T) {
	plan := []defs.PlanStep{
		{Time: 2000, Action: defs.PlanSkill, TileX: 1},
		{Time: 0, Action: defs.PlanDeploy, Operator: "guard", TileX: 1},
		{Time: 2000, Action: defs.PlanRetreat, TileX: 1},
	}
	sc := NewScript(plan)
	q := NewQueue()

	if n := sc.Advance(0, q); n != 1 {
		t.Fatalf("expected 1 step at t=0, got %d", n)
	}
	if n := sc.Advance(1999, q); n != 0 {
		t.Errorf("expected no steps before t=2000, got %d", n)
	}
	if n := sc.Advance(2500, q); n != 2 {
		t.Errorf("expected 2 steps at t=2500, got %d", n)
	}
	if !sc.Done() || sc.Remaining() != 0 {
		t.Error("script should be done")
	}

	s := newBattle(t)
	results := q.Flush(s)
	kinds := []Kind{KindDeploy, KindSkill, KindRetreat}
	for i, r := range results {
		if r.Command.Kind != kinds[i] {
			t.Errorf("step %d: expected %v, got %v", i, kinds[i], r.Command.Kind)
		}
		if r.Err != nil {
			t.Errorf("step %d failed: %v", i, r.Err)
		}
	}
	if s.Stats().Deployed != 0 {
		t.Error("retreat step did not remove the operator")
	}
}
