package command

import (
	"sort"

	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// Script feeds a level's deployment plan into a queue as game time passes.
type Script struct {
	steps []defs.PlanStep
	next  int
}

// NewScript orders plan by time, keeping authoring order for equal times.
func NewScript(plan []defs.PlanStep) *Script {
	steps := make([]defs.PlanStep, len(plan))
	copy(steps, plan)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Time < steps[j].Time })
	return &Script{steps: steps}
}

// Advance pushes every step due at or before now and returns how many
// were pushed.
func (s *Script) Advance(now float64, q *Queue) int {
	n := 0
	for s.next < len(s.steps) && s.steps[s.next].Time <= now {
		q.Push(StepCommand(s.steps[s.next]))
		s.next++
		n++
	}
	return n
}

// Done reports whether every step has been pushed.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

// Remaining returns the number of steps not yet pushed.
func (s *Script) Remaining() int {
	return len(s.steps) - s.next
}

// StepCommand converts a plan step to a command.
func StepCommand(st defs.PlanStep) Command {
	c := Command{
		Operator: st.Operator,
		Tile:     grid.C(st.TileX, st.TileY),
		Facing:   st.Facing,
	}
	switch st.Action {
	case defs.PlanSkill:
		c.Kind = KindSkill
	case defs.PlanRetreat:
		c.Kind = KindRetreat
	default:
		c.Kind = KindDeploy
	}
	return c
}
