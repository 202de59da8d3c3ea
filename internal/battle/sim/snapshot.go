package sim

import (
	"sort"

	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// Snapshot is a read-only copy of the observable state.
// Templates, paths and the grid are shared and must not be mutated.
type Snapshot struct {
	Tick        int
	Time        float64
	State       GameState
	Paused      bool
	Level       *defs.Level
	Grid        *grid.Grid
	Stats       Stats
	Enemies     []Enemy
	Operators   []Operator
	Projectiles []Projectile
	TileEffects []TileEffect
	Pending     *PendingDeploy
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:   s.tick,
		Time:   s.time,
		State:  s.state,
		Paused: s.paused,
		Level:  s.level,
		Grid:   s.grid,
		Stats:  s.stats,
	}
	snap.Enemies = make([]Enemy, len(s.enemies))
	for i, e := range s.enemies {
		snap.Enemies[i] = *e
	}
	snap.Operators = make([]Operator, len(s.operators))
	for i, op := range s.operators {
		snap.Operators[i] = *op
		if op.Enchant != nil {
			en := *op.Enchant
			snap.Operators[i].Enchant = &en
		}
	}
	snap.Projectiles = make([]Projectile, len(s.projectiles))
	for i, p := range s.projectiles {
		snap.Projectiles[i] = *p
	}
	snap.TileEffects = make([]TileEffect, len(s.tileEffects))
	for i, te := range s.tileEffects {
		snap.TileEffects[i] = *te
	}
	if s.pending != nil {
		p := *s.pending
		snap.Pending = &p
	}
	return snap
}

func sortTemplates(ts []*defs.OperatorTemplate) {
	sort.Slice(ts, func(i, j int) bool {
		return ts[i].ID < ts[j].ID
	})
}
