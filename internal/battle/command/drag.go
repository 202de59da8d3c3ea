package command

import (
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/placement"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/config"
)

// Drag turns a pick-then-aim gesture into a two-phase deployment.
// Picking a tile holds the placement; releasing the pointer picks the
// facing from the drag direction and commits it.
type Drag struct {
	engine     Engine
	tileSize   float64
	slowMotion float64
}

// NewDrag creates a drag adapter for e.
func NewDrag(e Engine, cfg config.InteractionConfig) *Drag {
	d := &Drag{engine: e, tileSize: cfg.TileSize, slowMotion: cfg.SlowMotion}
	if d.tileSize <= 0 {
		d.tileSize = 1
	}
	if d.slowMotion <= 0 || d.slowMotion > 1 {
		d.slowMotion = 1
	}
	return d
}

// Pick starts a deployment of templateID on tile. A denied placement is
// returned as a placement.Verdict and leaves nothing pending.
func (d *Drag) Pick(templateID string, tile grid.Coord) error {
	return d.engine.BeginDeploy(templateID, tile)
}

// Active reports whether a deployment is waiting for its facing.
func (d *Drag) Active() bool {
	_, ok := d.engine.Pending()
	return ok
}

// Release commits the pending deployment facing toward pointer, given in
// pointer units where one tile spans TileSize.
func (d *Drag) Release(pointer combat.Vec2) (*sim.Operator, error) {
	p, ok := d.engine.Pending()
	if !ok {
		return nil, sim.ErrNoPendingDeploy
	}
	return d.engine.ConfirmDeploy(placement.FacingFromDrag(p.Tile, pointer, d.tileSize))
}

// Aim returns the facing a release at pointer would commit.
func (d *Drag) Aim(pointer combat.Vec2) (combat.Facing, bool) {
	p, ok := d.engine.Pending()
	if !ok {
		return combat.FacingRight, false
	}
	return placement.FacingFromDrag(p.Tile, pointer, d.tileSize), true
}

// ReleaseFacing commits the pending deployment with an explicit facing,
// for inputs that have no pointer.
func (d *Drag) ReleaseFacing(f combat.Facing) (*sim.Operator, error) {
	return d.engine.ConfirmDeploy(f)
}

// Cancel drops the pending deployment.
func (d *Drag) Cancel() {
	d.engine.CancelDeploy()
}

// TimeScale is the factor to apply to dt: slow motion while a deployment
// is being aimed, 1 otherwise.
func (d *Drag) TimeScale() float64 {
	if d.Active() {
		return d.slowMotion
	}
	return 1
}
