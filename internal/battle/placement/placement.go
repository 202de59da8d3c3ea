// Package placement validates operator deployment and infers facing from drag gestures.
package placement

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// Verdict is the result of a placement check.
type Verdict struct {
	OK     bool
	Reason string
}

// Error returns the denial reason so a Verdict can be returned as an error.
func (v Verdict) Error() string {
	return v.Reason
}

// Budget is the run state that bounds deployment.
type Budget struct {
	Resource  int
	Deployed  int
	DeployCap int
}

func deny(format string, args ...any) Verdict {
	return Verdict{Reason: fmt.Sprintf(format, args...)}
}

// CanPlace checks whether op may be deployed at tile.
// Checks run in order and the first failure is returned.
func CanPlace(op *defs.OperatorTemplate, tile grid.Coord, g *grid.Grid, occupied []grid.Coord, b Budget) Verdict {
	if !g.InBounds(tile) {
		return deny("tile %v is outside the map", tile)
	}
	if b.Deployed >= b.DeployCap {
		return deny("deployment limit reached (%d/%d)", b.Deployed, b.DeployCap)
	}
	if b.Resource < op.Cost {
		return deny("not enough deployment points (%d/%d)", b.Resource, op.Cost)
	}
	t := g.At(tile)
	switch op.Deploy {
	case defs.DeployElevated:
		if t != grid.TileElevated {
			return deny("%s must be deployed on high ground", op.Name)
		}
	default:
		if t != grid.TileGround {
			return deny("%s must be deployed on ground", op.Name)
		}
	}
	for _, c := range occupied {
		if c == tile {
			return deny("tile %v is occupied", tile)
		}
	}
	return Verdict{OK: true}
}

// FacingFromDrag returns the facing pointed at by a drag from the centre of
// anchor to pointer, both in pixels with tiles of tileSize.
// Equal horizontal and vertical deltas resolve horizontally.
func FacingFromDrag(anchor grid.Coord, pointer combat.Vec2, tileSize float64) combat.Facing {
	cx := (float64(anchor.X) + 0.5) * tileSize
	cy := (float64(anchor.Y) + 0.5) * tileSize
	dx := pointer.X - cx
	dy := pointer.Y - cy
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return combat.FacingLeft
		}
		return combat.FacingRight
	}
	if dy < 0 {
		return combat.FacingUp
	}
	return combat.FacingDown
}
