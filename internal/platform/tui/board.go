package tui

import (
	"github.com/vovakirdan/lane-defense/internal/battle/anomaly"
	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
	"github.com/vovakirdan/lane-defense/internal/battle/sim"
	"github.com/vovakirdan/lane-defense/internal/core"
)

// BoardView is the viewer state drawn on top of a snapshot.
type BoardView struct {
	Cursor    grid.Coord
	ShowCur   bool
	CursorOK  bool // placement at the cursor would be accepted
	Aim       combat.Facing
	Selecting bool // a roster entry is selected for placement
}

var facingArrows = [...]rune{
	combat.FacingRight: '→',
	combat.FacingDown:  '↓',
	combat.FacingLeft:  '←',
	combat.FacingUp:    '↑',
}

func arrow(f combat.Facing) rune {
	if f < 0 || int(f) >= len(facingArrows) {
		return ' '
	}
	return facingArrows[f]
}

// DrawBoard draws the grid, entities and cursor of snap onto scr.
func DrawBoard(scr *core.Screen, b core.Board, snap sim.Snapshot, v BoardView) {
	scr.DrawBox(b.Origin, core.ColorMuted)
	if snap.Grid == nil {
		return
	}

	for r := 0; r < snap.Grid.H; r++ {
		for c := 0; c < snap.Grid.W; c++ {
			drawTile(scr, b, c, r, snap.Grid.At(grid.C(c, r)))
		}
	}

	for _, te := range snap.TileEffects {
		x, y := b.TileCell(te.Tile.X, te.Tile.Y)
		color := core.ColorBurning
		if te.Status == anomaly.Freeze {
			color = core.ColorEnemyFrozen
		}
		scr.SetCell(x+1, y, '~', color)
	}

	for _, op := range snap.Operators {
		x, y := b.TileCell(op.Tile.X, op.Tile.Y)
		color := core.ColorOperator
		if op.SkillActive {
			color = core.ColorOperatorSkill
		}
		scr.SetCell(x+1, y, glyphOr(op.Template.Glyph, 'O'), color)
		scr.SetCell(x+2, y, arrow(op.Facing), color)
	}

	if p := snap.Pending; p != nil {
		x, y := b.TileCell(p.Tile.X, p.Tile.Y)
		scr.SetCell(x+1, y, glyphOr(p.Template.Glyph, 'O'), core.ColorPlacementOK)
		scr.SetCell(x+2, y, arrow(v.Aim), core.ColorPlacementOK)
	}

	for _, e := range snap.Enemies {
		if !e.Alive() {
			continue
		}
		x, y := b.PointCell(e.Pos.X, e.Pos.Y)
		scr.SetCell(x, y, glyphOr(e.Template.Glyph, 'e'), enemyColor(&e))
	}

	for _, p := range snap.Projectiles {
		if p.Done {
			continue
		}
		x, y := b.PointCell(p.Pos.X, p.Pos.Y)
		scr.SetCell(x, y, '*', core.ColorProjectile)
	}

	if v.ShowCur && snap.Grid.InBounds(v.Cursor) {
		x, y := b.TileCell(v.Cursor.X, v.Cursor.Y)
		color := core.ColorCursor
		if v.Selecting && snap.Pending == nil {
			color = core.ColorPlacementDenied
			if v.CursorOK {
				color = core.ColorPlacementOK
			}
		}
		scr.SetCell(x, y, '[', color)
		if scr.Get(x+2, y) == ' ' {
			scr.SetCell(x+2, y, ']', color)
		}
	}
}

func glyphOr(r, fallback rune) rune {
	if r == 0 {
		return fallback
	}
	return r
}

func drawTile(scr *core.Screen, b core.Board, c, r int, t grid.Tile) {
	x, y := b.TileCell(c, r)
	switch t {
	case grid.TileGround:
		scr.SetCell(x, y, ' ', core.ColorGround)
		scr.SetCell(x+1, y, '·', core.ColorGround)
		scr.SetCell(x+2, y, ' ', core.ColorGround)
	case grid.TileEntry:
		scr.DrawText(x, y, " E ", core.ColorEntry)
	case grid.TileExit:
		scr.DrawText(x, y, " X ", core.ColorExit)
	default:
		scr.DrawText(x, y, "░░░", core.ColorElevated)
	}
}

func enemyColor(e *sim.Enemy) core.Color {
	switch {
	case e.Frozen:
		return core.ColorEnemyFrozen
	case e.Status.Has(anomaly.Burn):
		return core.ColorBurning
	case e.MaxHP > 0 && e.HP < e.MaxHP/2:
		return core.ColorEnemyWounded
	default:
		return core.ColorEnemy
	}
}
