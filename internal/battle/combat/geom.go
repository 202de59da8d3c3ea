package combat

import (
	"fmt"
	"math"

	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

// Vec2 is a continuous position in tile units. The centre of tile (c, r) is (c, r).
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// TileCenter returns the continuous position of a tile centre.
func TileCenter(c grid.Coord) Vec2 {
	return Vec2{X: float64(c.X), Y: float64(c.Y)}
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }

// Round snaps the position to the nearest tile.
func (v Vec2) Round() grid.Coord {
	return grid.C(int(math.Round(v.X)), int(math.Round(v.Y)))
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", v.X, v.Y)
}

// Distance is the Euclidean distance between two positions.
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// MoveToward advances from toward to by at most step.
// Returns the new position and whether to was reached.
func MoveToward(from, to Vec2, step float64) (Vec2, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist <= step || dist == 0 {
		return to, true
	}
	return from.Add(d.Scale(step / dist)), false
}

// Facing is one of the four discrete directions a defender can face.
// Right is the canonical facing range offsets are authored in.
type Facing int

const (
	FacingRight Facing = iota
	FacingDown
	FacingLeft
	FacingUp
)

// String returns the string representation of a facing.
func (f Facing) String() string {
	switch f {
	case FacingRight:
		return "right"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	case FacingUp:
		return "up"
	default:
		return "unknown"
	}
}

// ParseFacing converts a facing name into a Facing.
func ParseFacing(s string) (Facing, error) {
	switch s {
	case "right", "r", "":
		return FacingRight, nil
	case "down", "d":
		return FacingDown, nil
	case "left", "l":
		return FacingLeft, nil
	case "up", "u":
		return FacingUp, nil
	}
	return FacingRight, fmt.Errorf("combat: unknown facing %q", s)
}

// Offset is a range tile relative to the defender, authored for FacingRight.
type Offset struct {
	DX int
	DY int
}

// Rotate turns an offset clockwise (screen coordinates) to match facing.
func (o Offset) Rotate(f Facing) Offset {
	switch f {
	case FacingDown:
		return Offset{DX: -o.DY, DY: o.DX}
	case FacingLeft:
		return Offset{DX: -o.DX, DY: -o.DY}
	case FacingUp:
		return Offset{DX: o.DY, DY: -o.DX}
	default:
		return o
	}
}

// RotateRange rotates every offset of an authored range to the given facing.
func RotateRange(offsets []Offset, f Facing) []Offset {
	out := make([]Offset, len(offsets))
	for i, o := range offsets {
		out[i] = o.Rotate(f)
	}
	return out
}

// RangeTiles returns the absolute tiles covered by a range placed at origin with facing f.
func RangeTiles(origin grid.Coord, offsets []Offset, f Facing) []grid.Coord {
	out := make([]grid.Coord, len(offsets))
	for i, o := range offsets {
		r := o.Rotate(f)
		out[i] = origin.Add(r.DX, r.DY)
	}
	return out
}

// InRange reports whether target lies within tolerance of some range tile.
func InRange(origin grid.Coord, offsets []Offset, f Facing, target Vec2, tolerance float64) bool {
	for _, o := range offsets {
		r := o.Rotate(f)
		if Distance(TileCenter(origin.Add(r.DX, r.DY)), target) < tolerance {
			return true
		}
	}
	return false
}
