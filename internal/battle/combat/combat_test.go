package combat

import (
	"math"
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

func TestDamageZeroDefenseIsFull(t *testing.T) {
	if got := Damage(250, 0); got != 250 {
		t.Errorf("expected 250, got %v", got)
	}
}

func TestDamageMonotonic(t *testing.T) {
	prev := Damage(100, 0)
	for d := 1.0; d <= 5000; d += 7 {
		cur := Damage(100, d)
		if cur > prev {
			t.Fatalf("damage increased from %v to %v at defense %v", prev, cur, d)
		}
		prev = cur
	}
}

func TestDamageNeverNegative(t *testing.T) {
	for _, def := range []float64{0, 100, 1e6, 1e12, math.MaxFloat64 / 1e10} {
		if got := Damage(50, def); got < 0 {
			t.Errorf("defense %v: got negative damage %v", def, got)
		}
	}
	if got := Damage(100, -500); got != 100 {
		t.Errorf("negative defense should count as zero, got %v", got)
	}
}

func TestBuildupNegativeResistanceAmplifies(t *testing.T) {
	base := Buildup(100, 0)
	weak := Buildup(100, -50)
	if weak <= base {
		t.Errorf("expected %v > %v", weak, base)
	}
	if got := Buildup(100, 100); got != 50 {
		t.Errorf("expected 50 at resistance 100, got %v", got)
	}
}

func TestOffsetRotation(t *testing.T) {
	o := Offset{DX: 1, DY: 0}
	cases := []struct {
		f    Facing
		want Offset
	}{
		{FacingRight, Offset{1, 0}},
		{FacingDown, Offset{0, 1}},
		{FacingLeft, Offset{-1, 0}},
		{FacingUp, Offset{0, -1}},
	}
	for _, tc := range cases {
		if got := o.Rotate(tc.f); got != tc.want {
			t.Errorf("%v: expected %v, got %v", tc.f, tc.want, got)
		}
	}
}

func TestInRange(t *testing.T) {
	offsets := []Offset{{0, 0}, {1, 0}, {2, 0}}
	origin := grid.C(3, 3)

	if !InRange(origin, offsets, FacingRight, V(5.2, 3), 0.5) {
		t.Error("expected target ahead to be in range")
	}
	if InRange(origin, offsets, FacingRight, V(1, 3), 0.5) {
		t.Error("expected target behind to be out of range")
	}
	if !InRange(origin, offsets, FacingLeft, V(1, 3), 0.5) {
		t.Error("expected target behind to be in range after turning left")
	}
}

func TestMoveToward(t *testing.T) {
	p, reached := MoveToward(V(0, 0), V(1, 0), 0.25)
	if reached || p != V(0.25, 0) {
		t.Errorf("expected partial move, got %v reached=%v", p, reached)
	}
	p, reached = MoveToward(V(0, 0), V(1, 0), 2)
	if !reached || p != V(1, 0) {
		t.Errorf("expected arrival, got %v reached=%v", p, reached)
	}
}
