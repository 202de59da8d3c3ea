package placement

import (
	"strings"
	"testing"

	"github.com/vovakirdan/lane-defense/internal/battle/combat"
	"github.com/vovakirdan/lane-defense/internal/battle/defs"
	"github.com/vovakirdan/lane-defense/internal/battle/grid"
)

func testGrid() *grid.Grid {
	return grid.New([][]int{
		{0, 0, 0},
		{2, 1, 3},
		{0, 0, 0},
	})
}

func TestCanPlaceAllowed(t *testing.T) {
	g := testGrid()
	guard := &defs.OperatorTemplate{Name: "Guard", Cost: 10, Deploy: defs.DeployGround}
	sniper := &defs.OperatorTemplate{Name: "Sniper", Cost: 12, Deploy: defs.DeployElevated}
	b := Budget{Resource: 20, DeployCap: 3}

	if v := CanPlace(guard, grid.C(1, 1), g, nil, b); !v.OK {
		t.Errorf("guard on ground: %s", v.Reason)
	}
	if v := CanPlace(sniper, grid.C(1, 0), g, nil, b); !v.OK {
		t.Errorf("sniper on high ground: %s", v.Reason)
	}
}

func TestCanPlaceCheckOrder(t *testing.T) {
	g := testGrid()
	guard := &defs.OperatorTemplate{Name: "Guard", Cost: 10, Deploy: defs.DeployGround}

	cases := []struct {
		name     string
		tile     grid.Coord
		occupied []grid.Coord
		budget   Budget
		reason   string
	}{
		// Every check fails; bounds must win.
		{"bounds", grid.C(9, 9), nil, Budget{Resource: 0, Deployed: 3, DeployCap: 3}, "outside"},
		{"cap", grid.C(0, 0), nil, Budget{Resource: 0, Deployed: 3, DeployCap: 3}, "limit"},
		{"cost", grid.C(0, 0), nil, Budget{Resource: 5, DeployCap: 3}, "deployment points"},
		{"class", grid.C(0, 0), []grid.Coord{grid.C(0, 0)}, Budget{Resource: 10, DeployCap: 3}, "ground"},
		{"gate", grid.C(0, 1), nil, Budget{Resource: 10, DeployCap: 3}, "ground"},
		{"occupied", grid.C(1, 1), []grid.Coord{grid.C(1, 1)}, Budget{Resource: 10, DeployCap: 3}, "occupied"},
	}
	for _, tc := range cases {
		v := CanPlace(guard, tc.tile, g, tc.occupied, tc.budget)
		if v.OK {
			t.Errorf("%s: expected denial", tc.name)
			continue
		}
		if !strings.Contains(v.Reason, tc.reason) {
			t.Errorf("%s: expected reason containing %q, got %q", tc.name, tc.reason, v.Reason)
		}
	}
}

func TestFacingFromDrag(t *testing.T) {
	anchor := grid.C(2, 2) // centre at (50,50) with 20px tiles
	cases := []struct {
		pointer combat.Vec2
		want    combat.Facing
	}{
		{combat.V(80, 50), combat.FacingRight},
		{combat.V(20, 50), combat.FacingLeft},
		{combat.V(50, 10), combat.FacingUp},
		{combat.V(50, 90), combat.FacingDown},
		{combat.V(70, 70), combat.FacingRight}, // tie goes horizontal
		{combat.V(30, 30), combat.FacingLeft},  // tie goes horizontal
		{combat.V(55, 80), combat.FacingDown},
	}
	for _, tc := range cases {
		if got := FacingFromDrag(anchor, tc.pointer, 20); got != tc.want {
			t.Errorf("pointer %v: expected %v, got %v", tc.pointer, tc.want, got)
		}
	}
}
