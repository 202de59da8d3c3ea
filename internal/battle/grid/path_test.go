package grid

import (
	"reflect"
	"testing"
)

func TestFindPathsPrefersDownFirst(t *testing.T) {
	// Two equal-length routes around the wall at (1,1).
	g := New([][]int{
		{2, 1, 1},
		{1, 0, 1},
		{1, 1, 3},
	})

	table := FindPaths(g)
	got := table.Lookup(0, 0)
	want := Path{C(0, 0), C(0, 1), C(0, 2), C(1, 2), C(2, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFindPathsDeterministic(t *testing.T) {
	g := New([][]int{
		{2, 1, 1},
		{1, 0, 1},
		{1, 1, 3},
	})

	first := FindPaths(g).Lookup(0, 0)
	for i := 0; i < 10; i++ {
		again := FindPaths(g).Lookup(0, 0)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: path changed: %v vs %v", i, first, again)
		}
	}
}

func TestFindPathsSlotLayout(t *testing.T) {
	g := New([][]int{
		{2, 1, 1, 3},
		{0, 0, 0, 1},
		{2, 1, 1, 3},
	})

	table := FindPaths(g)
	if len(table.Entries) != 2 || table.ExitCount() != 2 {
		t.Fatalf("expected 2 entries and 2 exits, got %d and %d", len(table.Entries), table.ExitCount())
	}

	cases := []struct {
		spawn, exit int
		end         Coord
		length      int
	}{
		{0, 0, C(3, 0), 4},
		{0, 1, C(3, 2), 6},
		{1, 0, C(3, 0), 6},
		{1, 1, C(3, 2), 4},
	}
	for _, tc := range cases {
		p := table.Lookup(tc.spawn, tc.exit)
		if p == nil {
			t.Fatalf("spawn %d exit %d: expected path", tc.spawn, tc.exit)
		}
		if p.Last() != tc.end {
			t.Errorf("spawn %d exit %d: expected end %v, got %v", tc.spawn, tc.exit, tc.end, p.Last())
		}
		if p.Len() != tc.length {
			t.Errorf("spawn %d exit %d: expected length %d, got %d", tc.spawn, tc.exit, tc.length, p.Len())
		}
	}
}

func TestFindPathsOmitsDisconnectedPair(t *testing.T) {
	g := New([][]int{
		{2, 1, 3},
		{0, 0, 0},
		{2, 1, 3},
	})

	table := FindPaths(g)
	if table.Lookup(0, 1) != nil {
		t.Error("expected no path from top entry to bottom exit")
	}
	if table.Lookup(1, 0) != nil {
		t.Error("expected no path from bottom entry to top exit")
	}
	if table.Lookup(0, 0) == nil || table.Lookup(1, 1) == nil {
		t.Error("expected connected pairs to be present")
	}
}

func TestFindPathsAnyExit(t *testing.T) {
	g := New([][]int{
		{3, 1, 2, 1, 1, 1, 3},
	})

	table := FindPaths(g)
	p := table.AnyExit(0)
	if p == nil {
		t.Fatal("expected fallback path")
	}
	if p.Last() != C(0, 0) {
		t.Errorf("expected nearest exit (0,0), got %v", p.Last())
	}
}

func TestFindPathsEmptyTable(t *testing.T) {
	noExit := FindPaths(New([][]int{{2, 1, 1}}))
	if !noExit.Empty() {
		t.Error("expected empty table without exits")
	}
	if noExit.Lookup(0, 0) != nil || noExit.AnyExit(0) != nil {
		t.Error("expected nil lookups on empty table")
	}

	noEntry := FindPaths(New([][]int{{1, 1, 3}}))
	if !noEntry.Empty() {
		t.Error("expected empty table without entries")
	}
}
