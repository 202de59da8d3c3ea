package grid

// Path is an ordered list of tile coordinates from an entry to an exit.
// Paths are shared by every unit walking them and must not be mutated.
type Path []Coord

// Len returns the number of nodes in the path.
func (p Path) Len() int {
	return len(p)
}

// Last returns the final node of the path.
func (p Path) Last() Coord {
	return p[len(p)-1]
}

// neighbors is the fixed BFS expansion order: down, up, right, left.
var neighbors = [4][2]int{
	{0, 1},
	{0, -1},
	{1, 0},
	{-1, 0},
}

// PathTable holds every shortest path of a level, computed once at load.
// Slot spawn*ExitCount+exit holds the path from that entry to that exit,
// or nil when the pair is not connected.
type PathTable struct {
	Entries []Coord
	Exits   []Coord
	slots   []Path
	anyExit []Path
}

// FindPaths computes the path table for a grid.
// A grid with no entries or no exits yields an empty table.
func FindPaths(g *Grid) *PathTable {
	t := &PathTable{
		Entries: g.Entries(),
		Exits:   g.Exits(),
	}
	if len(t.Entries) == 0 || len(t.Exits) == 0 {
		return t
	}

	t.slots = make([]Path, len(t.Entries)*len(t.Exits))
	t.anyExit = make([]Path, len(t.Entries))
	for si, entry := range t.Entries {
		for ei, exit := range t.Exits {
			target := exit
			t.slots[si*len(t.Exits)+ei] = bfs(g, entry, func(c Coord) bool { return c == target })
		}
		t.anyExit[si] = bfs(g, entry, func(c Coord) bool { return g.At(c) == TileExit })
	}
	return t
}

// bfs searches from start and stops as soon as a tile satisfying done is dequeued.
// Returns nil if no such tile is reachable.
func bfs(g *Grid, start Coord, done func(Coord) bool) Path {
	prev := make([]int, g.W*g.H)
	for i := range prev {
		prev[i] = -1
	}
	seen := make([]bool, g.W*g.H)
	seen[g.index(start)] = true

	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if done(cur) {
			return trace(g, prev, start, cur)
		}

		for _, d := range neighbors {
			next := cur.Add(d[0], d[1])
			if !g.InBounds(next) || !g.At(next).Walkable() {
				continue
			}
			ni := g.index(next)
			if seen[ni] {
				continue
			}
			seen[ni] = true
			prev[ni] = g.index(cur)
			queue = append(queue, next)
		}
	}
	return nil
}

func trace(g *Grid, prev []int, start, end Coord) Path {
	var rev Path
	for i := g.index(end); ; i = prev[i] {
		rev = append(rev, C(i%g.W, i/g.W))
		if i == g.index(start) {
			break
		}
	}
	out := make(Path, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}

// Empty reports whether the table holds no usable path at all.
func (t *PathTable) Empty() bool {
	for _, p := range t.slots {
		if p != nil {
			return false
		}
	}
	for _, p := range t.anyExit {
		if p != nil {
			return false
		}
	}
	return true
}

// ExitCount returns the number of exits the table was built for.
func (t *PathTable) ExitCount() int {
	return len(t.Exits)
}

// Lookup returns the path from entry spawn to exit, or nil if absent.
func (t *PathTable) Lookup(spawn, exit int) Path {
	if spawn < 0 || spawn >= len(t.Entries) || exit < 0 || exit >= len(t.Exits) {
		return nil
	}
	return t.slots[spawn*len(t.Exits)+exit]
}

// AnyExit returns the path from entry spawn to the nearest exit in BFS order, or nil.
func (t *PathTable) AnyExit(spawn int) Path {
	if spawn < 0 || spawn >= len(t.anyExit) {
		return nil
	}
	return t.anyExit[spawn]
}

// All returns every connected path in slot order.
func (t *PathTable) All() []Path {
	var out []Path
	for _, p := range t.slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
