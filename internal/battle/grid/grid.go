// Package grid holds the battlefield tile map and the path table computed from it.
// This package is UI-agnostic and deterministic.
package grid

// Tile is the semantic value of one battlefield cell as authored in level files.
type Tile int

const (
	TileElevated Tile = iota // High ground: ranged deployment only, not walkable
	TileGround               // Walkable ground: melee deployment
	TileEntry                // Hostile spawn gate
	TileExit                 // Protected goal
)

// String returns the string representation of a tile.
func (t Tile) String() string {
	switch t {
	case TileElevated:
		return "elevated"
	case TileGround:
		return "ground"
	case TileEntry:
		return "entry"
	case TileExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Walkable reports whether hostile units may traverse the tile.
func (t Tile) Walkable() bool {
	return t == TileGround || t == TileEntry || t == TileExit
}

// Grid is the battlefield as a rectangular grid of tiles.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	Cells []Tile
}

// New creates a grid from authored rows of integer tile values.
// Rows shorter than the widest row are padded with elevated tiles.
func New(rows [][]int) *Grid {
	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	g := &Grid{
		W:     w,
		H:     len(rows),
		Cells: make([]Tile, w*len(rows)),
	}
	for y, row := range rows {
		for x, v := range row {
			g.Cells[y*w+x] = Tile(v)
		}
	}
	return g
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the tile at the given coordinate.
// Out-of-bounds coordinates read as elevated.
func (g *Grid) At(c Coord) Tile {
	if !g.InBounds(c) {
		return TileElevated
	}
	return g.Cells[g.index(c)]
}

// Find returns all coordinates holding the given tile, ordered by row then column.
func (g *Grid) Find(t Tile) []Coord {
	var out []Coord
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.Cells[y*g.W+x] == t {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}

// Entries returns the spawn gates in row-major order. Spawn indices in waves refer to this order.
func (g *Grid) Entries() []Coord {
	return g.Find(TileEntry)
}

// Exits returns the protected goals in row-major order. Exit indices in waves refer to this order.
func (g *Grid) Exits() []Coord {
	return g.Find(TileExit)
}

// Rows returns the grid as authored integer rows.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.H)
	for y := range rows {
		rows[y] = make([]int, g.W)
		for x := range rows[y] {
			rows[y][x] = int(g.Cells[y*g.W+x])
		}
	}
	return rows
}
