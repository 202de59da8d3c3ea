// Package core provides the terminal-agnostic building blocks of the battle
// viewer: a coloured character buffer, board layout and input actions.
// It has no Bubble Tea dependency so drawing stays testable.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// TileWidth is the number of screen columns one board tile occupies.
const TileWidth = 3

// Board maps tile coordinates to screen cells for a framed board whose
// top-left frame corner sits at Origin.
type Board struct {
	Origin Rect // frame rectangle, including the border
	Cols   int
	Rows   int
}

// NewBoard lays out a cols x rows board with its frame at (x, y).
func NewBoard(x, y, cols, rows int) Board {
	return Board{
		Origin: NewRect(x, y, cols*TileWidth+2, rows+2),
		Cols:   cols,
		Rows:   rows,
	}
}

// TileCell returns the screen cell of the first column of tile (c, r).
func (b Board) TileCell(c, r int) (int, int) {
	return b.Origin.X + 1 + c*TileWidth, b.Origin.Y + 1 + r
}

// PointCell returns the screen cell nearest a position in tile units,
// where the centre of tile (c, r) is (c, r).
func (b Board) PointCell(x, y float64) (int, int) {
	sx := b.Origin.X + 1 + int((x+0.5)*TileWidth)
	sy := b.Origin.Y + 1 + int(y+0.5)
	return sx, sy
}

// CellTile returns the tile under screen cell (sx, sy).
func (b Board) CellTile(sx, sy int) (int, int, bool) {
	dx, dy := sx-b.Origin.X-1, sy-b.Origin.Y-1
	if dx < 0 || dy < 0 || dx >= b.Cols*TileWidth || dy >= b.Rows {
		return 0, 0, false
	}
	return dx / TileWidth, dy, true
}

// CellPoint returns the centre of screen cell (sx, sy) in tile units.
// Cells outside the frame map outside the board.
func (b Board) CellPoint(sx, sy int) (float64, float64) {
	x := (float64(sx-b.Origin.X-1)+0.5)/TileWidth - 0.5
	y := float64(sy - b.Origin.Y - 1)
	return x, y
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
