package grid

import "math"

// Isometric projection constants, in screen cells.
// A tile is four columns wide and two rows tall, so a cell center lands on
// (2*(x-y), x+y) and half-grid corners land on whole cells as well.
const (
	TileHalfWidth  = 2
	TileHalfHeight = 1
	LevelHeight    = 1 // rows per z level
)

// Project returns the screen coordinates of a cell center relative to the origin.
func Project(p Pos) (sx, sy int) {
	return (p.X - p.Y) * TileHalfWidth, (p.X+p.Y)*TileHalfHeight - p.Z*LevelHeight
}

// ProjectPosition projects a cell with its fractional draw offset applied.
func ProjectPosition(p Position) (sx, sy int) {
	fx := float64(p.X) + p.Offset.X
	fy := float64(p.Y) + p.Offset.Y
	fz := float64(p.Z) + p.Offset.Z
	x := (fx - fy) * TileHalfWidth
	y := (fx+fy)*TileHalfHeight - fz*LevelHeight
	return int(math.Round(x)), int(math.Round(y))
}

// ProjectCorner projects a half-grid corner given in doubled coordinates
// (both odd for real corners).
func ProjectCorner(cx, cy int) (sx, sy int) {
	return (cx - cy) * TileHalfWidth / 2, (cx + cy) * TileHalfHeight / 2
}
