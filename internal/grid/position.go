// Package grid holds the coordinate types of the isometric lattice and the small
// contracts shared by the world, its objects and the render layer. It sits below
// all of them so that they can reference each other through interfaces only.
package grid

import (
	"fmt"

	"github.com/vovakirdan/isoworld/internal/core"
)

// Pos is an integer grid cell (x, y, z). z grows upwards.
type Pos struct {
	X, Y, Z int
}

// P is a convenience constructor for Pos.
func P(x, y, z int) Pos {
	return Pos{X: x, Y: y, Z: z}
}

// Key returns the column this cell belongs to.
func (p Pos) Key() Key {
	return Key{X: p.X, Y: p.Y}
}

// Add returns p moved by (dx, dy, dz).
func (p Pos) Add(dx, dy, dz int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

// Below returns the cell directly underneath.
func (p Pos) Below() Pos {
	return Pos{X: p.X, Y: p.Y, Z: p.Z - 1}
}

// Depth is the painter's-algorithm draw order: x+y.
func (p Pos) Depth() int {
	return p.X + p.Y
}

// String returns "x:y:z".
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d:%d", p.X, p.Y, p.Z)
}

// Key is a column (x, y) of the lattice.
type Key struct {
	X, Y int
}

// K is a convenience constructor for Key.
func K(x, y int) Key {
	return Key{X: x, Y: y}
}

// Origin is the column at the center of every generated world.
var Origin = Key{}

// At returns the cell of this column at height z.
func (k Key) At(z int) Pos {
	return Pos{X: k.X, Y: k.Y, Z: z}
}

// Add returns the column offset by (dx, dy).
func (k Key) Add(dx, dy int) Key {
	return Key{X: k.X + dx, Y: k.Y + dy}
}

// Step returns the neighboring column in direction d.
func (k Key) Step(d Dir) Key {
	dx, dy := d.Delta()
	return k.Add(dx, dy)
}

// Manhattan returns the Manhattan distance to another column.
func (k Key) Manhattan(other Key) int {
	return core.Abs(k.X-other.X) + core.Abs(k.Y-other.Y)
}

// Less orders keys by row, then column. Used wherever a reproducible
// iteration order over a key set is needed.
func (k Key) Less(other Key) bool {
	if k.Y != other.Y {
		return k.Y < other.Y
	}
	return k.X < other.X
}

// String returns "x:y".
func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.X, k.Y)
}

// Offset is the fractional draw displacement of an object that is between two
// cells during a move animation, in grid units.
type Offset struct {
	X, Y, Z float64
}

// IsZero reports whether the offset is (0, 0, 0).
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0 && o.Z == 0
}

// Position is a grid cell plus its draw offset.
type Position struct {
	Pos
	Offset Offset
}

// Path is an ordered route of cells; z is the walkable height of each column.
type Path []Pos

// WalkableMap maps a column to the height of its top walkable surface.
// Columns absent from the map are blocked.
type WalkableMap map[Key]int
