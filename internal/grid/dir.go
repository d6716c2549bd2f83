package grid

// Dir is one of the eight compass directions on the lattice.
// North is -y, East is +x.
type Dir int

const (
	North Dir = iota
	East
	South
	West
	NorthEast
	SouthEast
	SouthWest
	NorthWest
)

// Cardinals lists the four axis-aligned directions in a fixed order.
// Random picks index into this slice so that results are reproducible per seed.
var Cardinals = []Dir{North, East, South, West}

// Neighbors8 lists all eight directions, cardinals first.
var Neighbors8 = []Dir{North, East, South, West, NorthEast, SouthEast, SouthWest, NorthWest}

var dirDeltas = [...][2]int{
	North:     {0, -1},
	East:      {1, 0},
	South:     {0, 1},
	West:      {-1, 0},
	NorthEast: {1, -1},
	SouthEast: {1, 1},
	SouthWest: {-1, 1},
	NorthWest: {-1, -1},
}

// Delta returns the (dx, dy) step of the direction.
func (d Dir) Delta() (dx, dy int) {
	if d < 0 || int(d) >= len(dirDeltas) {
		return 0, 0
	}
	v := dirDeltas[d]
	return v[0], v[1]
}

// Cardinal reports whether d changes exactly one axis.
func (d Dir) Cardinal() bool {
	return d >= North && d <= West
}

// String returns the compass name of the direction.
func (d Dir) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case NorthEast:
		return "northeast"
	case SouthEast:
		return "southeast"
	case SouthWest:
		return "southwest"
	case NorthWest:
		return "northwest"
	default:
		return "none"
	}
}

// DirOf returns the cardinal direction of a unit step (dx, dy) and whether the
// step is one.
func DirOf(dx, dy int) (Dir, bool) {
	switch {
	case dx == 0 && dy == -1:
		return North, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == 0 && dy == 1:
		return South, true
	case dx == -1 && dy == 0:
		return West, true
	}
	return 0, false
}
