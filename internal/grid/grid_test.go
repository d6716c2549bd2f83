package grid

import (
	"sort"
	"testing"
)

func TestKeyString(t *testing.T) {
	if got := K(3, -4).String(); got != "3:-4" {
		t.Errorf("String() = %q, expected %q", got, "3:-4")
	}
	if got := P(1, 2, 3).String(); got != "1:2:3" {
		t.Errorf("String() = %q, expected %q", got, "1:2:3")
	}
}

func TestDepth(t *testing.T) {
	if d := P(3, 4, 9).Depth(); d != 7 {
		t.Errorf("Depth() = %d, expected 7", d)
	}
}

func TestDirDeltas(t *testing.T) {
	for _, d := range Cardinals {
		dx, dy := d.Delta()
		if abs(dx)+abs(dy) != 1 {
			t.Errorf("%v is not a unit cardinal step: (%d, %d)", d, dx, dy)
		}
		if !d.Cardinal() {
			t.Errorf("%v should be cardinal", d)
		}
		back, ok := DirOf(dx, dy)
		if !ok || back != d {
			t.Errorf("DirOf(%d, %d) = %v, %v; expected %v", dx, dy, back, ok, d)
		}
	}
	for _, d := range Neighbors8[4:] {
		dx, dy := d.Delta()
		if abs(dx) != 1 || abs(dy) != 1 {
			t.Errorf("%v is not diagonal: (%d, %d)", d, dx, dy)
		}
		if d.Cardinal() {
			t.Errorf("%v should not be cardinal", d)
		}
	}
	if _, ok := DirOf(1, 1); ok {
		t.Error("DirOf should reject diagonal steps")
	}
}

func TestKeyLessIsTotalOrder(t *testing.T) {
	keys := []Key{K(2, 1), K(-1, 0), K(0, 1), K(5, -3), K(0, 0)}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	expected := []Key{K(5, -3), K(-1, 0), K(0, 0), K(0, 1), K(2, 1)}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Fatalf("sorted keys = %v, expected %v", keys, expected)
		}
	}
}

func TestProjectIsInjectiveOnColumns(t *testing.T) {
	seen := make(map[[2]int]Key)
	for y := -6; y <= 6; y++ {
		for x := -6; x <= 6; x++ {
			sx, sy := Project(P(x, y, 0))
			k := [2]int{sx, sy}
			if prev, ok := seen[k]; ok {
				t.Fatalf("%v and %v project to the same cell %v", prev, K(x, y), k)
			}
			seen[k] = K(x, y)
		}
	}
}

func TestProjectPositionMatchesProjectWithoutOffset(t *testing.T) {
	p := P(3, -2, 1)
	ax, ay := Project(p)
	bx, by := ProjectPosition(Position{Pos: p})
	if ax != bx || ay != by {
		t.Errorf("Project = (%d, %d), ProjectPosition = (%d, %d)", ax, ay, bx, by)
	}

	// Halfway back towards the previous cell along x
	hx, _ := ProjectPosition(Position{Pos: p, Offset: Offset{X: -0.5}})
	if hx != ax-1 {
		t.Errorf("half offset x = %d, expected %d", hx, ax-1)
	}
}

func TestProjectCornerSurroundsCell(t *testing.T) {
	// The four corners of cell (0,0) in doubled coordinates
	cx, cy := Project(P(0, 0, 0))
	nwX, nwY := ProjectCorner(-1, -1)
	seX, seY := ProjectCorner(1, 1)
	if nwX != cx || seX != cx {
		t.Errorf("NW/SE corners should share the cell's column: %d %d %d", nwX, seX, cx)
	}
	if nwY != cy-1 || seY != cy+1 {
		t.Errorf("NW/SE corners should sit above/below the cell: %d %d %d", nwY, seY, cy)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
