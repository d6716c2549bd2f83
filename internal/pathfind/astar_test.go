package pathfind

import (
	"testing"

	"github.com/vovakirdan/isoworld/internal/grid"
)

func square(half int) grid.WalkableMap {
	m := grid.WalkableMap{}
	for y := -half; y < half; y++ {
		for x := -half; x < half; x++ {
			m[grid.K(x, y)] = 0
		}
	}
	return m
}

func checkPath(t *testing.T, start, end grid.Key, path grid.Path) {
	t.Helper()
	if len(path) == 0 {
		t.Fatal("empty path")
	}
	if path[len(path)-1].Key() != end {
		t.Fatalf("path ends at %s, want %s", path[len(path)-1].Key(), end)
	}
	prev := start
	cost := 0
	for i, p := range path {
		k := p.Key()
		dx, dy := k.X-prev.X, k.Y-prev.Y
		if dx < -1 || dx > 1 || dy < -1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("step %d from %s to %s is not adjacent", i, prev, k)
		}
		next := cost + StepCost(prev, k)
		if next < cost {
			t.Fatalf("cost decreased at step %d", i)
		}
		cost = next
		prev = k
	}
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		a, b grid.Key
		want int
	}{
		{grid.K(0, 0), grid.K(0, 0), 0},
		{grid.K(0, 0), grid.K(3, 0), 15},
		{grid.K(0, 0), grid.K(3, 3), 24},
		{grid.K(0, 0), grid.K(4, -2), 26},
		{grid.K(-2, 1), grid.K(1, 1), 15},
	}
	for _, tt := range tests {
		if got := Heuristic(tt.a, tt.b); got != tt.want {
			t.Errorf("Heuristic(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFindPathSameCell(t *testing.T) {
	m := square(6)
	if p := FindPath(grid.K(1, 1), grid.K(1, 1), m); len(p) != 0 {
		t.Fatalf("FindPath(p, p) = %v, want empty", p)
	}
}

func TestFindPathUnwalkableEnd(t *testing.T) {
	m := square(6)
	delete(m, grid.K(3, 3))
	if p := FindPath(grid.K(0, 0), grid.K(3, 3), m); len(p) != 0 {
		t.Fatalf("path to blocked end = %v, want empty", p)
	}
	m[grid.K(3, 3)] = -1
	if p := FindPath(grid.K(0, 0), grid.K(3, 3), m); len(p) != 0 {
		t.Fatalf("path to negative height = %v, want empty", p)
	}
}

func TestFindPathNoRoute(t *testing.T) {
	m := square(6)
	for y := -6; y < 6; y++ {
		delete(m, grid.K(2, y))
	}
	if p := FindPath(grid.K(0, 0), grid.K(4, 0), m); len(p) != 0 {
		t.Fatalf("path through a wall = %v, want empty", p)
	}
}

func TestFindPathOpenField(t *testing.T) {
	m := square(12)
	start, end := grid.K(0, 0), grid.K(5, 3)
	path := FindPath(start, end, m)
	checkPath(t, start, end, path)
	if got, want := Cost(start, path), Heuristic(start, end); got != want {
		t.Errorf("cost = %d, want optimal %d", got, want)
	}
	if len(path) != 5 {
		t.Errorf("len = %d, want 5", len(path))
	}
}

func TestFindPathAroundWall(t *testing.T) {
	m := square(8)
	for y := -3; y <= 3; y++ {
		delete(m, grid.K(2, y))
	}
	start, end := grid.K(0, 0), grid.K(4, 0)
	path := FindPath(start, end, m)
	checkPath(t, start, end, path)
	for _, p := range path {
		if _, ok := m[p.Key()]; !ok {
			t.Fatalf("path crosses blocked column %s", p.Key())
		}
	}
}

func TestFindPathNoCornerCutting(t *testing.T) {
	m := square(4)
	delete(m, grid.K(1, 0))
	start, end := grid.K(0, 0), grid.K(1, 1)
	path := FindPath(start, end, m)
	checkPath(t, start, end, path)
	if len(path) != 2 {
		t.Fatalf("path = %v, want a detour through 0:1", path)
	}
}

func TestFindPathRefusesDiagonalSqueeze(t *testing.T) {
	m := square(4)
	delete(m, grid.K(1, 0))
	delete(m, grid.K(0, 1))
	// 0:0 is walled in on its +x and +y sides, so 1:1 is reachable only by the long way.
	path := FindPath(grid.K(0, 0), grid.K(1, 1), m)
	checkPath(t, grid.K(0, 0), grid.K(1, 1), path)
	if len(path) < 4 {
		t.Fatalf("path = %v squeezed through the diagonal", path)
	}

	pocket := grid.WalkableMap{grid.K(0, 0): 0, grid.K(1, 1): 0}
	if path := FindPath(grid.K(0, 0), grid.K(1, 1), pocket); path != nil {
		t.Errorf("path = %v, want nil when only the squeeze connects", path)
	}
}

func TestFindPathCarriesHeight(t *testing.T) {
	m := square(4)
	m[grid.K(1, 0)] = 2
	path := FindPath(grid.K(0, 0), grid.K(1, 0), m)
	if len(path) != 1 || path[0] != grid.P(1, 0, 2) {
		t.Fatalf("path = %v, want [1:0:2]", path)
	}
}

func TestFindPathIsDeterministic(t *testing.T) {
	m := square(10)
	first := FindPath(grid.K(-5, -5), grid.K(6, 2), m)
	for i := 0; i < 20; i++ {
		again := FindPath(grid.K(-5, -5), grid.K(6, 2), m)
		if len(again) != len(first) {
			t.Fatal("path length changed between runs")
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("path differs at %d: %s vs %s", j, again[j], first[j])
			}
		}
	}
}

func TestFinderUsesLoadedMap(t *testing.T) {
	f := NewFinder()
	if p := f.FindPath(grid.K(0, 0), grid.K(1, 0)); len(p) != 0 {
		t.Fatal("finder without a map should find nothing")
	}
	f.LoadMap(square(4))
	if p := f.FindPath(grid.K(0, 0), grid.K(1, 0)); len(p) != 1 {
		t.Fatalf("path = %v, want one step", p)
	}
}
