// Package pathfind searches routes over a walkability snapshot. It never
// touches the world, so a search may run while the world keeps changing; the
// returned path is advisory and callers recompute it as they go.
package pathfind

import (
	"container/heap"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// Step costs in integer units; diagonal approximates cardinal·√2.
const (
	CostCardinal = 5
	CostDiagonal = 8
)

// Heuristic is the octile distance between two columns in step-cost units.
func Heuristic(a, b grid.Key) int {
	dx := core.Abs(a.X - b.X)
	dy := core.Abs(a.Y - b.Y)
	lo, hi := core.Min(dx, dy), core.Max(dx, dy)
	return CostDiagonal*lo + CostCardinal*(hi-lo)
}

// StepCost returns the cost of moving between two adjacent columns.
func StepCost(a, b grid.Key) int {
	if a.X != b.X && a.Y != b.Y {
		return CostDiagonal
	}
	return CostCardinal
}

// Cost returns the accumulated cost of walking path from start.
func Cost(start grid.Key, path grid.Path) int {
	total := 0
	prev := start
	for _, p := range path {
		total += StepCost(prev, p.Key())
		prev = p.Key()
	}
	return total
}

// Finder holds the snapshot searches run against.
type Finder struct {
	walkable grid.WalkableMap
}

// NewFinder returns a finder with an empty map.
func NewFinder() *Finder {
	return &Finder{}
}

// LoadMap replaces the snapshot used by FindPath.
func (f *Finder) LoadMap(walkable grid.WalkableMap) {
	f.walkable = walkable
}

// FindPath searches the loaded snapshot.
func (f *Finder) FindPath(start, end grid.Key) grid.Path {
	return FindPath(start, end, f.walkable)
}

func traversable(walkable grid.WalkableMap, k grid.Key) bool {
	z, ok := walkable[k]
	return ok && z >= 0
}

// FindPath returns the cheapest 8-connected route from start to end, excluding
// start and ending at end, with z taken from the map. It returns nil when
// start equals end, when end is not walkable, or when no route exists.
// The start column itself need not be walkable. Diagonal steps are only taken
// when both orthogonal neighbors are walkable, so every diagonal can be split
// into two cardinal steps. This is deliberate: actors move one axis at a time,
// so a diagonal squeezed between two blocked columns has no route and yields nil.
func FindPath(start, end grid.Key, walkable grid.WalkableMap) grid.Path {
	if start == end || !traversable(walkable, end) {
		return nil
	}

	nodes := make(map[grid.Key]*node)
	open := &openList{}
	seq := 0
	first := &node{key: start, h: Heuristic(start, end), seq: seq}
	nodes[start] = first
	heap.Push(open, first)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.key == end {
			return reconstruct(cur, walkable)
		}
		cur.closed = true

		for _, d := range grid.Neighbors8 {
			next := cur.key.Step(d)
			if !traversable(walkable, next) {
				continue
			}
			if !d.Cardinal() {
				dx, dy := d.Delta()
				if !traversable(walkable, cur.key.Add(dx, 0)) || !traversable(walkable, cur.key.Add(0, dy)) {
					continue
				}
			}
			n := nodes[next]
			if n != nil && n.closed {
				continue
			}
			g := cur.g + StepCost(cur.key, next)
			if n == nil {
				seq++
				n = &node{key: next, g: g, h: Heuristic(next, end), seq: seq, parent: cur}
				nodes[next] = n
				heap.Push(open, n)
				continue
			}
			if g < n.g {
				n.g = g
				n.parent = cur
				heap.Fix(open, n.index)
			}
		}
	}
	return nil
}

func reconstruct(goal *node, walkable grid.WalkableMap) grid.Path {
	n := 0
	for cur := goal; cur.parent != nil; cur = cur.parent {
		n++
	}
	path := make(grid.Path, n)
	for cur := goal; cur.parent != nil; cur = cur.parent {
		n--
		path[n] = cur.key.At(walkable[cur.key])
	}
	return path
}

type node struct {
	key    grid.Key
	g, h   int
	seq    int
	parent *node
	index  int
	closed bool
}

func (n *node) f() int { return n.g + n.h }

// openList orders nodes by f, then h, then insertion.
type openList []*node

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}

func (o openList) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openList) Push(x any) {
	n := x.(*node)
	n.index = len(*o)
	*o = append(*o, n)
}

func (o *openList) Pop() any {
	old := *o
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*o = old[:last]
	return n
}
