package world

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/grid"
)

type block struct {
	id       uint64
	pos      grid.Pos
	height   int
	walkable bool
}

func (b *block) ID() uint64        { return b.id }
func (b *block) GridPos() grid.Pos { return b.pos }
func (b *block) Height() int       { return b.height }
func (b *block) Walkable() bool    { return b.walkable }

func quiet() *log.Logger {
	return log.New(io.Discard)
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 24},
		{-5, 24},
		{23, 24},
		{24, 24},
		{25, 26},
		{40, 40},
	}
	for _, tt := range tests {
		if got := NormalizeSize(tt.in); got != tt.want {
			t.Errorf("NormalizeSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFlatWorldIsCentered(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	if w.Half() != 12 {
		t.Fatalf("Half() = %d, want 12", w.Half())
	}
	if got := len(w.Keys()); got != 24*24 {
		t.Fatalf("slabs = %d, want %d", got, 24*24)
	}
	for _, k := range []grid.Key{grid.K(-12, -12), grid.K(11, 11), grid.Origin} {
		if !w.HasSlab(k) {
			t.Errorf("expected slab at %s", k)
		}
		if z, ok := w.WalkableHeight(k.X, k.Y); !ok || z != 0 {
			t.Errorf("WalkableHeight(%s) = %d, %v; want 0, true", k, z, ok)
		}
	}
	if w.HasSlab(grid.K(12, 0)) {
		t.Error("column 12:0 should be off-map")
	}
}

func TestAddObjectRefusesOccupiedCell(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	a := &block{id: 1, pos: grid.P(1, 1, 0), height: 1}
	b := &block{id: 2, pos: grid.P(1, 1, 0), height: 1}

	if !w.AddObject(a) {
		t.Fatal("first add should succeed")
	}
	if w.AddObject(b) {
		t.Fatal("second add into the same cell should be refused")
	}
	if w.ObjectAt(grid.P(1, 1, 0)) != a {
		t.Error("occupant changed after refused add")
	}
	if err := w.CheckPlacement(grid.P(1, 1, 0)); err != ErrOccupied {
		t.Errorf("CheckPlacement = %v, want ErrOccupied", err)
	}
	if err := w.CheckPlacement(grid.P(50, 0, 0)); err != ErrNoSlab {
		t.Errorf("CheckPlacement off-map = %v, want ErrNoSlab", err)
	}
	if w.AddObject(a) {
		t.Error("re-adding a registered object should be refused")
	}
}

func TestWalkabilityFollowsTopmostOccupant(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	rock := &block{id: 1, pos: grid.P(2, 3, 0), height: 1, walkable: true}
	tree := &block{id: 2, pos: grid.P(2, 3, 1), height: 2}

	w.AddObject(rock)
	if z, ok := w.WalkableHeight(2, 3); !ok || z != 1 {
		t.Fatalf("after rock: WalkableHeight = %d, %v; want 1, true", z, ok)
	}

	w.AddObject(tree)
	if w.CanWalk(2, 3) {
		t.Fatal("tree on top should block the column")
	}
	if w.ObjectBeneath(tree.pos) != rock {
		t.Error("ObjectBeneath(tree) should be the rock")
	}

	w.RemoveObject(tree)
	if z, ok := w.WalkableHeight(2, 3); !ok || z != 1 {
		t.Fatalf("after removing tree: WalkableHeight = %d, %v; want 1, true", z, ok)
	}

	w.RemoveObject(rock)
	if z, ok := w.WalkableHeight(2, 3); !ok || z != 0 {
		t.Fatalf("bare slab: WalkableHeight = %d, %v; want 0, true", z, ok)
	}
	if w.RemoveObject(rock) {
		t.Error("removing an unregistered object should fail")
	}
}

func TestMoveObject(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	a := &block{id: 1, pos: grid.P(0, 0, 0), height: 1}
	b := &block{id: 2, pos: grid.P(1, 0, 0), height: 1}
	w.AddObject(a)
	w.AddObject(b)

	if w.MoveObject(a, grid.P(1, 0, 0)) {
		t.Fatal("move into occupied cell should fail")
	}
	if w.MoveObject(a, grid.P(-40, 0, 0)) {
		t.Fatal("move off-map should fail")
	}
	if !w.MoveObject(a, grid.P(0, 1, 0)) {
		t.Fatal("move into free cell should succeed")
	}
	a.pos = grid.P(0, 1, 0)

	if w.ObjectAt(grid.P(0, 0, 0)) != nil {
		t.Error("old cell still occupied")
	}
	if !w.CanWalk(0, 0) {
		t.Error("vacated column should be walkable again")
	}
	if w.CanWalk(0, 1) {
		t.Error("column holding an unwalkable object should be blocked")
	}
	ghost := &block{id: 9, pos: grid.P(3, 3, 0)}
	if w.MoveObject(ghost, grid.P(4, 3, 0)) {
		t.Error("moving an unregistered object should fail")
	}
}

func TestClimbBlocksColumnBeforeMoverUpdates(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	rock := &block{id: 1, pos: grid.P(1, 0, 0), height: 1, walkable: true}
	actor := &block{id: 2, pos: grid.P(0, 0, 0), height: 1}
	w.AddObject(rock)
	w.AddObject(actor)

	// The mover still reports its old cell while the world relocates it.
	if !w.MoveObject(actor, grid.P(1, 0, 1)) {
		t.Fatal("climb onto the rock refused")
	}
	if w.CanWalk(1, 0) {
		t.Error("column under the climbed actor is walkable")
	}
	if top := w.Top(grid.K(1, 0)); top != actor {
		t.Errorf("Top(1:0) = %v, want the actor", top)
	}
	if !w.CanWalk(0, 0) {
		t.Error("vacated column should be walkable again")
	}

	actor.pos = grid.P(1, 0, 1)
	if !w.MoveObject(actor, grid.P(0, 0, 0)) {
		t.Fatal("step down refused")
	}
	if h, ok := w.WalkableHeight(1, 0); !ok || h != 1 {
		t.Errorf("WalkableHeight(1, 0) = %d, %v; want 1, true", h, ok)
	}
}

func TestOccupancyStaysUniqueUnderMutation(t *testing.T) {
	w := NewFlat(24, 7, quiet())
	rng := w.Rand()
	blocks := make([]*block, 0, 40)
	for i := 0; i < 40; i++ {
		b := &block{id: uint64(i + 1), pos: grid.P(rng.Intn(8)-4, rng.Intn(8)-4, rng.Intn(2)), height: 1, walkable: i%2 == 0}
		if w.AddObject(b) {
			blocks = append(blocks, b)
		}
	}
	for step := 0; step < 500; step++ {
		b := blocks[rng.Intn(len(blocks))]
		switch rng.Intn(3) {
		case 0:
			to := b.pos.Add(rng.Intn(3)-1, rng.Intn(3)-1, 0)
			if w.MoveObject(b, to) {
				b.pos = to
			}
		case 1:
			if w.RemoveObject(b) {
				if !w.AddObject(b) {
					t.Fatalf("re-adding %d into its vacated cell failed", b.id)
				}
			}
		default:
			w.AddObject(&block{id: uint64(1000 + step), pos: b.pos, height: 1})
		}
	}

	seen := map[grid.Pos]uint64{}
	for _, b := range blocks {
		if other, dup := seen[b.pos]; dup {
			t.Fatalf("objects %d and %d share cell %s", other, b.id, b.pos)
		}
		seen[b.pos] = b.id
		if w.ObjectAt(b.pos) != b {
			t.Fatalf("index disagrees with object %d at %s", b.id, b.pos)
		}
	}
	for _, k := range w.Keys() {
		top := w.Top(k)
		blocked := top != nil && !top.Walkable()
		if w.CanWalk(k.X, k.Y) == blocked {
			t.Fatalf("column %s: CanWalk=%v but top blocked=%v", k, w.CanWalk(k.X, k.Y), blocked)
		}
	}
}

func TestRandomEmptyGridNeverRepeats(t *testing.T) {
	w := NewFlat(24, 3, quiet())
	seen := map[grid.Key]bool{}
	for {
		before := w.PoolSize()
		k, ok := w.RandomEmptyGrid()
		if !ok {
			break
		}
		if w.PoolSize() != before-1 {
			t.Fatalf("pool shrank from %d to %d", before, w.PoolSize())
		}
		if k == grid.Origin {
			t.Fatal("pool handed out the origin")
		}
		if seen[k] {
			t.Fatalf("pool handed out %s twice", k)
		}
		seen[k] = true
	}
	if len(seen) != 24*24-1 {
		t.Errorf("handed out %d columns, want %d", len(seen), 24*24-1)
	}
	if w.PoolSize() != 0 {
		t.Errorf("PoolSize() = %d after exhaustion", w.PoolSize())
	}
}

func TestRandomEmptyGridSkipsBlockedColumns(t *testing.T) {
	w := NewFlat(24, 3, quiet())
	for i, k := range w.Keys() {
		if k == grid.K(5, 5) {
			continue
		}
		w.AddObject(&block{id: uint64(i + 1), pos: k.At(0), height: 1})
	}
	k, ok := w.RandomEmptyGrid()
	if !ok || k != grid.K(5, 5) {
		t.Fatalf("RandomEmptyGrid() = %s, %v; want 5:5, true", k, ok)
	}
	if _, ok := w.RandomEmptyGrid(); ok {
		t.Fatal("pool should be exhausted")
	}
}

func TestWalkableSnapshotIsACopy(t *testing.T) {
	w := NewFlat(24, 1, quiet())
	snap := w.WalkableSnapshot()
	delete(snap, grid.Origin)
	if !w.CanWalk(0, 0) {
		t.Error("mutating the snapshot changed the world")
	}
}
