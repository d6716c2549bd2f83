// Package world is the authoritative spatial model: terrain slabs, the occupancy
// index, derived walkability and the pool of unoccupied columns. Worlds are
// generated per session and never mutated from more than one goroutine.
package world

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/grid"
)

// MinSize is the smallest world edge; generated sizes are rounded up to an even
// number no smaller than this.
const MinSize = 24

var (
	// ErrOccupied is reported when placing into a cell that already holds an object.
	ErrOccupied = errors.New("world: cell occupied")
	// ErrNoSlab is reported when placing or moving onto a column without terrain.
	ErrNoSlab = errors.New("world: no slab at column")
	// ErrNotRegistered is reported when moving or removing an unknown object.
	ErrNotRegistered = errors.New("world: object not registered")
)

// Style is the terrain tag of a slab.
type Style uint8

const (
	StyleGrass Style = iota
	StylePlain
	StyleFlowers
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleGrass:
		return "grass"
	case StylePlain:
		return "plain"
	case StyleFlowers:
		return "flowers"
	default:
		return "unknown"
	}
}

// Slab is one column of walkable terrain. Its surface is at z = 0.
type Slab struct {
	Style  Style
	Border bool
}

// Summary describes what generation produced.
type Summary struct {
	Seed          int64
	Size          int
	Slabs         int
	BorderSlabs   int
	IslandsPruned int
	FlowerPatches int
	Tiles         int
}

// World owns the terrain, the occupancy index and the walkable map.
// Objects it indexes are non-owning references.
type World struct {
	size   int
	half   int
	seed   int64
	rng    *rand.Rand
	logger *log.Logger

	slabs map[grid.Key]*Slab
	keys  []grid.Key // row-major

	objects  map[grid.Pos]grid.Occupant
	index    map[uint64]grid.Pos
	columns  map[grid.Key][]grid.Occupant
	walkable grid.WalkableMap

	pool  []grid.Key
	tiles []Tile

	summary Summary
}

// NormalizeSize rounds n up to an even number of at least MinSize.
func NormalizeSize(n int) int {
	if n < MinSize {
		n = MinSize
	}
	if n%2 != 0 {
		n++
	}
	return n
}

func newWorld(size int, seed int64, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	size = NormalizeSize(size)
	return &World{
		size:     size,
		half:     size / 2,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)),
		logger:   logger,
		slabs:    make(map[grid.Key]*Slab),
		objects:  make(map[grid.Pos]grid.Occupant),
		index:    make(map[uint64]grid.Pos),
		columns:  make(map[grid.Key][]grid.Occupant),
		walkable: make(grid.WalkableMap),
	}
}

// NewFlat builds a square world of grass with no border styling, pruning or
// decoration. Every column in [-size/2, size/2) is land.
func NewFlat(size int, seed int64, logger *log.Logger) *World {
	w := newWorld(size, seed, logger)
	for y := -w.half; y < w.half; y++ {
		for x := -w.half; x < w.half; x++ {
			w.slabs[grid.K(x, y)] = &Slab{Style: StyleGrass}
		}
	}
	w.finish()
	return w
}

// finish derives everything that follows from the slab set.
func (w *World) finish() {
	w.keys = w.keys[:0]
	for k := range w.slabs {
		w.keys = append(w.keys, k)
	}
	sort.Slice(w.keys, func(i, j int) bool { return w.keys[i].Less(w.keys[j]) })

	w.pool = make([]grid.Key, 0, len(w.keys))
	for _, k := range w.keys {
		w.recompute(k)
		if k != grid.Origin {
			w.pool = append(w.pool, k)
		}
	}
	w.tiles = w.buildMosaic()

	w.summary.Seed = w.seed
	w.summary.Size = w.size
	w.summary.Slabs = len(w.keys)
	w.summary.Tiles = len(w.tiles)
	w.summary.BorderSlabs = 0
	for _, s := range w.slabs {
		if s.Border {
			w.summary.BorderSlabs++
		}
	}
}

// Size returns the normalized world edge.
func (w *World) Size() int { return w.size }

// Half returns size/2; columns span [-Half, Half) on both axes.
func (w *World) Half() int { return w.half }

// Seed returns the generation seed.
func (w *World) Seed() int64 { return w.seed }

// Summary returns the generation summary.
func (w *World) Summary() Summary { return w.summary }

// Keys returns the slab columns in row-major order. The slice must not be modified.
func (w *World) Keys() []grid.Key { return w.keys }

// Slab returns the terrain of column k.
func (w *World) Slab(k grid.Key) (Slab, bool) {
	s, ok := w.slabs[k]
	if !ok {
		return Slab{}, false
	}
	return *s, true
}

// HasSlab reports whether column k is land.
func (w *World) HasSlab(k grid.Key) bool {
	_, ok := w.slabs[k]
	return ok
}

// ObjectCount returns the number of registered objects.
func (w *World) ObjectCount() int { return len(w.objects) }

// CheckPlacement reports why an object could not be placed at p, or nil.
func (w *World) CheckPlacement(p grid.Pos) error {
	if !w.HasSlab(p.Key()) {
		return ErrNoSlab
	}
	if w.objects[p] != nil {
		return ErrOccupied
	}
	return nil
}

// AddObject registers o at its current cell. Placing into an occupied cell, or
// registering the same object twice, is refused and logged.
func (w *World) AddObject(o grid.Occupant) bool {
	p := o.GridPos()
	if _, ok := w.index[o.ID()]; ok {
		w.logger.Warn("object already registered", "id", o.ID(), "x", p.X, "y", p.Y, "z", p.Z)
		return false
	}
	if err := w.CheckPlacement(p); err != nil {
		w.logger.Warn("placement refused", "err", err, "id", o.ID(), "x", p.X, "y", p.Y, "z", p.Z)
		return false
	}
	w.objects[p] = o
	w.index[o.ID()] = p
	k := p.Key()
	w.columns[k] = append(w.columns[k], o)
	w.recompute(k)
	return true
}

// RemoveObject deregisters o.
func (w *World) RemoveObject(o grid.Occupant) bool {
	p, ok := w.index[o.ID()]
	if !ok {
		w.logger.Warn("remove refused", "err", ErrNotRegistered, "id", o.ID())
		return false
	}
	w.unlink(o, p)
	w.recompute(p.Key())
	return true
}

// MoveObject relocates o to the cell to. A blocked destination is an expected
// outcome and returns false without logging.
func (w *World) MoveObject(o grid.Occupant, to grid.Pos) bool {
	from, ok := w.index[o.ID()]
	if !ok {
		w.logger.Warn("move refused", "err", ErrNotRegistered, "id", o.ID())
		return false
	}
	if from == to {
		return true
	}
	if w.CheckPlacement(to) != nil {
		return false
	}
	w.unlink(o, from)
	w.objects[to] = o
	w.index[o.ID()] = to
	w.columns[to.Key()] = append(w.columns[to.Key()], o)
	w.recompute(from.Key())
	w.recompute(to.Key())
	return true
}

func (w *World) unlink(o grid.Occupant, p grid.Pos) {
	delete(w.objects, p)
	delete(w.index, o.ID())
	k := p.Key()
	col := w.columns[k]
	for i, other := range col {
		if other.ID() == o.ID() {
			col = append(col[:i], col[i+1:]...)
			break
		}
	}
	if len(col) == 0 {
		delete(w.columns, k)
	} else {
		w.columns[k] = col
	}
}

// recompute derives the walkable entry of column k from its slab and topmost occupant.
func (w *World) recompute(k grid.Key) {
	if !w.HasSlab(k) {
		delete(w.walkable, k)
		return
	}
	top := w.topmost(k)
	switch {
	case top == nil:
		w.walkable[k] = 0
	case top.Walkable():
		w.walkable[k] = w.index[top.ID()].Z + top.Height()
	default:
		delete(w.walkable, k)
	}
}

// topmost ranks by the indexed cell, which leads the occupant's own position
// while a move is in flight.
func (w *World) topmost(k grid.Key) grid.Occupant {
	var top grid.Occupant
	var topZ int
	for _, o := range w.columns[k] {
		if z := w.index[o.ID()].Z; top == nil || z > topZ {
			top, topZ = o, z
		}
	}
	return top
}

// Top returns the topmost occupant of column k, or nil.
func (w *World) Top(k grid.Key) grid.Occupant {
	return w.topmost(k)
}

// ObjectAt returns the occupant of cell p, or nil.
func (w *World) ObjectAt(p grid.Pos) grid.Occupant {
	return w.objects[p]
}

// ObjectBeneath returns the occupant of the cell directly below p, or nil.
func (w *World) ObjectBeneath(p grid.Pos) grid.Occupant {
	return w.objects[p.Below()]
}

// CanWalk reports whether column (x, y) has a walkable surface.
func (w *World) CanWalk(x, y int) bool {
	_, ok := w.walkable[grid.K(x, y)]
	return ok
}

// WalkableHeight returns the surface height of column (x, y).
func (w *World) WalkableHeight(x, y int) (int, bool) {
	z, ok := w.walkable[grid.K(x, y)]
	return z, ok
}

// WalkableSnapshot returns a copy of the walkable map for path searches.
func (w *World) WalkableSnapshot() grid.WalkableMap {
	snap := make(grid.WalkableMap, len(w.walkable))
	for k, z := range w.walkable {
		snap[k] = z
	}
	return snap
}

// RandomEmptyGrid pops a uniformly random column from the pool of columns not
// yet handed out. The origin is never in the pool. Columns that became blocked
// since generation are discarded. It returns false when the pool is exhausted.
func (w *World) RandomEmptyGrid() (grid.Key, bool) {
	for len(w.pool) > 0 {
		i := w.rng.Intn(len(w.pool))
		k := w.pool[i]
		last := len(w.pool) - 1
		w.pool[i] = w.pool[last]
		w.pool = w.pool[:last]
		if w.CanWalk(k.X, k.Y) {
			return k, true
		}
	}
	return grid.Key{}, false
}

// PoolSize returns how many columns RandomEmptyGrid can still hand out at most.
func (w *World) PoolSize() int {
	return len(w.pool)
}

// Rand exposes the world's seeded source so callers stay reproducible per seed.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

var _ grid.Spatial = (*World)(nil)
