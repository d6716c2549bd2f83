package world

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// Generation defaults.
const (
	DefaultCoarseBlur    = 4
	DefaultFineBlur      = 1
	DefaultFlowerDivisor = 80

	landScale      = 1.1
	maxFlowerTries = 1000
)

// Params controls terrain generation.
type Params struct {
	Size          int
	Seed          int64
	CoarseBlur    int
	FineBlur      int
	FlowerDivisor int // patch count is ceil(radius²/FlowerDivisor); negative disables flowers
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams(seed int64) Params {
	return Params{
		Size:          MinSize,
		Seed:          seed,
		CoarseBlur:    DefaultCoarseBlur,
		FineBlur:      DefaultFineBlur,
		FlowerDivisor: DefaultFlowerDivisor,
	}
}

func (p Params) normalized() Params {
	p.Size = NormalizeSize(p.Size)
	if p.CoarseBlur < 0 {
		p.CoarseBlur = 0
	}
	if p.FineBlur < 0 {
		p.FineBlur = 0
	}
	if p.FlowerDivisor == 0 {
		p.FlowerDivisor = DefaultFlowerDivisor
	}
	return p
}

// Generate builds a fresh world: noisy land admitted against a Manhattan
// falloff, pruned to its largest island, with shore and flower styling and a
// corner tile mosaic.
func Generate(p Params, logger *log.Logger) *World {
	p = p.normalized()
	w := newWorld(p.Size, p.Seed, logger)

	noise := terrainNoise(w.size, p.Seed, p.CoarseBlur, p.FineBlur)
	radius := float64(w.half)
	land := make(map[grid.Key]bool)
	for y := -w.half; y < w.half; y++ {
		for x := -w.half; x < w.half; x++ {
			farness := 1 - float64(core.Abs(x)+core.Abs(y))/radius
			if noise.at(x, y)/landScale < farness {
				land[grid.K(x, y)] = true
			}
		}
	}

	islands := w.islands(land)
	keep := largestIsland(islands)
	w.summary.IslandsPruned = len(islands) - 1
	if keep == nil {
		w.summary.IslandsPruned = 0
	}
	for _, k := range keep {
		w.slabs[k] = &Slab{Style: StyleGrass}
	}

	w.markBorders()
	if p.FlowerDivisor > 0 {
		w.summary.FlowerPatches = w.scatterFlowers(patchCount(w.half, p.FlowerDivisor))
	}
	w.finish()

	w.logger.Info("world generated",
		"seed", p.Seed,
		"size", w.size,
		"slabs", w.summary.Slabs,
		"islands_pruned", w.summary.IslandsPruned,
		"flower_patches", w.summary.FlowerPatches,
	)
	return w
}

// islands partitions land into 4-connected components, discovered in
// row-major order.
func (w *World) islands(land map[grid.Key]bool) [][]grid.Key {
	seen := make(map[grid.Key]bool, len(land))
	var out [][]grid.Key
	queue := make([]grid.Key, 0, 64)
	for y := -w.half; y < w.half; y++ {
		for x := -w.half; x < w.half; x++ {
			start := grid.K(x, y)
			if !land[start] || seen[start] {
				continue
			}
			var island []grid.Key
			seen[start] = true
			queue = append(queue[:0], start)
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				island = append(island, cur)
				for _, d := range grid.Cardinals {
					next := cur.Step(d)
					if land[next] && !seen[next] {
						seen[next] = true
						queue = append(queue, next)
					}
				}
			}
			out = append(out, island)
		}
	}
	return out
}

// largestIsland picks the biggest component. Equal sizes prefer the one holding
// the origin, then the first discovered.
func largestIsland(islands [][]grid.Key) []grid.Key {
	var best []grid.Key
	bestOrigin := false
	for _, island := range islands {
		origin := containsKey(island, grid.Origin)
		switch {
		case len(island) > len(best):
			best, bestOrigin = island, origin
		case len(island) == len(best) && origin && !bestOrigin:
			best, bestOrigin = island, origin
		}
	}
	return best
}

func containsKey(keys []grid.Key, k grid.Key) bool {
	for _, other := range keys {
		if other == k {
			return true
		}
	}
	return false
}

// markBorders restyles every slab missing a 4-neighbor.
func (w *World) markBorders() {
	for k, s := range w.slabs {
		for _, d := range grid.Cardinals {
			if !w.HasSlab(k.Step(d)) {
				s.Border = true
				s.Style = StylePlain
				break
			}
		}
	}
}

func patchCount(radius, divisor int) int {
	return int(math.Ceil(float64(radius*radius) / float64(divisor)))
}

// scatterFlowers places up to n patches by rejection sampling and returns how
// many were placed.
func (w *World) scatterFlowers(n int) int {
	keys := sortedKeys(w.slabs)
	if len(keys) == 0 {
		return 0
	}
	placed := 0
	for patch := 0; patch < n; patch++ {
		for try := 0; try < maxFlowerTries; try++ {
			k := keys[w.rng.Intn(len(keys))]
			if !w.grassAround(k) {
				continue
			}
			w.slabs[k].Style = StyleFlowers
			extra := 1 + w.rng.Intn(3)
			for i := 0; i < extra; i++ {
				var free []grid.Key
				for _, d := range grid.Neighbors8 {
					nk := k.Step(d)
					if w.slabs[nk].Style == StyleGrass {
						free = append(free, nk)
					}
				}
				if len(free) == 0 {
					break
				}
				w.slabs[free[w.rng.Intn(len(free))]].Style = StyleFlowers
			}
			placed++
			break
		}
	}
	return placed
}

// grassAround reports whether k and its whole 8-neighborhood are plain grass.
func (w *World) grassAround(k grid.Key) bool {
	if s := w.slabs[k]; s == nil || s.Style != StyleGrass {
		return false
	}
	for _, d := range grid.Neighbors8 {
		s := w.slabs[k.Step(d)]
		if s == nil || s.Style != StyleGrass {
			return false
		}
	}
	return true
}
