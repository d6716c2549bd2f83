package world

import (
	"math"

	"github.com/vovakirdan/isoworld/internal/core"
)

// hash32 is a small avalanche mix; stable across platforms and Go versions.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

func hash2(seed uint32, x, y int32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	return hash32(h)
}

func foldSeed(seed int64) uint32 {
	return uint32(seed) ^ uint32(uint64(seed)>>32)
}

// field is a size×size scalar grid indexed from (-half, -half).
type field struct {
	size int
	half int
	v    []float64
}

func newField(size int) *field {
	return &field{size: size, half: size / 2, v: make([]float64, size*size)}
}

func (f *field) at(x, y int) float64 {
	x = core.Clamp(x+f.half, 0, f.size-1)
	y = core.Clamp(y+f.half, 0, f.size-1)
	return f.v[y*f.size+x]
}

func (f *field) set(x, y int, v float64) {
	f.v[(y+f.half)*f.size+x+f.half] = v
}

// whiteNoise fills a field with hashed values in [0, 1].
func whiteNoise(size int, seed uint32) *field {
	f := newField(size)
	for y := -f.half; y < f.half; y++ {
		for x := -f.half; x < f.half; x++ {
			f.set(x, y, float64(hash2(seed, int32(x), int32(y)))/math.MaxUint32)
		}
	}
	return f
}

// blur applies a separable box blur of the given radius, clamping at the edges.
func (f *field) blur(radius int) *field {
	if radius <= 0 {
		return f
	}
	span := float64(2*radius + 1)
	tmp := newField(f.size)
	for y := -f.half; y < f.half; y++ {
		for x := -f.half; x < f.half; x++ {
			sum := 0.0
			for d := -radius; d <= radius; d++ {
				sum += f.at(x+d, y)
			}
			tmp.set(x, y, sum/span)
		}
	}
	out := newField(f.size)
	for y := -f.half; y < f.half; y++ {
		for x := -f.half; x < f.half; x++ {
			sum := 0.0
			for d := -radius; d <= radius; d++ {
				sum += tmp.at(x, y+d)
			}
			out.set(x, y, sum/span)
		}
	}
	return out
}

// normalize stretches the field to span [0, 1].
func (f *field) normalize() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f.v {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-12 {
		for i := range f.v {
			f.v[i] = 0
		}
		return
	}
	for i, v := range f.v {
		f.v[i] = (v - lo) / (hi - lo)
	}
}

// terrainNoise blends a coarse and a fine blurred octave with weights 1 and 2.
func terrainNoise(size int, seed int64, coarseBlur, fineBlur int) *field {
	s := foldSeed(seed)
	coarse := whiteNoise(size, s).blur(coarseBlur)
	fine := whiteNoise(size, hash32(s^0x5bd1e995)).blur(fineBlur)
	out := newField(size)
	for i := range out.v {
		out.v[i] = (coarse.v[i] + 2*fine.v[i]) / 3
	}
	out.normalize()
	return out
}
