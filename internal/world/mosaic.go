package world

import (
	"sort"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// Corner code characters, one per neighboring cell.
const (
	CodeGrass   = 'g'
	CodePlain   = 'p'
	CodeFlowers = 'f'
	CodeNone    = '_' // off-map
)

// Tile is one decorative sprite on a half-grid corner. CX and CY are doubled
// coordinates and always odd. Code lists the styles of the NW, NE, SE and SW
// cells around the corner.
type Tile struct {
	CX, CY int
	Code   string
}

// Depth is the draw order of the tile, matching object depth x+y.
func (t Tile) Depth() int {
	return (t.CX + t.CY) / 2
}

// Sprite is the terminal stand-in for a tile image: four glyphs, one color.
// Spaces are transparent.
type Sprite struct {
	Pattern string
	Color   core.Color
}

// Atlas resolves corner codes to sprites.
type Atlas interface {
	Lookup(code string) (Sprite, bool)
}

// DefaultAtlas draws terrain with block shades.
type DefaultAtlas struct{}

// Lookup picks the dominant style around the corner and blanks whichever half
// faces off-map.
func (DefaultAtlas) Lookup(code string) (Sprite, bool) {
	if len(code) != 4 {
		return Sprite{}, false
	}
	counts := map[byte]int{}
	for i := 0; i < 4; i++ {
		counts[code[i]]++
	}
	if counts[CodeNone] == 4 {
		return Sprite{}, false
	}
	dominant := byte(CodeGrass)
	best := 0
	for _, c := range []byte{CodeFlowers, CodeGrass, CodePlain} {
		if counts[c] > best {
			dominant, best = c, counts[c]
		}
	}

	var sprite Sprite
	switch dominant {
	case CodeFlowers:
		sprite = Sprite{Pattern: "·✿·✿", Color: core.ColorPink}
	case CodePlain:
		sprite = Sprite{Pattern: "▒▒▒▒", Color: core.ColorOlive}
	default:
		sprite = Sprite{Pattern: "░░░░", Color: core.ColorGreen}
	}
	glyphs := []rune(sprite.Pattern)
	if code[0] == CodeNone && code[3] == CodeNone {
		glyphs[0], glyphs[1] = ' ', ' '
	}
	if code[1] == CodeNone && code[2] == CodeNone {
		glyphs[2], glyphs[3] = ' ', ' '
	}
	sprite.Pattern = string(glyphs)
	return sprite, true
}

func styleCode(s *Slab) byte {
	if s == nil {
		return CodeNone
	}
	switch s.Style {
	case StyleFlowers:
		return CodeFlowers
	case StylePlain:
		return CodePlain
	default:
		return CodeGrass
	}
}

// CornerCode returns the code of the corner at doubled coordinates (cx, cy).
func (w *World) CornerCode(cx, cy int) string {
	nw := grid.K((cx-1)/2, (cy-1)/2)
	return string([]byte{
		styleCode(w.slabs[nw]),
		styleCode(w.slabs[nw.Add(1, 0)]),
		styleCode(w.slabs[nw.Add(1, 1)]),
		styleCode(w.slabs[nw.Add(0, 1)]),
	})
}

var cornerOffsets = [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

// buildMosaic emits one tile per distinct corner of every slab, sorted by depth.
func (w *World) buildMosaic() []Tile {
	seen := make(map[[2]int]struct{}, len(w.keys)*2)
	tiles := make([]Tile, 0, len(w.keys)*2)
	for _, k := range w.keys {
		for _, c := range cornerOffsets {
			cx, cy := 2*k.X+c[0], 2*k.Y+c[1]
			if _, ok := seen[[2]int{cx, cy}]; ok {
				continue
			}
			seen[[2]int{cx, cy}] = struct{}{}
			tiles = append(tiles, Tile{CX: cx, CY: cy, Code: w.CornerCode(cx, cy)})
		}
	}
	sort.SliceStable(tiles, func(i, j int) bool {
		if tiles[i].Depth() != tiles[j].Depth() {
			return tiles[i].Depth() < tiles[j].Depth()
		}
		return tiles[i].CX < tiles[j].CX
	})
	return tiles
}

// Tiles returns the depth-sorted mosaic. The slice must not be modified.
func (w *World) Tiles() []Tile {
	return w.tiles
}

const spriteWidth = 4

// Background composites the mosaic into one raster. The returned origin is
// where the projected origin cell sits inside the raster.
func (w *World) Background(atlas Atlas) (raster *core.Screen, originX, originY int) {
	if atlas == nil {
		atlas = DefaultAtlas{}
	}
	if len(w.tiles) == 0 {
		return core.NewScreen(0, 0), 0, 0
	}
	minX, minY := 1<<30, 1<<30
	maxX, maxY := -(1 << 30), -(1 << 30)
	for _, t := range w.tiles {
		sx, sy := grid.ProjectCorner(t.CX, t.CY)
		minX = core.Min(minX, sx-spriteWidth/2)
		maxX = core.Max(maxX, sx+spriteWidth/2-1)
		minY = core.Min(minY, sy)
		maxY = core.Max(maxY, sy)
	}
	originX, originY = -minX, -minY
	raster = core.NewScreen(maxX-minX+1, maxY-minY+1)
	for _, t := range w.tiles {
		sprite, ok := atlas.Lookup(t.Code)
		if !ok {
			continue
		}
		sx, sy := grid.ProjectCorner(t.CX, t.CY)
		x := originX + sx - spriteWidth/2
		for i, r := range []rune(sprite.Pattern) {
			if r == ' ' {
				continue
			}
			raster.SetColored(x+i, originY+sy, r, sprite.Color)
		}
	}
	return raster, originX, originY
}

// PublishBackground composites the mosaic and hands it to the render registry.
func (w *World) PublishBackground(r grid.RenderRegistry, atlas Atlas) {
	if r == nil {
		return
	}
	raster, ox, oy := w.Background(atlas)
	r.SetBackground(raster, ox, oy)
}

func sortedKeys(m map[grid.Key]*Slab) []grid.Key {
	keys := make([]grid.Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
