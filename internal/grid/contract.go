package grid

import "github.com/vovakirdan/isoworld/internal/core"

// Occupant is anything that fills one cell of the world's occupancy index.
type Occupant interface {
	ID() uint64
	GridPos() Pos
	// Height is the vertical extent in grid units.
	Height() int
	// Walkable reports whether other objects may stand on top of it.
	Walkable() bool
}

// Spatial is the part of the world objects talk to.
type Spatial interface {
	AddObject(o Occupant) bool
	RemoveObject(o Occupant) bool
	MoveObject(o Occupant, to Pos) bool
	ObjectAt(p Pos) Occupant
	ObjectBeneath(p Pos) Occupant
	CanWalk(x, y int) bool
	WalkableHeight(x, y int) (int, bool)
}

// Proxy is the mutable draw record the external renderer reads for one entity.
// Screen coordinates are kept current by the owning entity.
type Proxy struct {
	ScreenX, ScreenY int
	Width, Height    int // sprite metrics in screen cells
	Glyph            rune
	Color            core.Color
	Text             string // overlays only
	Visible          bool
}

// Drawable is an entity known to the render registry.
type Drawable interface {
	ID() uint64
	Proxy() *Proxy
	Depth() int
}

// RenderRegistry is the render-registration capability consumed by the core.
type RenderRegistry interface {
	Add(d Drawable)
	Remove(d Drawable)
	AddOverlay(d Drawable)
	RemoveOverlay(d Drawable)
	// MarkDirty requests a depth re-sort before the next frame.
	MarkDirty()
	// SetBackground hands over the pre-composited terrain raster; (originX,
	// originY) is where the projected origin cell sits inside it.
	SetBackground(raster *core.Screen, originX, originY int)
}
