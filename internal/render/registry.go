// Package render keeps the depth-ordered list of drawables and composes them,
// over the pre-composited terrain, into a screen buffer.
package render

import (
	"sort"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// Camera places the projected origin cell on the destination screen.
type Camera struct {
	X, Y int
}

// CenterOn returns a camera that puts cell p in the middle of a w×h screen.
func CenterOn(p grid.Pos, w, h int) Camera {
	sx, sy := grid.Project(p)
	return Camera{X: w/2 - sx, Y: h/2 - sy}
}

// Pan shifts the camera by (dx, dy) screen cells.
func (c Camera) Pan(dx, dy int) Camera {
	return Camera{X: c.X + dx, Y: c.Y + dy}
}

// Registry implements grid.RenderRegistry.
type Registry struct {
	items    []grid.Drawable
	overlays []grid.Drawable
	dirty    bool
	sorts    int
	culled   int

	background *core.Screen
	bgX, bgY   int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a world drawable. Adding twice is a no-op.
func (r *Registry) Add(d grid.Drawable) {
	if indexOf(r.items, d.ID()) >= 0 {
		return
	}
	r.items = append(r.items, d)
	r.dirty = true
}

// Remove deregisters a world drawable.
func (r *Registry) Remove(d grid.Drawable) {
	if i := indexOf(r.items, d.ID()); i >= 0 {
		r.items = append(r.items[:i], r.items[i+1:]...)
	}
}

// AddOverlay registers a screen-space drawable.
func (r *Registry) AddOverlay(d grid.Drawable) {
	if indexOf(r.overlays, d.ID()) >= 0 {
		return
	}
	r.overlays = append(r.overlays, d)
}

// RemoveOverlay deregisters a screen-space drawable.
func (r *Registry) RemoveOverlay(d grid.Drawable) {
	if i := indexOf(r.overlays, d.ID()); i >= 0 {
		r.overlays = append(r.overlays[:i], r.overlays[i+1:]...)
	}
}

// MarkDirty requests a depth re-sort before the next compose.
func (r *Registry) MarkDirty() {
	r.dirty = true
}

// SetBackground replaces the terrain raster.
func (r *Registry) SetBackground(raster *core.Screen, originX, originY int) {
	r.background = raster
	r.bgX, r.bgY = originX, originY
}

// Clear drops every drawable and the background.
func (r *Registry) Clear() {
	r.items = nil
	r.overlays = nil
	r.background = nil
	r.dirty = false
}

// Len returns the number of world drawables.
func (r *Registry) Len() int { return len(r.items) }

// Overlays returns the number of overlays.
func (r *Registry) Overlays() int { return len(r.overlays) }

// Sorts returns how many depth sorts have run; useful to check re-sort requests.
func (r *Registry) Sorts() int { return r.sorts }

// Ordered returns the world drawables in draw order, sorting first if needed.
// Equal depths keep registration order.
func (r *Registry) Ordered() []grid.Drawable {
	if r.dirty {
		sort.SliceStable(r.items, func(i, j int) bool {
			return r.items[i].Depth() < r.items[j].Depth()
		})
		r.dirty = false
		r.sorts++
	}
	return r.items
}

// Culled returns how many visible world drawables the last Compose skipped
// for lying entirely off screen.
func (r *Registry) Culled() int { return r.culled }

// Compose draws background, world drawables back to front, then overlays.
func (r *Registry) Compose(dst *core.Screen, cam Camera) {
	if r.background != nil {
		dst.Blit(r.background, cam.X-r.bgX, cam.Y-r.bgY)
	}
	view := core.NewRect(0, 0, dst.Width(), dst.Height())
	r.culled = 0
	for _, d := range r.Ordered() {
		p := d.Proxy()
		if !p.Visible {
			continue
		}
		x, y := cam.X+p.ScreenX, cam.Y+p.ScreenY
		if !view.Intersects(core.Footprint(x, y, p.Width, p.Height)) {
			r.culled++
			continue
		}
		drawSprite(dst, x, y, p)
	}
	for _, d := range r.overlays {
		p := d.Proxy()
		if !p.Visible {
			continue
		}
		if p.Text != "" {
			dst.DrawColoredText(p.ScreenX, p.ScreenY, p.Text, p.Color)
			continue
		}
		drawSprite(dst, p.ScreenX, p.ScreenY, p)
	}
}

// drawSprite fills the proxy's footprint: the glyph on the top row, a stem below it.
func drawSprite(dst *core.Screen, x, y int, p *grid.Proxy) {
	box := core.Footprint(x, y, p.Width, p.Height)
	for row := 0; row < box.H; row++ {
		r := p.Glyph
		c := p.Color
		if row > 0 {
			r, c = '┃', core.ColorBrown
		}
		for col := 0; col < box.W; col++ {
			dst.SetColored(box.X+col, box.Y+row, r, c)
		}
	}
}

func indexOf(list []grid.Drawable, id uint64) int {
	for i, d := range list {
		if d.ID() == id {
			return i
		}
	}
	return -1
}

var _ grid.RenderRegistry = (*Registry)(nil)
