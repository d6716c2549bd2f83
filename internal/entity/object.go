package entity

import (
	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// ObjectOptions describes the static properties of a WorldObject.
type ObjectOptions struct {
	Height   int        // vertical extent in grid units, at least 1
	Walkable bool       // whether others may stand on top
	Hidden   bool       // occupies space but is never drawn
	Glyph    rune       // sprite stand-in for the terminal renderer
	Color    core.Color // sprite color
	// Footprint is the sprite rectangle relative to the projected cell center.
	// The zero value means a single cell.
	Footprint core.Rect
}

// WorldObject is an entity with a place in the grid.
type WorldObject struct {
	Entity

	pos       grid.Position
	height    int
	walkable  bool
	visible   bool
	footprint core.Rect
	depth     int
}

// NewWorldObject creates an object at p. It is inert until AddToGame.
func NewWorldObject(ctx *Context, p grid.Pos, opts ObjectOptions) *WorldObject {
	o := &WorldObject{}
	o.initObject(ctx, p, opts)
	return o
}

func (o *WorldObject) initObject(ctx *Context, p grid.Pos, opts ObjectOptions) {
	o.init(ctx)
	if opts.Height < 1 {
		opts.Height = 1
	}
	if opts.Footprint.W == 0 || opts.Footprint.H == 0 {
		opts.Footprint = core.NewRect(0, 0, 1, 1)
	}
	o.pos = grid.Position{Pos: p}
	o.height = opts.Height
	o.walkable = opts.Walkable
	o.visible = !opts.Hidden
	o.footprint = opts.Footprint
	o.proxy.Glyph = opts.Glyph
	o.proxy.Color = opts.Color
	o.proxy.Visible = o.visible
	o.syncProxy()
}

// GridPos returns the occupied cell.
func (o *WorldObject) GridPos() grid.Pos {
	return o.pos.Pos
}

// Position returns the occupied cell together with its draw offset.
func (o *WorldObject) Position() grid.Position {
	return o.pos
}

// Height returns the vertical extent in grid units.
func (o *WorldObject) Height() int {
	return o.height
}

// Walkable reports whether other objects may stand on top.
func (o *WorldObject) Walkable() bool {
	return o.walkable
}

// Depth returns the draw order, x+y of the occupied cell.
func (o *WorldObject) Depth() int {
	return o.depth
}

// AddToGame registers the object into the world and, if visible, the render
// registry. It returns false when the cell is already occupied.
func (o *WorldObject) AddToGame() bool {
	if o.added || o.removed {
		return false
	}
	if !o.ctx.Space.AddObject(o) {
		o.ctx.Log.Warn("object not placed", "id", o.id, "pos", o.pos.Pos)
		return false
	}
	o.added = true
	if o.visible && o.ctx.Render != nil {
		o.ctx.Render.Add(o)
	}
	return true
}

// Remove takes the object out of the world and the render registry and cancels
// everything it scheduled.
func (o *WorldObject) Remove() {
	if o.removed {
		return
	}
	if o.added {
		o.ctx.Space.RemoveObject(o)
		if o.visible && o.ctx.Render != nil {
			o.ctx.Render.Remove(o)
		}
	}
	o.teardown()
}

// Move relocates the object by (dx, dy, dz). The world decides whether the
// destination is free; a refused move changes nothing and returns false.
func (o *WorldObject) Move(dx, dy, dz int) bool {
	if !o.InGame() {
		return false
	}
	to := o.pos.Add(dx, dy, dz)
	if !o.ctx.Space.MoveObject(o, to) {
		return false
	}
	before := o.depth
	o.pos.Pos = to
	o.syncProxy()
	if o.depth != before && o.ctx.Render != nil {
		o.ctx.Render.MarkDirty()
	}
	return true
}

// Underneath returns the object in the cell directly below, or nil.
func (o *WorldObject) Underneath() grid.Occupant {
	return o.ctx.Space.ObjectBeneath(o.pos.Pos)
}

// SetOffset changes the fractional draw offset and refreshes the proxy.
func (o *WorldObject) SetOffset(off grid.Offset) {
	o.pos.Offset = off
	o.syncProxy()
}

// syncProxy recomputes screen coordinates and depth from the grid position.
func (o *WorldObject) syncProxy() {
	sx, sy := grid.ProjectPosition(o.pos)
	o.proxy.ScreenX = sx + o.footprint.X
	o.proxy.ScreenY = sy + o.footprint.Y
	o.proxy.Width = o.footprint.W
	o.proxy.Height = o.footprint.H
	o.depth = o.pos.Depth()
}
