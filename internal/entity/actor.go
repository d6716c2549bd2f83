package entity

import (
	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// DefaultStepTicks is how many ticks one step animates for.
const DefaultStepTicks = 8

// Actor is a WorldObject that walks one cardinal cell at a time.
type Actor struct {
	WorldObject

	name     string
	online   bool
	inFlight bool

	// Moved fires exactly once per successful Step, when the animation ends.
	// The value is the cell the actor arrived at.
	Moved Signal[grid.Pos]
}

// NewActor creates an online actor at p. Actors block the cell they stand on.
func NewActor(ctx *Context, p grid.Pos, name string, glyph rune, color core.Color) *Actor {
	a := &Actor{name: name, online: true}
	a.initObject(ctx, p, ObjectOptions{
		Height: 1,
		Glyph:  glyph,
		Color:  color,
	})
	return a
}

// Name returns the display name.
func (a *Actor) Name() string {
	return a.name
}

// Online reports the actor's presence. Offline actors stand still.
func (a *Actor) Online() bool {
	return a.online
}

// SetOnline changes the actor's presence.
func (a *Actor) SetOnline(online bool) {
	a.online = online
}

// InFlight reports whether a step is still animating.
func (a *Actor) InFlight() bool {
	return a.inFlight
}

// Key returns the column the actor occupies.
func (a *Actor) Key() grid.Key {
	return a.pos.Key()
}

// CanStep reports whether a step in direction d would be accepted right now.
func (a *Actor) CanStep(d grid.Dir) bool {
	if !a.InGame() || a.inFlight || !d.Cardinal() {
		return false
	}
	dest := a.Key().Step(d)
	z, ok := a.ctx.Space.WalkableHeight(dest.X, dest.Y)
	if !ok {
		return false
	}
	return a.ctx.Space.ObjectAt(dest.At(z)) == nil
}

// Step moves one cell in a cardinal direction, landing on the destination
// column's walkable surface. The occupancy change is immediate; the draw offset
// then animates back to zero and Moved fires. A refused step returns false and
// has no effect.
func (a *Actor) Step(d grid.Dir) bool {
	if !a.CanStep(d) {
		return false
	}
	from := a.pos.Pos
	dest := a.Key().Step(d)
	z, _ := a.ctx.Space.WalkableHeight(dest.X, dest.Y)
	dx, dy := d.Delta()
	if !a.Move(dx, dy, z-from.Z) {
		return false
	}

	a.inFlight = true
	start := grid.Offset{
		X: float64(from.X - a.pos.X),
		Y: float64(from.Y - a.pos.Y),
		Z: float64(from.Z - a.pos.Z),
	}
	a.SetOffset(start)

	_, err := a.TickRepeat(a.ctx.StepTicks, func(p float64) {
		rest := 1 - core.ClampF(p, 0, 1)
		a.SetOffset(grid.Offset{X: start.X * rest, Y: start.Y * rest, Z: start.Z * rest})
	}, a.land)
	if err != nil {
		a.ctx.Log.Warn("step animation refused, landing next tick", "actor", a.name, "ticks", a.ctx.StepTicks, "err", err)
		a.TickDelay(1, a.land)
	}
	return true
}

func (a *Actor) land() {
	a.inFlight = false
	a.SetOffset(grid.Offset{})
	a.Moved.Emit(a.pos.Pos)
}

// Remove takes the actor out of the game and drops its listeners.
func (a *Actor) Remove() {
	if a.removed {
		return
	}
	a.inFlight = false
	a.Moved.Clear()
	a.WorldObject.Remove()
}
