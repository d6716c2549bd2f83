package entity

import (
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/sched"
)

// Entity is the base of everything the scheduler and renderer know about.
// An Entity without a grid position is a screen-space overlay.
type Entity struct {
	ctx     *Context
	id      uint64
	proxy   grid.Proxy
	added   bool
	removed bool
	tasks   map[sched.Handle]struct{}

	// Removed fires once when the entity leaves the game.
	Removed Signal[uint64]
}

// NewEntity creates an overlay entity. It is inert until AddToGame.
func NewEntity(ctx *Context) *Entity {
	e := &Entity{}
	e.init(ctx)
	return e
}

func (e *Entity) init(ctx *Context) {
	e.ctx = ctx
	e.id = ctx.NextID()
	e.tasks = make(map[sched.Handle]struct{})
	e.proxy.Visible = true
}

// ID returns the entity's unique ID.
func (e *Entity) ID() uint64 {
	return e.id
}

// Proxy returns the draw record handed to the renderer.
func (e *Entity) Proxy() *grid.Proxy {
	return &e.proxy
}

// Depth of an overlay is irrelevant; overlays draw above the world.
func (e *Entity) Depth() int {
	return 0
}

// Context returns the handles the entity was built with.
func (e *Entity) Context() *Context {
	return e.ctx
}

// InGame reports whether the entity has been added and not yet removed.
func (e *Entity) InGame() bool {
	return e.added && !e.removed
}

// IsRemoved reports whether Remove has been called.
func (e *Entity) IsRemoved() bool {
	return e.removed
}

// AddToGame registers the entity as a screen-space overlay.
func (e *Entity) AddToGame() {
	if e.added || e.removed {
		return
	}
	e.added = true
	if e.ctx.Render != nil {
		e.ctx.Render.AddOverlay(e)
	}
}

// Remove deregisters the overlay and cancels its tasks.
func (e *Entity) Remove() {
	if e.removed {
		return
	}
	if e.added && e.ctx.Render != nil {
		e.ctx.Render.RemoveOverlay(e)
	}
	e.teardown()
}

// teardown cancels outstanding tasks, notifies listeners and drops them.
func (e *Entity) teardown() {
	e.removed = true
	if n := e.ctx.Sched.CancelOwner(sched.Owner(e.id)); n > 0 {
		e.ctx.Log.Debug("entity removed", "id", e.id, "cancelled", n)
	}
	clear(e.tasks)
	e.Removed.Emit(e.id)
	e.Removed.Clear()
}

// TickDelay runs cb after the given number of ticks (at least one).
// The callback is skipped if the entity is removed first.
func (e *Entity) TickDelay(ticks int, cb func()) sched.Handle {
	if e.removed {
		return 0
	}
	var h sched.Handle
	h = e.ctx.Sched.ScheduleOnce(sched.Owner(e.id), ticks, func() {
		delete(e.tasks, h)
		if e.removed {
			return
		}
		cb()
	})
	e.tasks[h] = struct{}{}
	return h
}

// TickRepeat calls onProgress every tick for duration ticks with percent 0..1,
// then onComplete. Invalid durations are refused by the scheduler.
func (e *Entity) TickRepeat(duration int, onProgress func(percent float64), onComplete func()) (sched.Handle, error) {
	if e.removed {
		return 0, nil
	}
	var h sched.Handle
	h, err := e.ctx.Sched.ScheduleRepeating(sched.Owner(e.id), duration,
		func(p float64) {
			if e.removed || onProgress == nil {
				return
			}
			onProgress(p)
		},
		func() {
			delete(e.tasks, h)
			if e.removed || onComplete == nil {
				return
			}
			onComplete()
		})
	if err != nil {
		return 0, err
	}
	e.tasks[h] = struct{}{}
	return h, nil
}

// CancelSchedule cancels one of this entity's tasks. Handles that belong to other
// entities are ignored.
func (e *Entity) CancelSchedule(h sched.Handle) bool {
	if _, ok := e.tasks[h]; !ok {
		return false
	}
	delete(e.tasks, h)
	return e.ctx.Sched.Cancel(h)
}

// PendingTasks returns the number of outstanding tasks owned by the entity.
func (e *Entity) PendingTasks() int {
	return len(e.tasks)
}
