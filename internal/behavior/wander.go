// Package behavior holds the per-actor state machines that turn the world and
// the pathfinder into movement intents. Every state transition is a task
// scheduled through the actor, so removing the actor stops the behavior.
package behavior

import (
	"math/rand"

	"github.com/vovakirdan/isoworld/internal/entity"
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/sched"
)

// Wander timing defaults, in ticks.
const (
	DefaultWanderMin = 20
	DefaultWanderMax = 320
)

// WanderOptions configures the idle wait between impulses.
type WanderOptions struct {
	MinWait int
	MaxWait int
}

func (o WanderOptions) normalized() WanderOptions {
	if o.MinWait < 1 {
		o.MinWait = DefaultWanderMin
	}
	if o.MaxWait < o.MinWait {
		o.MaxWait = o.MinWait
	}
	return o
}

// Wander idles for a random while, then tries one random cardinal step, forever.
type Wander struct {
	actor *entity.Actor
	rng   *rand.Rand
	opts  WanderOptions

	wait    sched.Handle
	moved   *entity.Subscription[grid.Pos]
	removed *entity.Subscription[uint64]
	running bool
	steps   int
}

// NewWander creates a stopped wander behavior for actor.
func NewWander(actor *entity.Actor, rng *rand.Rand, opts WanderOptions) *Wander {
	return &Wander{actor: actor, rng: rng, opts: opts.normalized()}
}

// Start enters the idle state.
func (w *Wander) Start() {
	if w.running || w.actor == nil || !w.actor.InGame() {
		return
	}
	w.running = true
	w.removed = w.actor.Removed.Once(func(uint64) { w.Stop() })
	w.idle()
}

// Stop cancels the pending wait and drops listeners. The actor finishes any
// step already in flight.
func (w *Wander) Stop() {
	if !w.running {
		return
	}
	w.running = false
	w.actor.CancelSchedule(w.wait)
	w.moved.Unsubscribe()
	w.removed.Unsubscribe()
	w.wait, w.moved, w.removed = 0, nil, nil
}

// Running reports whether the behavior is active.
func (w *Wander) Running() bool {
	return w.running
}

// Steps returns how many impulses turned into moves.
func (w *Wander) Steps() int {
	return w.steps
}

func (w *Wander) idle() {
	if !w.running {
		return
	}
	span := w.opts.MaxWait - w.opts.MinWait + 1
	w.wait = w.actor.TickDelay(w.opts.MinWait+w.rng.Intn(span), w.impulse)
}

func (w *Wander) impulse() {
	w.wait = 0
	if !w.running {
		return
	}
	if !w.actor.Online() || w.actor.InFlight() {
		w.idle()
		return
	}
	d := grid.Cardinals[w.rng.Intn(len(grid.Cardinals))]
	if !w.actor.Step(d) {
		w.idle()
		return
	}
	w.steps++
	w.moved = w.actor.Moved.Once(func(grid.Pos) {
		w.moved = nil
		w.idle()
	})
}
