package behavior

import (
	"math/rand"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/entity"
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/pathfind"
	"github.com/vovakirdan/isoworld/internal/sched"
)

// GoTo defaults.
const (
	DefaultRingDepth   = 3
	DefaultMaxAttempts = 8
	DefaultStepDelay   = 2
	initialAttempts    = 4 // the first attempt index is drawn from 1..4
)

// Reason tells why a GoTo detached.
type Reason int

const (
	Arrived  Reason = iota // reached the chosen ring around the target
	GaveUp                 // ran out of reachable offsets
	Orphaned               // the actor or the target left the game
	Stopped                // Stop was called
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case Arrived:
		return "arrived"
	case GaveUp:
		return "gave up"
	case Orphaned:
		return "orphaned"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Map is what GoTo needs from the world.
type Map interface {
	WalkableSnapshot() grid.WalkableMap
}

// GoToOptions configures an approach.
type GoToOptions struct {
	RingDepth   int
	MaxAttempts int
	StepDelay   int
	// Persistent keeps the behavior alive after arrival; it resumes whenever
	// the target moves.
	Persistent bool
	OnDone     func(Reason)
}

func (o GoToOptions) normalized() GoToOptions {
	if o.RingDepth < 1 {
		o.RingDepth = DefaultRingDepth
	}
	if o.MaxAttempts < 1 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.StepDelay < 1 {
		o.StepDelay = DefaultStepDelay
	}
	return o
}

// AdjacencyOffsets lists every offset within Manhattan distance depth of a
// target, nearest rings first, row-major within a ring. The target cell itself
// is excluded.
func AdjacencyOffsets(depth int) []grid.Key {
	var out []grid.Key
	for d := 1; d <= depth; d++ {
		for dy := -d; dy <= d; dy++ {
			for dx := -d; dx <= d; dx++ {
				if core.Abs(dx)+core.Abs(dy) == d {
					out = append(out, grid.K(dx, dy))
				}
			}
		}
	}
	return out
}

// GoTo walks an actor toward a cell next to a possibly moving target.
type GoTo struct {
	actor  *entity.Actor
	target *entity.Actor
	space  Map
	finder *pathfind.Finder
	rng    *rand.Rand
	opts   GoToOptions

	offsets  []grid.Key
	attempt  int // 1-based index into offsets
	failures int

	wait     sched.Handle
	subs     []interface{ Unsubscribe() }
	moved    *entity.Subscription[grid.Pos]
	resting  bool
	detached bool
	steps    int
}

// NewGoTo creates a stopped approach of actor toward target.
func NewGoTo(actor, target *entity.Actor, space Map, finder *pathfind.Finder, rng *rand.Rand, opts GoToOptions) *GoTo {
	opts = opts.normalized()
	if finder == nil {
		finder = pathfind.NewFinder()
	}
	return &GoTo{
		actor:   actor,
		target:  target,
		space:   space,
		finder:  finder,
		rng:     rng,
		opts:    opts,
		offsets: AdjacencyOffsets(opts.RingDepth),
	}
}

// Start subscribes to both actors and takes the first step.
func (g *GoTo) Start() {
	if g.detached {
		return
	}
	if g.orphaned() {
		g.detach(Orphaned)
		return
	}
	g.resetAttempt()
	g.subs = append(g.subs,
		g.actor.Removed.Once(func(uint64) { g.detach(Orphaned) }),
		g.target.Removed.Once(func(uint64) { g.detach(Orphaned) }),
		g.target.Moved.Subscribe(g.targetMoved),
	)
	g.step()
}

// Stop detaches with reason Stopped.
func (g *GoTo) Stop() {
	g.detach(Stopped)
}

// Done reports whether the behavior has detached.
func (g *GoTo) Done() bool {
	return g.detached
}

// Resting reports whether a persistent approach has arrived and is waiting for
// the target to move.
func (g *GoTo) Resting() bool {
	return g.resting
}

// Steps returns the number of accepted moves.
func (g *GoTo) Steps() int {
	return g.steps
}

// Attempt returns the current 1-based adjacency attempt index.
func (g *GoTo) Attempt() int {
	return g.attempt
}

func (g *GoTo) resetAttempt() {
	n := core.Min(initialAttempts, len(g.offsets))
	g.attempt = 1 + g.rng.Intn(n)
	g.failures = 0
}

func (g *GoTo) targetMoved(grid.Pos) {
	if g.detached {
		return
	}
	g.resetAttempt()
	if g.resting {
		g.resting = false
		g.schedule()
	}
}

func (g *GoTo) orphaned() bool {
	return g.actor == nil || g.target == nil || g.actor.IsRemoved() || g.target.IsRemoved()
}

func (g *GoTo) schedule() {
	g.wait = g.actor.TickDelay(g.opts.StepDelay, g.step)
}

func (g *GoTo) step() {
	g.wait = 0
	if g.detached {
		return
	}
	if g.orphaned() {
		g.detach(Orphaned)
		return
	}
	if !g.actor.Online() || g.actor.InFlight() {
		g.schedule()
		return
	}

	offset := g.offsets[g.attempt-1]
	tk := g.target.Key()
	here := g.actor.Key()
	if here.Manhattan(tk) <= offset.Manhattan(grid.Origin) {
		g.arrive()
		return
	}

	dest := tk.Add(offset.X, offset.Y)
	dx, dy := dest.X-here.X, dest.Y-here.Y
	if g.tryStep(dominant(dx, dy)) {
		return
	}

	g.finder.LoadMap(g.space.WalkableSnapshot())
	path := g.finder.FindPath(here, dest)
	if len(path) == 0 {
		g.nextAttempt()
		return
	}
	first := path[0].Key()
	sx, sy := first.X-here.X, first.Y-here.Y
	if sx != 0 && sy != 0 {
		// Actors move along one axis at a time.
		primary, secondary := grid.K(sx, 0), grid.K(0, sy)
		if core.Abs(dy) > core.Abs(dx) {
			primary, secondary = secondary, primary
		}
		if g.tryStep(dirOf(primary)) || g.tryStep(dirOf(secondary)) {
			return
		}
	} else if g.tryStep(dirOf(first.Add(-here.X, -here.Y))) {
		return
	}
	// The route went stale between the search and the step.
	g.schedule()
}

func (g *GoTo) tryStep(d grid.Dir) bool {
	if !g.actor.Step(d) {
		return false
	}
	g.steps++
	g.moved = g.actor.Moved.Once(func(grid.Pos) {
		g.moved = nil
		if !g.detached {
			g.schedule()
		}
	})
	return true
}

func (g *GoTo) nextAttempt() {
	g.failures++
	g.attempt++
	if g.failures >= g.opts.MaxAttempts || g.attempt > len(g.offsets) {
		g.detach(GaveUp)
		return
	}
	g.schedule()
}

func (g *GoTo) arrive() {
	if g.opts.Persistent {
		g.resting = true
		return
	}
	g.detach(Arrived)
}

// detach drops every listener and both actor references, then reports reason.
func (g *GoTo) detach(reason Reason) {
	if g.detached {
		return
	}
	g.detached = true
	g.resting = false
	if g.actor != nil {
		g.actor.CancelSchedule(g.wait)
	}
	g.moved.Unsubscribe()
	for _, sub := range g.subs {
		sub.Unsubscribe()
	}
	g.subs = nil
	g.moved = nil
	g.actor, g.target = nil, nil
	if g.opts.OnDone != nil {
		g.opts.OnDone(reason)
	}
}

// dominant picks the cardinal along the larger axis of (dx, dy); ties go to x.
func dominant(dx, dy int) grid.Dir {
	if core.Abs(dx) >= core.Abs(dy) {
		if dx >= 0 {
			return grid.East
		}
		return grid.West
	}
	if dy > 0 {
		return grid.South
	}
	return grid.North
}

func dirOf(k grid.Key) grid.Dir {
	d, ok := grid.DirOf(k.X, k.Y)
	if !ok {
		return dominant(k.X, k.Y)
	}
	return d
}
