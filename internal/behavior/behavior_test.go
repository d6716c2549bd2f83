package behavior

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/entity"
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/sched"
	"github.com/vovakirdan/isoworld/internal/world"
)

type fixture struct {
	sched *sched.Scheduler
	world *world.World
	ctx   *entity.Context
}

func newFixture() *fixture {
	logger := log.New(io.Discard)
	s := sched.New(sched.DefaultStep, logger)
	w := world.NewFlat(24, 1, logger)
	return &fixture{sched: s, world: w, ctx: entity.NewContext(s, w, nil, logger)}
}

func (f *fixture) actor(t *testing.T, x, y int) *entity.Actor {
	t.Helper()
	a := entity.NewActor(f.ctx, grid.P(x, y, 0), "test", '@', core.ColorWhite)
	if !a.AddToGame() {
		t.Fatalf("could not place actor at %d:%d", x, y)
	}
	return a
}

func (f *fixture) run(ticks int, until func() bool) int {
	for i := 0; i < ticks; i++ {
		if until != nil && until() {
			return i
		}
		f.sched.RunTick()
	}
	return ticks
}

func TestAdjacencyOffsets(t *testing.T) {
	offsets := AdjacencyOffsets(3)
	if len(offsets) != 4+8+12 {
		t.Fatalf("len = %d, want 24", len(offsets))
	}
	prev := 0
	seen := map[grid.Key]bool{}
	for _, o := range offsets {
		d := o.Manhattan(grid.Origin)
		if d < prev {
			t.Fatalf("offset %s out of distance order", o)
		}
		if d == 0 || seen[o] {
			t.Fatalf("bad offset %s", o)
		}
		seen[o] = true
		prev = d
	}
	want := []grid.Key{grid.K(0, -1), grid.K(-1, 0), grid.K(1, 0), grid.K(0, 1)}
	for i, k := range want {
		if offsets[i] != k {
			t.Errorf("offsets[%d] = %s, want %s", i, offsets[i], k)
		}
	}
}

func TestDominant(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   grid.Dir
	}{
		{3, 1, grid.East},
		{-3, 1, grid.West},
		{1, 4, grid.South},
		{0, -2, grid.North},
		{2, 2, grid.East},
		{-2, 2, grid.West},
	}
	for _, tt := range tests {
		if got := dominant(tt.dx, tt.dy); got != tt.want {
			t.Errorf("dominant(%d, %d) = %s, want %s", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestGoToReachesStationaryTarget(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, 0, 0)
	target := f.actor(t, 10, 10)

	var reasons []Reason
	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(3)), GoToOptions{
		OnDone: func(r Reason) { reasons = append(reasons, r) },
	})
	g.Start()
	if a := g.Attempt(); a < 1 || a > 4 {
		t.Fatalf("starting attempt = %d, want 1..4", a)
	}
	f.run(5000, g.Done)

	if !g.Done() {
		t.Fatal("GoTo never finished")
	}
	if len(reasons) != 1 || reasons[0] != Arrived {
		t.Fatalf("reasons = %v, want [arrived]", reasons)
	}
	if d := walker.Key().Manhattan(grid.K(10, 10)); d > 3 {
		t.Fatalf("ended %d away from the target", d)
	}

	rest := walker.GridPos()
	f.run(500, nil)
	if walker.GridPos() != rest || walker.InFlight() {
		t.Fatal("walker kept moving after arrival")
	}
}

func TestGoToMovesOneAxisAtATime(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -8, 3)
	target := f.actor(t, 6, -5)

	prev := walker.GridPos()
	moves := 0
	walker.Moved.Subscribe(func(p grid.Pos) {
		dx, dy := core.Abs(p.X-prev.X), core.Abs(p.Y-prev.Y)
		if dx+dy != 1 {
			t.Errorf("move from %s to %s is not a single cardinal step", prev, p)
		}
		prev = p
		moves++
	})

	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(1)), GoToOptions{})
	g.Start()
	f.run(5000, g.Done)
	if moves != g.Steps() {
		t.Errorf("moved %d times, GoTo counted %d steps", moves, g.Steps())
	}
}

func TestGoToRoutesAroundObstacles(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -4, 0)
	target := f.actor(t, 4, 0)
	for y := -1; y <= 1; y++ {
		tree := entity.NewProp(f.ctx, grid.P(0, y, 0), entity.PropTree)
		if !tree.AddToGame() {
			t.Fatalf("could not place tree at 0:%d", y)
		}
	}

	var reason Reason = -1
	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(2)), GoToOptions{
		OnDone: func(r Reason) { reason = r },
	})
	g.Start()
	f.run(10000, g.Done)
	if reason != Arrived {
		t.Fatalf("reason = %v, want arrived", reason)
	}
	if walker.Key().X <= 0 {
		t.Errorf("walker at %s never crossed the wall", walker.Key())
	}
}

func TestGoToGivesUpWhenRingIsBlocked(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -9, -9)
	target := f.actor(t, 5, 5)
	for _, off := range AdjacencyOffsets(3) {
		tree := entity.NewProp(f.ctx, grid.P(5+off.X, 5+off.Y, 0), entity.PropTree)
		tree.AddToGame()
	}

	var reason Reason = -1
	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(4)), GoToOptions{
		OnDone: func(r Reason) { reason = r },
	})
	g.Start()
	f.run(10000, g.Done)
	if reason != GaveUp {
		t.Fatalf("reason = %v, want gave up", reason)
	}
}

func TestGoToDetachesWhenTargetRemoved(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -10, 0)
	target := f.actor(t, 10, 0)

	var reason Reason = -1
	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(5)), GoToOptions{
		OnDone: func(r Reason) { reason = r },
	})
	g.Start()
	f.run(30, nil)
	target.Remove()

	if reason != Orphaned {
		t.Fatalf("reason = %v, want orphaned", reason)
	}
	f.run(20, nil)
	rest := walker.GridPos()
	f.run(200, nil)
	if walker.GridPos() != rest {
		t.Error("walker kept moving after its target was removed")
	}
	if walker.Moved.Len() != 0 {
		t.Errorf("walker still has %d Moved listeners", walker.Moved.Len())
	}
}

func TestGoToStop(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -10, 0)
	target := f.actor(t, 10, 0)

	var reason Reason = -1
	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(6)), GoToOptions{
		OnDone: func(r Reason) { reason = r },
	})
	g.Start()
	f.run(15, nil)
	g.Stop()
	g.Stop()
	if reason != Stopped {
		t.Fatalf("reason = %v, want stopped", reason)
	}
	if target.Moved.Len() != 0 || target.Removed.Len() != 0 {
		t.Error("target listeners not dropped")
	}
}

func TestPersistentGoToFollowsTarget(t *testing.T) {
	f := newFixture()
	walker := f.actor(t, -6, 0)
	target := f.actor(t, 0, 0)

	g := NewGoTo(walker, target, f.world, nil, rand.New(rand.NewSource(7)), GoToOptions{Persistent: true})
	g.Start()
	f.run(5000, g.Resting)
	if !g.Resting() || g.Done() {
		t.Fatal("persistent GoTo should rest after arriving")
	}

	before := g.Steps()
	for i := 0; i < 4; i++ {
		if !target.Step(grid.East) {
			t.Fatalf("target step %d refused", i)
		}
		f.run(50, func() bool { return !target.InFlight() })
	}
	f.run(5000, g.Resting)
	if g.Steps() <= before {
		t.Error("follower did not move after the target walked away")
	}
	if d := walker.Key().Manhattan(target.Key()); d > DefaultRingDepth {
		t.Errorf("follower rests %d away from the target", d)
	}
	g.Stop()
}

func TestWanderMovesOneCellAtATime(t *testing.T) {
	f := newFixture()
	a := f.actor(t, 0, 0)

	prev := a.GridPos()
	a.Moved.Subscribe(func(p grid.Pos) {
		if a := core.Abs(p.X-prev.X) + core.Abs(p.Y-prev.Y); a != 1 {
			t.Errorf("wander moved from %s to %s", prev, p)
		}
		prev = p
	})

	w := NewWander(a, rand.New(rand.NewSource(1)), WanderOptions{MinWait: 5, MaxWait: 10})
	w.Start()
	f.run(2000, nil)
	if w.Steps() == 0 {
		t.Fatal("wander never moved")
	}
}

func TestWanderWaitsWhileOffline(t *testing.T) {
	f := newFixture()
	a := f.actor(t, 0, 0)
	a.SetOnline(false)

	w := NewWander(a, rand.New(rand.NewSource(1)), WanderOptions{MinWait: 1, MaxWait: 2})
	w.Start()
	f.run(500, nil)
	if w.Steps() != 0 || a.GridPos() != grid.P(0, 0, 0) {
		t.Fatal("offline actor wandered")
	}

	a.SetOnline(true)
	f.run(500, nil)
	if w.Steps() == 0 {
		t.Error("actor did not resume once online")
	}
}

func TestWanderStopsWithActor(t *testing.T) {
	f := newFixture()
	a := f.actor(t, 0, 0)
	w := NewWander(a, rand.New(rand.NewSource(1)), WanderOptions{})
	w.Start()
	f.run(10, nil)
	a.Remove()
	if w.Running() {
		t.Fatal("wander still running after actor removal")
	}
	if f.sched.Pending() != 0 {
		t.Errorf("%d tasks left after removal", f.sched.Pending())
	}
}

func TestWanderIsReproducible(t *testing.T) {
	trace := func() []grid.Pos {
		f := newFixture()
		a := f.actor(t, 0, 0)
		var out []grid.Pos
		a.Moved.Subscribe(func(p grid.Pos) { out = append(out, p) })
		NewWander(a, rand.New(rand.NewSource(99)), WanderOptions{MinWait: 3, MaxWait: 30}).Start()
		f.run(3000, nil)
		return out
	}
	a, b := trace(), trace()
	if len(a) != len(b) {
		t.Fatalf("traces differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("traces differ at %d: %s vs %s", i, a[i], b[i])
		}
	}
}
