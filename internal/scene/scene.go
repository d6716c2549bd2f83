// Package scene is the top-level context of a running world. A Scene owns the
// scheduler, the world, the render registry and every entity, and is the only
// thing the platform layer talks to.
package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/behavior"
	"github.com/vovakirdan/isoworld/internal/config"
	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/entity"
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/pathfind"
	"github.com/vovakirdan/isoworld/internal/registry"
	"github.com/vovakirdan/isoworld/internal/render"
	"github.com/vovakirdan/isoworld/internal/sched"
	"github.com/vovakirdan/isoworld/internal/world"
)

const pauseBoxWidth = 12

// Populate fills a freshly generated world.
type Populate func(s *Scene)

// Scene implements registry.Scene.
type Scene struct {
	id, title string
	populate  Populate

	cfg     config.WorldConfig
	runtime core.RuntimeConfig
	logger  *log.Logger

	sched  *sched.Scheduler
	world  *world.World
	render *render.Registry
	finder *pathfind.Finder
	ctx    *entity.Context
	rng    *rand.Rand

	actors  []*entity.Actor
	props   []*entity.WorldObject
	wanders map[uint64]*behavior.Wander
	chasing map[uint64]*behavior.GoTo
	host    *entity.Actor
	hud     *entity.Entity

	paused        bool
	regenerations int
	totalTicks    uint64
	panX, panY    int
}

// New creates a scene. It is inert until Reset.
func New(id, title string, populate Populate) *Scene {
	return &Scene{
		id:       id,
		title:    title,
		populate: populate,
		cfg:      config.DefaultWorldConfig(),
		logger:   log.Default(),
		render:   render.NewRegistry(),
		finder:   pathfind.NewFinder(),
	}
}

// ID returns the scene identifier.
func (s *Scene) ID() string { return s.id }

// Title returns the display name.
func (s *Scene) Title() string { return s.title }

// Configure replaces the world configuration and logger used by the next Reset.
func (s *Scene) Configure(cfg config.WorldConfig, logger *log.Logger) {
	cfg.Validate()
	s.cfg = cfg
	if logger != nil {
		s.logger = logger
	}
}

// Reset tears down the current world, if any, and generates a new one.
func (s *Scene) Reset(rc core.RuntimeConfig) {
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickRate <= 0 {
		rc.TickRate = s.cfg.Scheduler.TickRate
	}
	if rc.WorldSize <= 0 {
		rc.WorldSize = s.cfg.World.Size
	}
	s.runtime = rc
	s.build()
}

func (s *Scene) build() {
	s.teardown()

	if s.sched == nil {
		s.sched = sched.New(sched.StepFor(s.runtime.TickRate), s.logger)
	}
	s.sched.SetMaxCatchUp(s.cfg.Scheduler.MaxCatchUp)

	params := s.cfg.Params(s.runtime.Seed)
	params.Size = s.runtime.WorldSize
	s.world = world.Generate(params, s.logger)
	s.world.PublishBackground(s.render, world.DefaultAtlas{})

	s.ctx = entity.NewContext(s.sched, s.world, s.render, s.logger)
	s.ctx.StepTicks = s.cfg.Actors.StepTicks
	s.rng = rand.New(rand.NewSource(s.runtime.Seed))
	s.wanders = make(map[uint64]*behavior.Wander)
	s.chasing = make(map[uint64]*behavior.GoTo)
	s.paused = false

	s.hud = entity.NewEntity(s.ctx)
	s.hud.AddToGame()
	s.hud.Proxy().ScreenX, s.hud.Proxy().ScreenY = 1, 0
	s.hud.Proxy().Color = core.ColorBrightWhite

	s.scatterProps()
	if s.populate != nil {
		s.populate(s)
	}
}

// teardown removes every entity, which cancels their tasks and detaches their
// behaviors, then clears the clock.
func (s *Scene) teardown() {
	if s.world == nil {
		return
	}
	for _, g := range s.chasing {
		g.Stop()
	}
	actors := append([]*entity.Actor(nil), s.actors...)
	for _, a := range actors {
		a.Remove()
	}
	for _, p := range s.props {
		p.Remove()
	}
	if s.hud != nil {
		s.hud.Remove()
	}
	s.actors, s.props = nil, nil
	s.host, s.hud = nil, nil
	s.render.Clear()
	s.sched.Reset()
}

func (s *Scene) scatterProps() {
	place := func(kind entity.PropKind, n int) {
		for i := 0; i < n; i++ {
			k, ok := s.world.RandomEmptyGrid()
			if !ok {
				return
			}
			z, _ := s.world.WalkableHeight(k.X, k.Y)
			p := entity.NewProp(s.ctx, k.At(z), kind)
			if p.AddToGame() {
				s.props = append(s.props, p)
			}
		}
	}
	place(entity.PropRock, s.cfg.Props.Rocks)
	place(entity.PropTree, s.cfg.Props.Trees)
	s.logger.Debug("props scattered", "props", len(s.props), "free", s.world.PoolSize())
}

var palette = []struct {
	glyph rune
	color core.Color
}{
	{'☺', core.ColorBrightYellow},
	{'☻', core.ColorBrightCyan},
	{'@', core.ColorBrightMagenta},
	{'&', core.ColorOrange},
	{'§', core.ColorBrightRed},
	{'¤', core.ColorBrightBlue},
}

// SpawnAt places a new actor on the surface of column k.
func (s *Scene) SpawnAt(k grid.Key) (*entity.Actor, bool) {
	if len(s.actors) >= s.cfg.Actors.Max {
		return nil, false
	}
	z, ok := s.world.WalkableHeight(k.X, k.Y)
	if !ok {
		return nil, false
	}
	look := palette[len(s.actors)%len(palette)]
	a := entity.NewActor(s.ctx, k.At(z), fmt.Sprintf("actor-%d", len(s.actors)+1), look.glyph, look.color)
	if !a.AddToGame() {
		return nil, false
	}
	s.actors = append(s.actors, a)
	a.Removed.Once(func(id uint64) { s.forget(id) })
	return a, true
}

// Spawn places a new actor on a random free column.
func (s *Scene) Spawn() (*entity.Actor, bool) {
	if len(s.actors) >= s.cfg.Actors.Max {
		return nil, false
	}
	k, ok := s.world.RandomEmptyGrid()
	if !ok {
		return nil, false
	}
	return s.SpawnAt(k)
}

// SpawnWanderer spawns an actor and starts its wander behavior.
func (s *Scene) SpawnWanderer() (*entity.Actor, bool) {
	a, ok := s.Spawn()
	if !ok {
		return nil, false
	}
	s.Wander(a)
	return a, true
}

// Wander starts (or restarts) the wander behavior of a.
func (s *Scene) Wander(a *entity.Actor) {
	w, ok := s.wanders[a.ID()]
	if !ok {
		w = behavior.NewWander(a, s.rng, behavior.WanderOptions{
			MinWait: s.cfg.Wander.MinWait,
			MaxWait: s.cfg.Wander.MaxWait,
		})
		s.wanders[a.ID()] = w
	}
	w.Start()
}

// Approach sends a toward target, replacing any approach a was already on and
// pausing its wander for the duration. A persistent approach never hands
// control back.
func (s *Scene) Approach(a, target *entity.Actor, persistent bool) *behavior.GoTo {
	if w, ok := s.wanders[a.ID()]; ok {
		w.Stop()
	}
	if old, ok := s.chasing[a.ID()]; ok {
		old.Stop()
	}
	var g *behavior.GoTo
	g = behavior.NewGoTo(a, target, s.world, s.finder, s.rng, behavior.GoToOptions{
		RingDepth:   s.cfg.GoTo.RingDepth,
		MaxAttempts: s.cfg.GoTo.MaxAttempts,
		StepDelay:   s.cfg.GoTo.StepDelay,
		Persistent:  persistent,
		OnDone: func(r behavior.Reason) {
			s.logger.Debug("goto finished", "actor", a.Name(), "target", target.Name(), "reason", r)
			if s.chasing[a.ID()] == g {
				delete(s.chasing, a.ID())
			}
			if r != behavior.Orphaned && r != behavior.Stopped && a.InGame() && !persistent {
				s.Wander(a)
			}
		},
	})
	s.chasing[a.ID()] = g
	g.Start()
	return g
}

// Follow sends a random actor toward another random actor.
func (s *Scene) Follow() bool {
	if len(s.actors) < 2 {
		return false
	}
	i := s.rng.Intn(len(s.actors))
	j := s.rng.Intn(len(s.actors) - 1)
	if j >= i {
		j++
	}
	a, target := s.actors[i], s.actors[j]
	if a == s.host {
		a, target = target, a
	}
	s.Approach(a, target, false)
	return true
}

// Regenerate builds a new world from a seed drawn from the current one.
func (s *Scene) Regenerate() {
	s.runtime.Seed = s.rng.Int63()
	if s.runtime.Seed == 0 {
		s.runtime.Seed = 1
	}
	s.regenerations++
	s.build()
}

func (s *Scene) forget(id uint64) {
	for i, a := range s.actors {
		if a.ID() == id {
			s.actors = append(s.actors[:i], s.actors[i+1:]...)
			break
		}
	}
	delete(s.wanders, id)
}

// Step applies viewer actions and advances the clock by elapsed wall time.
func (s *Scene) Step(in core.InputFrame, elapsed time.Duration) core.StepResult {
	if s.world == nil {
		s.Reset(s.runtime)
	}
	switch {
	case in.Has(core.ActionPause):
		s.paused = !s.paused
	case in.Has(core.ActionRegenerate):
		s.Regenerate()
	case in.Has(core.ActionSpawn):
		s.SpawnWanderer()
	case in.Has(core.ActionFollow):
		s.Follow()
	case in.Has(core.ActionCenter):
		s.panX, s.panY = 0, 0
	}
	if in.Has(core.ActionUp) {
		s.panY++
	}
	if in.Has(core.ActionDown) {
		s.panY--
	}
	if in.Has(core.ActionLeft) {
		s.panX += 2
	}
	if in.Has(core.ActionRight) {
		s.panX -= 2
	}

	ticks := 0
	if !s.paused {
		ticks = s.sched.Advance(elapsed)
		s.totalTicks += uint64(ticks)
	}
	return core.StepResult{State: s.State(), Ticks: ticks}
}

// Render composes the world onto dst, centered on the origin.
func (s *Scene) Render(dst *core.Screen) {
	if s.world == nil {
		return
	}
	status := fmt.Sprintf("%s · seed %d · tick %d · actors %d", s.title, s.runtime.Seed, s.sched.Tick(), len(s.actors))
	if s.paused {
		status += " · paused"
	}
	s.hud.Proxy().Text = status

	s.render.Compose(dst, s.Camera(dst.Width(), dst.Height()))

	if s.paused {
		box := core.NewRect((dst.Width()-pauseBoxWidth)/2, dst.Height()/2-1, pauseBoxWidth, 3)
		dst.DrawRect(box, ' ')
		dst.DrawBox(box)
		dst.DrawTextCentered(box.Y+1, "PAUSED")
	}
}

// State reports the scene status.
func (s *Scene) State() core.SceneState {
	st := core.SceneState{
		Actors:        len(s.actors),
		Regenerations: s.regenerations,
		Paused:        s.paused,
	}
	if s.sched != nil {
		st.Tick = s.sched.Tick()
	}
	if s.world != nil {
		st.Slabs = s.world.Summary().Slabs
	}
	return st
}

// Summary describes the session for the history store.
func (s *Scene) Summary() registry.Summary {
	sum := registry.Summary{
		Seed:   s.runtime.Seed,
		Actors: len(s.actors),
		Ticks:  s.totalTicks,
	}
	if s.world != nil {
		ws := s.world.Summary()
		sum.WorldSize = ws.Size
		sum.Slabs = ws.Slabs
		sum.IslandsPruned = ws.IslandsPruned
		sum.FlowerPatches = ws.FlowerPatches
	}
	return sum
}

// Camera centers the island origin on a w×h screen, shifted by the viewer's pan.
func (s *Scene) Camera(w, h int) render.Camera {
	return render.CenterOn(grid.Origin.At(0), w, h).Pan(s.panX, s.panY)
}

// World returns the current world.
func (s *Scene) World() *world.World { return s.world }

// Scheduler returns the scene clock.
func (s *Scene) Scheduler() *sched.Scheduler { return s.sched }

// Actors returns the actors in spawn order. The slice must not be modified.
func (s *Scene) Actors() []*entity.Actor { return s.actors }

// Chasing returns the approach a is currently on, if any.
func (s *Scene) Chasing(a *entity.Actor) (*behavior.GoTo, bool) {
	g, ok := s.chasing[a.ID()]
	return g, ok
}

// Host returns the gathering point actor, if the scene has one.
func (s *Scene) Host() *entity.Actor { return s.host }

// Config returns the active configuration.
func (s *Scene) Config() config.WorldConfig { return s.cfg }

// Renderer returns the render registry.
func (s *Scene) Renderer() *render.Registry { return s.render }

var (
	_ registry.Scene        = (*Scene)(nil)
	_ registry.Summarizer   = (*Scene)(nil)
	_ registry.Configurable = (*Scene)(nil)
)
