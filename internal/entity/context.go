// Package entity implements the lifecycle of simulation entities: registration into
// the world and the render registry, per-entity task scheduling, and the actors
// that move across the grid.
package entity

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/sched"
)

// Context carries the handles an entity needs. It is created by the top-level
// scene and injected at construction; entities never reach for globals.
type Context struct {
	Sched  *sched.Scheduler
	Space  grid.Spatial
	Render grid.RenderRegistry
	Log    *log.Logger

	// StepTicks is how long one actor step animates.
	StepTicks int

	lastID uint64
}

// NewContext builds a context. Render may be nil for headless simulations.
func NewContext(s *sched.Scheduler, space grid.Spatial, render grid.RenderRegistry, logger *log.Logger) *Context {
	if logger == nil {
		logger = log.Default()
	}
	return &Context{
		Sched:     s,
		Space:     space,
		Render:    render,
		Log:       logger,
		StepTicks: DefaultStepTicks,
	}
}

// NextID returns a fresh entity ID. IDs are never reused within a context.
func (c *Context) NextID() uint64 {
	c.lastID++
	return c.lastID
}
