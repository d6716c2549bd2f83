// Package config provides YAML-based world configuration loading and
// pace presets for the simulation.
package config

import "github.com/vovakirdan/isoworld/internal/world"

// WorldConfig contains all tunables of a running world.
type WorldConfig struct {
	World     WorldSection     `yaml:"world"`
	Scheduler SchedulerSection `yaml:"scheduler"`
	Actors    ActorsSection    `yaml:"actors"`
	Wander    WanderSection    `yaml:"wander"`
	GoTo      GoToSection      `yaml:"goto"`
	Props     PropsSection     `yaml:"props"`
}

// WorldSection defines terrain generation parameters.
type WorldSection struct {
	Size          int `yaml:"size"`           // Edge length; rounded up to an even number >= 24
	CoarseBlur    int `yaml:"coarse_blur"`    // Blur radius of the low-frequency noise octave
	FineBlur      int `yaml:"fine_blur"`      // Blur radius of the high-frequency noise octave
	FlowerDivisor int `yaml:"flower_divisor"` // Patch count is ceil(radius^2 / divisor); negative disables
}

// SchedulerSection defines the simulation clock.
type SchedulerSection struct {
	TickRate   int `yaml:"tick_rate"`    // Ticks per second
	MaxCatchUp int `yaml:"max_catch_up"` // Ticks run at most per frame before dropping time
}

// ActorsSection defines how actors are spawned and animated.
type ActorsSection struct {
	Initial   int `yaml:"initial"`    // Wanderers spawned on (re)generation
	Max       int `yaml:"max"`        // Upper bound for manual spawning
	StepTicks int `yaml:"step_ticks"` // Animation length of one step
}

// WanderSection defines idle wait bounds in ticks.
type WanderSection struct {
	MinWait int `yaml:"min_wait"`
	MaxWait int `yaml:"max_wait"`
}

// GoToSection defines approach parameters.
type GoToSection struct {
	RingDepth   int `yaml:"ring_depth"`   // Largest Manhattan distance tried around a target
	MaxAttempts int `yaml:"max_attempts"` // Unreachable offsets tolerated before giving up
	StepDelay   int `yaml:"step_delay"`   // Ticks between two steps
}

// PropsSection defines scenery scattered on generation.
type PropsSection struct {
	Rocks int `yaml:"rocks"`
	Trees int `yaml:"trees"`
}

// Validate fills in missing values and clamps inconsistent ones.
func (c *WorldConfig) Validate() {
	def := DefaultWorldConfig()

	c.World.Size = world.NormalizeSize(c.World.Size)
	// Zero radius disables an octave's blur.
	if c.World.CoarseBlur < 0 {
		c.World.CoarseBlur = 0
	}
	if c.World.FineBlur < 0 {
		c.World.FineBlur = 0
	}
	if c.World.FlowerDivisor == 0 {
		c.World.FlowerDivisor = def.World.FlowerDivisor
	}

	if c.Scheduler.TickRate <= 0 {
		c.Scheduler.TickRate = def.Scheduler.TickRate
	}
	if c.Scheduler.MaxCatchUp <= 0 {
		c.Scheduler.MaxCatchUp = def.Scheduler.MaxCatchUp
	}

	if c.Actors.Initial < 0 {
		c.Actors.Initial = 0
	}
	if c.Actors.Max <= 0 {
		c.Actors.Max = def.Actors.Max
	}
	if c.Actors.Initial > c.Actors.Max {
		c.Actors.Initial = c.Actors.Max
	}
	if c.Actors.StepTicks <= 0 {
		c.Actors.StepTicks = def.Actors.StepTicks
	}

	if c.Wander.MinWait <= 0 {
		c.Wander.MinWait = def.Wander.MinWait
	}
	if c.Wander.MaxWait < c.Wander.MinWait {
		c.Wander.MaxWait = c.Wander.MinWait
	}

	if c.GoTo.RingDepth <= 0 {
		c.GoTo.RingDepth = def.GoTo.RingDepth
	}
	if c.GoTo.MaxAttempts <= 0 {
		c.GoTo.MaxAttempts = def.GoTo.MaxAttempts
	}
	if c.GoTo.StepDelay <= 0 {
		c.GoTo.StepDelay = def.GoTo.StepDelay
	}

	if c.Props.Rocks < 0 {
		c.Props.Rocks = 0
	}
	if c.Props.Trees < 0 {
		c.Props.Trees = 0
	}
}

// Params converts the world section into generation parameters.
func (c WorldConfig) Params(seed int64) world.Params {
	return world.Params{
		Size:          c.World.Size,
		Seed:          seed,
		CoarseBlur:    c.World.CoarseBlur,
		FineBlur:      c.World.FineBlur,
		FlowerDivisor: c.World.FlowerDivisor,
	}
}
