package config

import (
	_ "embed"

	"github.com/vovakirdan/isoworld/internal/behavior"
	"github.com/vovakirdan/isoworld/internal/entity"
	"github.com/vovakirdan/isoworld/internal/sched"
	"github.com/vovakirdan/isoworld/internal/world"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// DefaultWorldConfig returns the default world configuration.
// It mirrors defaults/world.yaml.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		World: WorldSection{
			Size:          32,
			CoarseBlur:    world.DefaultCoarseBlur,
			FineBlur:      world.DefaultFineBlur,
			FlowerDivisor: world.DefaultFlowerDivisor,
		},
		Scheduler: SchedulerSection{
			TickRate:   60,
			MaxCatchUp: sched.DefaultMaxCatchUp,
		},
		Actors: ActorsSection{
			Initial:   6,
			Max:       40,
			StepTicks: entity.DefaultStepTicks,
		},
		Wander: WanderSection{
			MinWait: behavior.DefaultWanderMin,
			MaxWait: behavior.DefaultWanderMax,
		},
		GoTo: GoToSection{
			RingDepth:   behavior.DefaultRingDepth,
			MaxAttempts: behavior.DefaultMaxAttempts,
			StepDelay:   behavior.DefaultStepDelay,
		},
		Props: PropsSection{
			Rocks: 6,
			Trees: 8,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWorldYAML
}
