package scene

import (
	"github.com/vovakirdan/isoworld/internal/grid"
	"github.com/vovakirdan/isoworld/internal/registry"
)

// chaseEvery is how often, in ticks, the crowd scene launches a chase.
const chaseEvery = 180

func init() {
	registry.Register("meadow", func() registry.Scene { return NewMeadow() })
	registry.Register("gather", func() registry.Scene { return NewGather() })
	registry.Register("crowd", func() registry.Scene { return NewCrowd() })
}

// NewMeadow is the plain ambient scene: a handful of wanderers.
func NewMeadow() *Scene {
	return New("meadow", "Meadow", func(s *Scene) {
		for i := 0; i < s.cfg.Actors.Initial; i++ {
			s.SpawnWanderer()
		}
	})
}

// NewGather places a wandering host on the origin and has every other actor
// follow it for good.
func NewGather() *Scene {
	return New("gather", "Gathering", func(s *Scene) {
		host, ok := s.SpawnAt(grid.K(0, 0))
		if !ok {
			host, ok = s.Spawn()
		}
		if !ok {
			return
		}
		s.host = host
		s.Wander(host)
		for i := 1; i < s.cfg.Actors.Initial; i++ {
			a, ok := s.Spawn()
			if !ok {
				break
			}
			s.Approach(a, host, true)
		}
	})
}

// NewCrowd fills the island with three times the usual wanderers and
// periodically sends one after another.
func NewCrowd() *Scene {
	return New("crowd", "Crowd", func(s *Scene) {
		for i := 0; i < 3*s.cfg.Actors.Initial; i++ {
			if _, ok := s.SpawnWanderer(); !ok {
				break
			}
		}
		var chase func()
		chase = func() {
			s.Follow()
			s.hud.TickDelay(chaseEvery, chase)
		}
		s.hud.TickDelay(chaseEvery, chase)
	})
}
