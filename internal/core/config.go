package core

// RuntimeConfig contains configuration passed to scenes at initialization.
// Scenes use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW   int   // Screen width in characters
	ScreenH   int   // Screen height in characters
	TickRate  int   // Simulation ticks per second (default 60)
	Seed      int64 // RNG seed for deterministic generation
	WorldSize int   // Requested world size; 0 means use the loaded config
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SceneState represents the current state of a running scene.
// Returned by Scene.State() to communicate status to the platform.
type SceneState struct {
	Tick          uint64 // Simulated ticks since the last (re)generation
	Actors        int    // Actors currently in the world
	Slabs         int    // Terrain slabs in the surviving island
	Regenerations int    // How many times the world was rebuilt this session
	Paused        bool   // Whether the scheduler is paused
}

// StepResult is returned by Scene.Step() after feeding it wall-clock time.
type StepResult struct {
	State SceneState
	Ticks int // Simulation ticks run during this step
}
