// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/config"
	"github.com/vovakirdan/isoworld/internal/core"
)

// Scene is the interface every runnable world setup implements.
// Scenes own their simulation; the platform only feeds them input and
// wall-clock time and asks them to draw.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "meadow").
	// Used for CLI commands and session history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh world for the given configuration.
	Reset(cfg core.RuntimeConfig)

	// Step applies viewer actions and advances the simulation by the elapsed
	// wall-clock time.
	Step(in core.InputFrame, elapsed time.Duration) core.StepResult

	// Render draws the current frame into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current scene state.
	State() core.SceneState
}

// Summarizer is implemented by scenes that can describe the world they built,
// for the session history.
type Summarizer interface {
	Summary() Summary
}

// Configurable is implemented by scenes that take a world configuration and a
// logger before Reset.
type Configurable interface {
	Configure(cfg config.WorldConfig, logger *log.Logger)
}

// Summary is what a finished session records.
type Summary struct {
	Seed          int64
	WorldSize     int
	Slabs         int
	IslandsPruned int
	FlowerPatches int
	Actors        int
	Ticks         uint64
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scene.
type Factory func() Scene

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from an init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	s := f()
	titles[id] = s.Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SceneInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string) (Scene, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
