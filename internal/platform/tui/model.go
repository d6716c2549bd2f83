package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/registry"
	"github.com/vovakirdan/isoworld/internal/storage"
)

// Options tune a viewer model.
type Options struct {
	FPS    int         // redraw rate; the simulation tick rate lives in RuntimeConfig
	Logger *log.Logger // nil means log.Default()
	// AllowBack lets Esc/B end the model without quitting the program, for
	// hosts that return to a menu.
	AllowBack bool
}

// Model is the Bubble Tea model that drives one scene.
type Model struct {
	scene      registry.Scene
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	state      core.SceneState
	last       time.Time
	quitting   bool
	backToMenu bool
	saved      bool
}

// NewModel creates a new Bubble Tea model for the given scene.
func NewModel(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		scene:      scene,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init builds the world and starts the frame loop.
func (m Model) Init() tea.Cmd {
	m.scene.Reset(m.config)
	return tickCmd(m.opts.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world does not depend on the screen size; only the buffer changes.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	if m.opts.AllowBack && m.inputFrame.Has(core.ActionBack) {
		m.finish()
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleTick feeds the wall time since the previous frame into the scene.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	var elapsed time.Duration
	if !m.last.IsZero() && now.After(m.last) {
		elapsed = now.Sub(m.last)
	}
	m.last = now

	result := m.scene.Step(m.inputFrame, elapsed)
	m.state = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.opts.FPS)
}

// finish records the session once.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true
	if err := RecordSession(m.store, m.scene); err != nil {
		m.logger.Warn("could not record session", "scene", m.scene.ID(), "error", err)
	}
}

// RecordSession stores the summary of a scene in the history. Scenes that do
// not summarize themselves, or that never ran, are skipped.
func RecordSession(store *storage.Store, scene registry.Scene) error {
	if store == nil {
		return nil
	}
	s, ok := scene.(registry.Summarizer)
	if !ok {
		return nil
	}
	sum := s.Summary()
	if sum.Ticks == 0 {
		return nil
	}
	_, err := store.SaveSession(storage.Session{
		SceneID:       scene.ID(),
		Seed:          sum.Seed,
		WorldSize:     sum.WorldSize,
		Slabs:         sum.Slabs,
		IslandsPruned: sum.IslandsPruned,
		FlowerPatches: sum.FlowerPatches,
		Actors:        sum.Actors,
		Ticks:         int64(sum.Ticks),
	})
	return err
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.scene.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".isoworld", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.scene.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.scene.Render(m.screen)

	return RenderScreen(m.screen)
}

// State returns the last reported scene state.
func (m Model) State() core.SceneState {
	return m.state
}

// IsQuitting returns true if the viewer asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the viewer asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given scene.
func Run(scene registry.Scene, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(scene, store, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
