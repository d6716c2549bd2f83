package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/isoworld/internal/config"
	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/registry"
)

// loadWorldConfig resolves the world configuration from --config, --pace and --size.
func loadWorldConfig() (config.WorldConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	pace, err := config.ParsePace(flagPace)
	if err != nil {
		return cfg, err
	}
	config.ApplyPace(&cfg, pace)

	if flagSize > 0 {
		cfg.World.Size = flagSize
	}
	cfg.Validate()
	return cfg, nil
}

// newLogger returns a file logger when --log is set. Anything written to the
// terminal would corrupt the viewer, so the default discards.
func newLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(flagLogPath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "isoworld",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// runtimeConfig builds the per-run settings handed to a scene.
func runtimeConfig(wc config.WorldConfig) core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:   width,
		ScreenH:   height,
		TickRate:  wc.Scheduler.TickRate,
		Seed:      flagSeed,
		WorldSize: wc.World.Size,
	}
}

// createScene instantiates and configures a registered scene.
func createScene(id string, wc config.WorldConfig, logger *log.Logger) (registry.Scene, error) {
	sc, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	if c, ok := sc.(registry.Configurable); ok {
		c.Configure(wc, logger)
	}
	return sc, nil
}
