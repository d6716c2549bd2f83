package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isoworld/internal/platform/tui"
	"github.com/vovakirdan/isoworld/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start isoworld with a scene picker menu",
	Long: `Start isoworld in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Quitting a scene returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab          - Session history
  Q            - Quit

Examples:
  isoworld menu
  isoworld menu --fps 20
  isoworld menu --db ./history.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	wc, err := loadWorldConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig(wc)

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsHistory {
			goBack, hErr := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if hErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", hErr)
			}
			if goBack {
				continue
			}
			break
		}

		if menuResult.SceneID == "" {
			break
		}

		sc, err := createScene(menuResult.SceneID, wc, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
			continue
		}

		// A fixed --seed only applies to the first scene
		if cfg.Seed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(sc, store, cfg, tui.Options{FPS: flagFPS, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		}
		cfg.Seed = 0
	}

	if store != nil {
		store.Close()
	}
}
