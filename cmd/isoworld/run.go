package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isoworld/internal/platform/tui"
	"github.com/vovakirdan/isoworld/internal/registry"
	"github.com/vovakirdan/isoworld/internal/storage"
)

var runCmd = &cobra.Command{
	Use:   "run <scene>",
	Short: "Watch a scene",
	Long: `Generate a world and watch the specified scene.

Controls:
  Arrows/WASD - Pan the camera
  C           - Recenter the camera
  Space/P     - Pause
  R           - Regenerate with a new seed
  N           - Spawn a wanderer
  F           - Send one actor after another
  Ctrl+S      - Save a text screenshot
  Q/Ctrl+C    - Quit

Pace options:
  calm   - fewer actors, longer idles, slower steps
  normal - the loaded configuration as is
  busy   - more actors, short idles, quicker steps

Examples:
  isoworld run meadow
  isoworld run gather --seed 7
  isoworld run crowd --pace busy --size 48
  isoworld run meadow --config ./my-world.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func runRun(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'isoworld list' to see available scenes.")
		os.Exit(1)
	}

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

	sc, err := createScene(sceneID, wc, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the viewer still works
		store = nil
	}

	runErr := tui.Run(sc, store, runtimeConfig(wc), tui.Options{FPS: flagFPS, Logger: logger})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", runErr)
		os.Exit(1)
	}
}
