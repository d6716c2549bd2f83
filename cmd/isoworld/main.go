// isoworld is an ambient isometric pixel world that runs in the terminal.
//
// Usage:
//
//	isoworld list              - List available scenes
//	isoworld run <scene>       - Watch a scene
//	isoworld menu              - Pick scenes interactively
//	isoworld serve             - Start SSH server for remote viewers
//	isoworld history <scene>   - Show recorded sessions of a scene
//	isoworld preview           - Print a generated island without a TTY
//	isoworld config            - Print the default world configuration
//
// Global flags:
//
//	--fps <rate>      - Redraw rate (default: 30)
//	--seed <value>    - World seed (0 = random based on time)
//	--db <path>       - History database (default: ~/.isoworld/history.db)
//	--config <path>   - Custom world.yaml
//	--size <n>        - World size, overriding the config
//	--pace <preset>   - calm, normal or busy
//	--log <path>      - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/isoworld/internal/scene"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagSize    int
	flagPace    string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "isoworld",
	Short: "isoworld - an ambient isometric world in your terminal",
	Long: `isoworld generates a small island from a seed and lets a few actors
wander around on it, climbing rocks and walking around trees.

Available commands:
  list     - Show all available scenes
  run      - Watch a specific scene
  menu     - Interactive scene picker
  serve    - Start SSH server for remote viewers
  history  - View recorded sessions
  preview  - Print a generated island
  config   - Print the default configuration

Examples:
  isoworld list
  isoworld run meadow --seed 42
  isoworld menu --pace busy
  isoworld serve --ssh :2222
  isoworld history gather`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "World seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.isoworld/history.db", "Path to session history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "World size (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagPace, "pace", "", "Pace preset: calm, normal, busy")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log at debug level")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
}
