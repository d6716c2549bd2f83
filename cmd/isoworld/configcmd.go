package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/isoworld/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the world configuration",
	Long: `Print the embedded default world.yaml, a starting point for a custom
configuration. With --resolved, print the configuration a run would use after
--config, --pace and --size are applied.

Config search order:
  1. --config <path>
  2. ~/.isoworld/configs/world.yaml
  3. ./configs/world.yaml
  4. embedded defaults

Examples:
  isoworld config > world.yaml
  isoworld config --resolved --pace busy`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagResolved {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	wc, err := loadWorldConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(wc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
