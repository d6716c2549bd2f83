package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isoworld/internal/platform/tui"
	"github.com/vovakirdan/isoworld/internal/world"
)

var flagColor bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print a generated island",
	Long: `Generate a world and print its terrain and a short summary, without
starting the viewer. Useful to browse seeds.

Examples:
  isoworld preview --seed 42
  isoworld preview --size 48 --color`,
	Args: cobra.NoArgs,
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&flagColor, "color", false, "Print with terminal colors")
}

func runPreview(_ *cobra.Command, _ []string) {
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

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := world.Generate(wc.Params(seed), logger)
	raster, _, _ := w.Background(world.DefaultAtlas{})

	if flagColor {
		fmt.Println(tui.RenderScreen(raster))
	} else {
		fmt.Print(raster.String())
	}

	sum := w.Summary()
	fmt.Println()
	fmt.Printf("seed %d  size %d  slabs %d (%d border)  islands pruned %d  flower patches %d\n",
		sum.Seed, sum.Size, sum.Slabs, sum.BorderSlabs, sum.IslandsPruned, sum.FlowerPatches)
}
