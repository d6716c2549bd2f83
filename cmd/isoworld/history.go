package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/isoworld/internal/registry"
	"github.com/vovakirdan/isoworld/internal/storage"
)

var flagClear bool

var historyCmd = &cobra.Command{
	Use:   "history <scene>",
	Short: "Show recorded sessions of a scene",
	Long: `Display the 10 most recent sessions of the specified scene, with the
seed of each so a world can be watched again.

Examples:
  isoworld history meadow
  isoworld run meadow --seed <seed from the list>
  isoworld history crowd --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded sessions of the scene")
}

func runHistory(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'isoworld list' to see available scenes.")
		os.Exit(1)
	}

	sc, err := registry.Create(sceneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scene: %v\n", err)
		os.Exit(1)
	}
	title := sc.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(sceneID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			return
		}
		fmt.Printf("Cleared history of %s.\n", title)
		return
	}

	sessions, err := store.RecentSessions(sceneID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		return
	}

	fmt.Printf("Recent sessions - %s\n", title)
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'isoworld run %s' to record the first one!\n", sceneID)
		return
	}

	fmt.Printf("  %-20s  %-4s  %-5s  %-6s  %-8s  %s\n", "Seed", "Size", "Slabs", "Actors", "Ticks", "Date")
	fmt.Printf("  %-20s  %-4s  %-5s  %-6s  %-8s  %s\n", "----", "----", "-----", "------", "-----", "----")

	for _, s := range sessions {
		fmt.Printf("  %-20d  %-4d  %-5d  %-6d  %-8d  %s\n",
			s.Seed, s.WorldSize, s.Slabs, s.Actors, s.Ticks, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if longest, err := store.LongestSession(sceneID); err == nil && longest != nil {
		fmt.Printf("Longest: %d ticks (seed %d)\n", longest.Ticks, longest.Seed)
	}
	if stats, err := store.GetSceneStats(sceneID); err == nil {
		fmt.Printf("Total: %d sessions, %d ticks\n", stats.Sessions, stats.TotalTicks)
	}
}
