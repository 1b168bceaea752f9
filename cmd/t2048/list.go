package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/registry"
	"github.com/vovakirdan/t2048/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows a list of all registered 2048 modes.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Best scores are optional; a missing database just leaves the column empty.
	stats := map[string]*storage.GameStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
		store.Close()
	}

	// Print header
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "----")

	// Print games
	for _, g := range games {
		best := "-"
		if st, ok := stats[g.ID]; ok && st.GamesCount > 0 {
			best = fmt.Sprintf("%d (%d games)", st.HighScore, st.GamesCount)
		}
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, g.ID, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play.")
}
