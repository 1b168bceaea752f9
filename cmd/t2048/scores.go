package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/registry"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for a mode (default "2048").

Examples:
  t2048 scores
  t2048 scores 2048_endless --limit 20
  t2048 scores -i
  t2048 scores 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show (0 for all)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse all modes in the scoreboard screen")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores for the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 't2048 list' to see available modes.")
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", registry.Title(gameID))
		return
	}

	if flagInteractive {
		rt := runtimeConfig()
		if _, err := tui.RunScoreboard(store, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	// Get top scores
	var scores []storage.ScoreEntry
	if flagScoresLimit > 0 {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Size", "Turns", "Result", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-5s  %-6s  %-6s  %s\n", "----", "-----", "----", "----", "-----", "------", "----")

	// Print scores
	for i, e := range scores {
		result := "lost"
		if e.Won {
			result = "won"
		}
		size := fmt.Sprintf("%dx%d", e.Rows, e.Rows)
		fmt.Printf("  %-4d  %-8d  %-6d  %-5s  %-6d  %-6s  %s\n",
			i+1, e.Score, e.MaxTile, size, e.Turns, result, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	// Show totals
	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Best tile: %d  Games: %d  Wins: %d\n",
			stats.HighScore, stats.BestTile, stats.GamesCount, stats.Wins)
	}
}
