// t2048 plays the 2048 sliding-tile game in the terminal, over SSH or
// through a JSON HTTP API.
//
// Usage:
//
//	t2048 list              - List available modes
//	t2048 play [mode]       - Play a game
//	t2048 menu              - Start menu to pick mode and board interactively
//	t2048 serve             - Start SSH server for remote play
//	t2048 web               - Start the HTTP API
//	t2048 scores [mode]     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.t2048/scores.db)
//	--config <path>       - Load settings from a YAML file
//	--difficulty <preset> - easy, normal or hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/t2048/internal/games/t2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile game for the terminal.

Slide every tile on the board in one direction; equal tiles that collide
merge into their sum. Reach the target tile to win, fill the board with
no move left and you lose.

Available commands:
  list     - Show the available modes
  play     - Play a game directly
  menu     - Interactive mode and board picker
  serve    - Start SSH server for remote play
  web      - Start the HTTP API
  scores   - View high scores

Examples:
  t2048 play
  t2048 play 2048_endless --rows 5
  t2048 menu --difficulty easy
  t2048 serve --ssh :2222
  t2048 web --addr :8080 --redis redis://localhost:6379
  t2048 scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}
