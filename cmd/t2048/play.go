package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/registry"
)

var (
	flagRows int
	flagWin  int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing 2048 straight away. The mode defaults to "2048".

Controls:
  Arrows/WASD/hjkl - Slide tiles
  P/Space          - Pause
  N                - New game at any time
  R                - Restart (after the game ended)
  Ctrl+S           - Save a screenshot to ~/.t2048/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - 5x5 board, two start tiles, target 1024
  normal - 4x4 board, target 2048 (or the config file's settings)
  hard   - target 4096 and one spawn in five is a 4

Examples:
  t2048 play
  t2048 play 2048_endless
  t2048 play --difficulty hard
  t2048 play --rows 6 --win 8192
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagRows, "rows", 0, "Board size (overrides config)")
	playCmd.Flags().IntVar(&flagWin, "win", 0, "Winning tile (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
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

	fileCfg := mustLoadConfig()
	engine := fileCfg.Engine()
	if flagRows != 0 {
		engine.Rows = flagRows
	}
	if flagWin != 0 {
		engine.WinValue = flagWin
	}
	if err := engine.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	t2048.SetConfig(&engine)

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	rec := openRecorder(fileCfg.Server.RedisAddr, nil)

	// Run the game
	runErr := tui.Run(game, rec, runtimeConfig())

	// Close storage before potential exit
	rec.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
