package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and board picker menu",
	Long: `Start in interactive menu mode.

Pick classic or endless, then choose the board size and target tile.
After a game ends, Esc returns to the menu to play again.

Controls:
  Up/Down/j/k      - Navigate
  Left/Right/h/l   - Change an option
  Enter            - Select
  Tab              - High scores
  Q                - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	fileCfg := mustLoadConfig()
	rec := openRecorder(fileCfg.Server.RedisAddr, nil)

	err := tui.RunSession(rec, fileCfg.Engine(), runtimeConfig())
	rec.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
