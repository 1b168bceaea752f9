package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform/web"
)

var (
	flagHTTPAddr string
	flagWebRedis string
	flagWebDebug bool
	flagMaxGames int
	flagGameTTL  time.Duration
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the 2048 HTTP API",
	Long: `Start a JSON HTTP API that serves 2048 games, with a WebSocket
event stream per game and a leaderboard endpoint.

Routes (all under /api/v1):
  POST   /games               - Create a game
  GET    /games/{id}          - Current snapshot
  POST   /games/{id}/moves    - Apply a direction
  POST   /games/{id}/reset    - Deal a new game
  DELETE /games/{id}          - Drop a game
  GET    /games/{id}/events   - WebSocket event stream
  GET    /leaderboard/{mode}  - Top scores

Examples:
  t2048 web
  t2048 web --addr :8080
  t2048 web --redis redis://localhost:6379/0`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "addr", "", "HTTP listen address (default from config)")
	webCmd.Flags().StringVar(&flagWebRedis, "redis", "", "Redis URL or host:port for the shared leaderboard")
	webCmd.Flags().BoolVar(&flagWebDebug, "debug", false, "Log every engine turn")
	webCmd.Flags().IntVar(&flagMaxGames, "max-games", 1000, "Maximum live games (0 for no limit)")
	webCmd.Flags().DurationVar(&flagGameTTL, "game-ttl", 30*time.Minute, "Drop unwatched games idle this long (0 keeps them)")
}

func runWeb(_ *cobra.Command, _ []string) {
	fileCfg := mustLoadConfig()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048-web",
	})
	if flagWebDebug {
		logger.SetLevel(log.DebugLevel)
	}

	redisAddr := fileCfg.Server.RedisAddr
	if flagWebRedis != "" {
		redisAddr = flagWebRedis
	}
	rec := openRecorder(redisAddr, logger.WithPrefix("t2048-scores"))

	cfg := web.DefaultConfig()
	cfg.Addr = fileCfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		cfg.Addr = flagHTTPAddr
	}
	cfg.Engine = fileCfg.Engine()
	cfg.MaxGames = flagMaxGames
	cfg.GameIdleTTL = flagGameTTL

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := web.NewServer(cfg, rec, logger).ListenAndServe(ctx)
	stop()
	rec.Close()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
