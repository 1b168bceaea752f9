package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/storage"
	leaderboard "github.com/vovakirdan/t2048/internal/storage/redis"
)

// loadConfig reads the config file chain and applies --difficulty.
func loadConfig() (config.T2048Config, error) {
	cfg, err := config.LoadT2048(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyT2048Preset(&cfg, preset)

	return cfg, cfg.Validate()
}

// mustLoadConfig is loadConfig for commands that cannot continue without it.
func mustLoadConfig() config.T2048Config {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig sizes the screen from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// redisURL accepts either a redis:// URL or a bare host:port.
func redisURL(addr string) string {
	if addr == "" || strings.Contains(addr, "://") {
		return addr
	}
	return "redis://" + addr
}

// openRecorder opens the score database and, when redisAddr is set, the
// shared leaderboard. A backend that cannot be opened is skipped with a
// warning so the game still works.
func openRecorder(redisAddr string, logger *log.Logger) *storage.Recorder {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	}

	var board *leaderboard.Leaderboard
	if url := redisURL(redisAddr); url != "" {
		lbCfg := leaderboard.DefaultConfig()
		lbCfg.URL = url
		board, err = leaderboard.New(lbCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not connect to leaderboard: %v\n", err)
		}
	}

	return storage.NewRecorder(store, board, logger)
}
