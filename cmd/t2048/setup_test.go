package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisURL(t *testing.T) {
	assert.Equal(t, "", redisURL(""))
	assert.Equal(t, "redis://localhost:6379", redisURL("localhost:6379"))
	assert.Equal(t, "redis://cache:6379/2", redisURL("redis://cache:6379/2"))
	assert.Equal(t, "rediss://cache:6380", redisURL("rediss://cache:6380"))
}

func withConfigFlags(t *testing.T, path, difficulty string) {
	t.Helper()
	oldConfig, oldDifficulty := flagConfig, flagDifficulty
	flagConfig, flagDifficulty = path, difficulty
	t.Cleanup(func() {
		flagConfig, flagDifficulty = oldConfig, oldDifficulty
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "t2048.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	withConfigFlags(t, writeConfig(t, "board:\n  rows: 6\n"), "")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Board.Rows)
	assert.Equal(t, 2048, cfg.Rules.WinValue)
}

func TestLoadConfigPreset(t *testing.T) {
	withConfigFlags(t, writeConfig(t, "board:\n  rows: 6\n"), "hard")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Board.Rows)
	assert.Equal(t, 4096, cfg.Rules.WinValue)
	assert.InDelta(t, 0.2, cfg.Rules.FourChance, 1e-9)
}

func TestLoadConfigErrors(t *testing.T) {
	withConfigFlags(t, writeConfig(t, "board:\n  rows: 6\n"), "nightmare")
	_, err := loadConfig()
	assert.Error(t, err)

	withConfigFlags(t, writeConfig(t, "rules:\n  win_value: 100\n"), "")
	_, err = loadConfig()
	assert.Error(t, err)
}
