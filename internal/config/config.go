// Package config provides YAML-based configuration loading and difficulty
// presets for the 2048 front ends.
package config

import (
	"github.com/vovakirdan/t2048/internal/games/t2048"
)

// T2048Config contains all configuration for a 2048 game and its servers.
type T2048Config struct {
	Board  BoardConfig  `yaml:"board"`
	Rules  RulesConfig  `yaml:"rules"`
	Server ServerConfig `yaml:"server"`
}

// BoardConfig defines the grid.
type BoardConfig struct {
	Rows       int `yaml:"rows"`
	StartTiles int `yaml:"start_tiles"`
}

// RulesConfig defines when the game is won and how tiles spawn.
type RulesConfig struct {
	WinValue   int     `yaml:"win_value"`   // 0 = endless
	FourChance float64 `yaml:"four_chance"` // Probability of spawning a 4 (0.0-1.0)
}

// ServerConfig holds listen addresses for the network front ends.
type ServerConfig struct {
	SSHAddr   string `yaml:"ssh_addr"`
	HTTPAddr  string `yaml:"http_addr"`
	RedisAddr string `yaml:"redis_addr"` // Empty disables the Redis leaderboard
}

// Engine converts the file settings into an engine config.
func (c T2048Config) Engine() t2048.Config {
	return t2048.Config{
		Rows:       c.Board.Rows,
		WinValue:   c.Rules.WinValue,
		StartTiles: c.Board.StartTiles,
		FourChance: c.Rules.FourChance,
	}
}

// Validate checks the engine part of the config.
func (c T2048Config) Validate() error {
	return c.Engine().Validate()
}
