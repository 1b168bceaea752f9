package config

import (
	_ "embed"

	"github.com/vovakirdan/t2048/internal/games/t2048"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Rows:       t2048.BoardSize,
			StartTiles: 1,
		},
		Rules: RulesConfig{
			WinValue:   t2048.DefaultWinValue,
			FourChance: 0,
		},
		Server: ServerConfig{
			SSHAddr:  "0.0.0.0:23234",
			HTTPAddr: "127.0.0.1:8080",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultT2048YAML
}
