package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the presets in increasing difficulty.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", name)
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// Easy plays a roomier board to a lower target; hard plays a tight board
// with more 4s. Normal leaves the config untouched.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Rows = 5
		cfg.Board.StartTiles = 2
		cfg.Rules.WinValue = 1024
		cfg.Rules.FourChance = 0
	case DifficultyHard:
		cfg.Board.Rows = 4
		cfg.Board.StartTiles = 1
		cfg.Rules.WinValue = 4096
		cfg.Rules.FourChance = 0.2
	}
}
