// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Stats    StatsConfig    `toml:"stats"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Counts        *[]int    `toml:"counts"`
	Prefixes      *[]string `toml:"prefixes"`
	Endings       *[]string `toml:"endings"`
	Tones         *[]int    `toml:"tones"`
	Lexicon       *string   `toml:"lexicon"`
	Audio         *bool     `toml:"audio"`
	SpeechCommand *string   `toml:"speech-command"`
	WeightFloor   *float64  `toml:"weight-floor"`
	ShowWeights   *bool     `toml:"show-weights"`
}

// StatsConfig maps stats-related settings.
type StatsConfig struct {
	Sort     *string `toml:"sort"`
	Desc     *bool   `toml:"desc"`
	Sessions *int    `toml:"sessions"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
