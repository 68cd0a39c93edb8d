// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Clock ClockConfig `toml:"clock"`
}

// ClockConfig maps clock settings. Pointer fields distinguish "unset"
// from zero values so file entries only override what they name.
type ClockConfig struct {
	Foreground      *string `toml:"foreground"`
	ShadowColor     *string `toml:"shadow-color"`
	Blend           *int    `toml:"blend"`
	ShadowBlend     *int    `toml:"shadow-blend"`
	Border          *string `toml:"border"`
	Padding         *int    `toml:"padding"`
	Scale           *int    `toml:"scale"`
	IntervalMs      *int    `toml:"interval-ms"`
	MinCols         *int    `toml:"min-cols"`
	MinRows         *int    `toml:"min-rows"`
	Shadow          *bool   `toml:"shadow"`
	ShadowRowOffset *int    `toml:"shadow-row-offset"`
	ShadowColOffset *int    `toml:"shadow-col-offset"`
	ToggleKey       *string `toml:"toggle-key"`
	BindToggle      *bool   `toml:"bind-toggle"`
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
