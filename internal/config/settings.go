// Package config loads the standalone tool's settings from an optional YAML
// file. Missing file means defaults; flags override on top.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings holds the standalone tool's configuration.
type Settings struct {
	ModsDir        string      `yaml:"mods_dir"`
	ComparisonMode string      `yaml:"comparison_mode"`
	Log            LogSettings `yaml:"log"`
}

// LogSettings holds logging configuration.
type LogSettings struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns Settings with sensible defaults.
func Default() *Settings {
	return &Settings{
		ComparisonMode: "numeric",
		Log: LogSettings{
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
	}
}

// Load reads settings from a YAML file on top of the defaults. A missing file
// is fine and yields the defaults; a file that exists but cannot be parsed is
// an error.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return s, nil
}

// LogLevel maps the configured level name onto a slog.Level, defaulting to
// info for anything unrecognized.
func (s *Settings) LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(s.Log.Level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
