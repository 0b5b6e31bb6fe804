// Package config loads and watches the claudeye configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration.
type Config struct {
	PollIntervalSecs int          `toml:"poll_interval_secs"` // seconds between pane scans
	CaptureLines     int          `toml:"capture_lines"`      // 0 = visible pane only
	CommandName      string       `toml:"command_name"`       // pane command to track
	Remote           string       `toml:"remote"`             // "user@host" for a remote tmux server
	Events           EventsConfig `toml:"events"`
}

// EventsConfig controls the state-transition event log.
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"` // JSONL file, ~ expanded
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PollIntervalSecs: 2,
		CaptureLines:     0,
		CommandName:      "claude",
		Events: EventsConfig{
			Enabled: false,
			Path:    "~/.local/share/claudeye/events.jsonl",
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "claudeye", "config.toml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "claudeye", "config.toml")
}

// Load loads configuration from a file, filling unset values from Default.
// A missing file is not an error when path is the default location.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.PollIntervalSecs <= 0 {
		cfg.PollIntervalSecs = Default().PollIntervalSecs
	}
	if cfg.CaptureLines < 0 {
		cfg.CaptureLines = 0
	}
	if cfg.CommandName == "" {
		cfg.CommandName = Default().CommandName
	}
	if cfg.Events.Path == "" {
		cfg.Events.Path = Default().Events.Path
	}
	return cfg, nil
}

// PollInterval returns the poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSecs) * time.Second
}

// ExpandPath expands a leading ~ to the user home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
