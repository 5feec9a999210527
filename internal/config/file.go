// Package config resolves daybook's storage locations and loads the optional
// YAML settings file.
//
// Settings file locations (priority order):
//  1. $DAYBOOK_CONFIG
//  2. $XDG_CONFIG_HOME/daybook/config.yaml
//
// A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk settings file.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the SQLite file.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Path: GetDBPath()},
		Log:      LogConfig{Level: "warn", Format: "text"},
	}
}

// Load reads the settings file at GetConfigPath, or returns defaults when it
// does not exist. The resolved path is returned alongside.
func Load() (*Config, string, error) {
	path := GetConfigPath()
	cfg, err := LoadFromPath(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), "", nil
	}
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFromPath reads and parses a specific settings file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Save writes the settings to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = defaults.Database.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}
