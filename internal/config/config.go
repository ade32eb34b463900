// Package config provides configuration loading for Storyline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config is the root configuration for the application.
type Config struct {
	Global   GlobalConfig   `mapstructure:"global"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Timeline TimelineConfig `mapstructure:"timeline"`
}

// GlobalConfig holds paths shared across the application.
type GlobalConfig struct {
	// DataDir is where the database and exports live.
	DataDir string `mapstructure:"data_dir"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path to the database file. Empty means <data_dir>/story.db.
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level        string `mapstructure:"level"`
	Format       string `mapstructure:"format"`
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// TimelineConfig holds timeline view settings.
type TimelineConfig struct {
	// DefaultZoom is the zoom level applied on startup, 0.5 to 3.0.
	DefaultZoom float64 `mapstructure:"default_zoom"`
	// Theme selects the color theme.
	Theme string `mapstructure:"theme"`
	// TooltipSeconds is how long a hover tooltip stays up.
	TooltipSeconds int `mapstructure:"tooltip_seconds"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".local", "share", "storyline")
	return &Config{
		Global: GlobalConfig{
			DataDir: dataDir,
		},
		Database: DatabaseConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Timeline: TimelineConfig{
			DefaultZoom:    1.0,
			Theme:          "dark",
			TooltipSeconds: 3,
		},
	}
}

// DatabasePath resolves the effective database file path.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Global.DataDir, "story.db")
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Global.DataDir == "" {
		return fmt.Errorf("global.data_dir is required")
	}
	if z := c.Timeline.DefaultZoom; z < 0.5 || z > 3.0 {
		return fmt.Errorf("timeline.default_zoom must be between 0.5 and 3.0, got %v", z)
	}
	if c.Timeline.TooltipSeconds < 0 {
		return fmt.Errorf("timeline.tooltip_seconds must not be negative")
	}
	return nil
}
