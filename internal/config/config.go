// Package config provides runtime configuration for daybattery.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sadopc/daybattery/internal/store"
)

// DefaultInterval is how often the display is refreshed.
const DefaultInterval = 20 * time.Second

// Config holds the runtime configuration.
type Config struct {
	// DataDir holds the settings database and the log file.
	DataDir string

	// DatabasePath is the full path to the SQLite settings database.
	DatabasePath string

	// LogPath is where the TUI writes its log.
	LogPath string

	// Interval between refreshes. Settings changes refresh immediately.
	Interval time.Duration
}

// Load creates a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	defaultDB, err := store.DefaultDBPath()
	if err != nil {
		return nil, fmt.Errorf("locate config dir: %w", err)
	}
	dataDir := envOr("DAYBATTERY_DATA_DIR", filepath.Dir(defaultDB))

	secs, err := envOrInt("DAYBATTERY_INTERVAL", int(DefaultInterval/time.Second))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      dataDir,
		DatabasePath: envOr("DAYBATTERY_DB", filepath.Join(dataDir, filepath.Base(defaultDB))),
		LogPath:      envOr("DAYBATTERY_LOG", filepath.Join(dataDir, "daybattery.log")),
		Interval:     time.Duration(secs) * time.Second,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that may have come from flags after Load.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Interval < time.Second {
		return fmt.Errorf("refresh interval must be at least 1s, got %s", c.Interval)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
