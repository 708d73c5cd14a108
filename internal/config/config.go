// ABOUTME: Application configuration loaded from $XDG_CONFIG_HOME/gratitude/config.json.
// ABOUTME: Environment variables override file values; command flags override both.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backends a store can be opened on.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)

// Config holds gratitude configuration.
type Config struct {
	// Backend selects where entries live (default: sqlite)
	Backend string `json:"backend"`

	// DBPath overrides the SQLite database location
	DBPath string `json:"db_path,omitempty"`

	// CharmHost is the charm server URL (default: charm.2389.dev)
	CharmHost string `json:"charm_host,omitempty"`

	// AutoSync enables automatic sync after writes (default: true)
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold is how old the last charm sync may get before reads pull first
	StaleThreshold string `json:"stale_threshold,omitempty"`

	// Timezone is an IANA zone name deciding calendar days; empty means local time
	Timezone string `json:"timezone,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:        BackendSQLite,
		CharmHost:      "charm.2389.dev",
		AutoSync:       true,
		StaleThreshold: "1h",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gratitude")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LoadConfig loads configuration from disk, returns defaults if not found.
// Environment overrides are applied either way.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", ConfigPath(), err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GRATITUDE_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("GRATITUDE_DB"); v != "" {
		cfg.DBPath = expandPath(v)
	}
	if v := os.Getenv("GRATITUDE_TZ"); v != "" {
		cfg.Timezone = v
	}
}

// Validate checks the backend name, stale threshold and timezone.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSQLite, BackendCharm, BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendSQLite, BackendCharm, BackendMemory)
	}
	if _, err := c.StaleDuration(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// StaleDuration parses StaleThreshold. Empty means one hour.
func (c *Config) StaleDuration() (time.Duration, error) {
	if c.StaleThreshold == "" {
		return time.Hour, nil
	}
	d, err := time.ParseDuration(c.StaleThreshold)
	if err != nil {
		return 0, fmt.Errorf("invalid stale_threshold %q: %w", c.StaleThreshold, err)
	}
	return d, nil
}

// Location resolves Timezone, falling back to the local zone when empty.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
