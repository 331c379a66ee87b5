// Package config provides configuration management for Splinter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Relay    RelayConfig    `yaml:"relay"`
	Session  SessionConfig  `yaml:"session"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RelayConfig defines rendezvous relay settings.
type RelayConfig struct {
	// URL is the relay endpoint swarm clients dial.
	URL string `yaml:"url"`
	// Listen is the bind address used by `splinter relay`.
	Listen string `yaml:"listen"`
	// JoinRatePerSecond throttles topic joins accepted by the relay.
	JoinRatePerSecond float64 `yaml:"join_rate_per_second"`
	// JoinBurst is the relay's join burst allowance.
	JoinBurst int `yaml:"join_burst"`
}

// SessionConfig defines rendezvous session settings.
type SessionConfig struct {
	// DefaultName is used when --session is omitted.
	DefaultName string `yaml:"default_name"`
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	// MemoryLock controls whether secret buffers are mlocked.
	MemoryLock bool `yaml:"memory_lock"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write so a crash mid-save never truncates the config.
	return writeAtomic(path, data, 0o600)
}

// writeAtomic writes data to a temp file next to path, syncs it, and
// renames it into place.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(perm)
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing temp config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing config: %w", err)
	}

	// Best effort: make the rename itself durable.
	if dirFile, err := os.Open(dir); err == nil { //nolint:gosec // G304: dir derives from the config path
		_ = dirFile.Sync()
		_ = dirFile.Close()
	}
	return nil
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default splinter home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".splinter"
	}
	return filepath.Join(home, ".splinter")
}

// Keys returns the settable configuration keys in stable order.
func Keys() []string {
	return []string{
		"relay.url",
		"relay.listen",
		"session.default_name",
		"security.memory_lock",
		"output.default_format",
		"output.color",
		"logging.level",
		"logging.file",
	}
}

// Get returns the current value of a settable key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "relay.url":
		return c.Relay.URL, nil
	case "relay.listen":
		return c.Relay.Listen, nil
	case "session.default_name":
		return c.Session.DefaultName, nil
	case "security.memory_lock":
		return fmt.Sprintf("%t", c.Security.MemoryLock), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.color":
		return c.Output.Color, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// Set updates a settable key from its string representation.
func (c *Config) Set(key, value string) error {
	switch key {
	case "relay.url":
		c.Relay.URL = strings.TrimSpace(value)
	case "relay.listen":
		c.Relay.Listen = strings.TrimSpace(value)
	case "session.default_name":
		c.Session.DefaultName = strings.TrimSpace(value)
	case "security.memory_lock":
		c.Security.MemoryLock = parseBool(value)
	case "output.default_format":
		c.Output.DefaultFormat = strings.ToLower(strings.TrimSpace(value))
	case "output.color":
		c.Output.Color = strings.ToLower(strings.TrimSpace(value))
	case "logging.level":
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	case "logging.file":
		c.Logging.File = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}
