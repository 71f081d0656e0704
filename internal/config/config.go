// Package config handles loading and saving application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// AppName names the config and state directories.
const AppName = "projtrack"

// Config represents the application configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	UI     UIConfig     `yaml:"ui"`
	Notify NotifyConfig `yaml:"notify"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig says where the project list document lives.
type SourceConfig struct {
	// URL is an http(s) URL, a file:// URL or a local path.
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	DefaultFilter string `yaml:"default_filter"` // "all", "active" or "inactive"
	Color         string `yaml:"color"`          // "auto", "always" or "never"
	MarkdownStyle string `yaml:"markdown_style"` // glamour standard style name
	Timezone      string `yaml:"timezone,omitempty"`
}

// NotifyConfig controls the desktop notification sent after loading.
type NotifyConfig struct {
	// DueWithinDays enables a "due soon" notification when > 0.
	DueWithinDays int `yaml:"due_within_days"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:     "./challenge.json",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			DefaultFilter: "all",
			Color:         "auto",
			MarkdownStyle: "dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", AppName)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the configuration from path, or from ConfigPath when path is empty.
// If the file doesn't exist, returns a default configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path, or to ConfigPath when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.UI.DefaultFilter {
	case "", "all", "active", "inactive":
	default:
		return fmt.Errorf("ui.default_filter: unknown filter %q", c.UI.DefaultFilter)
	}

	switch c.UI.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("ui.color: must be auto, always or never, got %q", c.UI.Color)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}

	if c.Source.Timeout < 0 {
		return errors.New("source.timeout: must not be negative")
	}
	if c.Notify.DueWithinDays < 0 {
		return errors.New("notify.due_within_days: must not be negative")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("ui.timezone: %w", err)
	}

	return nil
}

// Location returns the time zone used for pretty dates.
func (c *Config) Location() (*time.Location, error) {
	if c.UI.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.UI.Timezone)
}
