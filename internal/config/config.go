// Package config loads deskcalc settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all deskcalc configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Keyboard feedback
	Keyboard KeyboardConfig `yaml:"keyboard"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// KeyboardConfig configures key press feedback.
type KeyboardConfig struct {
	// ActiveKeyDelay is how long a pressed key stays highlighted.
	ActiveKeyDelay string `yaml:"active_key_delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "deskcalc",
		Version: "1.0.0",

		UI: *DefaultUIConfig(),

		Keyboard: KeyboardConfig{
			ActiveKeyDelay: "150ms",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// ConfigDir returns the directory where config and logs are stored,
// preferring a project-local .deskcalc directory.
func ConfigDir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".deskcalc")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".deskcalc"), nil
}

// ConfigFile returns the full path to the default config file.
func ConfigFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if theme := os.Getenv("DESKCALC_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if debug := os.Getenv("DESKCALC_DEBUG"); debug != "" {
		c.Logging.DebugMode = debug == "1" || strings.EqualFold(debug, "true")
	}
	if level := os.Getenv("DESKCALC_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

// Validate checks enumerated values and durations.
func (c *Config) Validate() error {
	switch c.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme %q (valid: light, dark)", ErrInvalidConfig, c.UI.Theme)
	}

	for name, value := range map[string]string{
		"keyboard.active_key_delay": c.Keyboard.ActiveKeyDelay,
		"ui.copy_confirm_delay":     c.UI.CopyConfirmDelay,
	} {
		if value == "" {
			continue
		}
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			return fmt.Errorf("%w: %s %q is not a positive duration", ErrInvalidConfig, name, value)
		}
	}

	return c.Logging.validate()
}

// GetActiveKeyDelay returns the key highlight duration.
func (c *Config) GetActiveKeyDelay() time.Duration {
	d, err := time.ParseDuration(c.Keyboard.ActiveKeyDelay)
	if err != nil || d <= 0 {
		return 150 * time.Millisecond
	}
	return d
}

// GetCopyConfirmDelay returns how long the copied indicator stays lit.
func (c *Config) GetCopyConfirmDelay() time.Duration {
	d, err := time.ParseDuration(c.UI.CopyConfirmDelay)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}
