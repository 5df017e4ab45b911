// Package config loads the ypsite runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all ypsite settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Logging LoggingConfig `yaml:"logging"`
	Content ContentConfig `yaml:"content"`

	// Debug enables scene debug mode (tree checks and frame stats).
	Debug   bool `yaml:"debug"`
	ShowFPS bool `yaml:"show_fps"`

	// ScreenshotDir receives PNGs captured by test scripts.
	ScreenshotDir string `yaml:"screenshot_dir"`
	// Script is an optional test script run against the page.
	Script string `yaml:"script"`
	// ExitAfterScript closes the window once Script finishes.
	ExitAfterScript bool `yaml:"exit_after_script"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// ContentConfig locates the site copy.
type ContentConfig struct {
	// Path of a site YAML file; empty uses the embedded default.
	Path string `yaml:"path"`
	// Watch reloads the page when Path changes on disk.
	Watch bool `yaml:"watch"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "YP Electrical and Civil Works",
			Width:     1280,
			Height:    800,
			Resizable: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		ScreenshotDir: "screenshots",
	}
}

// Load reads configuration from a YAML file on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Content.Path != "" && !filepath.IsAbs(cfg.Content.Path) {
		cfg.Content.Path = filepath.Join(filepath.Dir(path), cfg.Content.Path)
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the settings the page cannot run without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	if c.Content.Watch && c.Content.Path == "" {
		return errors.New("content watch needs a content path")
	}
	if c.ExitAfterScript && c.Script == "" {
		return errors.New("exit_after_script needs a script")
	}
	return nil
}
