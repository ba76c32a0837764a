package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a loaded config cannot drive the renderer.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Explicit path takes priority
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}
	return load(configPath, applyFlags)
}

// load overlays the YAML file at path, if any, on the defaults, then applies
// overrides in order and validates the result.
func load(path string, overrides ...func(*Config)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that would stall or break rendering.
func (c *Config) Validate() error {
	switch {
	case c.Render.FrameRate <= 0:
		return fmt.Errorf("render.frame_rate %d: %w", c.Render.FrameRate, ErrInvalid)
	case c.Render.FocalLength <= 0:
		return fmt.Errorf("render.focal_length %v: %w", c.Render.FocalLength, ErrInvalid)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("render size %dx%d: %w", c.Render.Width, c.Render.Height, ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./gravel3d.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Gravel3D")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Gravel3D")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gravel3d")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gravel3d")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
