package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SavePath is where Save writes: the --config path when given, otherwise
// config.yaml in ConfigDir.
func SavePath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Save writes the config to SavePath.
func (c *Config) Save() error {
	return c.SaveTo(SavePath())
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
