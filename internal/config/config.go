// Package config handles gravel3d configuration loading and management.
package config

import "image/color"

// Config holds all settings.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Controls ControlsConfig `yaml:"controls"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// RenderConfig holds projection and presentation settings.
type RenderConfig struct {
	FrameRate   int     `yaml:"frame_rate"`   // Ticks per second
	FocalLength float64 `yaml:"focal_length"` // Distance from eye to screen, in screen widths
	Ambient     float64 `yaml:"ambient"`      // Added to every facing ratio
	Outline     bool    `yaml:"outline"`      // Stroke triangle edges
	Width       int     `yaml:"width"`        // Window size; the terminal uses its own
	Height      int     `yaml:"height"`
}

// ControlsConfig holds camera movement settings.
type ControlsConfig struct {
	WalkSpeed float64 `yaml:"walk_speed"` // Units per second
	TurnSpeed float64 `yaml:"turn_speed"` // Radians per second
	// Smoothing eases velocities in and out with a spring instead of
	// switching them instantly.
	Smoothing       bool    `yaml:"smoothing"`
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`
}

// SceneConfig selects the scene to show.
type SceneConfig struct {
	File string   `yaml:"file"` // YAML scene; empty for the built-in scene
	Sky  [3]uint8 `yaml:"sky"`  // Overrides the scene's sky when non-zero
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Console bool   `yaml:"console"`
}

// SkyColor returns the configured sky color and whether one is set.
func (s SceneConfig) SkyColor() (color.RGBA, bool) {
	if s.Sky == [3]uint8{} {
		return color.RGBA{}, false
	}
	return color.RGBA{R: s.Sky[0], G: s.Sky[1], B: s.Sky[2], A: 255}, true
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			FrameRate:   100,
			FocalLength: 1,
			Ambient:     0.25,
			Outline:     false,
			Width:       800,
			Height:      600,
		},
		Controls: ControlsConfig{
			WalkSpeed:       2,
			TurnSpeed:       1,
			Smoothing:       false,
			SpringFrequency: 6,
			SpringDamping:   1,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Console: false,
		},
	}
}
