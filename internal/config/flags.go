package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagScene   = flag.String("scene", "", "Path to a YAML scene file")
	flagFPS     = flag.Int("fps", 0, "Ticks per second")
	flagFocal   = flag.Float64("focal", 0, "Focal length in screen widths")
	flagOutline = flag.Bool("outline", false, "Stroke triangle edges")
	flagSmooth  = flag.Bool("smooth", false, "Ease camera velocities with a spring")
	flagLogFile = flag.String("log", "", "Log file path")
	flagWrite   = flag.Bool("write-config", false, "Write the effective config to the config path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfig reports whether --write-config was given.
func WriteConfig() bool {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagScene != "" {
		cfg.Scene.File = *flagScene
	}
	if *flagFPS > 0 {
		cfg.Render.FrameRate = *flagFPS
	}
	if *flagFocal > 0 {
		cfg.Render.FocalLength = *flagFocal
	}
	if *flagOutline {
		cfg.Render.Outline = true
	}
	if *flagSmooth {
		cfg.Controls.Smoothing = true
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
