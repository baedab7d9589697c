package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagWidth    = flag.Int("width", 0, "Window width")
	flagHeight   = flag.Int("height", 0, "Window height")
	flagSegments = flag.Int("segments", 0, "Plane segments along both axes")
	flagSeed     = flag.Uint64("seed", 0, "Random seed for the plane jitter and phases")
	flagHits     = flag.String("hits", "", "Hit policy: nearest or all")
	flagDepth    = flag.Bool("depth", false, "Oscillate vertices along z as well")
	flagSave     = flag.Bool("save", false, "Save the tuned config on exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagSegments > 0 {
		cfg.Surface.WidthSegments = *flagSegments
		cfg.Surface.HeightSegments = *flagSegments
	}
	if *flagSeed != 0 {
		cfg.Surface.Seed = *flagSeed
	}
	if *flagHits != "" {
		cfg.Policy.Hits = *flagHits
	}
	if *flagDepth {
		cfg.Policy.Axes = "with-depth"
	}
}
