// Package config loads viewer settings from defaults, a YAML file and flags.
package config

import (
	"time"

	"github.com/Faultbox/hoverplane/internal/idle"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Surface SurfaceConfig `yaml:"surface"`
	Idle    IdleConfig    `yaml:"idle"`
	Hover   HoverConfig   `yaml:"hover"`
	Camera  CameraConfig  `yaml:"camera"`
	Policy  PolicyConfig  `yaml:"policy"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// SurfaceConfig holds plane dimensions and generation randomness.
type SurfaceConfig struct {
	surface.Config `yaml:",inline"`

	Jitter float32 `yaml:"jitter"`
	Seed   uint64  `yaml:"seed"` // 0 picks a random seed per run
}

// IdleConfig holds the ambient oscillation settings.
type IdleConfig struct {
	Amplitude float32 `yaml:"amplitude"`
	Speed     float32 `yaml:"speed"` // radians per second
}

// HoverConfig holds the highlight settings.
type HoverConfig struct {
	Color    [3]float32    `yaml:"color"`
	Duration time.Duration `yaml:"duration"`
	Easing   string        `yaml:"easing"`
}

// CameraConfig holds the perspective camera settings.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Distance   float32 `yaml:"distance"`
}

// PolicyConfig selects hit and idle behaviours.
type PolicyConfig struct {
	Hits string `yaml:"hits"` // nearest | all
	Axes string `yaml:"axes"` // in-plane | with-depth
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "hoverplane",
			VSync:  true,

			ScreenshotDir: "screenshots",
		},
		Surface: SurfaceConfig{
			Config: surface.Config{
				Width:          10,
				Height:         10,
				WidthSegments:  10,
				HeightSegments: 10,
			},
			Jitter: surface.DefaultJitter,
		},
		Idle: IdleConfig{
			Amplitude: idle.DefaultAmplitude,
			Speed:     idle.DefaultSpeed,
		},
		Hover: HoverConfig{
			Color:    [3]float32{0.1, 0.5, 1.0},
			Duration: time.Second,
			Easing:   "linear",
		},
		Camera: CameraConfig{
			FovDegrees: 75,
			Near:       0.1,
			Far:        1000,
			Distance:   5,
		},
		Policy: PolicyConfig{
			Hits: "nearest",
			Axes: "in-plane",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
