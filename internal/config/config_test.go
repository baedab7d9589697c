package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/hoverplane/internal/frame"
	"github.com/Faultbox/hoverplane/internal/hover"
	"github.com/Faultbox/hoverplane/internal/idle"
	"github.com/Faultbox/hoverplane/internal/surface"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Errorf("expected 1280x720 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	want := surface.Config{Width: 10, Height: 10, WidthSegments: 10, HeightSegments: 10}
	if cfg.Surface.Config != want {
		t.Errorf("expected surface %+v, got %+v", want, cfg.Surface.Config)
	}
	if cfg.Surface.Jitter != surface.DefaultJitter {
		t.Errorf("expected jitter %g, got %g", surface.DefaultJitter, cfg.Surface.Jitter)
	}

	if cfg.Idle.Amplitude != idle.DefaultAmplitude || cfg.Idle.Speed != idle.DefaultSpeed {
		t.Errorf("unexpected idle defaults: %+v", cfg.Idle)
	}
	if cfg.Hover.Duration != time.Second {
		t.Errorf("expected hover duration 1s, got %s", cfg.Hover.Duration)
	}
	if cfg.Camera.FovDegrees != 75 || cfg.Camera.Distance != 5 {
		t.Errorf("unexpected camera defaults: %+v", cfg.Camera)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)

	yamlContent := `
window:
  width: 1920
  height: 1080
  vsync: false

surface:
  width: 40
  height: 20
  width_segments: 32
  height_segments: 16
  jitter: 0.5
  seed: 42

idle:
  amplitude: 0.02

hover:
  color: [1, 0, 0]
  duration: 250ms
  easing: smoothstep

policy:
  hits: all
  axes: with-depth

logging:
  level: debug
  log_file: hoverplane.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.VSync {
		t.Errorf("window not loaded: %+v", cfg.Window)
	}
	if cfg.Window.Title != "hoverplane" {
		t.Errorf("unset keys should keep defaults, got title %q", cfg.Window.Title)
	}

	want := surface.Config{Width: 40, Height: 20, WidthSegments: 32, HeightSegments: 16}
	if cfg.Surface.Config != want {
		t.Errorf("expected surface %+v, got %+v", want, cfg.Surface.Config)
	}
	if cfg.Surface.Jitter != 0.5 || cfg.Surface.Seed != 42 {
		t.Errorf("expected jitter 0.5 seed 42, got %g %d", cfg.Surface.Jitter, cfg.Surface.Seed)
	}

	if cfg.Idle.Amplitude != 0.02 || cfg.Idle.Speed != idle.DefaultSpeed {
		t.Errorf("unexpected idle: %+v", cfg.Idle)
	}
	if cfg.Hover.Color != [3]float32{1, 0, 0} || cfg.Hover.Duration != 250*time.Millisecond {
		t.Errorf("unexpected hover: %+v", cfg.Hover)
	}

	policy := cfg.FramePolicy()
	if policy.Hits != frame.HitsAll || policy.Axes != idle.AxesWithDepth {
		t.Errorf("unexpected policy: %+v", policy)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "hoverplane.log" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "window:\n  width: not a number\n  invalid syntax here\n",
		"unknown key": "surface:\n  depth_segments: 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Surface.WidthSegments != 10 {
		t.Errorf("empty file changed defaults: %+v", cfg.Surface)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/hoverplane.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero segments", func(c *Config) { c.Surface.WidthSegments = 0 }, "width_segments"},
		{"negative height", func(c *Config) { c.Surface.Height = -1 }, "height"},
		{"window", func(c *Config) { c.Window.Width = 0 }, "window"},
		{"easing", func(c *Config) { c.Hover.Easing = "bounce" }, "bounce"},
		{"duration", func(c *Config) { c.Hover.Duration = 0 }, "duration"},
		{"color", func(c *Config) { c.Hover.Color[1] = 2 }, "color"},
		{"near far", func(c *Config) { c.Camera.Far = 0.05 }, "near"},
		{"fov", func(c *Config) { c.Camera.FovDegrees = 180 }, "fov"},
		{"hits", func(c *Config) { c.Policy.Hits = "first" }, "hit policy"},
		{"axes", func(c *Config) { c.Policy.Axes = "z-only" }, "axes"},
		{"level", func(c *Config) { c.Logging.Level = "trace" }, "trace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Surface.Width = 0
	if err := cfg.Validate(); !errors.Is(err, surface.ErrInvalidConfig) {
		t.Errorf("surface errors should match ErrInvalidConfig, got %v", err)
	}
}

func TestAnimatorsFromConfig(t *testing.T) {
	cfg := Default()
	cfg.Idle.Amplitude = 0.5
	cfg.Policy.Axes = "with-depth"
	cfg.Hover.Duration = 500 * time.Millisecond

	ia := cfg.IdleAnimator()
	if ia.Amplitude != 0.5 || ia.Axes != idle.AxesWithDepth {
		t.Errorf("unexpected idle animator: %+v", ia)
	}

	ha := cfg.HoverAnimator()
	if ha.Duration != 0.5 {
		t.Errorf("expected hover duration 0.5s, got %g", ha.Duration)
	}
	if ha.Color != hover.DefaultColor {
		t.Errorf("expected default hover color, got %+v", ha.Color)
	}
}

func TestSurfaceOptionsSeeded(t *testing.T) {
	cfg := Default()
	cfg.Surface.Seed = 7

	a, err := surface.Generate(cfg.Surface.Config, cfg.SurfaceOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := surface.Generate(cfg.Surface.Config, cfg.SurfaceOptions())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("same seed produced different positions at %d", i)
		}
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Surface.WidthSegments = 64
	cfg.Hover.Easing = "ease-out-quad"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Surface.WidthSegments != 64 || loaded.Hover.Easing != "ease-out-quad" {
		t.Errorf("round trip lost edits: %+v %+v", loaded.Surface, loaded.Hover)
	}
	if loaded.Hover.Duration != time.Second {
		t.Errorf("expected duration 1s after reload, got %s", loaded.Hover.Duration)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("window:\n  width: 800\n"), 0o644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "window size flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "segments flag",
			setup: func() { *flagSegments = 50 },
			verify: func(cfg *Config) {
				if cfg.Surface.WidthSegments != 50 || cfg.Surface.HeightSegments != 50 {
					t.Errorf("expected 50x50 segments, got %+v", cfg.Surface.Config)
				}
			},
			teardown: func() { *flagSegments = 0 },
		},
		{
			name: "policy flags",
			setup: func() {
				*flagHits = "all"
				*flagDepth = true
			},
			verify: func(cfg *Config) {
				if cfg.Policy.Hits != "all" || cfg.Policy.Axes != "with-depth" {
					t.Errorf("unexpected policy: %+v", cfg.Policy)
				}
			},
			teardown: func() {
				*flagHits = ""
				*flagDepth = false
			},
		},
		{
			name:  "no flags",
			setup: func() {},
			verify: func(cfg *Config) {
				def := Default()
				if cfg.Window != def.Window || cfg.Surface != def.Surface || cfg.Policy != def.Policy {
					t.Error("config should be unchanged when no flags are set")
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}
