package config

import (
	"errors"
	"fmt"
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/hoverplane/internal/frame"
	"github.com/Faultbox/hoverplane/internal/hover"
	"github.com/Faultbox/hoverplane/internal/idle"
	"github.com/Faultbox/hoverplane/internal/logger"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if err := c.Surface.Validate(); err != nil {
		errs = append(errs, err)
	}
	if !finite(c.Surface.Jitter) || c.Surface.Jitter < 0 {
		errs = append(errs, fmt.Errorf("surface: jitter %g must be finite and non-negative", c.Surface.Jitter))
	}
	if !finite(c.Idle.Amplitude) || !finite(c.Idle.Speed) || c.Idle.Amplitude < 0 {
		errs = append(errs, fmt.Errorf("idle: amplitude %g and speed %g must be finite, amplitude non-negative", c.Idle.Amplitude, c.Idle.Speed))
	}
	if c.Hover.Duration <= 0 {
		errs = append(errs, fmt.Errorf("hover: duration %s must be positive", c.Hover.Duration))
	}
	for _, v := range c.Hover.Color {
		if !finite(v) || v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("hover: color %v must be in [0,1]", c.Hover.Color))
			break
		}
	}
	if _, err := hover.ParseEasing(c.Hover.Easing); err != nil {
		errs = append(errs, fmt.Errorf("hover: %w", err))
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %g must be in (0,180)", c.Camera.FovDegrees))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: need 0 < near (%g) < far (%g)", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, fmt.Errorf("camera: distance %g must be positive", c.Camera.Distance))
	}
	if _, err := frame.ParseHitPolicy(c.Policy.Hits); err != nil {
		errs = append(errs, fmt.Errorf("policy: %w", err))
	}
	if _, ok := idle.ParseAxes(c.Policy.Axes); !ok {
		errs = append(errs, fmt.Errorf("policy: unknown axes %q", c.Policy.Axes))
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	return errors.Join(errs...)
}

// SurfaceOptions builds generation options. A zero seed draws from the
// process-wide source.
func (c *Config) SurfaceOptions() surface.Options {
	opts := surface.DefaultOptions()
	opts.Jitter = c.Surface.Jitter
	if c.Surface.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(c.Surface.Seed, c.Surface.Seed^0x9e3779b97f4a7c15))
	}
	return opts
}

// FramePolicy returns the parsed frame policy. Call Validate first; unknown names
// fall back to the defaults.
func (c *Config) FramePolicy() frame.Policy {
	hits, _ := frame.ParseHitPolicy(c.Policy.Hits)
	axes, _ := idle.ParseAxes(c.Policy.Axes)
	return frame.Policy{Hits: hits, Axes: axes}
}

// IdleAnimator builds the idle animator from the idle and policy sections.
func (c *Config) IdleAnimator() *idle.Animator {
	a := idle.New(c.FramePolicy().Axes)
	a.Amplitude = c.Idle.Amplitude
	a.Speed = c.Idle.Speed
	return a
}

// HoverAnimator builds the hover animator from the hover section.
func (c *Config) HoverAnimator() *hover.Animator {
	easing, err := hover.ParseEasing(c.Hover.Easing)
	if err != nil {
		easing = hover.Linear
	}
	color := surface.Color{R: c.Hover.Color[0], G: c.Hover.Color[1], B: c.Hover.Color[2]}
	return hover.New(color, float32(c.Hover.Duration.Seconds()), easing)
}

func finite(v float32) bool {
	f := float64(v)
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}
