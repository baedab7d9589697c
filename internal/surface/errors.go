package surface

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is matched by every ConfigurationError.
var ErrInvalidConfig = errors.New("invalid surface config")

// ConfigurationError reports a rejected Config field.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("surface config: %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *ConfigurationError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks that every dimension and segment count is positive and finite.
func (c Config) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"width", float64(c.Width)},
		{"height", float64(c.Height)},
		{"width_segments", float64(c.WidthSegments)},
		{"height_segments", float64(c.HeightSegments)},
	}

	for _, d := range dims {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) {
			return &ConfigurationError{Field: d.name, Value: d.value, Reason: "must be finite"}
		}
		if d.value <= 0 {
			return &ConfigurationError{Field: d.name, Value: d.value, Reason: "must be positive"}
		}
	}
	return nil
}

// Limits are the live-edit ranges offered to the configuration surface.
type Limits struct {
	MinSize, MaxSize         float32
	MinSegments, MaxSegments int
}

// DefaultLimits returns width/height in [1,500] and segments in [1,100].
func DefaultLimits() Limits {
	return Limits{MinSize: 1, MaxSize: 500, MinSegments: 1, MaxSegments: 100}
}

// Clamp returns cfg with every field forced into the limits.
func (l Limits) Clamp(cfg Config) Config {
	cfg.Width = clampf(cfg.Width, l.MinSize, l.MaxSize)
	cfg.Height = clampf(cfg.Height, l.MinSize, l.MaxSize)
	cfg.WidthSegments = clampi(cfg.WidthSegments, l.MinSegments, l.MaxSegments)
	cfg.HeightSegments = clampi(cfg.HeightSegments, l.MinSegments, l.MaxSegments)
	return cfg
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
