// Package tuning edits the plane configuration from key presses and asks the
// frame loop to regenerate.
package tuning

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/events"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// Action is one edit bound to a key.
type Action struct {
	Name  string
	apply func(cfg *surface.Config, step Steps)
}

// Steps are the increments applied per key press.
type Steps struct {
	Size     float32
	Segments int
}

// DefaultSteps changes sizes by 5 units and segment counts by 1.
func DefaultSteps() Steps {
	return Steps{Size: 5, Segments: 1}
}

// DefaultBindings maps SDL key names to edits.
func DefaultBindings() map[string]Action {
	return map[string]Action{
		"Right": {"width+", func(c *surface.Config, s Steps) { c.Width += s.Size }},
		"Left":  {"width-", func(c *surface.Config, s Steps) { c.Width -= s.Size }},
		"Up":    {"height+", func(c *surface.Config, s Steps) { c.Height += s.Size }},
		"Down":  {"height-", func(c *surface.Config, s Steps) { c.Height -= s.Size }},
		"D":     {"width_segments+", func(c *surface.Config, s Steps) { c.WidthSegments += s.Segments }},
		"A":     {"width_segments-", func(c *surface.Config, s Steps) { c.WidthSegments -= s.Segments }},
		"W":     {"height_segments+", func(c *surface.Config, s Steps) { c.HeightSegments += s.Segments }},
		"S":     {"height_segments-", func(c *surface.Config, s Steps) { c.HeightSegments -= s.Segments }},
	}
}

// ResetKey restores the configuration the tuner started with.
const ResetKey = "R"

// Tuner holds the live plane configuration.
type Tuner struct {
	bus      *events.Bus
	log      *zap.Logger
	limits   surface.Limits
	steps    Steps
	bindings map[string]Action

	initial surface.Config
	current surface.Config

	sub *events.Subscription
}

// New creates a tuner starting from cfg, clamped to limits.
func New(cfg surface.Config, bus *events.Bus, log *zap.Logger) *Tuner {
	if log == nil {
		log = zap.NewNop()
	}
	limits := surface.DefaultLimits()
	cfg = limits.Clamp(cfg)
	return &Tuner{
		bus:      bus,
		log:      log,
		limits:   limits,
		steps:    DefaultSteps(),
		bindings: DefaultBindings(),
		initial:  cfg,
		current:  cfg,
	}
}

// Config returns the live configuration.
func (t *Tuner) Config() surface.Config {
	return t.current
}

// Attach starts listening for key presses.
func (t *Tuner) Attach() {
	t.sub = t.bus.Subscribe(events.KindKeyPressed, func(e events.Event) {
		t.Press(e.(events.KeyPressed).Key)
	})
}

// Detach stops listening. Safe to call when not attached.
func (t *Tuner) Detach() {
	if t.sub == nil {
		return
	}
	if err := t.sub.Unsubscribe(); err != nil {
		t.log.Debug("tuner already detached", zap.Error(err))
	}
	t.sub = nil
}

// Press applies the edit bound to key. It publishes a ConfigRequested event
// and returns true when the clamped configuration changed.
func (t *Tuner) Press(key string) bool {
	next := t.current
	if key == ResetKey {
		next = t.initial
	} else {
		action, ok := t.bindings[key]
		if !ok {
			return false
		}
		action.apply(&next, t.steps)
	}

	next = t.limits.Clamp(next)
	if next == t.current {
		return false
	}
	t.current = next

	t.log.Debug("surface tuned", zap.String("key", key), zap.String("config", Describe(next)))
	t.bus.Publish(events.ConfigRequested{Config: next})
	return true
}

// Describe formats a configuration for titles and logs.
func Describe(cfg surface.Config) string {
	return fmt.Sprintf("%gx%g, %dx%d segments", cfg.Width, cfg.Height, cfg.WidthSegments, cfg.HeightSegments)
}
