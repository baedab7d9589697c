// Package viewer wires the desktop host (window, GL renderer, input) to the
// frame scheduler.
package viewer

import (
	"context"
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/config"
	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/input"
	"github.com/Faultbox/hoverplane/internal/engine/renderer"
	"github.com/Faultbox/hoverplane/internal/engine/window"
	"github.com/Faultbox/hoverplane/internal/events"
	"github.com/Faultbox/hoverplane/internal/frame"
	"github.com/Faultbox/hoverplane/internal/logger"
	"github.com/Faultbox/hoverplane/internal/surface"
	"github.com/Faultbox/hoverplane/internal/tuning"
)

// Debug keys, by SDL key name.
const (
	BoundsKey     = "B"
	ScreenshotKey = "F12"
)

// Viewer is one interactive session.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	bus       *events.Bus
	camera    *camera.Perspective
	orbit     *camera.OrbitController
	tuner     *tuning.Tuner
	scheduler *frame.Scheduler

	subs []*events.Subscription
}

// New opens the window and builds the pipeline. Errors from the window wrap
// window.ErrDeviceUnavailable.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{cfg: cfg, log: logger.Named("viewer")}

	v.log.Info("initializing viewer",
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("surface", tuning.Describe(cfg.Surface.Config)),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      title(cfg.Window.Title, cfg.Surface.Config),
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created.
	v.renderer, err = renderer.New(v.window, cfg.Window.ScreenshotDir, logger.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("%w: failed to create renderer: %w", window.ErrDeviceUnavailable, err)
	}

	v.bus = events.NewBus(logger.Named("events"))
	v.input = input.New(v.bus, logger.Named("input"))
	v.input.Scale = v.window.PointerScale

	w, h := v.window.Size()
	v.camera = camera.NewPerspective(float32(w) / float32(max(h, 1)))
	v.camera.FovY = cfg.Camera.FovDegrees * gomath.Pi / 180
	v.camera.Near = cfg.Camera.Near
	v.camera.Far = cfg.Camera.Far

	v.orbit = camera.NewOrbitController()
	v.orbit.Distance = cfg.Camera.Distance
	v.orbit.Apply(v.camera)

	v.tuner = tuning.New(cfg.Surface.Config, v.bus, logger.Named("tuning"))

	generator := surface.NewGenerator(cfg.SurfaceOptions(), v.renderer, logger.Named("surface"))
	v.scheduler, err = frame.New(frame.Options{
		Display:   v.renderer,
		Camera:    v.camera,
		Generator: generator,
		Idle:      cfg.IdleAnimator(),
		Hover:     cfg.HoverAnimator(),
		Policy:    cfg.FramePolicy(),
		Surface:   v.tuner.Config(),
		Logger:    logger.Named("frame"),
	})
	if err != nil {
		v.Close()
		return nil, err
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run drives the frame loop until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.scheduler.Attach(v.bus)
	v.tuner.Attach()
	v.subs = append(v.subs,
		v.bus.Subscribe(events.KindDragged, func(e events.Event) {
			d := e.(events.Dragged)
			v.orbit.HandleDrag(d.DX, d.DY)
			v.orbit.Apply(v.camera)
		}),
		v.bus.Subscribe(events.KindZoomed, func(e events.Event) {
			v.orbit.HandleZoom(e.(events.Zoomed).Delta)
			v.orbit.Apply(v.camera)
		}),
		v.bus.Subscribe(events.KindKeyPressed, func(e events.Event) {
			switch e.(events.KeyPressed).Key {
			case BoundsKey:
				v.renderer.ShowBounds = !v.renderer.ShowBounds
			case ScreenshotKey:
				v.renderer.RequestScreenshot()
			}
		}),
		v.bus.Subscribe(events.KindConfigRequested, func(e events.Event) {
			cfg := e.(events.ConfigRequested).Config
			v.window.SetTitle(title(v.cfg.Window.Title, cfg))
		}),
	)
	defer v.detach()

	v.log.Info("starting frame loop")
	err := v.scheduler.Run(ctx, v.input)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

func (v *Viewer) detach() {
	v.tuner.Detach()
	for _, sub := range v.subs {
		if err := sub.Unsubscribe(); err != nil {
			v.log.Warn("unsubscribe failed", zap.Error(err))
		}
	}
	v.subs = nil
}

// SurfaceConfig returns the plane configuration as last tuned.
func (v *Viewer) SurfaceConfig() surface.Config {
	return v.tuner.Config()
}

// Stats returns the frame counters.
func (v *Viewer) Stats() frame.Stats {
	return v.scheduler.Stats()
}

// Close releases GPU buffers before the context goes away, then the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.scheduler != nil {
		v.scheduler.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func title(base string, cfg surface.Config) string {
	return fmt.Sprintf("%s [%s]", base, tuning.Describe(cfg))
}
