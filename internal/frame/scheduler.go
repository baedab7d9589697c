// Package frame runs the per-tick pipeline: pointer projection, hit testing,
// hover color easing, idle displacement and presentation.
package frame

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/picking"
	"github.com/Faultbox/hoverplane/internal/events"
	"github.com/Faultbox/hoverplane/internal/hover"
	"github.com/Faultbox/hoverplane/internal/idle"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// ErrSurfaceClosed is returned by a RefreshSource once the host surface is gone.
var ErrSurfaceClosed = errors.New("frame: surface closed")

// MaxFrameDelta caps the time step after a stall so animations do not jump.
const MaxFrameDelta = 250 * time.Millisecond

// Display is the host drawing surface.
type Display interface {
	Size() (width, height int)
	Present(m *surface.Mesh, view camera.View) error
}

// RefreshSource blocks until the next display refresh.
type RefreshSource interface {
	WaitRefresh(ctx context.Context) (time.Time, error)
}

// Stats counts what the scheduler did since it started.
type Stats struct {
	Ticks         uint64
	Hits          uint64
	Regenerations uint64
	StageFailures uint64
}

// Options wires a Scheduler. Display, Camera and Generator are required.
type Options struct {
	Display   Display
	Camera    *camera.Perspective
	Generator *surface.Generator
	Idle      *idle.Animator
	Hover     *hover.Animator
	Policy    Policy
	Surface   surface.Config
	Logger    *zap.Logger
}

// mailbox is written by host callbacks and drained at the tick boundary.
type mailbox struct {
	mu sync.Mutex

	pointer    picking.Pointer
	hasPointer bool

	width, height int
	resized       bool

	pending *surface.Config
}

// Scheduler owns the per-session state of the frame loop. Only Tick touches
// the mesh; host callbacks write the mailbox.
type Scheduler struct {
	display   Display
	camera    *camera.Perspective
	generator *surface.Generator
	idle      *idle.Animator
	hover     *hover.Animator
	policy    Policy
	log       *zap.Logger

	box mailbox

	elapsed  time.Duration
	statTime time.Duration
	statTick uint64
	stats    Stats

	subs   []*events.Subscription
	closed bool
}

// New creates a Scheduler and queues generation of the initial surface for
// the first tick.
func New(opts Options) (*Scheduler, error) {
	if opts.Display == nil || opts.Camera == nil || opts.Generator == nil {
		return nil, errors.New("frame: display, camera and generator are required")
	}
	if err := opts.Surface.Validate(); err != nil {
		return nil, fmt.Errorf("initial surface: %w", err)
	}

	s := &Scheduler{
		display:   opts.Display,
		camera:    opts.Camera,
		generator: opts.Generator,
		idle:      opts.Idle,
		hover:     opts.Hover,
		policy:    opts.Policy,
		log:       opts.Logger,
	}
	if s.idle == nil {
		s.idle = idle.New(opts.Policy.Axes)
	}
	if s.hover == nil {
		s.hover = hover.New(hover.DefaultColor, hover.DefaultDuration, hover.Linear)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}

	cfg := opts.Surface
	s.box.pending = &cfg
	s.box.width, s.box.height = opts.Display.Size()
	s.box.resized = true

	return s, nil
}

// Attach subscribes the scheduler to host events on bus. Subscriptions are
// released by Close.
func (s *Scheduler) Attach(bus *events.Bus) {
	s.subs = append(s.subs,
		bus.Subscribe(events.KindPointerMoved, func(e events.Event) {
			p := e.(events.PointerMoved)
			s.MovePointer(p.X, p.Y)
		}),
		bus.Subscribe(events.KindPointerLeft, func(events.Event) {
			s.ClearPointer()
		}),
		bus.Subscribe(events.KindResized, func(e events.Event) {
			r := e.(events.Resized)
			s.Resize(r.Width, r.Height)
		}),
		bus.Subscribe(events.KindConfigRequested, func(e events.Event) {
			c := e.(events.ConfigRequested)
			if err := s.RequestConfig(c.Config); err != nil {
				s.log.Warn("config request rejected", zap.Error(err))
			}
		}),
	)
}

// MovePointer records a pointer position in surface pixels.
func (s *Scheduler) MovePointer(px, py float32) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()

	p, err := picking.NormalizePointer(px, py, s.box.width, s.box.height)
	if err != nil {
		s.log.Debug("pointer ignored", zap.Error(err))
		return
	}
	s.box.pointer = p
	s.box.hasPointer = true
}

// SetPointer records a pointer position already in normalized device coordinates.
func (s *Scheduler) SetPointer(p picking.Pointer) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	s.box.pointer = p
	s.box.hasPointer = true
}

// ClearPointer forgets the pointer. Attach calls it on PointerLeft.
func (s *Scheduler) ClearPointer() {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	s.box.hasPointer = false
}

// Resize records a new surface size; the camera picks it up next tick.
func (s *Scheduler) Resize(width, height int) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	s.box.width, s.box.height = width, height
	s.box.resized = true
}

// RequestConfig validates cfg and queues regeneration for the next tick. The
// last valid request before a tick wins.
func (s *Scheduler) RequestConfig(cfg surface.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	s.box.pending = &cfg
	return nil
}

// Mesh returns the mesh currently on display. It must not be mutated outside Tick.
func (s *Scheduler) Mesh() *surface.Mesh {
	return s.generator.Current()
}

// Hover exposes the hover animator for inspection.
func (s *Scheduler) Hover() *hover.Animator {
	return s.hover
}

// Elapsed returns the animation clock.
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// Stats returns the counters so far.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Tick runs one frame: apply queued changes, (1) read pointer, (2) project,
// (3) hit test, (4) hover step, (5) idle step, (6) present.
func (s *Scheduler) Tick(dt time.Duration) {
	if s.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}

	pointer, hasPointer := s.drain()
	mesh := s.generator.Current()

	var hits []picking.Hit
	if hasPointer && mesh != nil {
		s.guard("pick", func() error {
			ray, err := picking.Project(pointer, s.camera.ViewProjection())
			if err != nil {
				return err
			}
			hits = s.test(ray, mesh)
			return nil
		})
	}
	s.stats.Hits += uint64(len(hits))

	s.guard("hover", func() error {
		s.hover.Step(mesh, float32(dt.Seconds()), hits)
		return nil
	})

	s.elapsed += dt
	s.guard("idle", func() error {
		s.idle.Step(mesh, s.elapsed.Seconds())
		return nil
	})

	s.guard("present", func() error {
		return s.display.Present(mesh, s.camera)
	})

	s.stats.Ticks++
	s.logRate(dt)
}

// Run ticks once per refresh until the surface closes or ctx is done, then
// releases everything the scheduler owns.
func (s *Scheduler) Run(ctx context.Context, refresh RefreshSource) error {
	defer s.Close()

	s.log.Info("frame loop started")
	var last time.Time
	for {
		now, err := refresh.WaitRefresh(ctx)
		if err != nil {
			if errors.Is(err, ErrSurfaceClosed) || errors.Is(err, context.Canceled) {
				s.log.Info("frame loop stopped", zap.Uint64("ticks", s.stats.Ticks))
				return nil
			}
			return fmt.Errorf("waiting for refresh: %w", err)
		}

		var dt time.Duration
		if !last.IsZero() {
			dt = min(max(now.Sub(last), 0), MaxFrameDelta)
		}
		last = now

		s.Tick(dt)
	}
}

// Close unsubscribes from the bus, drops in-flight transitions and releases
// the mesh buffers. Safe to call more than once.
func (s *Scheduler) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, sub := range s.subs {
		if err := sub.Unsubscribe(); err != nil {
			s.log.Warn("unsubscribe failed", zap.String("id", sub.ID()), zap.Error(err))
		}
	}
	s.subs = nil

	s.hover.Reset()
	s.generator.Close()
	s.log.Debug("frame scheduler closed")
}

// drain applies queued viewport and config changes and returns the pointer.
func (s *Scheduler) drain() (picking.Pointer, bool) {
	s.box.mu.Lock()
	pointer, hasPointer := s.box.pointer, s.box.hasPointer
	width, height, resized := s.box.width, s.box.height, s.box.resized
	pending := s.box.pending
	s.box.resized = false
	s.box.pending = nil
	s.box.mu.Unlock()

	if resized {
		s.camera.SetViewport(width, height)
	}

	if pending != nil {
		err := s.generator.Regenerate(*pending)
		switch {
		case errors.Is(err, surface.ErrInvalidConfig):
			s.log.Warn("surface config rejected", zap.Error(err))
		default:
			// Old transitions index the old mesh.
			s.hover.Reset()
			s.stats.Regenerations++
			if err != nil {
				s.stageFailed("regenerate", err)
			}
		}
	}

	return pointer, hasPointer
}

func (s *Scheduler) test(ray picking.Ray, mesh *surface.Mesh) []picking.Hit {
	if s.policy.Hits == HitsAll {
		return picking.TestAll(ray, mesh)
	}
	if hit, ok := picking.Test(ray, mesh); ok {
		return []picking.Hit{hit}
	}
	return nil
}

// guard runs one stage, logging errors and panics so a bad frame never stops
// the loop.
func (s *Scheduler) guard(stage string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.stageFailed(stage, fmt.Errorf("panic: %v", r))
		}
	}()
	if err := fn(); err != nil {
		s.stageFailed(stage, err)
	}
}

func (s *Scheduler) stageFailed(stage string, err error) {
	s.stats.StageFailures++
	s.log.Warn("frame stage failed", zap.String("stage", stage), zap.Error(err))
}

// logRate logs ticks per second at debug level.
func (s *Scheduler) logRate(dt time.Duration) {
	s.statTime += dt
	s.statTick++
	if s.statTime < time.Second {
		return
	}
	s.log.Debug("fps",
		zap.Uint64("count", s.statTick),
		zap.Duration("dt", dt),
		zap.Int("transitions", s.hover.Active()),
	)
	s.statTime = 0
	s.statTick = 0
}
