// Package input turns SDL2 events into bus events and paces the frame loop.
package input

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/events"
	"github.com/Faultbox/hoverplane/internal/frame"
)

// Input drains the SDL event queue once per frame. It implements
// frame.RefreshSource: WaitRefresh publishes pending events and returns, the
// actual refresh wait happens in the vsync'd buffer swap.
type Input struct {
	bus *events.Bus
	log *zap.Logger

	// Scale converts window coordinates to drawable pixels (high-DPI).
	Scale func() float32

	dragging bool
	quit     bool
}

// New creates an input pump publishing to bus.
func New(bus *events.Bus, log *zap.Logger) *Input {
	if log == nil {
		log = zap.NewNop()
	}
	return &Input{
		bus:   bus,
		log:   log,
		Scale: func() float32 { return 1 },
	}
}

// WaitRefresh publishes every pending SDL event. It returns
// frame.ErrSurfaceClosed once the window is closed or Escape is pressed.
func (i *Input) WaitRefresh(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		i.handle(event)
	}
	if i.quit {
		return time.Time{}, frame.ErrSurfaceClosed
	}
	return time.Now(), nil
}

func (i *Input) handle(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.quit = true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			s := i.Scale()
			i.bus.Publish(events.Resized{
				Width:  int(float32(e.Data1) * s),
				Height: int(float32(e.Data2) * s),
			})
		case sdl.WINDOWEVENT_LEAVE:
			i.bus.Publish(events.PointerLeft{})
		}

	case *sdl.KeyboardEvent:
		if e.Type != sdl.KEYDOWN {
			return
		}
		if e.Keysym.Sym == sdl.K_ESCAPE {
			i.quit = true
			return
		}
		i.bus.Publish(events.KeyPressed{Key: sdl.GetKeyName(e.Keysym.Sym)})

	case *sdl.MouseMotionEvent:
		s := i.Scale()
		i.bus.Publish(events.PointerMoved{X: float32(e.X) * s, Y: float32(e.Y) * s})
		if i.dragging {
			i.bus.Publish(events.Dragged{DX: float32(e.XRel), DY: float32(e.YRel)})
		}

	case *sdl.MouseButtonEvent:
		if e.Button == sdl.BUTTON_RIGHT {
			i.dragging = e.Type == sdl.MOUSEBUTTONDOWN
		}

	case *sdl.MouseWheelEvent:
		i.bus.Publish(events.Zoomed{Delta: float32(e.Y)})
	}
}
