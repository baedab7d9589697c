// Package events delivers host signals (pointer, resize, config edits) to
// subscribers with explicit subscribe/unsubscribe pairing.
package events

import (
	"github.com/Faultbox/hoverplane/internal/surface"
)

// Kind identifies an event type.
type Kind int

const (
	// KindPointerMoved is published when the pointer moves over the surface.
	KindPointerMoved Kind = iota
	// KindResized is published when the drawable size changes.
	KindResized
	// KindConfigRequested asks for a new plane layout.
	KindConfigRequested
	// KindDragged is a right-button drag used to orbit the camera.
	KindDragged
	// KindZoomed is a scroll wheel step.
	KindZoomed
	// KindKeyPressed is a key going down.
	KindKeyPressed
	// KindPointerLeft is published when the pointer leaves the surface.
	KindPointerLeft
)

func (k Kind) String() string {
	switch k {
	case KindPointerMoved:
		return "pointer_moved"
	case KindResized:
		return "resized"
	case KindConfigRequested:
		return "config_requested"
	case KindDragged:
		return "dragged"
	case KindZoomed:
		return "zoomed"
	case KindKeyPressed:
		return "key_pressed"
	case KindPointerLeft:
		return "pointer_left"
	default:
		return "unknown"
	}
}

// Event is anything published on a Bus.
type Event interface {
	Kind() Kind
}

// PointerMoved carries pixel coordinates relative to the surface's top-left.
type PointerMoved struct {
	X, Y float32
}

// PointerLeft reports that the pointer is no longer over the surface.
type PointerLeft struct{}

// Resized carries the new surface size in pixels.
type Resized struct {
	Width, Height int
}

// ConfigRequested asks for the surface to be regenerated with Config.
type ConfigRequested struct {
	Config surface.Config
}

// Dragged carries a pointer drag delta in pixels.
type Dragged struct {
	DX, DY float32
}

// Zoomed carries a scroll wheel delta.
type Zoomed struct {
	Delta float32
}

// KeyPressed carries a host-independent key name such as "w" or "left".
type KeyPressed struct {
	Key string
}

func (PointerMoved) Kind() Kind    { return KindPointerMoved }
func (PointerLeft) Kind() Kind     { return KindPointerLeft }
func (Resized) Kind() Kind         { return KindResized }
func (ConfigRequested) Kind() Kind { return KindConfigRequested }
func (Dragged) Kind() Kind         { return KindDragged }
func (Zoomed) Kind() Kind          { return KindZoomed }
func (KeyPressed) Kind() Kind      { return KindKeyPressed }
