// Package idle applies the ambient oscillation that keeps the plane moving
// while nothing else happens.
package idle

import (
	gomath "math"

	"github.com/Faultbox/hoverplane/internal/surface"
)

// Axes selects which position components oscillate.
type Axes int

const (
	// AxesInPlane moves x and y only; z keeps its generation-time jitter.
	AxesInPlane Axes = iota
	// AxesWithDepth also moves z.
	AxesWithDepth
)

// String returns the config name of the policy.
func (a Axes) String() string {
	switch a {
	case AxesWithDepth:
		return "with-depth"
	default:
		return "in-plane"
	}
}

// ParseAxes maps a config name to an Axes value. Unknown names fall back to
// AxesInPlane and report ok=false.
func ParseAxes(name string) (Axes, bool) {
	switch name {
	case "in-plane", "":
		return AxesInPlane, true
	case "with-depth":
		return AxesWithDepth, true
	default:
		return AxesInPlane, false
	}
}

const (
	// DefaultAmplitude is the oscillation radius in scene units.
	DefaultAmplitude = 0.01
	// DefaultSpeed is the angular speed in radians per second.
	DefaultSpeed = 0.6
)

// Animator displaces vertices around their original positions.
type Animator struct {
	Amplitude float32
	Speed     float32
	Axes      Axes
}

// New returns an Animator with the default amplitude and speed.
func New(axes Axes) *Animator {
	return &Animator{
		Amplitude: DefaultAmplitude,
		Speed:     DefaultSpeed,
		Axes:      axes,
	}
}

// Step writes positions for the given elapsed time in seconds. Each vertex
// traces a circle of radius Amplitude that passes through its original
// position at elapsed=0, so the result depends only on elapsed and the
// generation-time data, never on previous calls.
func (a *Animator) Step(m *surface.Mesh, elapsed float64) {
	if m == nil {
		return
	}

	amp := float64(a.Amplitude)
	base := elapsed * float64(a.Speed)
	withDepth := a.Axes == AxesWithDepth

	for i, phase := range m.Phases {
		p := float64(phase)
		theta := base + p

		dc := (gomath.Cos(theta) - gomath.Cos(p)) * amp
		ds := (gomath.Sin(theta) - gomath.Sin(p)) * amp

		j := i * 3
		m.Positions[j] = m.Original[j] + float32(dc)
		m.Positions[j+1] = m.Original[j+1] + float32(ds)
		if withDepth {
			m.Positions[j+2] = m.Original[j+2] + float32(dc)
		} else {
			m.Positions[j+2] = m.Original[j+2]
		}
	}

	m.RecomputeBounds()
	m.PositionsDirty = true
}
