// Package hover highlights the triangles under the pointer and fades them
// back to the surface's baseline color.
package hover

import (
	"slices"

	"github.com/Faultbox/hoverplane/internal/engine/picking"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// State is the highlight state of one triangle.
type State int

const (
	// Idle means the triangle shows its baseline color.
	Idle State = iota
	// Highlighted means a hit covered the triangle this frame.
	Highlighted
	// Fading means the triangle is easing back to baseline.
	Fading
)

func (s State) String() string {
	switch s {
	case Highlighted:
		return "highlighted"
	case Fading:
		return "fading"
	default:
		return "idle"
	}
}

// DefaultColor is the highlight applied on hit.
var DefaultColor = surface.Color{R: 0.1, G: 0.5, B: 1.0}

// DefaultDuration is the fade length in seconds.
const DefaultDuration = 1.0

// Transition is the fade of one triangle's three vertices from Start to End.
type Transition struct {
	Triangle int
	Vertices [3]uint32
	Start    surface.Color
	End      surface.Color
	Elapsed  float32
	Duration float32
}

// Progress returns Elapsed/Duration clamped to [0, 1].
func (t *Transition) Progress() float32 {
	if t.Duration <= 0 {
		return 1
	}
	return clamp01(t.Elapsed / t.Duration)
}

// Done reports whether the transition has reached its end color.
func (t *Transition) Done() bool {
	return t.Progress() >= 1
}

// Animator owns every in-flight Transition and writes their colors into the
// mesh once per frame.
type Animator struct {
	Color    surface.Color
	Duration float32
	Easing   Easing

	transitions []*Transition
	byTriangle  map[int]*Transition
	hitNow      map[int]bool
}

// New creates an Animator. A nil easing means Linear.
func New(color surface.Color, duration float32, easing Easing) *Animator {
	if easing == nil {
		easing = Linear
	}
	return &Animator{
		Color:      color,
		Duration:   duration,
		Easing:     easing,
		byTriangle: make(map[int]*Transition),
		hitNow:     make(map[int]bool),
	}
}

// Step advances every transition by dt seconds, restarts the transitions of
// the hit triangles at full highlight, then writes the resulting colors.
// Finished transitions are written at exactly their end color and dropped.
func (a *Animator) Step(m *surface.Mesh, dt float32, hits []picking.Hit) {
	if dt < 0 {
		dt = 0
	}
	for _, tr := range a.transitions {
		tr.Elapsed += dt
	}

	clear(a.hitNow)
	for _, h := range hits {
		a.highlight(m, h)
	}

	if m == nil {
		return
	}

	// Oldest first so the freshest highlight wins on shared vertices.
	slices.SortStableFunc(a.transitions, func(x, y *Transition) int {
		switch {
		case x.Elapsed > y.Elapsed:
			return -1
		case x.Elapsed < y.Elapsed:
			return 1
		default:
			return 0
		}
	})

	n := uint32(m.VertexCount())
	kept := a.transitions[:0]
	for _, tr := range a.transitions {
		c := a.colorOf(tr)
		for _, v := range tr.Vertices {
			if v < n && m.Color(v) != c {
				m.SetColor(v, c)
			}
		}

		if tr.Done() {
			delete(a.byTriangle, tr.Triangle)
			continue
		}
		kept = append(kept, tr)
	}
	clear(a.transitions[len(kept):])
	a.transitions = kept
}

func (a *Animator) highlight(m *surface.Mesh, h picking.Hit) {
	end := surface.DefaultBaseline
	if m != nil {
		end = m.Baseline
	}

	tr, ok := a.byTriangle[h.Triangle]
	if !ok {
		tr = &Transition{Triangle: h.Triangle}
		a.byTriangle[h.Triangle] = tr
		a.transitions = append(a.transitions, tr)
	}
	tr.Vertices = h.Vertices
	tr.Start = a.Color
	tr.End = end
	tr.Duration = a.Duration
	tr.Elapsed = 0
	a.hitNow[h.Triangle] = true
}

func (a *Animator) colorOf(tr *Transition) surface.Color {
	if tr.Done() {
		return tr.End
	}
	return tr.Start.Lerp(tr.End, a.Easing(tr.Progress()))
}

// State returns the highlight state of a triangle.
func (a *Animator) State(triangle int) State {
	if a.hitNow[triangle] {
		return Highlighted
	}
	if _, ok := a.byTriangle[triangle]; ok {
		return Fading
	}
	return Idle
}

// Active returns the number of in-flight transitions.
func (a *Animator) Active() int {
	return len(a.transitions)
}

// Transition returns a copy of the transition for a triangle, if any.
func (a *Animator) Transition(triangle int) (Transition, bool) {
	tr, ok := a.byTriangle[triangle]
	if !ok {
		return Transition{}, false
	}
	return *tr, true
}

// Reset drops every in-flight transition without touching mesh colors.
func (a *Animator) Reset() {
	clear(a.transitions)
	a.transitions = a.transitions[:0]
	clear(a.byTriangle)
	clear(a.hitNow)
}
