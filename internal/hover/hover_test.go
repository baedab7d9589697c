package hover

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hoverplane/internal/engine/picking"
	"github.com/Faultbox/hoverplane/internal/surface"
)

var baseline = surface.DefaultBaseline

func newMesh(t *testing.T) *surface.Mesh {
	t.Helper()
	opts := surface.DefaultOptions()
	opts.Rand = rand.New(rand.NewPCG(9, 9))
	m, err := surface.Generate(surface.Config{Width: 4, Height: 4, WidthSegments: 2, HeightSegments: 2}, opts)
	require.NoError(t, err)
	m.ColorsDirty = false
	return m
}

func hitOn(m *surface.Mesh, tri int) picking.Hit {
	return picking.Hit{Triangle: tri, Vertices: m.Triangle(tri), Distance: 1}
}

func assertTriangleColor(t *testing.T, m *surface.Mesh, tri int, want surface.Color, delta float64) {
	t.Helper()
	for _, v := range m.Triangle(tri) {
		got := m.Color(v)
		assert.InDelta(t, want.R, got.R, delta, "vertex %d R", v)
		assert.InDelta(t, want.G, got.G, delta, "vertex %d G", v)
		assert.InDelta(t, want.B, got.B, delta, "vertex %d B", v)
	}
}

func TestHitAppliesHoverColorImmediately(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, DefaultDuration, Linear)

	a.Step(m, 0, []picking.Hit{hitOn(m, 3)})
	for _, v := range m.Triangle(3) {
		assert.Equal(t, DefaultColor, m.Color(v))
	}
	assert.True(t, m.ColorsDirty)
	assert.Equal(t, Highlighted, a.State(3))

	// Advancing by zero keeps the exact hover color.
	a.Step(m, 0, nil)
	for _, v := range m.Triangle(3) {
		assert.Equal(t, DefaultColor, m.Color(v))
	}
	assert.Equal(t, Fading, a.State(3))
}

func TestFadeMidpoint(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	a.Step(m, 0, []picking.Hit{hitOn(m, 0)})
	a.Step(m, 0.5, nil)

	assertTriangleColor(t, m, 0, DefaultColor.Lerp(baseline, 0.5), 1e-6)
}

func TestFadeEndsExactlyAtBaseline(t *testing.T) {
	for _, dt := range []float32{1.0, 1.5, 30} {
		m := newMesh(t)
		a := New(DefaultColor, 1.0, EaseInOutCubic)

		a.Step(m, 0, []picking.Hit{hitOn(m, 2)})
		a.Step(m, dt, nil)

		for _, v := range m.Triangle(2) {
			assert.Equal(t, baseline, m.Color(v), "dt=%v", dt)
		}
		assert.Equal(t, Idle, a.State(2))
		assert.Equal(t, 0, a.Active())
	}
}

func TestFadeInSmallSteps(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)
	a.Step(m, 0, []picking.Hit{hitOn(m, 1)})

	v := m.Triangle(1)[0]
	prev := m.Color(v)
	for i := 0; i < 70; i++ {
		a.Step(m, 1.0/60, nil)
		cur := m.Color(v)
		// Baseline B (0.4) is below hover B (1.0): the fade only goes down.
		assert.LessOrEqual(t, cur.B, prev.B)
		assert.GreaterOrEqual(t, cur.B, baseline.B)
		prev = cur
	}
	assert.Equal(t, baseline, m.Color(v))
}

func TestRehitMidFadeRestarts(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	a.Step(m, 0, []picking.Hit{hitOn(m, 5)})
	a.Step(m, 0.6, nil)
	tr, ok := a.Transition(5)
	require.True(t, ok)
	assert.InDelta(t, 0.6, tr.Elapsed, 1e-6)

	a.Step(m, 0.1, []picking.Hit{hitOn(m, 5)})
	tr, ok = a.Transition(5)
	require.True(t, ok)
	assert.Equal(t, float32(0), tr.Elapsed)
	assert.Equal(t, 1, a.Active(), "no queued duplicate")
	assertTriangleColor(t, m, 5, DefaultColor, 0)
}

func TestContinuousHoverStaysHighlighted(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	for i := 0; i < 120; i++ {
		a.Step(m, 1.0/60, []picking.Hit{hitOn(m, 4)})
	}
	assertTriangleColor(t, m, 4, DefaultColor, 0)
	assert.Equal(t, Highlighted, a.State(4))
}

func TestIndependentTriangles(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	// Triangles 0 and 7 share no vertices in a 2x2 grid.
	a.Step(m, 0, []picking.Hit{hitOn(m, 0)})
	a.Step(m, 0.5, []picking.Hit{hitOn(m, 7)})

	assert.Equal(t, Fading, a.State(0))
	assert.Equal(t, Highlighted, a.State(7))
	assertTriangleColor(t, m, 0, DefaultColor.Lerp(baseline, 0.5), 1e-6)
	assertTriangleColor(t, m, 7, DefaultColor, 0)
	assert.Equal(t, 2, a.Active())
}

func TestFreshestHighlightWinsSharedVertices(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	// Triangles 0 and 1 form one grid cell and share two vertices.
	a.Step(m, 0, []picking.Hit{hitOn(m, 1)})
	a.Step(m, 0.5, []picking.Hit{hitOn(m, 0)})

	assertTriangleColor(t, m, 0, DefaultColor, 0)
}

func TestIdleTriangleUntouched(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	a.Step(m, 0.3, nil)
	assert.False(t, m.ColorsDirty)
	assert.Equal(t, Idle, a.State(0))
}

func TestReset(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)
	a.Step(m, 0, []picking.Hit{hitOn(m, 0), hitOn(m, 6)})
	require.Equal(t, 2, a.Active())

	a.Reset()
	assert.Equal(t, 0, a.Active())
	assert.Equal(t, Idle, a.State(0))
	assert.Equal(t, Idle, a.State(6))
}

func TestStaleVerticesIgnored(t *testing.T) {
	m := newMesh(t)
	a := New(DefaultColor, 1.0, Linear)

	a.Step(m, 0, []picking.Hit{{Triangle: 99, Vertices: [3]uint32{0, 1, 5000}}})
	assert.Equal(t, DefaultColor, m.Color(0))
}

func TestEasingsAreMonotonicAndPinned(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := ParseEasing(name)
		require.NoError(t, err)

		assert.Equal(t, float32(0), e(0), name)
		assert.Equal(t, float32(1), e(1), name)

		prev := float32(0)
		for i := 1; i <= 100; i++ {
			v := e(float32(i) / 100)
			assert.GreaterOrEqual(t, v, prev, "%s at %d", name, i)
			assert.LessOrEqual(t, v, float32(1), name)
			prev = v
		}
	}
}

func TestParseEasing(t *testing.T) {
	e, err := ParseEasing("")
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), e(0.25))

	_, err = ParseEasing("bounce")
	assert.Error(t, err)
}
