package picking

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hoverplane/pkg/math"
)

func frontCamera() math.Mat4 {
	proj := math.Perspective(float32(75*gomath.Pi/180), 16.0/9.0, 0.1, 1000)
	view := math.LookAt(math.Vec3{Z: 5}, math.Vec3{}, math.Vec3{Y: 1})
	return proj.Mul(view)
}

func TestNormalizePointer(t *testing.T) {
	tests := []struct {
		name   string
		px, py float32
		want   Pointer
	}{
		{"top-left", 0, 0, Pointer{-1, 1}},
		{"bottom-right", 800, 600, Pointer{1, -1}},
		{"center", 400, 300, Pointer{0, 0}},
		{"quarter", 200, 150, Pointer{-0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePointer(tt.px, tt.py, 800, 600)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizePointerEmptyViewport(t *testing.T) {
	_, err := NormalizePointer(10, 10, 0, 600)
	assert.ErrorIs(t, err, ErrEmptyViewport)
	_, err = NormalizePointer(10, 10, 800, -1)
	assert.ErrorIs(t, err, ErrEmptyViewport)
}

func TestProjectCenter(t *testing.T) {
	r, err := Project(Pointer{}, frontCamera())
	require.NoError(t, err)

	assert.InDelta(t, 0, r.Origin.X, 1e-4)
	assert.InDelta(t, 0, r.Origin.Y, 1e-4)
	assert.InDelta(t, 4.9, r.Origin.Z, 1e-3)

	assert.InDelta(t, 0, r.Direction.X, 1e-4)
	assert.InDelta(t, 0, r.Direction.Y, 1e-4)
	assert.InDelta(t, -1, r.Direction.Z, 1e-4)
}

func TestProjectOffCenterLeansOutward(t *testing.T) {
	r, err := Project(Pointer{X: 0.5, Y: -0.5}, frontCamera())
	require.NoError(t, err)

	assert.Greater(t, r.Direction.X, float32(0))
	assert.Less(t, r.Direction.Y, float32(0))
	assert.Less(t, r.Direction.Z, float32(0))
	assert.InDelta(t, 1, r.Direction.Length(), 1e-5)
}

func TestProjectSingular(t *testing.T) {
	_, err := Project(Pointer{}, math.Mat4{})
	assert.ErrorIs(t, err, ErrSingularProjection)
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		tWant float32
	}{
		{"straight in", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"from inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"parallel outside", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
		{"pointing away", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			assert.Equal(t, tt.hit, hit)
			if tt.hit {
				assert.InDelta(t, tt.tWant, got, 1e-5)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: -1, Y: -1}
	b := math.Vec3{X: 1, Y: -1}
	c := math.Vec3{Y: 1}
	down := math.Vec3{Z: -1}

	d, hit := Ray{Origin: math.Vec3{Z: 3}, Direction: down}.IntersectTriangle(a, b, c)
	require.True(t, hit)
	assert.InDelta(t, 3, d, 1e-6)

	// Winding does not matter for picking.
	_, hit = Ray{Origin: math.Vec3{Z: 3}, Direction: down}.IntersectTriangle(a, c, b)
	assert.True(t, hit)

	_, hit = Ray{Origin: math.Vec3{X: 5, Z: 3}, Direction: down}.IntersectTriangle(a, b, c)
	assert.False(t, hit, "outside the triangle")

	_, hit = Ray{Origin: math.Vec3{Z: -3}, Direction: down}.IntersectTriangle(a, b, c)
	assert.False(t, hit, "triangle behind the origin")

	_, hit = Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{X: 1}}.IntersectTriangle(a, b, c)
	assert.False(t, hit, "ray parallel to the triangle plane")
}

func TestIntersectDegenerateTriangle(t *testing.T) {
	r := Ray{Origin: math.Vec3{Z: 3}, Direction: math.Vec3{Z: -1}}
	p := math.Vec3{}

	_, hit := r.IntersectTriangle(p, p, p)
	assert.False(t, hit, "coincident vertices")

	_, hit = r.IntersectTriangle(math.Vec3{X: -1}, p, math.Vec3{X: 1})
	assert.False(t, hit, "collinear vertices")
}
