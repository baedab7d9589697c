// Package picking turns pointer positions into world-space rays and tests
// them against the surface mesh.
package picking

import (
	"errors"
	gomath "math"

	"github.com/Faultbox/hoverplane/internal/surface"
	"github.com/Faultbox/hoverplane/pkg/math"
)

var (
	// ErrEmptyViewport is returned when the viewport has no area.
	ErrEmptyViewport = errors.New("picking: viewport has zero area")
	// ErrSingularProjection is returned when the view-projection matrix cannot
	// be inverted or unprojects to infinity.
	ErrSingularProjection = errors.New("picking: view-projection is not invertible")
)

// Pointer is a pointer position in normalized device coordinates, both axes
// in [-1, 1] with +Y up.
type Pointer struct {
	X, Y float32
}

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// FromBounds converts mesh bounds to an AABB.
func FromBounds(b surface.Bounds) AABB {
	return AABB{Min: b.Min, Max: b.Max}
}

// NormalizePointer converts pixel coordinates relative to the top-left of a
// width x height surface into normalized device coordinates.
func NormalizePointer(px, py float32, width, height int) (Pointer, error) {
	if width <= 0 || height <= 0 {
		return Pointer{}, ErrEmptyViewport
	}
	return Pointer{
		X: (px/float32(width))*2 - 1,
		Y: -(py/float32(height))*2 + 1,
	}, nil
}

// Project converts a pointer position to a world-space ray by unprojecting it
// on the near and far planes of viewProj.
func Project(p Pointer, viewProj math.Mat4) (Ray, error) {
	inv, ok := viewProj.Inverse()
	if !ok {
		return Ray{}, ErrSingularProjection
	}

	nearWorld := inv.MulVec4(math.Vec4{p.X, p.Y, -1.0, 1.0})
	farWorld := inv.MulVec4(math.Vec4{p.X, p.Y, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] == 0 || farWorld[3] == 0 {
		return Ray{}, ErrSingularProjection
	}
	near := math.Vec3{X: nearWorld[0] / nearWorld[3], Y: nearWorld[1] / nearWorld[3], Z: nearWorld[2] / nearWorld[3]}
	far := math.Vec3{X: farWorld[0] / farWorld[3], Y: farWorld[1] / farWorld[3], Z: farWorld[2] / farWorld[3]}

	dir := far.Sub(near).Normalize()
	if dir == (math.Vec3{}) || !finite(near) || !finite(dir) {
		return Ray{}, ErrSingularProjection
	}

	return Ray{Origin: near, Direction: dir}, nil
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Component(axis)
		d := r.Direction.Component(axis)
		lo := box.Min.Component(axis)
		hi := box.Max.Component(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

const (
	// triangleEpsilon rejects rays parallel to a triangle and zero-area triangles.
	triangleEpsilon = 1e-7
	// edgeTolerance keeps rays through shared edges and vertices from slipping
	// between neighbouring triangles.
	edgeTolerance = 1e-5
)

// IntersectTriangle tests the ray against triangle (a, b, c) using the
// Möller–Trumbore algorithm. Hits behind the origin are ignored. Degenerate
// triangles never intersect.
func (r Ray) IntersectTriangle(a, b, c math.Vec3) (t float32, hit bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)

	h := r.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}

	f := 1.0 / det
	s := r.Origin.Sub(a)
	u := f * s.Dot(h)
	if u < -edgeTolerance || u > 1+edgeTolerance {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < -edgeTolerance || u+v > 1+edgeTolerance {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t < 0 || gomath.IsNaN(float64(t)) {
		return 0, false
	}
	return t, true
}

func finite(v math.Vec3) bool {
	for i := 0; i < 3; i++ {
		c := float64(v.Component(i))
		if gomath.IsNaN(c) || gomath.IsInf(c, 0) {
			return false
		}
	}
	return true
}
