package picking

import (
	"slices"

	"github.com/Faultbox/hoverplane/internal/surface"
)

// Hit records a ray crossing one triangle of the mesh.
type Hit struct {
	Triangle int
	Vertices [3]uint32
	Distance float32
}

// Test returns the nearest triangle the ray crosses, using the mesh's current
// positions. ok is false when nothing is hit.
func Test(r Ray, m *surface.Mesh) (hit Hit, ok bool) {
	if !r.mayHit(m) {
		return Hit{}, false
	}

	for tri := 0; tri < m.TriangleCount(); tri++ {
		idx := m.Triangle(tri)
		t, crossed := r.IntersectTriangle(m.Position(idx[0]), m.Position(idx[1]), m.Position(idx[2]))
		if !crossed {
			continue
		}
		if !ok || t < hit.Distance {
			hit = Hit{Triangle: tri, Vertices: idx, Distance: t}
			ok = true
		}
	}
	return hit, ok
}

// TestAll returns every triangle the ray crosses, nearest first.
func TestAll(r Ray, m *surface.Mesh) []Hit {
	if !r.mayHit(m) {
		return nil
	}

	var hits []Hit
	for tri := 0; tri < m.TriangleCount(); tri++ {
		idx := m.Triangle(tri)
		if t, crossed := r.IntersectTriangle(m.Position(idx[0]), m.Position(idx[1]), m.Position(idx[2])); crossed {
			hits = append(hits, Hit{Triangle: tri, Vertices: idx, Distance: t})
		}
	}

	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})
	return hits
}

// mayHit rejects empty meshes and rays that miss the bounding box. The box is
// not padded: edgeTolerance may widen a triangle, never the mesh.
func (r Ray) mayHit(m *surface.Mesh) bool {
	if m == nil || m.TriangleCount() == 0 {
		return false
	}
	_, hit := r.IntersectAABB(FromBounds(m.Bounds))
	return hit
}
