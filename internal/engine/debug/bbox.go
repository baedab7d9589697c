// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/hoverplane/internal/surface"

// BoundsLineVertexCount is the number of line endpoints in a box wireframe
// (12 edges × 2).
const BoundsLineVertexCount = 24

// BoundsLines returns line-list vertices ([x, y, z] each) outlining b,
// expanded by padding on every side.
func BoundsLines(b surface.Bounds, padding float32) []float32 {
	x0, y0, z0 := b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding
	x1, y1, z1 := b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding

	corners := [8][3]float32{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0}, // back face
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}, // front face
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	out := make([]float32, 0, BoundsLineVertexCount*3)
	for _, e := range edges {
		out = append(out, corners[e[0]][:]...)
		out = append(out, corners[e[1]][:]...)
	}
	return out
}
