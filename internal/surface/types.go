// Package surface builds and owns the tessellated plane that the frame loop
// animates, hit-tests and renders.
package surface

import (
	"github.com/Faultbox/hoverplane/pkg/math"
)

// Color is a linear RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// Lerp interpolates from c to other by t.
func (c Color) Lerp(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// Config describes the plane dimensions. Every field must be positive.
type Config struct {
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

// VertexCount returns the number of grid vertices the config produces.
func (c Config) VertexCount() int {
	return (c.WidthSegments + 1) * (c.HeightSegments + 1)
}

// TriangleCount returns the number of triangles the config produces.
func (c Config) TriangleCount() int {
	return 2 * c.WidthSegments * c.HeightSegments
}

// Bounds holds the axis-aligned bounding box of the current positions.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Buffers is the device-side storage backing a Mesh. Release must free every
// handle it owns.
type Buffers interface {
	Release()
}

// Allocator creates device buffers for a freshly generated Mesh.
type Allocator interface {
	Allocate(m *Mesh) (Buffers, error)
}

// Mesh holds the plane geometry in flat, upload-ready arrays.
type Mesh struct {
	Config Config

	Positions []float32 // x,y,z per vertex, animated in place
	Original  []float32 // x,y,z per vertex at generation time, never mutated
	Colors    []float32 // r,g,b per vertex
	Phases    []float32 // one oscillation phase per vertex, [0, 2π)
	Indices   []uint32  // three per triangle

	Baseline Color
	Bounds   Bounds

	// Set by the animators, cleared by the renderer after upload.
	PositionsDirty bool
	ColorsDirty    bool

	Buffers Buffers
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Position returns the current position of vertex i.
func (m *Mesh) Position(i uint32) math.Vec3 {
	p := m.Positions[i*3 : i*3+3]
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Triangle returns the vertex indices of triangle t.
func (m *Mesh) Triangle(t int) [3]uint32 {
	return [3]uint32{m.Indices[t*3], m.Indices[t*3+1], m.Indices[t*3+2]}
}

// Color returns the current color of vertex i.
func (m *Mesh) Color(i uint32) Color {
	c := m.Colors[i*3 : i*3+3]
	return Color{R: c[0], G: c[1], B: c[2]}
}

// SetColor writes the color of vertex i and marks the color buffer dirty.
func (m *Mesh) SetColor(i uint32, c Color) {
	m.Colors[i*3] = c.R
	m.Colors[i*3+1] = c.G
	m.Colors[i*3+2] = c.B
	m.ColorsDirty = true
}

// RecomputeBounds refreshes Bounds from the current positions.
func (m *Mesh) RecomputeBounds() {
	if len(m.Positions) < 3 {
		m.Bounds = Bounds{}
		return
	}

	b := Bounds{
		Min: math.Vec3{X: m.Positions[0], Y: m.Positions[1], Z: m.Positions[2]},
		Max: math.Vec3{X: m.Positions[0], Y: m.Positions[1], Z: m.Positions[2]},
	}
	for i := 3; i < len(m.Positions); i += 3 {
		x, y, z := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		b.Min.X = min(b.Min.X, x)
		b.Min.Y = min(b.Min.Y, y)
		b.Min.Z = min(b.Min.Z, z)
		b.Max.X = max(b.Max.X, x)
		b.Max.Y = max(b.Max.Y, y)
		b.Max.Z = max(b.Max.Z, z)
	}
	m.Bounds = b
}

// Release frees the device buffers, if any. Safe to call more than once.
func (m *Mesh) Release() {
	if m == nil || m.Buffers == nil {
		return
	}
	m.Buffers.Release()
	m.Buffers = nil
}
