// Package camera provides the perspective camera the frame loop reads and the
// orbit controller that moves it.
package camera

import (
	gomath "math"

	"github.com/Faultbox/hoverplane/pkg/math"
)

// View is the read-only camera state consumed by picking and rendering.
type View interface {
	ViewProjection() math.Mat4
	Position() math.Vec3
}

// Defaults match a 75° perspective camera five units in front of the plane.
const (
	DefaultFovDegrees = 75.0
	DefaultNear       = 0.1
	DefaultFar        = 1000.0
	DefaultDistance   = 5.0
)

// Perspective is a look-at camera with a perspective projection.
type Perspective struct {
	FovY   float32 // Vertical field of view, radians
	Aspect float32 // width / height
	Near   float32
	Far    float32

	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
}

// NewPerspective creates a camera at (0, 0, DefaultDistance) looking at the origin.
func NewPerspective(aspect float32) *Perspective {
	if aspect <= 0 {
		aspect = 1
	}
	return &Perspective{
		FovY:   float32(DefaultFovDegrees * gomath.Pi / 180),
		Aspect: aspect,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Eye:    math.Vec3{Z: DefaultDistance},
		Up:     math.Vec3{Y: 1},
	}
}

// SetViewport updates the aspect ratio. Empty viewports are ignored.
func (c *Perspective) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Position returns the camera position in world space.
func (c *Perspective) Position() math.Vec3 {
	return c.Eye
}

// ViewMatrix returns the view matrix for this camera.
func (c *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() math.Mat4 {
	return math.Perspective(c.FovY, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Perspective) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// OrbitController orbits a Perspective camera around a center point.
type OrbitController struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitController creates a controller that starts on the +Z axis.
func NewOrbitController() *OrbitController {
	return &OrbitController{
		Distance:        DefaultDistance,
		MinDistance:     1.0,
		MaxDistance:     500.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the orbit position in world space.
func (c *OrbitController) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))

	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// HandleDrag updates rotation based on pointer drag delta in pixels.
func (c *OrbitController) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity
	c.Pitch = clamp(c.Pitch, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitController) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Apply writes the orbit position and target into cam.
func (c *OrbitController) Apply(cam *Perspective) {
	cam.Eye = c.Position()
	cam.Target = c.Center
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
