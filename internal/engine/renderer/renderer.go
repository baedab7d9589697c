// Package renderer draws the plane mesh with OpenGL and owns its GPU buffers.
package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/hoverplane/internal/engine/camera"
	"github.com/Faultbox/hoverplane/internal/engine/debug"
	"github.com/Faultbox/hoverplane/internal/engine/shader"
	"github.com/Faultbox/hoverplane/internal/surface"
)

// Target is the surface frames are drawn to.
type Target interface {
	Size() (width, height int)
	SwapBuffers()
}

// Renderer draws a surface.Mesh. It implements frame.Display and
// surface.Allocator.
type Renderer struct {
	target Target
	log    *zap.Logger

	program *shader.Program
	locMVP  int32

	width, height int

	// ShowBounds draws the mesh bounds used by the hit test broad phase.
	ShowBounds bool
	boundsVAO  uint32
	boundsVBO  uint32

	screenshots *debug.Screenshots
	capture     bool
}

// New creates a renderer. Must be called after the OpenGL context exists.
// Screenshots are written to shotDir.
func New(target Target, shotDir string, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		target:      target,
		log:         log,
		screenshots: debug.NewScreenshots(shotDir, "hoverplane"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0, 0, 0, 1)

	program, err := shader.Compile(shader.PlaneVertex, shader.PlaneFragment)
	if err != nil {
		return nil, fmt.Errorf("plane shader: %w", err)
	}
	r.program = program

	r.locMVP, err = program.Uniform("uMVP")
	if err != nil {
		program.Delete()
		return nil, err
	}

	r.createBoundsLines()
	return r, nil
}

func (r *Renderer) createBoundsLines() {
	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)

	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BoundsLineVertexCount*3*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(shader.PositionLocation, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(shader.PositionLocation)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// RequestScreenshot saves the next presented frame as a PNG.
func (r *Renderer) RequestScreenshot() {
	r.capture = true
}

// Close frees the shader program. Mesh buffers are released by their owner.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.boundsVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boundsVAO)
	}
	if r.boundsVBO != 0 {
		gl.DeleteBuffers(1, &r.boundsVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Size returns the drawable size of the target.
func (r *Renderer) Size() (int, int) {
	return r.target.Size()
}

// Present uploads whatever changed in m, draws it and swaps buffers. A nil
// mesh clears the frame.
func (r *Renderer) Present(m *surface.Mesh, view camera.View) error {
	w, h := r.target.Size()
	if w != r.width || h != r.height {
		gl.Viewport(0, 0, int32(w), int32(h))
		r.width, r.height = w, h
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if m != nil && m.Buffers != nil {
		b, ok := m.Buffers.(*meshBuffers)
		if !ok {
			return errors.New("mesh buffers were not allocated by this renderer")
		}
		b.upload(m)

		r.program.Use()
		r.program.SetMat4(r.locMVP, view.ViewProjection())

		gl.BindVertexArray(b.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, 0)
		gl.BindVertexArray(0)

		if r.ShowBounds {
			r.drawBounds(m.Bounds)
		}
	}

	if r.capture {
		r.capture = false
		r.saveScreenshot(w, h)
	}

	r.target.SwapBuffers()

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// drawBounds draws the bounds wireframe in white with the program in use.
func (r *Renderer) drawBounds(b surface.Bounds) {
	lines := debug.BoundsLines(b, 0)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(lines)*4, unsafe.Pointer(&lines[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(r.boundsVAO)
	gl.VertexAttrib3f(shader.ColorLocation, 1, 1, 1)
	gl.DrawArrays(gl.LINES, 0, debug.BoundsLineVertexCount)
	gl.BindVertexArray(0)
}

func (r *Renderer) saveScreenshot(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))

	path, err := r.screenshots.Save(pixels, w, h)
	if err != nil {
		r.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	r.log.Info("screenshot saved", zap.String("path", path))
}

// Allocate creates the vertex array and buffers for m.
func (r *Renderer) Allocate(m *surface.Mesh) (surface.Buffers, error) {
	if m.VertexCount() == 0 || len(m.Indices) == 0 {
		return nil, errors.New("empty mesh")
	}

	b := &meshBuffers{count: int32(len(m.Indices)), log: r.log}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.positions)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Positions)*4, unsafe.Pointer(&m.Positions[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(shader.PositionLocation, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(shader.PositionLocation)

	gl.GenBuffers(1, &b.colors)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.colors)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Colors)*4, unsafe.Pointer(&m.Colors[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(shader.ColorLocation, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(shader.ColorLocation)

	gl.GenBuffers(1, &b.indices)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.indices)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.Release()
		return nil, fmt.Errorf("allocating mesh buffers: gl error 0x%x", code)
	}

	m.PositionsDirty = false
	m.ColorsDirty = false

	r.log.Debug("mesh buffers allocated",
		zap.Uint32("vao", b.vao),
		zap.Int("vertices", m.VertexCount()),
		zap.Int32("indices", b.count),
	)
	return b, nil
}

// meshBuffers holds the GL handles of one mesh.
type meshBuffers struct {
	vao       uint32
	positions uint32
	colors    uint32
	indices   uint32
	count     int32

	log *zap.Logger
}

// upload pushes dirty vertex data with BufferSubData and clears the flags.
func (b *meshBuffers) upload(m *surface.Mesh) {
	if m.PositionsDirty {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.positions)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Positions)*4, unsafe.Pointer(&m.Positions[0]))
		m.PositionsDirty = false
	}
	if m.ColorsDirty {
		gl.BindBuffer(gl.ARRAY_BUFFER, b.colors)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(m.Colors)*4, unsafe.Pointer(&m.Colors[0]))
		m.ColorsDirty = false
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Release deletes the GL objects. Safe to call twice.
func (b *meshBuffers) Release() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	for _, buf := range []*uint32{&b.positions, &b.colors, &b.indices} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
	b.log.Debug("mesh buffers released")
}
