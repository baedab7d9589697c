package surface

import (
	"fmt"

	"go.uber.org/zap"
)

// Generator owns the current Mesh and replaces it on config changes.
type Generator struct {
	opts  Options
	alloc Allocator
	log   *zap.Logger

	current     *Mesh
	generations int
}

// NewGenerator creates a generator. alloc may be nil when no device buffers
// are needed (headless use, tests).
func NewGenerator(opts Options, alloc Allocator, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		opts:  opts,
		alloc: alloc,
		log:   log,
	}
}

// Current returns the installed Mesh, or nil before the first Regenerate.
func (g *Generator) Current() *Mesh {
	return g.current
}

// Generations returns how many meshes have been installed.
func (g *Generator) Generations() int {
	return g.generations
}

// Regenerate builds a Mesh for cfg and installs it in place of the current one.
// An invalid cfg is rejected and the current Mesh is kept. The old Mesh's
// buffers are released before the new ones are allocated. If allocation fails
// the new Mesh is still installed, without buffers, and the error is returned.
func (g *Generator) Regenerate(cfg Config) error {
	mesh, err := Generate(cfg, g.opts)
	if err != nil {
		g.log.Warn("rejected surface config", zap.Error(err))
		return err
	}

	if g.current != nil {
		g.current.Release()
	}
	g.current = mesh
	g.generations++

	g.log.Debug("surface generated",
		zap.Float32("width", cfg.Width),
		zap.Float32("height", cfg.Height),
		zap.Int("width_segments", cfg.WidthSegments),
		zap.Int("height_segments", cfg.HeightSegments),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("triangles", mesh.TriangleCount()),
	)

	if g.alloc == nil {
		return nil
	}
	buffers, err := g.alloc.Allocate(mesh)
	if err != nil {
		return fmt.Errorf("allocating surface buffers: %w", err)
	}
	mesh.Buffers = buffers
	return nil
}

// Close releases the current Mesh's buffers and drops the Mesh.
func (g *Generator) Close() {
	if g.current != nil {
		g.current.Release()
		g.current = nil
	}
}
