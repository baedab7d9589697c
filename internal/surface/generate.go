package surface

import (
	gomath "math"
	"math/rand/v2"
)

// DefaultJitter is the full width of the random Z offset applied to every
// vertex, so z lands in [-0.5, 0.5).
const DefaultJitter = 1.0

// DefaultBaseline is the rest color of every vertex.
var DefaultBaseline = Color{R: 0, G: 0.19, B: 0.4}

// Options controls the per-vertex randomization.
type Options struct {
	Jitter   float32
	Baseline Color
	// Rand is the random source. Nil uses the process-wide generator.
	Rand *rand.Rand
}

// DefaultOptions returns the stock jitter and baseline color.
func DefaultOptions() Options {
	return Options{
		Jitter:   DefaultJitter,
		Baseline: DefaultBaseline,
	}
}

func (o Options) unit() float32 {
	if o.Rand != nil {
		return o.Rand.Float32()
	}
	return rand.Float32()
}

// Generate builds a plane grid of (WidthSegments+1)*(HeightSegments+1) vertices
// centered on the origin in the XY plane, facing +Z.
func Generate(cfg Config, opts Options) (*Mesh, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cols := cfg.WidthSegments + 1
	rows := cfg.HeightSegments + 1
	n := cols * rows

	m := &Mesh{
		Config:    cfg,
		Positions: make([]float32, 0, n*3),
		Colors:    make([]float32, 0, n*3),
		Phases:    make([]float32, 0, n),
		Indices:   make([]uint32, 0, cfg.TriangleCount()*3),
		Baseline:  opts.Baseline,
	}

	cellW := cfg.Width / float32(cfg.WidthSegments)
	cellH := cfg.Height / float32(cfg.HeightSegments)
	halfW := cfg.Width / 2
	halfH := cfg.Height / 2

	// Rows run top to bottom, columns left to right.
	for iy := range rows {
		y := halfH - float32(iy)*cellH
		for ix := range cols {
			x := float32(ix)*cellW - halfW
			z := (opts.unit() - 0.5) * opts.Jitter

			m.Positions = append(m.Positions, x, y, z)
			m.Colors = append(m.Colors, opts.Baseline.R, opts.Baseline.G, opts.Baseline.B)
			m.Phases = append(m.Phases, phase(opts.unit()))
		}
	}

	// Counter-clockwise seen from +Z.
	for iy := range cfg.HeightSegments {
		for ix := range cfg.WidthSegments {
			a := uint32(iy*cols + ix) // top-left
			b := a + 1                // top-right
			c := a + uint32(cols)     // bottom-left
			d := c + 1                // bottom-right

			m.Indices = append(m.Indices,
				a, c, b,
				c, d, b,
			)
		}
	}

	m.Original = append([]float32(nil), m.Positions...)
	m.RecomputeBounds()
	m.PositionsDirty = true
	m.ColorsDirty = true

	return m, nil
}

// phase maps u in [0, 1) to [0, 2π), folding float32 rounding at the top end.
func phase(u float32) float32 {
	p := u * 2 * gomath.Pi
	if p >= 2*gomath.Pi {
		return 0
	}
	return p
}
