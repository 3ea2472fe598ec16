package scene

import "github.com/chewxy/math32"

// Triangle is a mesh face with an outward unit normal.
type Triangle struct {
	V      [3]Vec3
	Normal Vec3
}

// Mesh is a triangle soup in model space.
type Mesh struct {
	Triangles []Triangle
}

// MinSegments is the coarsest tessellation Teapot accepts.
const MinSegments = 8

type profilePoint struct {
	r float32
	y float32
}

// Body, lid and knob, bottom to top.
var teapotProfile = []profilePoint{
	{0, 0}, {0.85, 0}, {1.15, 0.2}, {1.35, 0.55}, {1.38, 0.85},
	{1.25, 1.2}, {1.0, 1.42}, {0.82, 1.5}, {0.8, 1.55}, {0.55, 1.65},
	{0.2, 1.72}, {0.12, 1.78}, {0.18, 1.88}, {0.12, 1.98}, {0, 2.0},
}

var (
	spoutPath  = []Vec3{{1.0, 0.45, 0}, {1.45, 0.55, 0}, {1.75, 0.85, 0}, {1.95, 1.2, 0}, {2.1, 1.45, 0}}
	spoutRadii = []float32{0.28, 0.24, 0.18, 0.14, 0.12}

	handlePath  = []Vec3{{-1.1, 1.2, 0}, {-1.55, 1.25, 0}, {-1.85, 1.05, 0}, {-1.85, 0.7, 0}, {-1.6, 0.45, 0}, {-1.25, 0.35, 0}}
	handleRadii = []float32{0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
)

// Teapot builds a teapot centred on the origin with its lid along +Y.
// segments controls the tessellation around the body.
func Teapot(segments int) *Mesh {
	if segments < MinSegments {
		segments = MinSegments
	}
	m := &Mesh{}
	m.lathe(teapotProfile, segments)
	m.tube(spoutPath, spoutRadii, segments/2)
	m.tube(handlePath, handleRadii, segments/2)
	m.translate(Vec3{0, -1, 0})
	return m
}

func (m *Mesh) lathe(profile []profilePoint, segments int) {
	step := 2 * math32.Pi / float32(segments)
	for i := 0; i < segments; i++ {
		t0 := float32(i) * step
		t1 := t0 + step
		mid := t0 + step/2
		radial := Vec3{math32.Cos(mid), 0, math32.Sin(mid)}

		for j := 0; j+1 < len(profile); j++ {
			p0, p1 := profile[j], profile[j+1]
			a := Vec3{p0.r * math32.Cos(t0), p0.y, p0.r * math32.Sin(t0)}
			b := Vec3{p0.r * math32.Cos(t1), p0.y, p0.r * math32.Sin(t1)}
			c := Vec3{p1.r * math32.Cos(t1), p1.y, p1.r * math32.Sin(t1)}
			d := Vec3{p1.r * math32.Cos(t0), p1.y, p1.r * math32.Sin(t0)}

			// The profile runs bottom to top with the solid on its inner side,
			// so (dy, -dr) points out of the surface.
			dr, dy := p1.r-p0.r, p1.y-p0.y
			outward := radial.Mul(dy).Add(Vec3{0, -dr, 0})

			m.add(a, b, c, outward)
			m.add(a, c, d, outward)
		}
	}
}

func (m *Mesh) tube(path []Vec3, radii []float32, sides int) {
	if len(path) < 2 {
		return
	}
	if sides < 3 {
		sides = 3
	}
	z := Vec3{0, 0, 1}
	rings := make([][]Vec3, len(path))
	for i, p := range path {
		var tangent Vec3
		switch i {
		case 0:
			tangent = path[1].Sub(p)
		case len(path) - 1:
			tangent = p.Sub(path[i-1])
		default:
			tangent = path[i+1].Sub(path[i-1])
		}
		n := tangent.Cross(z).Normalize()
		ring := make([]Vec3, sides)
		for k := range ring {
			phi := 2 * math32.Pi * float32(k) / float32(sides)
			offset := n.Mul(math32.Cos(phi)).Add(z.Mul(math32.Sin(phi)))
			ring[k] = p.Add(offset.Mul(radii[i]))
		}
		rings[i] = ring
	}

	for i := 0; i+1 < len(rings); i++ {
		axis := path[i].Add(path[i+1]).Mul(0.5)
		for k := 0; k < sides; k++ {
			k1 := (k + 1) % sides
			a, b := rings[i][k], rings[i][k1]
			c, d := rings[i+1][k1], rings[i+1][k]
			m.add(a, b, c, centroid(a, b, c).Sub(axis))
			m.add(a, c, d, centroid(a, c, d).Sub(axis))
		}
	}
}

// add appends a face, winding it so its normal agrees with outward.
// Degenerate faces are dropped.
func (m *Mesh) add(a, b, c, outward Vec3) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < floatCmpEpsilon {
		return
	}
	if n.Dot(outward) < 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	m.Triangles = append(m.Triangles, Triangle{V: [3]Vec3{a, b, c}, Normal: n.Normalize()})
}

func (m *Mesh) translate(d Vec3) {
	for i := range m.Triangles {
		for j := range m.Triangles[i].V {
			m.Triangles[i].V[j] = m.Triangles[i].V[j].Add(d)
		}
	}
}

// Bounds returns the axis-aligned box enclosing the mesh.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	if len(m.Triangles) == 0 {
		return Vec3{}, Vec3{}
	}
	lo = m.Triangles[0].V[0]
	hi = lo
	for _, t := range m.Triangles {
		for _, v := range t.V {
			for k := 0; k < 3; k++ {
				if v[k] < lo[k] {
					lo[k] = v[k]
				}
				if v[k] > hi[k] {
					hi[k] = v[k]
				}
			}
		}
	}
	return lo, hi
}

func centroid(a, b, c Vec3) Vec3 {
	return a.Add(b).Add(c).Mul(1.0 / 3)
}
