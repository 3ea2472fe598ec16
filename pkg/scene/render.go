// Package scene renders the animated teapot onto a render surface.
package scene

import (
	"image/color"
	"sort"

	"github.com/chewxy/math32"

	"github.com/user/teapotcast/pkg/ports"
)

// Style controls camera, lighting and colors.
type Style struct {
	Background color.RGBA
	Body       color.RGBA
	Text       color.RGBA

	Ambient        float32 // 0..1
	Light          Vec3    // Direction towards the light
	FieldOfView    float32 // Vertical, radians
	CameraDistance float32
	Overlay        bool // Draw the caption
}

// DefaultStyle returns the style used when nothing is configured.
func DefaultStyle() Style {
	return Style{
		Background:     color.RGBA{R: 26, G: 26, B: 46, A: 255},
		Body:           color.RGBA{R: 222, G: 184, B: 135, A: 255},
		Text:           color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Ambient:        0.25,
		Light:          Vec3{-0.4, 0.6, 0.7},
		FieldOfView:    math32.Pi / 4,
		CameraDistance: 7,
		Overlay:        true,
	}
}

const nearPlane = 0.1

type face struct {
	pts   [3]ports.Point
	depth float32
	shade float32
}

// Render draws mesh at pose onto s and returns the number of faces filled.
// caption is drawn in the top-left corner when the style enables it.
func Render(s ports.Surface, mesh *Mesh, pose Pose, style Style, caption string) int {
	size := s.Size()
	s.Clear(style.Background)
	if mesh == nil || !size.Valid() {
		return 0
	}

	w, h := float32(size.Width), float32(size.Height)
	focal := (h / 2) / math32.Tan(style.FieldOfView/2)
	eye := Vec3{0, 0, style.CameraDistance}
	light := style.Light.Normalize()

	faces := make([]face, 0, len(mesh.Triangles)/2)
	for _, tri := range mesh.Triangles {
		var world [3]Vec3
		for i, v := range tri.V {
			world[i] = pose.Rotation.Rotate(v)
		}
		n := pose.Rotation.Rotate(tri.Normal)
		c := centroid(world[0], world[1], world[2])
		if n.Dot(eye.Sub(c)) <= 0 {
			continue
		}

		f := face{depth: style.CameraDistance - c[2]}
		visible := true
		for i, v := range world {
			depth := style.CameraDistance - v[2]
			if depth <= nearPlane {
				visible = false
				break
			}
			f.pts[i] = ports.Point{
				X: float64(w/2 + focal*v[0]/depth),
				Y: float64(h/2 - focal*v[1]/depth),
			}
		}
		if !visible {
			continue
		}

		diffuse := n.Dot(light)
		if diffuse < 0 {
			diffuse = 0
		}
		f.shade = style.Ambient + (1-style.Ambient)*diffuse
		faces = append(faces, f)
	}

	// Painter's order: farthest first.
	sort.SliceStable(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})
	for _, f := range faces {
		s.FillPolygon(f.pts[:], shade(style.Body, f.shade))
	}

	if style.Overlay && caption != "" {
		s.DrawText(caption, 8, 18, style.Text)
	}
	return len(faces)
}

func shade(c color.RGBA, k float32) color.RGBA {
	if k > 1 {
		k = 1
	}
	return color.RGBA{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
		A: c.A,
	}
}
