// Package ggrenderer provides a software render surface using the gg library.
package ggrenderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/user/teapotcast/pkg/ports"
)

// MaxPixels caps the framebuffer size a surface may allocate.
const MaxPixels = 8192 * 8192

// ErrReleased is returned when a released surface is read back.
var ErrReleased = errors.New("surface released")

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	// FontPath is an optional TrueType font for overlay text. gg's built-in
	// bitmap face is used when empty.
	FontPath string
	FontSize float64
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateSurface allocates a drawing context with a width x height RGBA
// framebuffer.
func (r *Renderer) CreateSurface(width, height int) (ports.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ports.ErrSurfaceUnavailable, width, height)
	}
	if width*height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds framebuffer limit", ports.ErrSurfaceUnavailable, width, height)
	}

	dc := gg.NewContext(width, height)
	if r.FontPath != "" {
		size := r.FontSize
		if size <= 0 {
			size = 14
		}
		if err := dc.LoadFontFace(r.FontPath, size); err != nil {
			return nil, fmt.Errorf("%w: load font: %w", ports.ErrSurfaceUnavailable, err)
		}
	}
	return &Surface{dc: dc, size: ports.Dimension{Width: width, Height: height}}, nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Surface implements ports.Surface using gg.Context.
type Surface struct {
	dc       *gg.Context
	size     ports.Dimension
	released bool
}

// Size returns the framebuffer size in pixels.
func (s *Surface) Size() ports.Dimension {
	return s.size
}

// Clear fills the whole framebuffer.
func (s *Surface) Clear(c color.Color) {
	if s.released {
		return
	}
	s.dc.SetColor(c)
	s.dc.Clear()
}

// FillPolygon fills a closed polygon.
func (s *Surface) FillPolygon(points []ports.Point, c color.Color) {
	if s.released || len(points) < 3 {
		return
	}
	s.dc.NewSubPath()
	s.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.dc.ClosePath()
	s.dc.SetColor(c)
	s.dc.Fill()
}

// DrawText draws text with its baseline at y.
func (s *Surface) DrawText(text string, x, y float64, c color.Color) {
	if s.released {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawString(text, x, y)
}

// ReadPixels returns the framebuffer. The image is only valid until the
// next drawing call.
func (s *Surface) ReadPixels() (*image.RGBA, error) {
	if s.released {
		return nil, ErrReleased
	}
	img, ok := s.dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected framebuffer type %T", s.dc.Image())
	}
	return img, nil
}

// Release drops the drawing context. Further drawing is ignored.
func (s *Surface) Release() error {
	if s.released {
		return ErrReleased
	}
	s.released = true
	s.dc = nil
	return nil
}

// Ensure Surface implements ports.Surface
var _ ports.Surface = (*Surface)(nil)
