package mocks

import (
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/user/teapotcast/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	CreateSurfaceFunc func(width, height int) (ports.Surface, error)

	// Surfaces lists every surface created by the default implementation.
	Surfaces []*Surface
}

func (m *Renderer) CreateSurface(width, height int) (ports.Surface, error) {
	if m.CreateSurfaceFunc != nil {
		return m.CreateSurfaceFunc(width, height)
	}
	s := NewSurface(width, height)
	m.mu.Lock()
	m.Surfaces = append(m.Surfaces, s)
	m.mu.Unlock()
	return s, nil
}

// Created returns the number of surfaces created so far.
func (m *Renderer) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Surfaces)
}

// Last returns the most recently created surface, or nil.
func (m *Renderer) Last() *Surface {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Surfaces) == 0 {
		return nil
	}
	return m.Surfaces[len(m.Surfaces)-1]
}

var _ ports.Renderer = (*Renderer)(nil)

// Surface is a mock implementation of ports.Surface. It records drawing
// calls per frame, where a frame starts at each Clear.
type Surface struct {
	mu sync.Mutex

	size     ports.Dimension
	released bool
	clears   int
	reads    int
	frames   [][][]ports.Point
	texts    []string

	// ClearFunc runs after a Clear is recorded.
	ClearFunc func()
	// ReadPixelsFunc overrides readback; call is the 1-based readback count.
	ReadPixelsFunc func(call int) (*image.RGBA, error)
	// Fill is the color ReadPixels fills the default image with.
	Fill color.RGBA
}

// NewSurface creates a mock surface of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{size: ports.Dimension{Width: width, Height: height}}
}

func (m *Surface) Size() ports.Dimension {
	return m.size
}

func (m *Surface) Clear(c color.Color) {
	m.mu.Lock()
	m.clears++
	m.frames = append(m.frames, nil)
	hook := m.ClearFunc
	m.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (m *Surface) FillPolygon(points []ports.Point, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		m.frames = append(m.frames, nil)
	}
	cp := append([]ports.Point(nil), points...)
	last := len(m.frames) - 1
	m.frames[last] = append(m.frames[last], cp)
}

func (m *Surface) DrawText(text string, x, y float64, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, text)
}

func (m *Surface) ReadPixels() (*image.RGBA, error) {
	m.mu.Lock()
	m.reads++
	call := m.reads
	released := m.released
	fn := m.ReadPixelsFunc
	m.mu.Unlock()

	if released {
		return nil, errors.New("mock surface released")
	}
	if fn != nil {
		return fn(call)
	}
	img := image.NewRGBA(image.Rect(0, 0, m.size.Width, m.size.Height))
	if m.Fill != (color.RGBA{}) {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i+0] = m.Fill.R
			img.Pix[i+1] = m.Fill.G
			img.Pix[i+2] = m.Fill.B
			img.Pix[i+3] = m.Fill.A
		}
	}
	return img, nil
}

func (m *Surface) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	return nil
}

// Released reports whether Release was called.
func (m *Surface) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// Clears returns the number of Clear calls, i.e. the number of draws.
func (m *Surface) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// Frame returns the polygons filled during the i-th draw (0-based).
func (m *Surface) Frame(i int) [][]ports.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.frames) {
		return nil
	}
	return m.frames[i]
}

// EqualPolygons reports whether two recorded frames filled the same
// polygons in the same order.
func EqualPolygons(a, b [][]ports.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

// Texts returns every string drawn with DrawText.
func (m *Surface) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}

var _ ports.Surface = (*Surface)(nil)
