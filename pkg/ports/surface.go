package ports

import (
	"image"
	"image/color"
)

// Host is the externally owned drawable region the producer is attached to.
type Host interface {
	// Bounds returns the region in points.
	Bounds() image.Rectangle

	// ContentScale returns the number of pixels per point.
	ContentScale() float64
}

// Renderer creates render surfaces.
type Renderer interface {
	// CreateSurface allocates a drawing context with a backing framebuffer of
	// the given pixel size. It returns an error wrapping ErrSurfaceUnavailable
	// when no valid context can be made.
	CreateSurface(width, height int) (Surface, error)
}

// Point is a position in surface pixel coordinates.
type Point struct {
	X float64
	Y float64
}

// Surface is a drawing context with a readable framebuffer.
type Surface interface {
	// Size returns the framebuffer size in pixels.
	Size() Dimension

	// Clear fills the whole framebuffer with c.
	Clear(c color.Color)

	// FillPolygon fills the closed polygon through points.
	FillPolygon(points []Point, c color.Color)

	// DrawText draws a single line of text with its baseline at y.
	DrawText(text string, x, y float64, c color.Color)

	// ReadPixels returns the framebuffer contents. The image is only valid
	// until the next drawing call.
	ReadPixels() (*image.RGBA, error)

	// Release frees the context. Further calls are no-ops or return errors.
	Release() error
}
