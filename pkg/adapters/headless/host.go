// Package headless provides a ports.Host that is not backed by any window.
package headless

import (
	"image"
	"sync"

	"github.com/user/teapotcast/pkg/ports"
)

// Host is a fixed-size drawing area in points with a content scale.
// Resize and SetContentScale may be called while the render loop runs; the
// surface follows on the next tick.
type Host struct {
	mu     sync.RWMutex
	bounds image.Rectangle
	scale  float64
}

// New creates a Host of width x height points. A non-positive scale is 1.
func New(width, height int, scale float64) *Host {
	if scale <= 0 {
		scale = 1
	}
	return &Host{bounds: image.Rect(0, 0, width, height), scale: scale}
}

// Bounds returns the host area in points.
func (h *Host) Bounds() image.Rectangle {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bounds
}

// ContentScale returns the pixels per point.
func (h *Host) ContentScale() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scale
}

// Resize changes the host area.
func (h *Host) Resize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bounds = image.Rect(0, 0, width, height)
}

// SetContentScale changes the pixels per point. Non-positive values are
// ignored.
func (h *Host) SetContentScale(scale float64) {
	if scale <= 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scale = scale
}

// Ensure Host implements ports.Host
var _ ports.Host = (*Host)(nil)
