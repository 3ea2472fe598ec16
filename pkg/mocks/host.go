package mocks

import (
	"image"
	"sync"

	"github.com/user/teapotcast/pkg/ports"
)

// Host is a mock implementation of ports.Host.
type Host struct {
	mu     sync.Mutex
	bounds image.Rectangle
	scale  float64
}

// NewHost creates a host of the given size in points.
func NewHost(width, height int, scale float64) *Host {
	return &Host{bounds: image.Rect(0, 0, width, height), scale: scale}
}

func (m *Host) Bounds() image.Rectangle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bounds
}

func (m *Host) ContentScale() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

// Resize changes the host size in points.
func (m *Host) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bounds = image.Rect(0, 0, width, height)
}

var _ ports.Host = (*Host)(nil)
