package mocks

import (
	"sync"

	"github.com/user/teapotcast/pkg/ports"
)

// FrameSink is a mock implementation of ports.FrameSink that records every
// ingested frame.
type FrameSink struct {
	mu sync.Mutex

	CapabilitiesFunc func() ports.SinkCapabilities
	IngestFunc       func(frame ports.VideoFrame) error

	Frames    []ports.VideoFrame
	CapsCalls int
}

// NewFrameSink creates a sink accepting any format and resolution.
func NewFrameSink() *FrameSink {
	return &FrameSink{}
}

func (m *FrameSink) Capabilities() ports.SinkCapabilities {
	m.mu.Lock()
	m.CapsCalls++
	m.mu.Unlock()
	if m.CapabilitiesFunc != nil {
		return m.CapabilitiesFunc()
	}
	return ports.SinkCapabilities{}
}

func (m *FrameSink) Ingest(frame ports.VideoFrame) error {
	if m.IngestFunc != nil {
		if err := m.IngestFunc(frame); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames = append(m.Frames, frame)
	return nil
}

// Received returns a copy of the ingested frames.
func (m *FrameSink) Received() []ports.VideoFrame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ports.VideoFrame(nil), m.Frames...)
}

// Count returns the number of ingested frames.
func (m *FrameSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Frames)
}

var _ ports.FrameSink = (*FrameSink)(nil)
