// Package nullsink provides a frame sink that discards every frame.
package nullsink

import (
	"sync/atomic"

	"github.com/user/teapotcast/pkg/ports"
)

// Sink is a no-op implementation of ports.FrameSink.
// It accepts any capability and only counts what it is given.
type Sink struct {
	frames atomic.Uint64
	bytes  atomic.Uint64
}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Capabilities accepts anything.
func (s *Sink) Capabilities() ports.SinkCapabilities {
	return ports.SinkCapabilities{}
}

// Ingest counts the frame and returns its buffer.
func (s *Sink) Ingest(frame ports.VideoFrame) error {
	s.frames.Add(1)
	s.bytes.Add(uint64(len(frame.Pix)))
	frame.Release()
	return nil
}

// Frames returns the number of frames ingested.
func (s *Sink) Frames() uint64 {
	return s.frames.Load()
}

// Bytes returns the total pixel bytes ingested.
func (s *Sink) Bytes() uint64 {
	return s.bytes.Load()
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
