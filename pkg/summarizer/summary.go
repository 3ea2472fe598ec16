// Package summarizer provides summary generation for capture runs.
package summarizer

import (
	"time"

	"github.com/user/teapotcast/pkg/orchestrator"
)

// Summary contains all data collected during a capture run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Negotiated output
	Stream StreamInfo

	// Run settings
	Settings Settings

	// Frame accounting
	Frames FrameInfo
}

// StreamInfo describes the negotiated frame format.
type StreamInfo struct {
	Format    string
	Width     int
	Height    int
	FrameRate float64 // Base tick rate offered to the sink
}

// Settings contains the run configuration.
type Settings struct {
	FrameInterval int
	Sink          string
	Motion        bool
}

// FrameInfo contains the producer counters.
type FrameInfo struct {
	Ticks            uint64
	Drawn            uint64
	Delivered        uint64
	Dropped          uint64
	Rejected         uint64
	ReadbackFailures uint64
	ElapsedMs        int64
	Interrupted      bool
}

// EffectiveFPS returns delivered frames per second.
func (f FrameInfo) EffectiveFPS() float64 {
	if f.ElapsedMs <= 0 {
		return 0
	}
	return float64(f.Delivered) * 1000 / float64(f.ElapsedMs)
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithResult fills stream and frame information from a run result.
func (b *Builder) WithResult(r orchestrator.RunResult) *Builder {
	b.summary.Stream = StreamInfo{
		Format:    r.Capability.Format.String(),
		Width:     r.Capability.Width,
		Height:    r.Capability.Height,
		FrameRate: r.Capability.FrameRate,
	}
	b.summary.Frames = FrameInfo{
		Ticks:            r.Ticks,
		Drawn:            r.Drawn,
		Delivered:        r.Delivered,
		Dropped:          r.Dropped,
		Rejected:         r.Rejected,
		ReadbackFailures: r.ReadbackFailures,
		ElapsedMs:        r.Elapsed.Milliseconds(),
		Interrupted:      r.Interrupted,
	}
	b.summary.Settings.FrameInterval = r.FrameInterval
	return b
}

// WithSink records where frames went.
func (b *Builder) WithSink(sink string, motion bool) *Builder {
	b.summary.Settings.Sink = sink
	b.summary.Settings.Motion = motion
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
