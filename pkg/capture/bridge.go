// Package capture turns rendered surfaces into video frames and delivers
// them, in order, to a frame sink.
package capture

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"

	"github.com/user/teapotcast/pkg/ports"
)

// DefaultQueueSize is the number of frames that may wait for the sink.
const DefaultQueueSize = 4

// Options configures a Bridge.
type Options struct {
	// QueueSize bounds the frames waiting for the sink.
	QueueSize int

	// Counters accumulates statistics; nil gives the bridge its own.
	Counters *Counters
}

// Counters are shared between bridges so statistics survive sessions.
type Counters struct {
	Captured         atomic.Uint64
	ReadbackFailures atomic.Uint64
	Delivered        atomic.Uint64
	Dropped          atomic.Uint64
	Rejected         atomic.Uint64
}

// Stats is a snapshot of Counters.
type Stats struct {
	Captured         uint64
	ReadbackFailures uint64
	Delivered        uint64
	Dropped          uint64
	Rejected         uint64
}

// Snapshot reads all counters.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Captured:         c.Captured.Load(),
		ReadbackFailures: c.ReadbackFailures.Load(),
		Delivered:        c.Delivered.Load(),
		Dropped:          c.Dropped.Load(),
		Rejected:         c.Rejected.Load(),
	}
}

// Bridge reads frames back from a surface at the negotiated capability and
// pushes them to the sink from a dedicated goroutine.
//
// Capture and Deliver must not be called concurrently, nor after Close.
type Bridge struct {
	sink       ports.FrameSink
	capability ports.Capability
	logger     ports.Logger
	counters   *Counters
	pool       bufferPool

	queue     chan ports.VideoFrame
	done      chan struct{}
	closeOnce sync.Once
	abandoned atomic.Bool

	sequence uint64
}

// New creates a Bridge and starts its delivery goroutine.
func New(sink ports.FrameSink, capability ports.Capability, logger ports.Logger, opts Options) *Bridge {
	size := opts.QueueSize
	if size <= 0 {
		size = DefaultQueueSize
	}
	counters := opts.Counters
	if counters == nil {
		counters = &Counters{}
	}
	b := &Bridge{
		sink:       sink,
		capability: capability,
		logger:     logger.WithComponent("capture"),
		counters:   counters,
		queue:      make(chan ports.VideoFrame, size),
		done:       make(chan struct{}),
	}
	go b.pump()
	return b
}

// Capability returns the negotiated capability frames are produced at.
func (b *Bridge) Capability() ports.Capability {
	return b.capability
}

// Capture reads the surface's framebuffer and packs it into a VideoFrame at
// the negotiated resolution and pixel format. The surface is scaled when its
// size differs from the negotiated one.
func (b *Bridge) Capture(surface ports.Surface, timestamp time.Duration, capturedAt time.Time) (ports.VideoFrame, error) {
	img, err := surface.ReadPixels()
	if err != nil {
		b.counters.ReadbackFailures.Add(1)
		return ports.VideoFrame{}, fmt.Errorf("%w: %w", ports.ErrReadbackFailed, err)
	}
	if img == nil || img.Bounds().Empty() {
		b.counters.ReadbackFailures.Add(1)
		return ports.VideoFrame{}, fmt.Errorf("%w: empty framebuffer", ports.ErrReadbackFailed)
	}

	w, h := b.capability.Width, b.capability.Height
	buf := b.pool.get(w * h * ports.BytesPerPixel)
	dst := &image.RGBA{Pix: buf, Stride: w * ports.BytesPerPixel, Rect: image.Rect(0, 0, w, h)}
	if img.Bounds().Size() == dst.Rect.Size() {
		draw.Draw(dst, dst.Rect, img, img.Bounds().Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Rect, img, img.Bounds(), draw.Src, nil)
	}
	swizzle(buf, b.capability.Format)

	b.sequence++
	b.counters.Captured.Add(1)
	pool := &b.pool
	return ports.VideoFrame{
		Pix:        buf,
		Width:      w,
		Height:     h,
		Stride:     dst.Stride,
		Format:     b.capability.Format,
		Timestamp:  timestamp,
		CapturedAt: capturedAt,
		Sequence:   b.sequence,
		OnRelease:  func() { pool.put(buf) },
	}, nil
}

// Deliver queues frame for the sink. When the queue stays full for longer
// than wait the frame is dropped, logged and counted; a non-positive wait
// drops at once. It reports whether the frame was queued.
func (b *Bridge) Deliver(frame ports.VideoFrame, wait time.Duration) bool {
	select {
	case b.queue <- frame:
		return true
	default:
	}

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case b.queue <- frame:
			return true
		case <-timer.C:
		}
	}

	b.counters.Dropped.Add(1)
	b.logger.Warn("Sink backpressure, dropped frame %d", frame.Sequence)
	frame.Release()
	return false
}

// Close stops accepting frames and waits up to grace for the queued frames
// to reach the sink. Frames still queued after that are dropped and counted,
// and the sink is handed no further frame. A non-positive grace waits for
// the whole queue. It is safe to call more than once.
func (b *Bridge) Close(grace time.Duration) {
	b.closeOnce.Do(func() {
		close(b.queue)
		if grace <= 0 {
			<-b.done
			return
		}

		timer := time.NewTimer(grace)
		defer timer.Stop()
		select {
		case <-b.done:
			return
		case <-timer.C:
		}

		b.abandoned.Store(true)
		dropped := 0
		for frame := range b.queue {
			b.discard(frame)
			dropped++
		}
		b.logger.Warn("Sink stalled on close, dropped %d queued frames", dropped)
	})
}

func (b *Bridge) pump() {
	defer close(b.done)
	for frame := range b.queue {
		if b.abandoned.Load() {
			b.discard(frame)
			continue
		}
		if err := b.sink.Ingest(frame); err != nil {
			b.counters.Rejected.Add(1)
			b.logger.Warn("Sink refused frame %d: %s", frame.Sequence, err)
			continue
		}
		b.counters.Delivered.Add(1)
		b.logger.Debug("Delivered frame %d at %s", frame.Sequence, frame.Timestamp)
	}
}

func (b *Bridge) discard(frame ports.VideoFrame) {
	b.counters.Dropped.Add(1)
	frame.Release()
}
