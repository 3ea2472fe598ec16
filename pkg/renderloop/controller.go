// Package renderloop drives the teapot animation on a fixed tick cadence and
// feeds every produced frame to the capture bridge.
package renderloop

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/teapotcast/pkg/capture"
	"github.com/user/teapotcast/pkg/motion"
	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/scene"
)

// Stats summarises controller behaviour across sessions.
type Stats struct {
	Ticks            uint64
	Skipped          uint64 // Ticks that fell between produced frames
	Drawn            uint64
	SurfaceRecreated uint64
	Capture          capture.Stats
}

// Controller is the render loop. It owns the capture session: ticker,
// surface and bridge are acquired by StartAnimation and released by
// StopAnimation.
type Controller struct {
	cfg         Config
	host        ports.Host
	renderer    ports.Renderer
	sink        ports.FrameSink
	clock       ports.Clock
	orientation *motion.Holder
	logger      ports.Logger

	animator *scene.Animator
	mesh     *scene.Mesh

	// mu serializes lifecycle calls and forced redraws.
	mu         sync.Mutex
	session    *session
	negotiated *ports.Capability

	// drawMu serializes ticks with forced redraws.
	drawMu sync.Mutex

	animating atomic.Bool
	interval  atomic.Int64

	ticks     atomic.Uint64
	skipped   atomic.Uint64
	drawn     atomic.Uint64
	recreated atomic.Uint64
	counters  capture.Counters
}

// session is the state of one Idle -> Animating -> Idle cycle.
type session struct {
	surface ports.Surface
	ticker  ports.Ticker
	bridge  *capture.Bridge
	period  time.Duration

	stop chan struct{}
	done chan struct{}

	// Owned by whoever holds drawMu.
	tick      uint64
	pending   int64
	lastStamp time.Duration
	hasStamp  bool
}

// New creates a Controller. orientation may be nil, in which case the model
// stays upright.
func New(
	cfg Config,
	host ports.Host,
	renderer ports.Renderer,
	sink ports.FrameSink,
	clock ports.Clock,
	orientation *motion.Holder,
	logger ports.Logger,
) *Controller {
	if orientation == nil {
		orientation = motion.NewHolder(motion.Sample{})
	}
	c := &Controller{
		cfg:         cfg,
		host:        host,
		renderer:    renderer,
		sink:        sink,
		clock:       clock,
		orientation: orientation,
		logger:      logger.WithComponent("renderloop"),
		animator:    scene.NewAnimator(cfg.SpinRate),
		mesh:        scene.Teapot(cfg.Segments),
	}
	c.interval.Store(int64(clampInterval(cfg.FrameInterval)))
	return c
}

// Negotiate settles the capture capability with the sink. Only a successful
// result is cached; a rejected negotiation is retried by the next call.
func (c *Controller) Negotiate() (ports.Capability, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.negotiateLocked()
}

func (c *Controller) negotiateLocked() (ports.Capability, error) {
	if c.negotiated != nil {
		return *c.negotiated, nil
	}

	resolutions := c.cfg.Resolutions
	if len(resolutions) == 0 {
		size, ok := pixelSize(c.host)
		if !ok {
			return ports.Capability{}, fmt.Errorf("%w: host has no drawable area", ports.ErrSurfaceUnavailable)
		}
		resolutions = []ports.Dimension{size}
	}
	formats := c.cfg.Formats
	if len(formats) == 0 {
		formats = []ports.PixelFormat{ports.FormatRGBA}
	}

	offers := capture.Offers(formats, resolutions, c.tickRate())
	capability, err := capture.Negotiate(offers, c.sink)
	if err != nil {
		c.logger.Error("Failed to negotiate capture format: %s", err)
		return ports.Capability{}, err
	}
	c.negotiated = &capability
	c.logger.Info("Negotiated capture format %s", capability)
	return capability, nil
}

// StartAnimation negotiates if needed, creates the render surface and
// schedules the ticker. It does nothing when already animating. On error the
// controller stays idle and holds no session resources.
func (c *Controller) StartAnimation() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil
	}

	capability, err := c.negotiateLocked()
	if err != nil {
		return err
	}

	size, ok := pixelSize(c.host)
	if !ok {
		return fmt.Errorf("%w: host has no drawable area", ports.ErrSurfaceUnavailable)
	}
	surface, err := c.renderer.CreateSurface(size.Width, size.Height)
	if err != nil {
		if !errors.Is(err, ports.ErrSurfaceUnavailable) {
			err = fmt.Errorf("%w: %w", ports.ErrSurfaceUnavailable, err)
		}
		c.logger.Error("Failed to start animation: %s", err)
		return err
	}
	if surface == nil {
		return fmt.Errorf("%w: renderer returned no surface", ports.ErrSurfaceUnavailable)
	}

	period := c.cfg.period()
	interval := c.interval.Load()
	s := &session{
		surface: surface,
		period:  period,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.bridge = capture.New(c.sink, capability, c.logger, capture.Options{
		QueueSize: c.cfg.QueueSize,
		Counters:  &c.counters,
	})
	s.ticker = c.clock.NewTicker(period)

	c.session = s
	c.animating.Store(true)
	go c.run(s)

	c.logger.Info("Animation started at %.0f ticks/s, interval %d, %s", c.tickRate(), interval, s.bridge.Capability())
	return nil
}

// StopAnimation cancels the ticker, waits for an in-flight tick, drains the
// delivery queue and releases the surface. The drain is bounded by one frame
// interval, and never shorter than StopGrace; frames a stalled sink has not
// taken by then are dropped. Once it
// returns no tick runs and no further frame reaches the sink. It does
// nothing when idle.
func (c *Controller) StopAnimation() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		return
	}

	close(s.stop)
	<-s.done
	s.ticker.Stop()
	s.bridge.Close(max(c.frameDuration(s), StopGrace))
	if err := s.surface.Release(); err != nil {
		c.logger.Debug("Surface release: %s", err)
	}

	c.session = nil
	c.animating.Store(false)
	c.logger.Info("Animation stopped after %d ticks", s.tick)
}

// IsAnimating reports whether a session is live.
func (c *Controller) IsAnimating() bool {
	return c.animating.Load()
}

// AnimationFrameInterval returns the number of ticks per produced frame.
func (c *Controller) AnimationFrameInterval() int {
	return int(c.interval.Load())
}

// SetAnimationFrameInterval sets the number of ticks per produced frame.
// Values below 1 are clamped to 1. It takes effect from the next tick.
func (c *Controller) SetAnimationFrameInterval(n int) {
	n = clampInterval(n)
	if c.interval.Swap(int64(n)) != int64(n) {
		c.logger.Debug("Frame interval set to %d", n)
	}
}

// DrawView forces an update, draw and capture outside the tick cadence.
// It does not count towards the frame interval. It does nothing when idle.
func (c *Controller) DrawView() {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		c.logger.Debug("Forced redraw ignored, not animating")
		return
	}

	c.drawMu.Lock()
	defer c.drawMu.Unlock()
	c.draw(s)
}

// Stats returns counters accumulated over all sessions.
func (c *Controller) Stats() Stats {
	return Stats{
		Ticks:            c.ticks.Load(),
		Skipped:          c.skipped.Load(),
		Drawn:            c.drawn.Load(),
		SurfaceRecreated: c.recreated.Load(),
		Capture:          c.counters.Snapshot(),
	}
}

func (c *Controller) run(s *session) {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case <-s.ticker.C():
			c.tick(s)
		}
	}
}

// tick handles one timer tick. Only every interval-th tick does any work.
func (c *Controller) tick(s *session) {
	c.drawMu.Lock()
	defer c.drawMu.Unlock()

	s.tick++
	c.ticks.Add(1)

	s.pending++
	if s.pending < c.interval.Load() {
		c.skipped.Add(1)
		return
	}
	s.pending = 0
	c.draw(s)
}

// draw runs one update, render and capture cycle. The caller holds drawMu.
func (c *Controller) draw(s *session) {
	c.ensureSurface(s)

	stamp := s.nextStamp()
	sample := c.orientation.Latest()
	pose := c.animator.Advance(stamp, sample)
	scene.Render(s.surface, c.mesh, pose, c.cfg.Style, caption(s.tick, stamp))
	c.drawn.Add(1)

	if !c.animating.Load() {
		return
	}
	frame, err := s.bridge.Capture(s.surface, stamp, c.clock.Now())
	if err != nil {
		c.logger.Warn("Readback failed on tick %d: %s", s.tick, err)
		return
	}
	s.bridge.Deliver(frame, c.frameDuration(s))
}

// ensureSurface recreates the surface when the host's pixel size changed.
// If the new surface cannot be made the old one keeps being used.
func (c *Controller) ensureSurface(s *session) {
	size, ok := pixelSize(c.host)
	if !ok || size == s.surface.Size() {
		return
	}
	surface, err := c.renderer.CreateSurface(size.Width, size.Height)
	if err != nil || surface == nil {
		c.logger.Warn("Cannot recreate surface at %s: %s", size, err)
		return
	}
	if err := s.surface.Release(); err != nil {
		c.logger.Debug("Surface release: %s", err)
	}
	s.surface = surface
	c.recreated.Add(1)
	c.logger.Debug("Render surface resized to %s", size)
}

// frameDuration is one frame interval at the current interval setting.
func (c *Controller) frameDuration(s *session) time.Duration {
	return s.period * time.Duration(c.interval.Load())
}

func (c *Controller) tickRate() float64 {
	if c.cfg.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.cfg.TickRate
}

// nextStamp returns the media time of the current tick, kept strictly
// increasing when forced redraws land between ticks.
func (s *session) nextStamp() time.Duration {
	stamp := time.Duration(s.tick) * s.period
	if s.hasStamp && stamp <= s.lastStamp {
		stamp = s.lastStamp + time.Microsecond
	}
	s.lastStamp = stamp
	s.hasStamp = true
	return stamp
}

// pixelSize converts the host bounds to framebuffer pixels.
func pixelSize(host ports.Host) (ports.Dimension, bool) {
	if host == nil {
		return ports.Dimension{}, false
	}
	b := host.Bounds()
	scale := host.ContentScale()
	if scale <= 0 {
		scale = 1
	}
	d := ports.Dimension{
		Width:  int(math.Round(float64(b.Dx()) * scale)),
		Height: int(math.Round(float64(b.Dy()) * scale)),
	}
	return d, d.Valid()
}

func clampInterval(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func caption(tick uint64, stamp time.Duration) string {
	return fmt.Sprintf("tick %d  %s", tick, stamp.Truncate(time.Millisecond))
}

var _ ports.VideoProducer = (*Controller)(nil)
