// Package wobble provides a synthetic accelerometer. It stands in for device
// motion when frames are produced headless, swaying the measured gravity
// around the vertical.
package wobble

import (
	"context"
	"math"
	"time"

	"github.com/user/teapotcast/pkg/motion"
	"github.com/user/teapotcast/pkg/ports"
)

const (
	DefaultRate      = 30.0
	DefaultAmplitude = 0.35
	DefaultPeriod    = 6 * time.Second
)

// Config configures a Source.
type Config struct {
	// Rate is the number of samples per second.
	Rate float64
	// Amplitude is the peak sideways acceleration in g.
	Amplitude float64
	// Period is the duration of one full sway.
	Period time.Duration
	// FilterFactor is passed to the low-pass filter.
	FilterFactor float64
}

// Source pushes filtered samples into a motion.Holder.
type Source struct {
	cfg    Config
	holder *motion.Holder
	clock  ports.Clock
	logger ports.Logger
	filter motion.LowPass
}

// New creates a Source writing to holder.
func New(cfg Config, holder *motion.Holder, clock ports.Clock, logger ports.Logger) *Source {
	if cfg.Rate <= 0 {
		cfg.Rate = DefaultRate
	}
	if cfg.Period <= 0 {
		cfg.Period = DefaultPeriod
	}
	return &Source{
		cfg:    cfg,
		holder: holder,
		clock:  clock,
		logger: logger.WithComponent("wobble"),
		filter: motion.LowPass{Factor: cfg.FilterFactor},
	}
}

// Run samples until ctx is done and returns ctx.Err().
func (s *Source) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(time.Duration(float64(time.Second) / s.cfg.Rate))
	defer ticker.Stop()

	start := s.clock.Now()
	s.filter.Reset()
	s.holder.Set(s.filter.Apply(s.At(0)))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Orientation source stopped: %s", ctx.Err())
			return ctx.Err()
		case now := <-ticker.C():
			s.holder.Set(s.filter.Apply(s.At(now.Sub(start))))
		}
	}
}

// At returns the raw reading at elapsed time t. Gravity points down the Y
// axis with X and Z swaying a quarter period apart.
func (s *Source) At(t time.Duration) motion.Sample {
	phase := 2 * math.Pi * t.Seconds() / s.cfg.Period.Seconds()
	x := s.cfg.Amplitude * math.Sin(phase)
	z := s.cfg.Amplitude * math.Cos(phase) * 0.5
	return motion.Sample{
		X: x,
		Y: -math.Sqrt(math.Max(0, 1-x*x-z*z)),
		Z: z,
	}
}
