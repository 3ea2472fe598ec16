// Package orchestrator runs a capture session end to end.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/renderloop"
)

// Config contains the run settings.
type Config struct {
	// Duration bounds the run; zero runs until the context is cancelled.
	Duration time.Duration

	// FrameInterval is applied before the animation starts.
	FrameInterval int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Duration:      10 * time.Second,
		FrameInterval: 1,
	}
}

// Producer is the video source the orchestrator drives.
type Producer interface {
	ports.VideoProducer
	Stats() renderloop.Stats
}

// MotionSource feeds orientation samples until its context is done.
type MotionSource interface {
	Run(ctx context.Context) error
}

// Orchestrator coordinates the producer with its input sources.
type Orchestrator struct {
	producer  Producer
	motion    MotionSource
	intervals <-chan int
	logger    ports.Logger
}

// New creates a new Orchestrator. motion may be nil.
func New(producer Producer, motion MotionSource, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		producer: producer,
		motion:   motion,
		logger:   logger.WithComponent("orchestrator"),
	}
}

// WithIntervalUpdates makes Run apply frame intervals received on ch while
// animating.
func (o *Orchestrator) WithIntervalUpdates(ch <-chan int) *Orchestrator {
	o.intervals = ch
	return o
}

// Run negotiates, animates until the duration elapses or ctx is cancelled,
// then stops the producer and reports what happened.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting teapotcast")

	capability, err := o.producer.Negotiate()
	if err != nil {
		o.logger.Error("Failed to negotiate capture format: %s", err)
		return RunResult{}, fmt.Errorf("negotiate: %w", err)
	}

	o.producer.SetAnimationFrameInterval(config.FrameInterval)

	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if config.Duration > 0 {
		runCtx, cancel = context.WithTimeout(ctx, config.Duration)
	} else {
		runCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var wg sync.WaitGroup
	if o.motion != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := o.motion.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				o.logger.Warn("Orientation source failed: %s", err)
			}
		}()
	}

	if err := o.producer.StartAnimation(); err != nil {
		cancel()
		wg.Wait()
		o.logger.Error("Failed to start animation: %s", err)
		return RunResult{}, fmt.Errorf("start animation: %w", err)
	}
	started := time.Now()

	intervals := o.intervals
loop:
	for {
		select {
		case <-runCtx.Done():
			break loop
		case n, ok := <-intervals:
			if !ok {
				intervals = nil
				continue
			}
			o.producer.SetAnimationFrameInterval(n)
			o.logger.Info("Frame interval set to %d", o.producer.AnimationFrameInterval())
		}
	}

	o.producer.StopAnimation()
	elapsed := time.Since(started)
	cancel()
	wg.Wait()

	stats := o.producer.Stats()
	result := RunResult{
		Capability:       capability,
		Elapsed:          elapsed,
		FrameInterval:    o.producer.AnimationFrameInterval(),
		Ticks:            stats.Ticks,
		Drawn:            stats.Drawn,
		Delivered:        stats.Capture.Delivered,
		Dropped:          stats.Capture.Dropped,
		Rejected:         stats.Capture.Rejected,
		ReadbackFailures: stats.Capture.ReadbackFailures,
		Interrupted:      ctx.Err() != nil,
	}
	o.logger.Info("Run finished: %d frames delivered, %d dropped", result.Delivered, result.Dropped)
	return result, nil
}
