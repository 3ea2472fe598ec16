package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/user/teapotcast/pkg/adapters/logger"
	"github.com/user/teapotcast/pkg/capture"
	"github.com/user/teapotcast/pkg/ports"
	"github.com/user/teapotcast/pkg/renderloop"
)

// mockProducer records lifecycle calls.
type mockProducer struct {
	mu sync.Mutex

	negotiateErr error
	startErr     error
	capability   ports.Capability

	animating bool
	interval  int
	starts    int
	stops     int
	intervals []int
	stats     renderloop.Stats
}

func (m *mockProducer) Negotiate() (ports.Capability, error) {
	return m.capability, m.negotiateErr
}

func (m *mockProducer) StartAnimation() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startErr != nil {
		return m.startErr
	}
	m.starts++
	m.animating = true
	return nil
}

func (m *mockProducer) StopAnimation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	m.animating = false
}

func (m *mockProducer) IsAnimating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.animating
}

func (m *mockProducer) AnimationFrameInterval() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

func (m *mockProducer) SetAnimationFrameInterval(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n < 1 {
		n = 1
	}
	m.interval = n
	m.intervals = append(m.intervals, n)
}

func (m *mockProducer) Stats() renderloop.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// mockMotion runs until cancelled.
type mockMotion struct {
	started chan struct{}
	stopped chan struct{}
}

func newMockMotion() *mockMotion {
	return &mockMotion{started: make(chan struct{}), stopped: make(chan struct{})}
}

func (m *mockMotion) Run(ctx context.Context) error {
	close(m.started)
	<-ctx.Done()
	close(m.stopped)
	return ctx.Err()
}

func TestOrchestrator_Run(t *testing.T) {
	producer := &mockProducer{
		capability: ports.Capability{Format: ports.FormatBGRA, Width: 640, Height: 480, FrameRate: 60},
		stats: renderloop.Stats{
			Ticks: 30,
			Drawn: 15,
			Capture: capture.Stats{
				Delivered: 14,
				Dropped:   1,
			},
		},
	}
	motion := newMockMotion()
	o := New(producer, motion, logger.NewNoop())

	result, err := o.Run(context.Background(), Config{Duration: 20 * time.Millisecond, FrameInterval: 2})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if producer.starts != 1 || producer.stops != 1 {
		t.Errorf("expected one start and one stop, got %d and %d", producer.starts, producer.stops)
	}
	if producer.IsAnimating() {
		t.Error("expected producer stopped")
	}
	select {
	case <-motion.stopped:
	default:
		t.Error("expected motion source stopped")
	}

	if result.Capability != producer.capability {
		t.Errorf("expected capability %s, got %s", producer.capability, result.Capability)
	}
	if result.FrameInterval != 2 {
		t.Errorf("expected interval 2, got %d", result.FrameInterval)
	}
	if result.Delivered != 14 || result.Dropped != 1 || result.Drawn != 15 || result.Ticks != 30 {
		t.Errorf("unexpected counts %+v", result)
	}
	if result.Elapsed < 20*time.Millisecond {
		t.Errorf("expected run to last the duration, got %s", result.Elapsed)
	}
	if result.Interrupted {
		t.Error("expected a completed run")
	}
}

func TestOrchestrator_RunCancelled(t *testing.T) {
	producer := &mockProducer{}
	o := New(producer, nil, logger.NewNoop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan RunResult, 1)
	go func() {
		result, _ := o.Run(ctx, Config{})
		done <- result
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case result := <-done:
		if !result.Interrupted {
			t.Error("expected run to be marked interrupted")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if producer.stops != 1 {
		t.Errorf("expected StopAnimation once, got %d", producer.stops)
	}
}

// failingMotion stops with an error of its own.
type failingMotion struct {
	err error
}

func (m failingMotion) Run(ctx context.Context) error {
	return m.err
}

func TestOrchestrator_MotionErrors(t *testing.T) {
	tests := []struct {
		name    string
		motion  MotionSource
		wantLog string
	}{
		{name: "failure is logged", motion: failingMotion{err: errors.New("sensor unplugged")}, wantLog: "sensor unplugged"},
		{name: "cancellation is quiet", motion: newMockMotion()},
		{name: "deadline is quiet", motion: failingMotion{err: context.DeadlineExceeded}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			log := logger.NewConsoleTo(ports.LevelWarn, &out, &errOut)
			o := New(&mockProducer{}, tt.motion, log)

			if _, err := o.Run(context.Background(), Config{Duration: 10 * time.Millisecond, FrameInterval: 1}); err != nil {
				t.Fatalf("Run failed: %v", err)
			}

			logged := out.String() + errOut.String()
			if tt.wantLog == "" {
				if logged != "" {
					t.Errorf("expected no warnings, got %q", logged)
				}
				return
			}
			if !strings.Contains(logged, tt.wantLog) {
				t.Errorf("expected log to mention %q, got %q", tt.wantLog, logged)
			}
		})
	}
}

func TestOrchestrator_NegotiateError(t *testing.T) {
	producer := &mockProducer{negotiateErr: ports.ErrSinkRejected}
	o := New(producer, nil, logger.NewNoop())

	_, err := o.Run(context.Background(), Config{Duration: time.Millisecond})
	if !errors.Is(err, ports.ErrSinkRejected) {
		t.Fatalf("expected ErrSinkRejected, got %v", err)
	}
	if producer.starts != 0 {
		t.Error("expected no start after failed negotiation")
	}
}

func TestOrchestrator_StartError(t *testing.T) {
	producer := &mockProducer{startErr: ports.ErrSurfaceUnavailable}
	motion := newMockMotion()
	o := New(producer, motion, logger.NewNoop())

	_, err := o.Run(context.Background(), Config{Duration: time.Second})
	if !errors.Is(err, ports.ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
	select {
	case <-motion.stopped:
	case <-time.After(time.Second):
		t.Error("expected motion source stopped after failed start")
	}
	if producer.stops != 0 {
		t.Errorf("expected no stop for a failed start, got %d", producer.stops)
	}
}

func TestOrchestrator_IntervalUpdates(t *testing.T) {
	producer := &mockProducer{}
	updates := make(chan int)
	o := New(producer, nil, logger.NewNoop()).WithIntervalUpdates(updates)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan RunResult, 1)
	go func() {
		result, _ := o.Run(ctx, Config{FrameInterval: 1})
		done <- result
	}()

	updates <- 3
	updates <- 0
	close(updates)
	cancel()

	result := <-done
	want := []int{1, 3, 1}
	if len(producer.intervals) != len(want) {
		t.Fatalf("expected intervals %v, got %v", want, producer.intervals)
	}
	for i := range want {
		if producer.intervals[i] != want[i] {
			t.Errorf("interval %d: expected %d, got %d", i, want[i], producer.intervals[i])
		}
	}
	if result.FrameInterval != 1 {
		t.Errorf("expected final interval 1, got %d", result.FrameInterval)
	}
}

func TestRunResult_EffectiveFrameRate(t *testing.T) {
	r := RunResult{Delivered: 60, Elapsed: 2 * time.Second}
	if got := r.EffectiveFrameRate(); got != 30 {
		t.Errorf("expected 30, got %v", got)
	}
	if got := (RunResult{}).EffectiveFrameRate(); got != 0 {
		t.Errorf("expected 0 for zero elapsed, got %v", got)
	}
}
