package motion

import (
	"math"
	"sync"
	"testing"
)

func TestHolder_SetLatest(t *testing.T) {
	h := NewHolder(Sample{Y: -1})

	if got := h.Latest(); got != (Sample{Y: -1}) {
		t.Errorf("expected initial sample, got %+v", got)
	}

	h.Set(Sample{X: 0.5, Y: -0.5, Z: 0.1})
	if got := h.Latest(); got != (Sample{X: 0.5, Y: -0.5, Z: 0.1}) {
		t.Errorf("expected updated sample, got %+v", got)
	}
	if h.Writes() != 1 {
		t.Errorf("expected 1 write, got %d", h.Writes())
	}
}

func TestHolder_NilLatest(t *testing.T) {
	var h *Holder
	if !h.Latest().IsZero() {
		t.Error("expected zero sample from nil holder")
	}
}

func TestHolder_ConcurrentWrites(t *testing.T) {
	h := NewHolder(Sample{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				h.Set(Sample{X: v, Y: v, Z: v})
			}
		}(float64(i))
	}
	for i := 0; i < 100; i++ {
		s := h.Latest()
		// Every write sets all three axes to the same value.
		if s.X != s.Y || s.Y != s.Z {
			t.Fatalf("observed torn sample %+v", s)
		}
	}
	wg.Wait()

	if h.Writes() != 800 {
		t.Errorf("expected 800 writes, got %d", h.Writes())
	}
}

func TestLowPass_Apply(t *testing.T) {
	f := &LowPass{Factor: 0.5}

	first := f.Apply(Sample{X: 1})
	if first != (Sample{X: 1}) {
		t.Errorf("expected first reading to pass through, got %+v", first)
	}

	second := f.Apply(Sample{X: 0})
	if math.Abs(second.X-0.5) > 1e-9 {
		t.Errorf("expected X=0.5, got %v", second.X)
	}

	f.Reset()
	if got := f.Apply(Sample{Z: -1}); got != (Sample{Z: -1}) {
		t.Errorf("expected reset filter to pass through, got %+v", got)
	}
}

func TestLowPass_DefaultFactor(t *testing.T) {
	var f LowPass
	f.Apply(Sample{})
	got := f.Apply(Sample{Y: 1})
	if math.Abs(got.Y-DefaultFilterFactor) > 1e-9 {
		t.Errorf("expected Y=%v, got %v", DefaultFilterFactor, got.Y)
	}
}

func TestSample_Magnitude(t *testing.T) {
	s := Sample{X: 3, Y: 4}
	if s.Magnitude() != 5 {
		t.Errorf("expected 5, got %v", s.Magnitude())
	}
}
