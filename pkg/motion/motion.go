// Package motion holds orientation input for the render loop.
//
// Input sources push 3-axis acceleration samples at their own cadence; the
// render loop reads the most recent one at the start of every produced tick.
package motion

import (
	"math"
	"sync"
)

// Sample is a 3-axis acceleration reading in units of g.
type Sample struct {
	X float64
	Y float64
	Z float64
}

// IsZero reports whether the sample carries no direction.
func (s Sample) IsZero() bool {
	return s.X == 0 && s.Y == 0 && s.Z == 0
}

// Magnitude returns the length of the acceleration vector.
func (s Sample) Magnitude() float64 {
	return math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
}

// Holder keeps the latest sample. Writes overwrite in place; readers get a
// copy and never observe a partially written sample.
type Holder struct {
	mu     sync.RWMutex
	sample Sample
	writes uint64
}

// NewHolder creates a Holder with an initial sample.
func NewHolder(initial Sample) *Holder {
	return &Holder{sample: initial}
}

// Set replaces the held sample.
func (h *Holder) Set(s Sample) {
	h.mu.Lock()
	h.sample = s
	h.writes++
	h.mu.Unlock()
}

// Latest returns the most recently written sample.
func (h *Holder) Latest() Sample {
	if h == nil {
		return Sample{}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sample
}

// Writes returns the number of Set calls so far.
func (h *Holder) Writes() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.writes
}

// DefaultFilterFactor weights a new reading against the running value.
const DefaultFilterFactor = 0.1

// LowPass smooths raw accelerometer readings so the rendered scene follows
// gravity without jitter. The zero value uses DefaultFilterFactor.
// A LowPass is not safe for concurrent use.
type LowPass struct {
	Factor float64

	value  Sample
	primed bool
}

// Apply folds a raw reading into the filter and returns the filtered value.
// The first reading passes through unchanged.
func (f *LowPass) Apply(raw Sample) Sample {
	k := f.Factor
	if k <= 0 || k > 1 {
		k = DefaultFilterFactor
	}
	if !f.primed {
		f.value = raw
		f.primed = true
		return raw
	}
	f.value = Sample{
		X: raw.X*k + f.value.X*(1-k),
		Y: raw.Y*k + f.value.Y*(1-k),
		Z: raw.Z*k + f.value.Z*(1-k),
	}
	return f.value
}

// Reset clears the filter state.
func (f *LowPass) Reset() {
	f.value = Sample{}
	f.primed = false
}
