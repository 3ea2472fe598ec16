package orchestrator

import (
	"time"

	"github.com/user/teapotcast/pkg/ports"
)

// RunResult contains the outcome of a run.
type RunResult struct {
	Capability    ports.Capability
	Elapsed       time.Duration
	FrameInterval int

	Ticks            uint64
	Drawn            uint64
	Delivered        uint64
	Dropped          uint64
	Rejected         uint64
	ReadbackFailures uint64

	// Interrupted is set when the parent context ended the run.
	Interrupted bool
}

// EffectiveFrameRate returns delivered frames per second of wall time.
func (r RunResult) EffectiveFrameRate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Delivered) / r.Elapsed.Seconds()
}
