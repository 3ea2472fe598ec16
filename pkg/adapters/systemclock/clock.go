// Package systemclock provides the wall-clock implementation of ports.Clock.
package systemclock

import (
	"time"

	"github.com/user/teapotcast/pkg/ports"
)

// Clock implements ports.Clock with the time package.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time.
func (c *Clock) Now() time.Time {
	return time.Now()
}

// NewTicker starts a ticker firing every d. Ticks are dropped, not queued,
// when the receiver falls behind.
func (c *Clock) NewTicker(d time.Duration) ports.Ticker {
	return &ticker{t: time.NewTicker(d)}
}

type ticker struct {
	t *time.Ticker
}

func (t *ticker) C() <-chan time.Time {
	return t.t.C
}

func (t *ticker) Stop() {
	t.t.Stop()
}

// Ensure Clock implements ports.Clock
var _ ports.Clock = (*Clock)(nil)
