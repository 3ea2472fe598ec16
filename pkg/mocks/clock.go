package mocks

import (
	"sync"
	"time"

	"github.com/user/teapotcast/pkg/ports"
)

// Clock is a manually driven implementation of ports.Clock. Each Tick
// advances time by the ticker period and hands the tick to the receiver.
type Clock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*Ticker
}

// NewClock creates a Clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) NewTicker(d time.Duration) ports.Ticker {
	t := &Ticker{
		Period:  d,
		c:       make(chan time.Time),
		stopped: make(chan struct{}),
	}
	c.mu.Lock()
	c.tickers = append(c.tickers, t)
	c.mu.Unlock()
	return t
}

// Tickers returns the number of tickers created so far.
func (c *Clock) Tickers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

// Tick fires the most recent ticker. It blocks until the receiver takes the
// tick and returns false if the ticker is stopped or none exists.
func (c *Clock) Tick() bool {
	c.mu.Lock()
	if len(c.tickers) == 0 {
		c.mu.Unlock()
		return false
	}
	t := c.tickers[len(c.tickers)-1]
	c.now = c.now.Add(t.Period)
	now := c.now
	c.mu.Unlock()
	return t.fire(now)
}

// TickN fires n ticks and returns how many were received.
func (c *Clock) TickN(n int) int {
	fired := 0
	for i := 0; i < n; i++ {
		if c.Tick() {
			fired++
		}
	}
	return fired
}

var _ ports.Clock = (*Clock)(nil)

// Ticker is the ports.Ticker handed out by Clock. Its channel is unbuffered.
type Ticker struct {
	Period time.Duration

	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func (t *Ticker) C() <-chan time.Time {
	return t.c
}

func (t *Ticker) Stop() {
	t.once.Do(func() { close(t.stopped) })
}

// Stopped reports whether Stop was called.
func (t *Ticker) Stopped() bool {
	select {
	case <-t.stopped:
		return true
	default:
		return false
	}
}

func (t *Ticker) fire(now time.Time) bool {
	select {
	case <-t.stopped:
		return false
	default:
	}
	select {
	case t.c <- now:
		return true
	case <-t.stopped:
		return false
	}
}

var _ ports.Ticker = (*Ticker)(nil)
