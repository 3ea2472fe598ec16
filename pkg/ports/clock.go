package ports

import "time"

// Ticker delivers ticks at a fixed period until stopped.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts time so the render loop can be driven by hand in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}
