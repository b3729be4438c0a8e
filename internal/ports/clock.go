package ports

import "time"

// Ticker delivers periodic ticks to the sync loop
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock abstracts wall time and timers so the timer-driven sync loop can be
// exercised deterministically in tests.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}
