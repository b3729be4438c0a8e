// Package clock provides the wall-clock implementation of ports.Clock.
package clock

import (
	"time"

	"gearscan/internal/ports"
)

// System is the real wall clock
type System struct{}

var _ ports.Clock = System{}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}

// NewTicker returns a ticker backed by time.Ticker
func (System) NewTicker(d time.Duration) ports.Ticker {
	return &systemTicker{ticker: time.NewTicker(d)}
}

type systemTicker struct {
	ticker *time.Ticker
}

func (t *systemTicker) C() <-chan time.Time {
	return t.ticker.C
}

func (t *systemTicker) Stop() {
	t.ticker.Stop()
}
