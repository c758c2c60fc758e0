package dashboard

import (
	"context"
	"time"

	"github.com/seckatie/launchwatch/internal/core/spacex"
)

// ElapsedTicker re-derives the elapsed time since a launch once per
// interval. Every tick recomputes from the clock, so late ticks do not
// accumulate drift.
type ElapsedTicker struct {
	Since    time.Time
	Interval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewElapsedTicker ticks once per second.
func NewElapsedTicker(since time.Time) *ElapsedTicker {
	return &ElapsedTicker{Since: since, Interval: time.Second, Now: time.Now}
}

// Run calls fn immediately and then on every tick until ctx is done or fn
// returns an error. It returns ctx.Err() or the error from fn.
func (t *ElapsedTicker) Run(ctx context.Context, fn func(spacex.Elapsed) error) error {
	now := t.Now
	if now == nil {
		now = time.Now
	}
	interval := t.Interval
	if interval <= 0 {
		interval = time.Second
	}

	if err := fn(spacex.ElapsedSince(t.Since, now())); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := fn(spacex.ElapsedSince(t.Since, now())); err != nil {
				return err
			}
		}
	}
}
