// Package sweep runs the periodic expiry sweep that physically removes
// entries whose expiry time has passed. Reads already filter expired
// entries lazily; the sweeper keeps the database from accumulating
// dead rows. It runs independently of the clipboard polling loop.
package sweep

import (
	"context"
	"time"
)

// Target is the single operation the sweeper drives. The history
// engine satisfies it.
type Target interface {
	SweepExpired()
}

// Sweeper periodically invokes the target's expiry sweep.
type Sweeper struct {
	target   Target
	interval time.Duration
}

// NewSweeper creates a sweeper. A non-positive interval defaults to
// one minute.
func NewSweeper(target Target, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{target: target, interval: interval}
}

// Run sweeps once immediately and then on every tick until ctx is
// cancelled. Each sweep runs to completion; there is no per-sweep
// cancellation.
func (s *Sweeper) Run(ctx context.Context) {
	s.target.SweepExpired()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.target.SweepExpired()
		}
	}
}
