// Package poller watches a handoff session until the phone side acts on it.
package poller

import (
	"context"
	"log"
	"time"

	"pos-kiosk-demo/internal/model"
)

// DefaultInterval is the polling period when none is configured.
const DefaultInterval = 2 * time.Second

// Flags is the monotonic kiosk-side view of a session. Once a flag is true it stays true.
type Flags struct {
	Scanned         bool
	HandoffComplete bool
	AppReady        bool
}

// Merge folds a fetched status into f without ever clearing a flag.
func (f Flags) Merge(s model.Status) Flags {
	return Flags{
		Scanned:         f.Scanned || s.Scanned,
		HandoffComplete: f.HandoffComplete || s.HandoffComplete,
		AppReady:        f.AppReady || s.AppReady,
	}
}

// StatusFetcher is the part of Client the poller needs.
type StatusFetcher interface {
	Status(ctx context.Context, sessionID string) (model.Status, error)
}

// Poller repeatedly fetches session status at a fixed interval.
type Poller struct {
	fetcher  StatusFetcher
	interval time.Duration
}

// New creates a poller. A non-positive interval uses DefaultInterval.
func New(fetcher StatusFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{fetcher: fetcher, interval: interval}
}

// Interval returns the polling period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Run polls once immediately and then every interval until ctx is cancelled.
// onChange is called from Run's goroutine whenever the merged flags change.
// Fetch errors are dropped and retried on the next tick. An empty sessionID
// returns immediately.
func (p *Poller) Run(ctx context.Context, sessionID string, onChange func(Flags)) {
	if sessionID == "" {
		return
	}

	var flags Flags
	tick := func() {
		status, err := p.fetcher.Status(ctx, sessionID)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("poll %s: %v", sessionID, err)
			return
		}
		if merged := flags.Merge(status); merged != flags {
			flags = merged
			onChange(flags)
		}
	}

	tick()

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			tick()
			timer.Reset(p.interval)
		}
	}
}

// Watch runs the poller in its own goroutine and delivers flag changes on the
// returned channel, which is closed once ctx is cancelled. Slow readers only
// ever see the latest flags.
func (p *Poller) Watch(ctx context.Context, sessionID string) <-chan Flags {
	out := make(chan Flags, 1)
	go func() {
		defer close(out)
		p.Run(ctx, sessionID, func(f Flags) {
			select {
			case <-out:
			default:
			}
			select {
			case out <- f:
			case <-ctx.Done():
			}
		})
	}()
	return out
}
