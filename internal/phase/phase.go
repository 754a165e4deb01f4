package phase

import (
	"context"
	"time"
)

// State is a hackathon's temporal state relative to now.
type State string

const (
	Pending State = "pending"
	Live    State = "live"
	Ended   State = "ended"
)

// Info is a computed phase snapshot. Remaining counts down to the start while
// pending and to the end while live; it is zero once ended.
type Info struct {
	State     State
	Remaining time.Duration
}

// Compute derives the phase from the event window. Boundaries are inclusive
// on the live side: now == start and now == end are both live.
func Compute(now, start, end time.Time) Info {
	if now.Before(start) {
		return Info{State: Pending, Remaining: start.Sub(now)}
	}
	if !now.After(end) {
		return Info{State: Live, Remaining: end.Sub(now)}
	}
	return Info{State: Ended}
}

// Clock re-evaluates a hackathon's phase periodically so countdowns stay
// accurate. Interval defaults to one second.
type Clock struct {
	Interval time.Duration
}

// Run delivers an Info immediately and then once per interval, stopping when
// ctx is cancelled or after the ended snapshot has been delivered. It blocks
// until it stops, so callers run it in a goroutine tied to the consuming
// view's lifetime.
func (c *Clock) Run(ctx context.Context, start, end time.Time, fn func(Info)) {
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	info := Compute(time.Now(), start, end)
	fn(info)
	if info.State == Ended {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			info := Compute(now, start, end)
			fn(info)
			if info.State == Ended {
				return
			}
		}
	}
}
