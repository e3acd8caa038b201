// Package frame implements the fixed-rate frame scheduler: it measures real
// elapsed time between ticks and computes the earliest instant the next tick
// may start.
package frame

import "time"

// Clock supplies monotonic timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading,
// so subtraction is immune to wall clock adjustments.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Interval returns the target frame interval for fps. Non-positive fps
// yields 0, meaning no minimum spacing.
func Interval(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}

// Scheduler tracks frame timing. It is not safe for concurrent use; it is
// owned by the run loop.
type Scheduler struct {
	prev     time.Time
	interval time.Duration
	next     time.Time
	frames   uint64
}

// New creates a scheduler for fps frames per second. The first tick is
// measured against start.
func New(fps int, start time.Time) *Scheduler {
	return &Scheduler{
		prev:     start,
		interval: Interval(fps),
		next:     start,
	}
}

// Tick records a frame starting at now. It returns the time elapsed since
// the previous tick (or since start for the first tick) and the earliest
// instant at which the following tick may start.
//
// A late tick is never compensated: the next deadline is always measured
// from now, so slow frames delay later ones instead of being dropped.
func (s *Scheduler) Tick(now time.Time) (dt time.Duration, next time.Time) {
	dt = now.Sub(s.prev)
	if dt < 0 {
		dt = 0
	}
	s.next = now.Add(s.interval)
	s.prev = now
	s.frames++
	return dt, s.next
}

// Next returns the deadline computed by the last Tick, or the start instant
// before the first tick.
func (s *Scheduler) Next() time.Time { return s.next }

// Interval returns the target frame interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Frames returns the number of ticks so far.
func (s *Scheduler) Frames() uint64 { return s.frames }

// Due reports whether a tick may start at now.
func (s *Scheduler) Due(now time.Time) bool { return !now.Before(s.next) }
