package frame

import (
	"testing"
	"time"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, time.Second / 60},
		{1, time.Second},
		{120, time.Second / 120},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := Interval(tt.fps); got != tt.want {
			t.Errorf("Interval(%d) = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestFirstTickMeasuresFromStart(t *testing.T) {
	s := New(60, epoch)
	if !s.Due(epoch) {
		t.Error("first tick should be due at start")
	}
	dt, _ := s.Tick(epoch.Add(40 * time.Millisecond))
	if dt != 40*time.Millisecond {
		t.Errorf("first dt = %v, want 40ms", dt)
	}
}

func TestMinimumSpacing(t *testing.T) {
	for _, fps := range []int{1, 24, 30, 60, 144} {
		s := New(fps, epoch)
		now := epoch
		// Irregular frame costs, some longer than the interval.
		costs := []time.Duration{0, 3 * time.Millisecond, 50 * time.Millisecond, time.Second, 0}
		for i, cost := range costs {
			_, next := s.Tick(now)
			if next.Before(now.Add(time.Second / time.Duration(fps))) {
				t.Fatalf("fps=%d tick %d: next %v earlier than now+interval", fps, i, next)
			}
			if s.Due(next.Add(-time.Nanosecond)) {
				t.Fatalf("fps=%d tick %d: due before deadline", fps, i)
			}
			// The host wakes at the deadline or later.
			wake := next
			if late := now.Add(cost); late.After(wake) {
				wake = late
			}
			now = wake
		}
	}
}

func TestDtIsRealElapsed(t *testing.T) {
	s := New(60, epoch)
	s.Tick(epoch)
	gaps := []time.Duration{
		17 * time.Millisecond,
		250 * time.Millisecond,
		16*time.Millisecond + 666*time.Microsecond,
		2 * time.Second,
	}
	now := epoch
	for _, gap := range gaps {
		now = now.Add(gap)
		dt, _ := s.Tick(now)
		if dt != gap {
			t.Errorf("dt = %v, want %v", dt, gap)
		}
	}
	if s.Frames() != uint64(len(gaps)+1) {
		t.Errorf("Frames() = %d, want %d", s.Frames(), len(gaps)+1)
	}
}

func TestDtIndependentOfFPS(t *testing.T) {
	for _, fps := range []int{10, 60, 240} {
		s := New(fps, epoch)
		dt, _ := s.Tick(epoch.Add(123 * time.Millisecond))
		if dt != 123*time.Millisecond {
			t.Errorf("fps=%d: dt = %v, want 123ms", fps, dt)
		}
	}
}

func TestClockGoingBackwardsClampsDt(t *testing.T) {
	s := New(60, epoch)
	dt, _ := s.Tick(epoch.Add(-time.Second))
	if dt != 0 {
		t.Errorf("dt = %v, want 0", dt)
	}
}

func TestSystemClock(t *testing.T) {
	var c Clock = SystemClock{}
	a := c.Now()
	b := c.Now()
	if b.Before(a) {
		t.Error("SystemClock went backwards")
	}
}
