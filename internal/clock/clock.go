package clock

import "time"

// Clock is the single source of "now" for the calendar engine.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant until moved with Set or Advance.
type Fixed struct {
	FixedNow time.Time
}

func (f *Fixed) Now() time.Time {
	return f.FixedNow
}

func (f *Fixed) Set(now time.Time) {
	f.FixedNow = now
}

func (f *Fixed) Advance(d time.Duration) {
	f.FixedNow = f.FixedNow.Add(d)
}

// Today returns midnight of the clock's current day in its own location.
func Today(c Clock) time.Time {
	now := c.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
