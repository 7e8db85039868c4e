package timeutil

import "time"

// Clock is a time source. Code that computes ages takes one so tests can
// pin "today".
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock. Results are converted to UTC.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f().UTC() }

// System is the wall clock.
var System Clock = ClockFunc(time.Now)

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Today is midnight UTC of c's current date.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
