package timeutil

import "time"

// DateLayout is the calendar date format used on the wire (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// YearsBetween returns the number of whole years from `from` to `to`,
// counting a year only once its anniversary day has been reached.
// A Feb 29 anniversary is reached on Mar 1 in non-leap years.
// Returns 0 when to is before from.
func YearsBetween(from, to time.Time) int {
	fy, fm, fd := from.UTC().Date()
	ty, tm, td := to.UTC().Date()

	years := ty - fy
	if tm < fm || (tm == fm && td < fd) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// IsNotFutureUTC returns true when at is not after now, comparing in UTC.
// Zero values are treated as invalid and return false.
func IsNotFutureUTC(now, at time.Time) bool {
	if now.IsZero() || at.IsZero() {
		return false
	}
	return !at.UTC().After(now.UTC())
}
