package netutil

import "time"

// SanitizeTimeout clamps d: negative values fall back, values below min are raised to min.
// Zero is returned as is and means "no timeout" to callers that support it.
func SanitizeTimeout(d, min, fallback time.Duration) time.Duration {
	if d < 0 {
		return fallback
	}
	if d == 0 {
		return 0
	}
	if min > 0 && d < min {
		return min
	}
	return d
}
