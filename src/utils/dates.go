package utils

import "time"

const ShortDashDateLayout = "2006-01-02"

// ParseDate parses a date-only value in the dashed layout.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(ShortDashDateLayout, value)
}

// BeginningOfDay truncates t to midnight in its own location.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's day, used for inclusive
// date-range filters.
func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).Add(24*time.Hour - time.Nanosecond)
}
