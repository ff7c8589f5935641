package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD request field.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// ParseDateOr parses a YYYY-MM-DD field, falling back to the given default
// when the field is empty.
func ParseDateOr(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return Today(fallback), nil
	}
	return time.Parse(dateLayout, s)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Today truncates a timestamp to its calendar day.
func Today(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
