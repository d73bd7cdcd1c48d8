package sqlite

import (
	"time"
)

// FormatTimeForDB formats a time.Time value as RFC3339 string in UTC for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimeFromDB parses an RFC3339 formatted time string from the database
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// FormatBoolForDB stores booleans as 0/1 integers
func FormatBoolForDB(b bool) int {
	if b {
		return 1
	}
	return 0
}
