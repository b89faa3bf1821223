package core

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey formats t as a zero-padded YYYY-MM-DD string in t's own location.
// The formatting must stay in local time: routing through UTC shifts the
// day near midnight for zones behind UTC.
func DateKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// ParseDateKey parses a YYYY-MM-DD key back into a local-midnight time.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// TodayKey returns the date key for now.
func TodayKey(now time.Time) string {
	return DateKey(now)
}

// TomorrowKey returns the date key one calendar day after now.
func TomorrowKey(now time.Time) string {
	return DateKey(now.AddDate(0, 0, 1))
}

// InMonth reports whether a date key falls inside the given year and month.
// Malformed keys are treated as outside every month.
func InMonth(key string, year int, month time.Month) bool {
	t, err := ParseDateKey(key)
	if err != nil {
		return false
	}
	return t.Year() == year && t.Month() == month
}
