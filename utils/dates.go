// utils/dates.go
package utils

import (
	"errors"
	"strconv"
	"time"
)

var (
	ErrBadClock       = errors.New("time must be in HH:MM 24-hour format")
	ErrInvertedWindow = errors.New("start time must be before end time")
)

// ParseClock converts an "HH:MM" 24-hour string to minutes since midnight.
// Cross-midnight windows are not supported anywhere in the app, so there is
// no wrap-around handling here.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrBadClock
	}
	h, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, ErrBadClock
	}
	m, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, ErrBadClock
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrBadClock
	}
	return h*60 + m, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent windows (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DateKey reduces a timestamp to its YYYY-MM-DD calendar date in UTC,
// matching how the mobile client compares ISO date strings by prefix.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// MonthKey returns the YYYY-MM prefix of a date key.
func MonthKey(dateKey string) string {
	if len(dateKey) < 7 {
		return dateKey
	}
	return dateKey[:7]
}

// ParseDate accepts either a full RFC3339 timestamp or a bare YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("date must be RFC3339 or YYYY-MM-DD")
	}
	return t, nil
}
