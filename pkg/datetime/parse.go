// Package datetime provides day-granularity date utilities.
//
// All dates handled by the application are time.Time values at midnight UTC.
// Helpers in this package both produce and expect that normal form.
package datetime

import (
	"time"

	"github.com/iwvelando/amortize/pkg/constants"
)

const (
	// DateLayout is the format expected in config files, CLI flags, and the
	// HTTP API, and is also the output date format.
	DateLayout = constants.DateLayout
)

// ParseDate parses a YYYY-MM-DD date string into a UTC midnight time.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, time.UTC)
}

// MustParseDate parses a YYYY-MM-DD date string and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseDate(dateStr string) time.Time {
	t, err := ParseDate(dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// Date returns the UTC midnight time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize strips the clock and location from t, returning the UTC midnight
// time for t's calendar day.
func Normalize(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar day at UTC midnight.
func Today() time.Time {
	return Normalize(time.Now().UTC())
}

// DaysInMonth returns the number of days in the given calendar month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last day of the given calendar month at UTC midnight.
func EndOfMonth(year int, month time.Month) time.Time {
	return Date(year, month, DaysInMonth(year, month))
}

// NextMonth steps one calendar month forward, clamping the day of month to the
// length of the target month. Unlike time.Time.AddDate, an overflowing day
// never spills into the following month: Jan 31 yields Feb 28 (or Feb 29 in a
// leap year), and stepping again from Feb 28 yields Mar 28.
func NextMonth(t time.Time) time.Time {
	year, month := t.Year(), t.Month()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	day := t.Day()
	if max := DaysInMonth(year, month); day > max {
		day = max
	}
	return Date(year, month, day)
}

// DaysBetween returns the number of whole days from a to b. Both arguments
// must be UTC midnight times; the result is negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
