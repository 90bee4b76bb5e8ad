package ledger

import (
	"fmt"
	"time"
)

// DayOverflowPolicy decides what happens when a day-of-month does not exist
// in a target month (e.g. the 31st stepped into February).
type DayOverflowPolicy string

const (
	// DayOverflowSkip drops the occurrence.
	DayOverflowSkip DayOverflowPolicy = "skip"
	// DayOverflowClamp moves the occurrence to the last day of the month.
	DayOverflowClamp DayOverflowPolicy = "clamp"
)

func ParseDayOverflowPolicy(s string) (DayOverflowPolicy, error) {
	switch DayOverflowPolicy(s) {
	case DayOverflowSkip, DayOverflowClamp:
		return DayOverflowPolicy(s), nil
	case "":
		return DayOverflowSkip, nil
	}
	return "", fmt.Errorf("unknown day overflow policy %q", s)
}

// DateOf truncates t to a calendar date at midnight UTC, keeping the
// year/month/day as seen in t's own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InMonth places day into (year, month). ok is false when the day does not
// exist there and the policy is DayOverflowSkip.
func InMonth(year int, month time.Month, day int, policy DayOverflowPolicy) (time.Time, bool) {
	last := daysIn(year, month)
	if day > last {
		if policy != DayOverflowClamp {
			return time.Time{}, false
		}
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// AddMonths steps start forward by n calendar months, keeping the day of month.
func AddMonths(start time.Time, n int, policy DayOverflowPolicy) (time.Time, bool) {
	y, m, d := start.Date()
	// normalize month arithmetic through the first of the month so time.Date
	// never rolls the day over
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return InMonth(first.Year(), first.Month(), d, policy)
}

// MonthBounds returns [first day of month, first day of next month).
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// MonthsBetween counts whole calendar months from a's month to b's month.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
