package query

import (
	"fmt"
	"time"
)

// Date range filter values.
const (
	RangeToday       = "today"
	RangeYesterday   = "yesterday"
	RangeThisWeek    = "thisWeek"
	RangeThisMonth   = "thisMonth"
	RangeLastMonth   = "lastMonth"
	RangeLast3Months = "last3Months"
)

// Window returns the inclusive start and exclusive end of a named date range
// evaluated at now, in now's location. A zero end means the range is open.
// Weeks start on Sunday.
func Window(name string, now time.Time) (start, end time.Time, err error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	switch name {
	case RangeToday:
		return today, time.Time{}, nil
	case RangeYesterday:
		return today.AddDate(0, 0, -1), today, nil
	case RangeThisWeek:
		return today.AddDate(0, 0, -int(today.Weekday())), time.Time{}, nil
	case RangeThisMonth:
		return monthStart, time.Time{}, nil
	case RangeLastMonth:
		return monthStart.AddDate(0, -1, 0), monthStart, nil
	case RangeLast3Months:
		return today.AddDate(0, -3, 0), time.Time{}, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown date range %q", name)
	}
}

// InWindow reports whether t falls in [start, end). A zero end is unbounded.
func InWindow(t, start, end time.Time) bool {
	if t.Before(start) {
		return false
	}
	return end.IsZero() || t.Before(end)
}
