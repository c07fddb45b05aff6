package model

import (
	"time"
)

// Period is one of twelve contiguous project months, anchored to the
// project's start day-of-month rather than the calendar's 1st. Derived,
// never persisted.
type Period struct {
	Index     int // 1..12
	Label     string
	StartDate time.Time
	EndDate   time.Time
}

// Contains reports whether d falls inside the period, inclusive of both
// boundary dates. Comparison is by UTC calendar date.
func (p Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}

// Range renders the period's date range for display
func (p Period) Range() string {
	return p.StartDate.Format("Jan 2") + " – " + p.EndDate.Format("Jan 2, 2006")
}
