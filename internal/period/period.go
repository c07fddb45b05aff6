// Package period partitions a project year into twelve project months
// anchored to the project's start day-of-month.
package period

import (
	"fmt"
	"time"

	"github.com/pullerize/postcal/internal/model"
)

// anchorIn returns the anchor date for the given calendar month (which
// may be normalized, e.g. month 14 of 2024 is February 2025). When the
// anchor day exceeds the month's length (day 31 in April), the boundary
// clamps to the last day of the month, built as the day before the 1st
// of the following month so the result is always a valid date.
func anchorIn(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Compute partitions the year following start into twelve contiguous,
// non-overlapping periods. Period i begins at start's day-of-month in
// the i-th month after start and ends the day before period i+1
// begins; the last periods wrap into the following calendar year. Pure
// function of start's (year, month, day).
func Compute(start time.Time) []model.Period {
	day := start.Day()
	year, month := start.Year(), start.Month()

	periods := make([]model.Period, 0, 12)
	for i := 0; i < 12; i++ {
		s := anchorIn(year, month+time.Month(i), day)
		e := anchorIn(year, month+time.Month(i+1), day).AddDate(0, 0, -1)

		periods = append(periods, model.Period{
			Index:     i + 1,
			Label:     fmt.Sprintf("Month %d", i+1),
			StartDate: s,
			EndDate:   e,
		})
	}
	return periods
}

// ForProject computes the partition for a project, anchored to its
// start date. Returns nil when the project has no start date. Only a
// StartDate change invalidates the result; the partition does not
// depend on EndDate.
func ForProject(p *model.Project) []model.Period {
	if p == nil || !p.HasSchedule() {
		return nil
	}
	return Compute(model.DateOnly(*p.StartDate))
}

// ForDate finds the unique period whose [start, end] range contains d.
func ForDate(periods []model.Period, d time.Time) (model.Period, bool) {
	for _, p := range periods {
		if p.Contains(d) {
			return p, true
		}
	}
	return model.Period{}, false
}
