// Package calendar implements the bounded day-grid and popup placement
// math behind the date picker.
package calendar

import (
	"time"

	"github.com/pullerize/postcal/internal/model"
)

// GridSize is always six full weeks
const GridSize = 42

// Cell is a single day in the picker grid
type Cell struct {
	Date      time.Time
	InMonth   bool // belongs to the visible month
	InRange   bool // selectable within [min, max]
	Selected  bool
	Today     bool
	RangeEdge bool // equals min or max exactly
}

// Grid generates the 42-cell day grid for the month containing visible.
// Weeks start on Monday; the first cell is the Monday on or before the
// 1st of the visible month. All stepping is done on UTC-normalized
// dates so the iteration never drifts across DST boundaries. min and
// max are inclusive bounds; either may be nil for an open bound.
func Grid(visible time.Time, selected, min, max *time.Time, today time.Time) []Cell {
	first := time.Date(visible.Year(), visible.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7 // Monday == 0
	start := first.AddDate(0, 0, -offset)

	cells := make([]Cell, 0, GridSize)
	for i := 0; i < GridSize; i++ {
		day := start.AddDate(0, 0, i)
		cells = append(cells, Cell{
			Date:      day,
			InMonth:   day.Month() == visible.Month(),
			InRange:   inRange(day, min, max),
			Selected:  selected != nil && model.SameDay(day, *selected),
			Today:     model.SameDay(day, today),
			RangeEdge: isEdge(day, min) || isEdge(day, max),
		})
	}
	return cells
}

func inRange(day time.Time, min, max *time.Time) bool {
	if min != nil && model.DayBefore(day, *min) {
		return false
	}
	if max != nil && model.DayBefore(*max, day) {
		return false
	}
	return true
}

func isEdge(day time.Time, bound *time.Time) bool {
	return bound != nil && model.SameDay(day, *bound)
}

// NextMonth returns the first of the month after visible. Navigation
// moves the visible month only; the selection is untouched.
func NextMonth(visible time.Time) time.Time {
	return time.Date(visible.Year(), visible.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// PrevMonth returns the first of the month before visible.
func PrevMonth(visible time.Time) time.Time {
	return time.Date(visible.Year(), visible.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
}
