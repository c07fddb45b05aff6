package views

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pullerize/postcal/internal/calendar"
	"github.com/pullerize/postcal/internal/model"
	"github.com/pullerize/postcal/internal/ui/theme"
)

// Rendered popup footprint, used for viewport placement
const (
	PickerWidth  = 25
	PickerHeight = 10
)

// DatePicker is the popup date selector. It is bounded to an inclusive
// [min, max] range; days outside the range are shown but inert.
type DatePicker struct {
	cursor   time.Time // focused day; its month is the visible month
	selected *time.Time
	min, max *time.Time
}

// NewDatePicker opens a picker focused on the selected date, or on
// today clamped into the allowed range when nothing is selected yet.
func NewDatePicker(selected, min, max *time.Time, today time.Time) DatePicker {
	cursor := model.DateOnly(today)
	if selected != nil {
		cursor = model.DateOnly(*selected)
	} else {
		if min != nil && model.DayBefore(cursor, *min) {
			cursor = model.DateOnly(*min)
		}
		if max != nil && model.DayBefore(*max, cursor) {
			cursor = model.DateOnly(*max)
		}
	}
	return DatePicker{cursor: cursor, selected: selected, min: min, max: max}
}

// Move shifts the focused day. The visible month follows the cursor;
// the selected date is untouched.
func (d *DatePicker) Move(days int) {
	d.cursor = d.cursor.AddDate(0, 0, days)
}

// MoveMonth pages the visible month by one in either direction. The
// cursor keeps its day-of-month, clamped to the target month's length,
// so paging from Jan 31 lands on Feb 29 instead of normalizing into
// March. The selected date is untouched.
func (d *DatePicker) MoveMonth(delta int) {
	month := calendar.NextMonth(d.cursor)
	if delta < 0 {
		month = calendar.PrevMonth(d.cursor)
	}
	day := d.cursor.Day()
	if last := month.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	d.cursor = time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
}

// Cursor returns the focused day
func (d DatePicker) Cursor() time.Time {
	return d.cursor
}

// CanSelect reports whether the focused day is inside the allowed
// range. Selecting an out-of-range day is a no-op.
func (d DatePicker) CanSelect() bool {
	if d.min != nil && model.DayBefore(d.cursor, *d.min) {
		return false
	}
	if d.max != nil && model.DayBefore(*d.max, d.cursor) {
		return false
	}
	return true
}

// View renders the month grid
func (d DatePicker) View(today time.Time) string {
	s := theme.Current.Styles

	var lines []string
	lines = append(lines, lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Current.Theme.Primary).
		Width(21).
		Align(lipgloss.Center).
		Render(d.cursor.Format("January 2006")))
	lines = append(lines, s.Label.Render("Mo Tu We Th Fr Sa Su"))

	cells := calendar.Grid(d.cursor, d.selected, d.min, d.max, today)
	var week []string
	for i, c := range cells {
		week = append(week, d.renderCell(c))
		if (i+1)%7 == 0 {
			lines = append(lines, strings.Join(week, " "))
			week = nil
		}
	}

	return s.Panel.Render(strings.Join(lines, "\n"))
}

func (d DatePicker) renderCell(c calendar.Cell) string {
	s := theme.Current.Styles
	label := c.Date.Format("_2")

	style := s.DayNormal
	switch {
	case !c.InRange:
		style = s.DayDisabled
	case !c.InMonth:
		style = s.DayOutside
	case c.RangeEdge:
		style = s.DayEdge
	}
	if c.Today {
		style = s.DayToday
	}
	if c.Selected {
		style = s.DaySelected
	}
	if model.SameDay(c.Date, d.cursor) {
		style = style.Background(theme.Current.Theme.Highlight).Bold(true)
	}
	return style.Render(label)
}
