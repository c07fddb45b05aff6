package ui

import (
	"time"
)

// RefreshTickMsg is sent once a second to redisplay time-dependent
// labels (overdue highlighting, days remaining). It carries the current
// time, performs no mutation and triggers no refetch.
type RefreshTickMsg struct {
	Time time.Time
}

// clearErrorMsg dismisses the surfaced error after its fixed timeout
type clearErrorMsg struct{}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
