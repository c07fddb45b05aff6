package model

import (
	"time"
)

// Project represents a client project whose lifetime is partitioned
// into twelve anchored project months
type Project struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	PostsCount int        `json:"posts_count"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// AnchorDay returns the day-of-month all period boundaries are anchored
// to, or 0 if the project has no start date yet.
func (p *Project) AnchorDay() int {
	if p.StartDate == nil {
		return 0
	}
	return p.StartDate.Day()
}

// HasSchedule returns true once the project can be partitioned
func (p *Project) HasSchedule() bool {
	return p.StartDate != nil
}
