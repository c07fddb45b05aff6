package model

import (
	"time"
)

// Status represents the stored lifecycle state of a post
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusApproved   Status = "approved"
	StatusCancelled  Status = "cancelled"
	StatusOverdue    Status = "overdue"
)

// PostType represents the content format of a post
type PostType string

const (
	PostTypeVideo    PostType = "video"
	PostTypeStatic   PostType = "static"
	PostTypeCarousel PostType = "carousel"
)

// PostTypes lists all content formats in cycling order.
func PostTypes() []PostType {
	return []PostType{PostTypeVideo, PostTypeStatic, PostTypeCarousel}
}

// Post represents a scheduled content post
type Post struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Date        *time.Time `json:"date,omitempty"` // nil while the row is an undated draft
	PostsPerDay int        `json:"posts_per_day"`
	Type        PostType   `json:"post_type"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsDraft returns true if the post has not been persisted yet
func (p *Post) IsDraft() bool {
	return p.ID == 0
}

// EffectiveStatus derives the status shown to the user. Approved and
// cancelled are terminal and returned unchanged. Anything else dated
// strictly before today displays as overdue. The stored status is never
// mutated here; overdue is presentation-only unless the user picks it
// explicitly.
func (p *Post) EffectiveStatus(today time.Time) Status {
	if p.Status == StatusApproved || p.Status == StatusCancelled {
		return p.Status
	}
	if p.Date != nil && DayBefore(*p.Date, today) {
		return StatusOverdue
	}
	return StatusInProgress
}

// StatusOptions returns the statuses the editor offers for a post dated
// on the given date. Past dates offer overdue instead of in_progress.
func StatusOptions(date *time.Time, today time.Time) []Status {
	if date != nil && DayBefore(*date, today) {
		return []Status{StatusOverdue, StatusApproved, StatusCancelled}
	}
	return []Status{StatusInProgress, StatusApproved, StatusCancelled}
}

// ValidStatus reports whether s is one of the known stored statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusInProgress, StatusApproved, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// ValidPostType reports whether t is one of the known content formats.
func ValidPostType(t PostType) bool {
	switch t {
	case PostTypeVideo, PostTypeStatic, PostTypeCarousel:
		return true
	}
	return false
}
