// Package api defines the persistence collaborator the editor talks to,
// with a remote HTTP implementation and a local SQLite one.
package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pullerize/postcal/internal/model"
)

// ErrListUnsupported is returned by backends that cannot list a whole
// project's posts in one call; callers fall back to windowed fetches.
var ErrListUnsupported = errors.New("whole-project listing not supported")

// TransientError marks a network or storage failure on a mutating call.
// The caller rolls back any optimistic change, surfaces the message and
// does not retry.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a TransientError
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// PostInput carries the writable fields of a post across the boundary
type PostInput struct {
	Date        *time.Time
	PostsPerDay int
	Type        model.PostType
	Status      model.Status
}

// ProjectPatch is a partial update of project info. Nil fields are left
// untouched.
type ProjectPatch struct {
	PostsCount *int
	StartDate  *time.Time
	EndDate    *time.Time
}

// Backend is the persistence collaborator. Transport and auth
// mechanics live behind it; dates cross as UTC calendar dates.
type Backend interface {
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	UpdateProjectInfo(ctx context.Context, id int64, patch ProjectPatch) error
	ListPosts(ctx context.Context, projectID int64) ([]model.Post, error)
	// ListPostsWindow lists posts dated within [from, to] inclusive.
	ListPostsWindow(ctx context.Context, projectID int64, from, to time.Time) ([]model.Post, error)
	CreatePost(ctx context.Context, projectID int64, in PostInput) (*model.Post, error)
	UpdatePost(ctx context.Context, postID int64, in PostInput) (*model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

// monthWindow returns the calendar month containing d as an inclusive
// date range.
func monthWindow(d time.Time) (time.Time, time.Time) {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// FetchPeriodPosts loads the posts for a project period. It prefers the
// whole-project listing; when the backend does not offer one it fetches
// the two calendar-month windows the period spans and de-duplicates by
// id.
func FetchPeriodPosts(ctx context.Context, b Backend, projectID int64, p model.Period) ([]model.Post, error) {
	posts, err := b.ListPosts(ctx, projectID)
	if err == nil {
		return posts, nil
	}
	if !errors.Is(err, ErrListUnsupported) {
		return nil, err
	}

	startFrom, startTo := monthWindow(p.StartDate)
	endFrom, endTo := monthWindow(p.EndDate)

	first, err := b.ListPostsWindow(ctx, projectID, startFrom, startTo)
	if err != nil {
		return nil, err
	}
	if startFrom.Equal(endFrom) {
		return first, nil
	}
	second, err := b.ListPostsWindow(ctx, projectID, endFrom, endTo)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(first))
	merged := make([]model.Post, 0, len(first)+len(second))
	for _, post := range append(first, second...) {
		if seen[post.ID] {
			continue
		}
		seen[post.ID] = true
		merged = append(merged, post)
	}
	return merged, nil
}
