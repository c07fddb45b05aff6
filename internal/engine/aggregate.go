package engine

import (
	"github.com/pullerize/postcal/internal/model"
	"github.com/pullerize/postcal/internal/store"
)

// Total recomputes the project's post count from scratch: the sum of
// posts-per-day over the committed posts of the active period plus the
// sum over every current draft, dated or not. Always a full
// recomputation, never an incremental patch, so rollbacks cannot leave
// drift behind. Idempotent for unchanged inputs.
func Total(periodPosts []model.Post, drafts []store.Draft) int {
	total := 0
	for _, p := range periodPosts {
		total += p.PostsPerDay
	}
	for _, d := range drafts {
		total += d.Post.PostsPerDay
	}
	return total
}

// Total returns the aggregate for the current active period
func (e *Engine) Total() int {
	p, ok := e.ActivePeriod()
	if !ok {
		return Total(nil, e.Store.Drafts())
	}
	return Total(e.Store.FilterByPeriod(p), e.Store.Drafts())
}

// TotalIfChanged returns the aggregate and whether it differs from the
// last value pushed upstream. Correctness does not depend on skipping
// the push; this only saves redundant network calls.
func (e *Engine) TotalIfChanged() (int, bool) {
	total := e.Total()
	if e.pushed && total == e.lastPushed {
		return total, false
	}
	return total, true
}

// MarkPushed records that the given total reached the persistence
// collaborator, and mirrors it into the local project info.
func (e *Engine) MarkPushed(total int) {
	e.lastPushed = total
	e.pushed = true
	e.project.PostsCount = total
}
