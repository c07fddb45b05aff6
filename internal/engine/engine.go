// Package engine orchestrates the editor's state: period selection,
// optimistic mutation with rollback, draft promotion and the aggregate
// post count. It is a pure state machine; the network half of every
// mutation is driven by the caller, which feeds results back through
// the Resolve/Fail methods.
package engine

import (
	"time"

	"github.com/pullerize/postcal/internal/api"
	"github.com/pullerize/postcal/internal/model"
	"github.com/pullerize/postcal/internal/period"
	"github.com/pullerize/postcal/internal/store"
)

// Engine owns the in-memory editing state for one project view.
// Single-writer; all methods are called from the UI loop.
type Engine struct {
	Store *store.PostStore

	project model.Project
	periods []model.Period
	active  int // index into periods, -1 when the project has no schedule

	// Per-post request sequence. A resolution or failure whose token no
	// longer matches is stale and discarded: the last request issued
	// wins.
	seq map[int64]uint64

	lastPushed int
	pushed     bool
}

// New creates an engine for the given project and computes its period
// partition from the project start date.
func New(project model.Project) *Engine {
	e := &Engine{
		Store:  store.New(),
		active: -1,
		seq:    make(map[int64]uint64),
	}
	e.SetProject(project)
	return e
}

// Project returns the current project info
func (e *Engine) Project() model.Project {
	return e.project
}

// SetProject replaces the project info. The partition is recomputed
// only when the start date changed; an end date change leaves it alone.
func (e *Engine) SetProject(p model.Project) {
	startChanged := !sameDate(e.project.StartDate, p.StartDate)
	e.project = p
	if !startChanged && e.periods != nil {
		return
	}
	e.periods = period.ForProject(&p)
	if len(e.periods) == 0 {
		e.active = -1
		return
	}
	if e.active < 0 || e.active >= len(e.periods) {
		e.active = 0
	}
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return model.SameDay(*a, *b)
}

// Periods returns the twelve project months, or nil when the project
// has no start date.
func (e *Engine) Periods() []model.Period {
	return e.periods
}

// ActiveIndex returns the index of the active period, -1 if none
func (e *Engine) ActiveIndex() int {
	return e.active
}

// ActivePeriod returns the active period
func (e *Engine) ActivePeriod() (model.Period, bool) {
	if e.active < 0 || e.active >= len(e.periods) {
		return model.Period{}, false
	}
	return e.periods[e.active], true
}

// SetActiveIndex switches the active period
func (e *Engine) SetActiveIndex(i int) bool {
	if i < 0 || i >= len(e.periods) {
		return false
	}
	e.active = i
	return true
}

// ActivateForDate switches the active period to the one containing d,
// so the editor follows a post across period boundaries instead of
// hiding it. Returns true if the active period changed.
func (e *Engine) ActivateForDate(d time.Time) bool {
	p, ok := period.ForDate(e.periods, d)
	if !ok || p.Index-1 == e.active {
		return false
	}
	e.active = p.Index - 1
	return true
}

// ActivateForToday selects the period containing today, defaulting to
// the first period outside the project year.
func (e *Engine) ActivateForToday(today time.Time) {
	if p, ok := period.ForDate(e.periods, today); ok {
		e.active = p.Index - 1
	} else if len(e.periods) > 0 {
		e.active = 0
	}
}

// StagedUpdate is the token for an in-flight committed-post update. It
// carries the pre-call snapshot for rollback and the sequence number
// used to discard out-of-order completions.
type StagedUpdate struct {
	PostID int64
	Seq    uint64
	Prev   model.Post
	Input  api.PostInput
}

// StageUpdate applies a field change to a committed post optimistically
// and returns the staged token the caller sends to the backend. When
// the mutation moves the post's date into another period the active
// period follows immediately.
func (e *Engine) StageUpdate(id int64, mutate func(*model.Post)) (StagedUpdate, bool) {
	prev, ok := e.Store.Apply(id, mutate)
	if !ok {
		return StagedUpdate{}, false
	}
	next, _ := e.Store.Get(id)

	e.seq[id]++
	staged := StagedUpdate{
		PostID: id,
		Seq:    e.seq[id],
		Prev:   prev,
		Input: api.PostInput{
			Date:        next.Date,
			PostsPerDay: next.PostsPerDay,
			Type:        next.Type,
			Status:      next.Status,
		},
	}

	if next.Date != nil && !sameDate(prev.Date, next.Date) {
		e.ActivateForDate(*next.Date)
	}
	return staged, true
}

// stale reports whether a newer request for the same post has been
// issued since this one.
func (e *Engine) stale(s StagedUpdate) bool {
	return e.seq[s.PostID] != s.Seq
}

// ResolveUpdate replaces the optimistic entry with the server's
// representation. Stale resolutions are dropped.
func (e *Engine) ResolveUpdate(s StagedUpdate, server model.Post) bool {
	if e.stale(s) {
		return false
	}
	return e.Store.Replace(server)
}

// FailUpdate rolls the affected entry back to its pre-call snapshot.
// If a newer request's optimistic state is already in place it is left
// alone.
func (e *Engine) FailUpdate(s StagedUpdate) bool {
	if e.stale(s) {
		return false
	}
	return e.Store.Restore(s.Prev)
}

// AddDraft appends a fresh empty draft
func (e *Engine) AddDraft() store.Draft {
	return e.Store.AddDraft()
}

// UpdateDraft mutates a draft locally. Drafts never hit the network
// through this path; assigning a date goes through StageCreate instead.
func (e *Engine) UpdateDraft(key string, mutate func(*model.Post)) bool {
	return e.Store.UpdateDraft(key, mutate)
}

// RemoveDraft deletes a draft locally
func (e *Engine) RemoveDraft(key string) bool {
	return e.Store.RemoveDraft(key)
}

// StageCreate prepares the create request for a draft that just gained
// a date. The draft itself is left untouched so a failed create loses
// nothing; the active period follows the new date right away.
func (e *Engine) StageCreate(key string, date time.Time) (api.PostInput, bool) {
	d, ok := e.Store.Draft(key)
	if !ok {
		return api.PostInput{}, false
	}
	day := model.DateOnly(date)
	e.ActivateForDate(day)
	return api.PostInput{
		Date:        &day,
		PostsPerDay: d.Post.PostsPerDay,
		Type:        d.Post.Type,
		Status:      d.Post.Status,
	}, true
}

// ResolveCreate promotes a draft: the draft row is removed and the
// server-assigned post inserted, guarding against duplicate ids.
func (e *Engine) ResolveCreate(key string, server model.Post) bool {
	if !e.Store.RemoveDraft(key) {
		return false
	}
	return e.Store.Insert(server)
}

// ResolveDelete removes a committed post after the server confirmed the
// deletion. There is no optimistic removal; a failed delete leaves the
// list unchanged.
func (e *Engine) ResolveDelete(id int64) bool {
	return e.Store.Remove(id)
}
