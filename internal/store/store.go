// Package store holds the in-memory collection of committed posts and
// the parallel list of unsaved drafts the editor works against.
package store

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pullerize/postcal/internal/model"
)

// Draft is a locally created post that has not been persisted. It is
// addressed by a client-generated key, never by list position, so
// identity survives filtering and re-sorting.
type Draft struct {
	Key  string
	Post model.Post // ID is always 0
}

// Row is one display entry: either a committed post or a draft.
type Row struct {
	Post     model.Post
	DraftKey string // empty for committed rows
}

// IsDraft returns true for rows backed by an unsaved draft
func (r Row) IsDraft() bool {
	return r.DraftKey != ""
}

// PostStore keeps server-confirmed posts and unsaved drafts for the
// current view. Single-owner, single-writer; not safe for concurrent
// use.
type PostStore struct {
	committed []model.Post
	drafts    []Draft
}

// New creates an empty store
func New() *PostStore {
	return &PostStore{}
}

// SetCommitted replaces the committed collection with server truth
func (s *PostStore) SetCommitted(posts []model.Post) {
	s.committed = append(s.committed[:0:0], posts...)
}

// Committed returns a copy of the committed posts
func (s *PostStore) Committed() []model.Post {
	return append([]model.Post(nil), s.committed...)
}

// Drafts returns a copy of the draft list in insertion order
func (s *PostStore) Drafts() []Draft {
	return append([]Draft(nil), s.drafts...)
}

// Get returns the committed post with the given id
func (s *PostStore) Get(id int64) (model.Post, bool) {
	for _, p := range s.committed {
		if p.ID == id {
			return p, true
		}
	}
	return model.Post{}, false
}

// AddDraft appends a fresh empty draft and returns it. New drafts start
// undated with one post per day, video type, in progress.
func (s *PostStore) AddDraft() Draft {
	d := Draft{
		Key: uuid.New().String(),
		Post: model.Post{
			PostsPerDay: 1,
			Type:        model.PostTypeVideo,
			Status:      model.StatusInProgress,
		},
	}
	s.drafts = append(s.drafts, d)
	return d
}

// Draft returns the draft with the given key
func (s *PostStore) Draft(key string) (Draft, bool) {
	for _, d := range s.drafts {
		if d.Key == key {
			return d, true
		}
	}
	return Draft{}, false
}

// UpdateDraft mutates a draft in place. Local only; drafts never touch
// the network until they gain a date.
func (s *PostStore) UpdateDraft(key string, mutate func(*model.Post)) bool {
	for i := range s.drafts {
		if s.drafts[i].Key == key {
			mutate(&s.drafts[i].Post)
			s.drafts[i].Post.ID = 0 // drafts have no server identity
			return true
		}
	}
	return false
}

// RemoveDraft deletes a draft by key
func (s *PostStore) RemoveDraft(key string) bool {
	for i := range s.drafts {
		if s.drafts[i].Key == key {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return true
		}
	}
	return false
}

// Apply mutates a single committed entry optimistically and returns the
// pre-mutation snapshot for rollback.
func (s *PostStore) Apply(id int64, mutate func(*model.Post)) (model.Post, bool) {
	for i := range s.committed {
		if s.committed[i].ID == id {
			prev := s.committed[i]
			mutate(&s.committed[i])
			s.committed[i].ID = prev.ID
			return prev, true
		}
	}
	return model.Post{}, false
}

// Replace swaps a committed entry with the server's representation
func (s *PostStore) Replace(post model.Post) bool {
	for i := range s.committed {
		if s.committed[i].ID == post.ID {
			s.committed[i] = post
			return true
		}
	}
	return false
}

// Restore puts a previously taken snapshot back. Only the affected
// entry is touched so unrelated rows are not disturbed.
func (s *PostStore) Restore(snapshot model.Post) bool {
	return s.Replace(snapshot)
}

// Insert appends a committed post, guarding against a duplicate id
// (the same create response delivered twice) and against drafts leaking
// in with id 0.
func (s *PostStore) Insert(post model.Post) bool {
	if post.ID == 0 {
		return false
	}
	for _, p := range s.committed {
		if p.ID == post.ID {
			return false
		}
	}
	s.committed = append(s.committed, post)
	return true
}

// Remove deletes a committed post by id
func (s *PostStore) Remove(id int64) bool {
	for i := range s.committed {
		if s.committed[i].ID == id {
			s.committed = append(s.committed[:i], s.committed[i+1:]...)
			return true
		}
	}
	return false
}

// FilterByPeriod returns committed posts dated within the period,
// boundaries inclusive. Drafts are not part of the result; they are
// always shown regardless of period.
func (s *PostStore) FilterByPeriod(p model.Period) []model.Post {
	var out []model.Post
	for _, post := range s.committed {
		if post.Date != nil && p.Contains(*post.Date) {
			out = append(out, post)
		}
	}
	return out
}

// DisplayRows builds the editor's row list for a period: committed
// posts in the period plus all drafts, dated rows sorted ascending by
// date, undated drafts appended after in insertion order.
func (s *PostStore) DisplayRows(p model.Period) []Row {
	var dated, undated []Row
	for _, post := range s.FilterByPeriod(p) {
		dated = append(dated, Row{Post: post})
	}
	for _, d := range s.drafts {
		r := Row{Post: d.Post, DraftKey: d.Key}
		if d.Post.Date != nil {
			dated = append(dated, r)
		} else {
			undated = append(undated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Post.Date.Before(*dated[j].Post.Date)
	})
	return append(dated, undated...)
}
