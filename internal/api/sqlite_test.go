package api

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pullerize/postcal/internal/model"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDate(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestEnsureProjectCreatesOnce(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	start := testDate(2024, time.March, 15)
	end := testDate(2025, time.March, 14)
	p, err := s.EnsureProject(ctx, 1, "My Project", start, end)
	if err != nil {
		t.Fatalf("Failed to ensure project: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("project has no id")
	}
	if p.Name != "My Project" {
		t.Errorf("name = %q, want %q", p.Name, "My Project")
	}
	if p.StartDate == nil || !p.StartDate.Equal(*start) {
		t.Errorf("startDate = %v, want %s", p.StartDate, start.Format(model.DateLayout))
	}

	// Second call returns the existing row instead of creating another.
	again, err := s.EnsureProject(ctx, p.ID, "Other name", nil, nil)
	if err != nil {
		t.Fatalf("Failed on second ensure: %v", err)
	}
	if again.ID != p.ID {
		t.Errorf("second ensure returned id %d, want %d", again.ID, p.ID)
	}
	if again.Name != "My Project" {
		t.Errorf("name was overwritten to %q", again.Name)
	}
}

func TestPostCRUD(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p, err := s.EnsureProject(ctx, 1, "CRUD", nil, nil)
	if err != nil {
		t.Fatalf("Failed to ensure project: %v", err)
	}

	created, err := s.CreatePost(ctx, p.ID, PostInput{
		Date:        testDate(2024, time.March, 20),
		PostsPerDay: 3,
		Type:        model.PostTypeCarousel,
		Status:      model.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("Failed to create post: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created post has no id")
	}
	if created.PostsPerDay != 3 || created.Type != model.PostTypeCarousel {
		t.Errorf("created post fields wrong: %+v", created)
	}
	if created.Date == nil || !created.Date.Equal(*testDate(2024, time.March, 20)) {
		t.Errorf("created date = %v, want 2024-03-20", created.Date)
	}

	updated, err := s.UpdatePost(ctx, created.ID, PostInput{
		Date:        testDate(2024, time.April, 2),
		PostsPerDay: 5,
		Type:        model.PostTypeVideo,
		Status:      model.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Failed to update post: %v", err)
	}
	if updated.PostsPerDay != 5 || updated.Status != model.StatusApproved {
		t.Errorf("updated post fields wrong: %+v", updated)
	}
	if updated.Date == nil || !updated.Date.Equal(*testDate(2024, time.April, 2)) {
		t.Errorf("updated date = %v, want 2024-04-02", updated.Date)
	}

	posts, err := s.ListPosts(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list posts: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != created.ID {
		t.Fatalf("listed %d posts, want the one created", len(posts))
	}

	if err := s.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("Failed to delete post: %v", err)
	}
	posts, err = s.ListPosts(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to list posts after delete: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("post survived deletion")
	}
}

func TestUndatedPost(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p, err := s.EnsureProject(ctx, 1, "Undated", nil, nil)
	if err != nil {
		t.Fatalf("Failed to ensure project: %v", err)
	}

	created, err := s.CreatePost(ctx, p.ID, PostInput{
		PostsPerDay: 1,
		Type:        model.PostTypeStatic,
		Status:      model.StatusInProgress,
	})
	if err != nil {
		t.Fatalf("Failed to create undated post: %v", err)
	}
	if created.Date != nil {
		t.Errorf("date = %v, want nil", created.Date)
	}

	// Window listing skips undated posts.
	posts, err := s.ListPostsWindow(ctx, p.ID, *testDate(2024, time.January, 1), *testDate(2026, time.January, 1))
	if err != nil {
		t.Fatalf("Failed to list window: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("window listing returned %d undated posts", len(posts))
	}
}

func TestListPostsWindowBoundaries(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p, err := s.EnsureProject(ctx, 1, "Window", nil, nil)
	if err != nil {
		t.Fatalf("Failed to ensure project: %v", err)
	}

	dates := []*time.Time{
		testDate(2024, time.March, 14),
		testDate(2024, time.March, 15),
		testDate(2024, time.April, 14),
		testDate(2024, time.April, 15),
	}
	for _, d := range dates {
		if _, err := s.CreatePost(ctx, p.ID, PostInput{
			Date: d, PostsPerDay: 1, Type: model.PostTypeVideo, Status: model.StatusInProgress,
		}); err != nil {
			t.Fatalf("Failed to create post: %v", err)
		}
	}

	posts, err := s.ListPostsWindow(ctx, p.ID, *testDate(2024, time.March, 15), *testDate(2024, time.April, 14))
	if err != nil {
		t.Fatalf("Failed to list window: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("window returned %d posts, want 2 (boundaries inclusive)", len(posts))
	}
	if !posts[0].Date.Equal(*testDate(2024, time.March, 15)) || !posts[1].Date.Equal(*testDate(2024, time.April, 14)) {
		t.Errorf("window boundaries wrong: %s, %s",
			model.FormatDate(posts[0].Date), model.FormatDate(posts[1].Date))
	}
}

func TestUpdateProjectInfoPatch(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p, err := s.EnsureProject(ctx, 1, "Patch", testDate(2024, time.March, 15), nil)
	if err != nil {
		t.Fatalf("Failed to ensure project: %v", err)
	}

	count := 14
	if err := s.UpdateProjectInfo(ctx, p.ID, ProjectPatch{PostsCount: &count}); err != nil {
		t.Fatalf("Failed to patch posts count: %v", err)
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to reload project: %v", err)
	}
	if got.PostsCount != 14 {
		t.Errorf("postsCount = %d, want 14", got.PostsCount)
	}
	// Fields absent from the patch are untouched.
	if got.StartDate == nil || !got.StartDate.Equal(*testDate(2024, time.March, 15)) {
		t.Errorf("startDate changed: %v", got.StartDate)
	}

	end := testDate(2025, time.March, 14)
	if err := s.UpdateProjectInfo(ctx, p.ID, ProjectPatch{EndDate: end}); err != nil {
		t.Fatalf("Failed to patch end date: %v", err)
	}
	got, err = s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("Failed to reload project: %v", err)
	}
	if got.EndDate == nil || !got.EndDate.Equal(*end) {
		t.Errorf("endDate = %v, want 2025-03-14", got.EndDate)
	}
	if got.PostsCount != 14 {
		t.Errorf("postsCount lost by unrelated patch: %d", got.PostsCount)
	}
}
