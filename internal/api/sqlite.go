package api

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/pullerize/postcal/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLite is the local Backend for offline use. Same contract as the
// remote client, backed by a single-file database.
type SQLite struct {
	db *sql.DB
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".postcal"
	}
	return filepath.Join(home, ".local", "share", "postcal")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "postcal.db")
}

// OpenSQLite opens the local database and runs migrations
func OpenSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL mode for better concurrent access
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", dbPath)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLite{db: sqlDB}
	if err := s.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// migrate runs database migrations using embedded SQL files
func (s *SQLite) migrate() error {
	// Silence goose logging (it corrupts TUI output)
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLite) Close() error {
	return s.db.Close()
}

// EnsureProject returns the project with the given id, creating a
// fresh one on first run of local mode.
func (s *SQLite) EnsureProject(ctx context.Context, id int64, name string, start, end *time.Time) (*model.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err == nil {
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (name, start_date, end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, name, nullDate(start), nullDate(end), now, now)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, newID)
}

// GetProject returns a single project by id
func (s *SQLite) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	var start, end sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, posts_count, start_date, end_date, created_at, updated_at
		FROM projects WHERE id = ?
	`, id).Scan(&p.ID, &p.Name, &p.PostsCount, &start, &end, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if p.StartDate, err = scanDate(start); err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}
	if p.EndDate, err = scanDate(end); err != nil {
		return nil, fmt.Errorf("project %d: %w", id, err)
	}
	return &p, nil
}

// UpdateProjectInfo patches project fields
func (s *SQLite) UpdateProjectInfo(ctx context.Context, id int64, patch ProjectPatch) error {
	now := time.Now().UTC()
	if patch.PostsCount != nil {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE projects SET posts_count = ?, updated_at = ? WHERE id = ?`,
			*patch.PostsCount, now, id); err != nil {
			return &TransientError{Op: "update project info", Err: err}
		}
	}
	if patch.StartDate != nil {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE projects SET start_date = ?, updated_at = ? WHERE id = ?`,
			model.FormatDate(patch.StartDate), now, id); err != nil {
			return &TransientError{Op: "update project info", Err: err}
		}
	}
	if patch.EndDate != nil {
		if _, err := s.db.ExecContext(ctx,
			`UPDATE projects SET end_date = ?, updated_at = ? WHERE id = ?`,
			model.FormatDate(patch.EndDate), now, id); err != nil {
			return &TransientError{Op: "update project info", Err: err}
		}
	}
	return nil
}

const postColumns = `id, project_id, date, posts_per_day, post_type, status, created_at, updated_at`

// ListPosts returns every post of a project
func (s *SQLite) ListPosts(ctx context.Context, projectID int64) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts WHERE project_id = ? ORDER BY date, id
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// ListPostsWindow returns posts dated within [from, to] inclusive
func (s *SQLite) ListPostsWindow(ctx context.Context, projectID int64, from, to time.Time) ([]model.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE project_id = ? AND date IS NOT NULL AND date >= ? AND date <= ?
		ORDER BY date, id
	`, projectID, from.Format(model.DateLayout), to.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPosts(rows)
}

// CreatePost inserts a post and returns it with its assigned id
func (s *SQLite) CreatePost(ctx context.Context, projectID int64, in PostInput) (*model.Post, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (project_id, date, posts_per_day, post_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, projectID, nullDate(in.Date), in.PostsPerDay, string(in.Type), string(in.Status), now, now)
	if err != nil {
		return nil, &TransientError{Op: "create post", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, &TransientError{Op: "create post", Err: err}
	}
	return s.getPost(ctx, id)
}

// UpdatePost replaces a post's writable fields and returns the stored row
func (s *SQLite) UpdatePost(ctx context.Context, postID int64, in PostInput) (*model.Post, error) {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		UPDATE posts SET date = ?, posts_per_day = ?, post_type = ?, status = ?, updated_at = ?
		WHERE id = ?
	`, nullDate(in.Date), in.PostsPerDay, string(in.Type), string(in.Status), now, postID)
	if err != nil {
		return nil, &TransientError{Op: "update post", Err: err}
	}
	return s.getPost(ctx, postID)
}

// DeletePost removes a post
func (s *SQLite) DeletePost(ctx context.Context, postID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, postID); err != nil {
		return &TransientError{Op: "delete post", Err: err}
	}
	return nil
}

func (s *SQLite) getPost(ctx context.Context, id int64) (*model.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	var p model.Post
	var date sql.NullString
	err := row.Scan(&p.ID, &p.ProjectID, &date, &p.PostsPerDay, &p.Type, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if p.Date, err = scanDate(date); err != nil {
		return nil, fmt.Errorf("post %d: %w", id, err)
	}
	return &p, nil
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		var date sql.NullString
		if err := rows.Scan(&p.ID, &p.ProjectID, &date, &p.PostsPerDay, &p.Type, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		var err error
		if p.Date, err = scanDate(date); err != nil {
			return nil, fmt.Errorf("post %d: %w", p.ID, err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanDate(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	return model.ParseDate(s.String)
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return model.FormatDate(t)
}
