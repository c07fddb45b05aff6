package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pullerize/postcal/internal/model"
)

// Client is the remote Backend over JSON/HTTP
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a remote backend client. token may be empty for
// unauthenticated deployments.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Wire representations. Dates travel as YYYY-MM-DD strings; a bare date
// sent where the server expects a date-time means midnight UTC.

type wirePost struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id"`
	Date        string `json:"date,omitempty"`
	PostsPerDay int    `json:"posts_per_day"`
	PostType    string `json:"post_type"`
	Status      string `json:"status"`
}

type wireProject struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PostsCount int    `json:"posts_count"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

type wirePostInput struct {
	Date        string `json:"date,omitempty"`
	PostsPerDay int    `json:"posts_per_day"`
	PostType    string `json:"post_type"`
	Status      string `json:"status"`
}

type wireProjectPatch struct {
	PostsCount *int    `json:"posts_count,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
}

func (w wirePost) toModel() (model.Post, error) {
	date, err := model.ParseDate(w.Date)
	if err != nil {
		return model.Post{}, fmt.Errorf("post %d: bad date %q: %w", w.ID, w.Date, err)
	}
	return model.Post{
		ID:          w.ID,
		ProjectID:   w.ProjectID,
		Date:        date,
		PostsPerDay: w.PostsPerDay,
		Type:        model.PostType(w.PostType),
		Status:      model.Status(w.Status),
	}, nil
}

func toWireInput(in PostInput) wirePostInput {
	return wirePostInput{
		Date:        model.FormatDate(in.Date),
		PostsPerDay: in.PostsPerDay,
		PostType:    string(in.Type),
		Status:      string(in.Status),
	}
}

// do issues a request and decodes the JSON response into out (out may
// be nil for calls whose body is discarded).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransientError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransientError{Op: method + " " + path, Err: fmt.Errorf("http status: %s", resp.Status)}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransientError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// GetProject fetches project info
func (c *Client) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var w wireProject
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &w); err != nil {
		return nil, err
	}
	start, err := model.ParseDate(w.StartDate)
	if err != nil {
		return nil, fmt.Errorf("project %d: bad start date: %w", id, err)
	}
	end, err := model.ParseDate(w.EndDate)
	if err != nil {
		return nil, fmt.Errorf("project %d: bad end date: %w", id, err)
	}
	return &model.Project{
		ID:         w.ID,
		Name:       w.Name,
		PostsCount: w.PostsCount,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

// UpdateProjectInfo patches project fields, including the posts count
// pushed by the aggregate recalculation.
func (c *Client) UpdateProjectInfo(ctx context.Context, id int64, patch ProjectPatch) error {
	w := wireProjectPatch{PostsCount: patch.PostsCount}
	if patch.StartDate != nil {
		s := model.FormatDate(patch.StartDate)
		w.StartDate = &s
	}
	if patch.EndDate != nil {
		s := model.FormatDate(patch.EndDate)
		w.EndDate = &s
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d", id), w, nil)
}

// ListPosts fetches every post of a project
func (c *Client) ListPosts(ctx context.Context, projectID int64) ([]model.Post, error) {
	var wire []wirePost
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/posts", projectID), nil, &wire); err != nil {
		return nil, err
	}
	return decodePosts(wire)
}

// ListPostsWindow fetches posts dated within [from, to] inclusive
func (c *Client) ListPostsWindow(ctx context.Context, projectID int64, from, to time.Time) ([]model.Post, error) {
	path := fmt.Sprintf("/projects/%d/posts?from=%s&to=%s",
		projectID, from.Format(model.DateLayout), to.Format(model.DateLayout))
	var wire []wirePost
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return nil, err
	}
	return decodePosts(wire)
}

func decodePosts(wire []wirePost) ([]model.Post, error) {
	posts := make([]model.Post, 0, len(wire))
	for _, w := range wire {
		p, err := w.toModel()
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// CreatePost submits a new post; the server assigns its id
func (c *Client) CreatePost(ctx context.Context, projectID int64, in PostInput) (*model.Post, error) {
	var w wirePost
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/posts", projectID), toWireInput(in), &w); err != nil {
		return nil, err
	}
	p, err := w.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost replaces a post's writable fields and returns server truth
func (c *Client) UpdatePost(ctx context.Context, postID int64, in PostInput) (*model.Post, error) {
	var w wirePost
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", postID), toWireInput(in), &w); err != nil {
		return nil, err
	}
	p, err := w.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePost removes a post
func (c *Client) DeletePost(ctx context.Context, postID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", postID), nil, nil)
}
