// Package client is a Go client for the Taskmate HTTP API. It keeps
// an in-memory snapshot of the caller's tasks, refreshed explicitly
// after every mutation, so reads and aggregation never need a network
// round-trip.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ashokt15/taskmate/taskview"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 10 * time.Second

// APIError is a non-2xx response from the server, carrying the
// server-provided message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Session is the identity and token returned by register and login.
type Session struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// TaskInput is the body for creating a task.
type TaskInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TaskPatch is a partial update: only non-nil fields change.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Client talks to a Taskmate server on behalf of one user.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu       sync.RWMutex
	token    string
	snapshot []taskview.Task

	sfGroup      singleflight.Group
	snapshotFile string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSnapshotFile persists the task snapshot to path after every
// refresh and loads it on construction, so a fresh process can show
// stale-but-present data before its first fetch.
func WithSnapshotFile(path string) Option {
	return func(c *Client) {
		c.snapshotFile = path
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.snapshotFile != "" {
		if snapshot, err := loadSnapshot(c.snapshotFile); err == nil {
			c.snapshot = snapshot
		}
	}
	return c
}

// Register creates an account and adopts its token for subsequent
// requests.
func (c *Client) Register(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/register", email, password)
}

// Login authenticates and adopts the fresh token for subsequent
// requests.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session Session
	if err := c.do(ctx, http.MethodPost, path, body, &session); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = session.Token
	c.mu.Unlock()

	return &session, nil
}

// Token returns the bearer token from the last register or login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken adopts an externally obtained bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Refresh fetches the task list and replaces the snapshot. Concurrent
// refreshes collapse into a single request.
func (c *Client) Refresh(ctx context.Context) ([]taskview.Task, error) {
	result, err, _ := c.sfGroup.Do("refresh", func() (any, error) {
		var tasks []taskview.Task
		if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
			return nil, err
		}
		if tasks == nil {
			tasks = []taskview.Task{}
		}

		c.mu.Lock()
		c.snapshot = tasks
		c.mu.Unlock()

		if c.snapshotFile != "" {
			// Persistence is a fallback data source only; a write
			// failure never fails the refresh.
			_ = saveSnapshot(c.snapshotFile, tasks)
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return c.copyOf(result.([]taskview.Task)), nil
}

// Tasks returns a copy of the current snapshot without touching the
// network.
func (c *Client) Tasks() []taskview.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyOf(c.snapshot)
}

func (c *Client) copyOf(tasks []taskview.Task) []taskview.Task {
	result := make([]taskview.Task, len(tasks))
	copy(result, tasks)
	return result
}

// CreateTask creates a task and refreshes the snapshot.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*taskview.Task, error) {
	var created taskview.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &created); err != nil {
		return nil, err
	}
	if _, err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a partial update and refreshes the snapshot.
func (c *Client) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*taskview.Task, error) {
	var updated taskview.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+taskID, patch, &updated); err != nil {
		return nil, err
	}
	if _, err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task and refreshes the snapshot.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil); err != nil {
		return err
	}
	_, err := c.Refresh(ctx)
	return err
}

// Toggle flips a task's completion state based on the snapshot.
func (c *Client) Toggle(ctx context.Context, taskID string) (*taskview.Task, error) {
	var current *taskview.Task
	c.mu.RLock()
	for i := range c.snapshot {
		if c.snapshot[i].ID == taskID {
			current = &c.snapshot[i]
			break
		}
	}
	c.mu.RUnlock()

	if current == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "Task not found or not authorized"}
	}

	completed := !current.Completed
	return c.UpdateTask(ctx, taskID, TaskPatch{Completed: &completed})
}

// do performs one HTTP round-trip, encoding body when present and
// decoding a 2xx response into out. A non-2xx response becomes an
// APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil || errBody.Message == "" {
			errBody.Message = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: errBody.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
