package task

import (
	"context"
	"time"
)

// View is the external representation of a task. Field names follow
// the persisted record layout the web client consumes.
type View struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	UserID      string     `json:"user"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

// CreateTaskRequest is the request for creating a task. The owner is
// always the resolved caller identity, never client-supplied data.
type CreateTaskRequest struct {
	UserID      string   `json:"user_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Status      string   `json:"status,omitempty"`
	Completed   *bool    `json:"completed,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateTaskRequest is an explicit patch: only non-nil fields are
// applied. An empty DueDate or Tags value clears the attribute.
type UpdateTaskRequest struct {
	UserID      string    `json:"user_id"`
	TaskID      string    `json:"task_id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// ListTasksRequest is the request for listing a user's tasks.
type ListTasksRequest struct {
	UserID string `json:"user_id"`
}

// ListTasksResponse is the response for listing tasks, ordered newest
// created first.
type ListTasksResponse struct {
	Tasks []View `json:"tasks"`
	Total int    `json:"total"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	UserID string `json:"user_id"`
	TaskID string `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

// TaskPort defines the interface driving adapters use to reach the
// task store. Every operation is scoped to the supplied user identity.
type TaskPort interface {
	List(ctx context.Context, userID string) ([]View, error)
	Create(ctx context.Context, req *CreateTaskRequest) (*View, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*View, error)
	Delete(ctx context.Context, userID, taskID string) error
}
