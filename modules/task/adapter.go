package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps the service container for type-safe cross-module
// calls. It implements TaskPort for driving adapters.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	return &taskAdapter{
		container: container,
	}
}

// List returns all tasks owned by userID, newest created first.
func (a *taskAdapter) List(ctx context.Context, userID string) ([]View, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("list-tasks request failed: %w", err)
	}

	return resp.Tasks, nil
}

// Create creates a task owned by the requesting user.
func (a *taskAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*View, error) {
	var resp View

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("create-task request failed: %w", err)
	}

	return &resp, nil
}

// Update applies a partial update to an owned task.
func (a *taskAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*View, error) {
	var resp View

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"update-task",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("update-task request failed: %w", err)
	}

	return &resp, nil
}

// Delete permanently removes an owned task.
func (a *taskAdapter) Delete(ctx context.Context, userID, taskID string) error {
	req := DeleteTaskRequest{UserID: userID, TaskID: taskID}
	var resp DeleteTaskResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"delete-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return fmt.Errorf("delete-task request failed: %w", err)
	}

	return nil
}
