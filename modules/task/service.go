package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/ashokt15/taskmate/domain/task"
	"github.com/ashokt15/taskmate/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

var (
	// ErrTitleRequired is returned when a task title is missing or
	// explicitly set to empty. Titles are never empty.
	ErrTitleRequired = errors.New("task title is required")
	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")
	// ErrInvalidStatus is returned for a status other than completed/pending.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidDueDate is returned when the due date does not parse.
	ErrInvalidDueDate = errors.New("invalid due date")
)

// dueDateLayouts are the accepted due date formats: a full timestamp
// or a bare date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseDueDate converts an optional wire value into a timestamp. An
// empty string clears the due date.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, value)
}

// normalizeStatus maps a status string onto the completed flag.
func normalizeStatus(status string) (bool, error) {
	switch strings.ToLower(status) {
	case "completed":
		return true, nil
	case "pending":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (View, error) {
	if strings.TrimSpace(req.Title) == "" {
		return View{}, ErrTitleRequired
	}

	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.Priority(req.Priority)
		if !priority.Valid() {
			return View{}, fmt.Errorf("%w: %q", ErrInvalidPriority, req.Priority)
		}
	}

	completed := false
	if req.Status != "" {
		c, err := normalizeStatus(req.Status)
		if err != nil {
			return View{}, err
		}
		completed = c
	}
	if req.Completed != nil {
		completed = *req.Completed
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := parseDueDate(*req.DueDate)
		if err != nil {
			return View{}, err
		}
		dueDate = d
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	newTask := &domain.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   completed,
		Priority:    priority,
		DueDate:     dueDate,
		Tags:        tags,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if completed {
		// A task created already completed honors the completedAt
		// invariant from the start.
		newTask.CompletedAt = &now
	}

	if err := m.repo.Create(newTask); err != nil {
		return View{}, err
	}

	m.invalidateListCache(ctx, req.UserID)
	m.publishCreated(newTask)

	return toView(newTask), nil
}

// listTasks handles the list-tasks service request, serving from the
// Redis cache when one is configured.
func (m *TaskModule) listTasks(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	views, err := m.listViews(ctx, req.UserID)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{
		Tasks: views,
		Total: len(views),
	}, nil
}

// listViews fetches a user's task views with cache-aside and
// singleflight stampede protection.
func (m *TaskModule) listViews(ctx context.Context, userID string) ([]View, error) {
	if m.cache == nil {
		return m.listViewsFromRepo(userID)
	}

	key := listCacheKey(userID)

	var cached []View
	found, err := m.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[task] Cache error for user %s: %v", userID, err)
	}
	if found {
		return cached, nil
	}

	result, err, _ := m.sfGroup.Do(key, func() (any, error) {
		views, err := m.listViewsFromRepo(userID)
		if err != nil {
			return nil, err
		}
		if err := m.cache.Set(ctx, key, views); err != nil {
			log.Printf("[task] Warning: failed to cache task list for user %s: %v", userID, err)
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]View), nil
}

func (m *TaskModule) listViewsFromRepo(userID string) ([]View, error) {
	tasks, err := m.repo.FindByOwner(userID)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toView(t))
	}
	return views, nil
}

// updateTask handles the update-task service request. Only fields
// present in the patch change; the completion timestamp follows the
// status transition.
func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (View, error) {
	t, err := m.repo.FindByIDAndOwner(req.TaskID, req.UserID)
	if err != nil {
		return View{}, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return View{}, ErrTitleRequired
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		if !p.Valid() {
			return View{}, fmt.Errorf("%w: %q", ErrInvalidPriority, *req.Priority)
		}
		t.Priority = p
	}
	if req.DueDate != nil {
		d, err := parseDueDate(*req.DueDate)
		if err != nil {
			return View{}, err
		}
		t.DueDate = d
	}
	if req.Tags != nil {
		tags := *req.Tags
		if tags == nil {
			tags = []string{}
		}
		t.Tags = tags
	}

	completed := t.Completed
	if req.Status != nil {
		c, err := normalizeStatus(*req.Status)
		if err != nil {
			return View{}, err
		}
		completed = c
	}
	if req.Completed != nil {
		completed = *req.Completed
	}

	var completedNow bool
	if completed != t.Completed {
		t.Completed = completed
		if completed {
			now := time.Now()
			t.CompletedAt = &now
			completedNow = true
		} else {
			t.CompletedAt = nil
		}
	}
	t.UpdatedAt = time.Now()

	if err := m.repo.Save(t); err != nil {
		return View{}, err
	}

	m.invalidateListCache(ctx, req.UserID)
	if completedNow {
		m.publishCompleted(t)
	}

	return toView(t), nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	t, err := m.repo.FindByIDAndOwner(req.TaskID, req.UserID)
	if err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}

	if err := m.repo.DeleteByOwner(req.TaskID, req.UserID); err != nil {
		return DeleteTaskResponse{Deleted: false}, err
	}

	m.invalidateListCache(ctx, req.UserID)
	m.publishDeleted(t)

	return DeleteTaskResponse{Deleted: true}, nil
}

func listCacheKey(userID string) string {
	return "tasks:user:" + userID
}

// invalidateListCache drops the owner's cached list after a mutation.
func (m *TaskModule) invalidateListCache(ctx context.Context, userID string) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Delete(ctx, listCacheKey(userID)); err != nil {
		log.Printf("[task] Warning: failed to invalidate cache for user %s: %v", userID, err)
	}
}

// Event publishing is best-effort; a bus failure never fails the
// operation.
func (m *TaskModule) publishCreated(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskCreatedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
	}
	if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishCompleted(t *domain.Task) {
	if m.eventBus == nil || t.CompletedAt == nil {
		return
	}
	event := events.TaskCompletedEvent{
		TaskID:      t.ID,
		Title:       t.Title,
		UserID:      t.UserID,
		CompletedAt: *t.CompletedAt,
	}
	if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskCompleted event for task %s: %v", t.ID, err)
	}
}

func (m *TaskModule) publishDeleted(t *domain.Task) {
	if m.eventBus == nil {
		return
	}
	event := events.TaskDeletedEvent{
		TaskID:    t.ID,
		Title:     t.Title,
		UserID:    t.UserID,
		DeletedAt: time.Now(),
	}
	if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
		log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", t.ID, err)
	}
}

// toView converts a domain Task to its external representation.
func toView(t *domain.Task) View {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return View{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		Tags:        tags,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
	}
}
