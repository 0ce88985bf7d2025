package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

// setupTestModule wires a TaskModule against an in-memory database,
// without cache or event bus.
func setupTestModule(t *testing.T) *TaskModule {
	t.Helper()
	return &TaskModule{
		repo: NewTaskRepository(setupTestDB(t)),
	}
}

func strptr(s string) *string { return &s }

func boolptr(b bool) *bool { return &b }

func TestCreateTask_Defaults(t *testing.T) {
	m := setupTestModule(t)

	view, err := m.createTask(context.Background(), CreateTaskRequest{
		UserID: "user-a",
		Title:  "Buy milk",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	if view.ID == "" {
		t.Error("view.ID is empty")
	}
	if view.Priority != "medium" {
		t.Errorf("view.Priority = %q, want %q", view.Priority, "medium")
	}
	if view.Completed {
		t.Error("view.Completed = true, want false")
	}
	if view.CompletedAt != nil {
		t.Errorf("view.CompletedAt = %v, want nil", view.CompletedAt)
	}
	if view.Tags == nil || len(view.Tags) != 0 {
		t.Errorf("view.Tags = %v, want empty slice", view.Tags)
	}
	if view.UserID != "user-a" {
		t.Errorf("view.UserID = %q, want %q", view.UserID, "user-a")
	}
}

func TestCreateTask_Validation(t *testing.T) {
	m := setupTestModule(t)

	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{
			name:    "missing title",
			req:     CreateTaskRequest{UserID: "u", Title: ""},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "whitespace title",
			req:     CreateTaskRequest{UserID: "u", Title: "   "},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "bad priority",
			req:     CreateTaskRequest{UserID: "u", Title: "t", Priority: "urgent"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "bad status",
			req:     CreateTaskRequest{UserID: "u", Title: "t", Status: "done"},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "bad due date",
			req:     CreateTaskRequest{UserID: "u", Title: "t", DueDate: strptr("next tuesday")},
			wantErr: ErrInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.createTask(context.Background(), tt.req, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("createTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTask_CompletedSetsTimestamp(t *testing.T) {
	m := setupTestModule(t)

	t.Run("status string", func(t *testing.T) {
		view, err := m.createTask(context.Background(), CreateTaskRequest{
			UserID: "user-a",
			Title:  "already done",
			Status: "Completed",
		}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if !view.Completed {
			t.Error("view.Completed = false, want true")
		}
		if view.CompletedAt == nil {
			t.Error("view.CompletedAt = nil, want timestamp")
		}
	})

	t.Run("completed flag overrides status", func(t *testing.T) {
		view, err := m.createTask(context.Background(), CreateTaskRequest{
			UserID:    "user-a",
			Title:     "flag wins",
			Status:    "completed",
			Completed: boolptr(false),
		}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if view.Completed {
			t.Error("view.Completed = true, want false")
		}
		if view.CompletedAt != nil {
			t.Errorf("view.CompletedAt = %v, want nil", view.CompletedAt)
		}
	})
}

func TestCreateTask_DueDateFormats(t *testing.T) {
	m := setupTestModule(t)

	t.Run("bare date", func(t *testing.T) {
		view, err := m.createTask(context.Background(), CreateTaskRequest{
			UserID:  "user-a",
			Title:   "dated",
			DueDate: strptr("2026-09-15"),
		}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if view.DueDate == nil {
			t.Fatal("view.DueDate = nil, want timestamp")
		}
		if y, mo, d := view.DueDate.Date(); y != 2026 || mo != time.September || d != 15 {
			t.Errorf("view.DueDate = %v, want 2026-09-15", view.DueDate)
		}
	})

	t.Run("rfc3339", func(t *testing.T) {
		view, err := m.createTask(context.Background(), CreateTaskRequest{
			UserID:  "user-a",
			Title:   "timestamped",
			DueDate: strptr("2026-10-01T09:30:00Z"),
		}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if view.DueDate == nil || view.DueDate.Hour() != 9 {
			t.Errorf("view.DueDate = %v, want 09:30 timestamp", view.DueDate)
		}
	})
}

func TestListTasks_OwnershipAndOrder(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := m.createTask(ctx, CreateTaskRequest{UserID: "user-a", Title: title}, nil); err != nil {
			t.Fatalf("createTask(%q) error = %v", title, err)
		}
		// Spread creation times so the ordering is deterministic.
		time.Sleep(2 * time.Millisecond)
	}
	if _, err := m.createTask(ctx, CreateTaskRequest{UserID: "user-b", Title: "not yours"}, nil); err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	resp, err := m.listTasks(ctx, ListTasksRequest{UserID: "user-a"}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("resp.Total = %d, want 3", resp.Total)
	}
	want := []string{"third", "second", "first"}
	for i, title := range want {
		if resp.Tasks[i].Title != title {
			t.Errorf("resp.Tasks[%d].Title = %q, want %q", i, resp.Tasks[i].Title, title)
		}
	}
}

func TestListTasks_EmptyUser(t *testing.T) {
	m := setupTestModule(t)

	resp, err := m.listTasks(context.Background(), ListTasksRequest{UserID: "nobody"}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("resp.Total = %d, want 0", resp.Total)
	}
	if resp.Tasks == nil {
		t.Error("resp.Tasks = nil, want empty slice")
	}
}

func TestUpdateTask_CompletionTransitions(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	view, err := m.createTask(ctx, CreateTaskRequest{UserID: "user-a", Title: "toggle me"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	// pending -> completed sets the timestamp.
	updated, err := m.updateTask(ctx, UpdateTaskRequest{
		UserID: "user-a", TaskID: view.ID, Completed: boolptr(true),
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}
	if !updated.Completed || updated.CompletedAt == nil {
		t.Fatalf("after complete: Completed=%v CompletedAt=%v", updated.Completed, updated.CompletedAt)
	}
	firstCompletedAt := *updated.CompletedAt

	// completed -> completed leaves the timestamp alone.
	updated, err = m.updateTask(ctx, UpdateTaskRequest{
		UserID: "user-a", TaskID: view.ID, Status: strptr("completed"),
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}
	if updated.CompletedAt == nil || !updated.CompletedAt.Equal(firstCompletedAt) {
		t.Errorf("CompletedAt changed on completed->completed: %v, want %v", updated.CompletedAt, firstCompletedAt)
	}

	// completed -> pending clears the timestamp.
	updated, err = m.updateTask(ctx, UpdateTaskRequest{
		UserID: "user-a", TaskID: view.ID, Status: strptr("Pending"),
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}
	if updated.Completed {
		t.Error("updated.Completed = true, want false")
	}
	if updated.CompletedAt != nil {
		t.Errorf("updated.CompletedAt = %v, want nil", updated.CompletedAt)
	}
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	view, err := m.createTask(ctx, CreateTaskRequest{
		UserID:      "user-a",
		Title:       "original",
		Description: "keep me",
		Priority:    "high",
		Tags:        []string{"home"},
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("untouched fields survive", func(t *testing.T) {
		updated, err := m.updateTask(ctx, UpdateTaskRequest{
			UserID: "user-a", TaskID: view.ID, Title: strptr("renamed"),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if updated.Title != "renamed" {
			t.Errorf("updated.Title = %q, want %q", updated.Title, "renamed")
		}
		if updated.Description != "keep me" {
			t.Errorf("updated.Description = %q, want %q", updated.Description, "keep me")
		}
		if updated.Priority != "high" {
			t.Errorf("updated.Priority = %q, want %q", updated.Priority, "high")
		}
		if len(updated.Tags) != 1 || updated.Tags[0] != "home" {
			t.Errorf("updated.Tags = %v, want [home]", updated.Tags)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		before, err := m.updateTask(ctx, UpdateTaskRequest{UserID: "user-a", TaskID: view.ID}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		after, err := m.updateTask(ctx, UpdateTaskRequest{UserID: "user-a", TaskID: view.ID}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if after.Title != before.Title || after.Completed != before.Completed ||
			after.Priority != before.Priority || after.Description != before.Description {
			t.Errorf("empty patch changed the task: before=%+v after=%+v", before, after)
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := m.updateTask(ctx, UpdateTaskRequest{
			UserID: "user-a", TaskID: view.ID, Title: strptr("  "),
		}, nil)
		if !errors.Is(err, ErrTitleRequired) {
			t.Errorf("updateTask() error = %v, want ErrTitleRequired", err)
		}
	})

	t.Run("due date cleared by empty string", func(t *testing.T) {
		withDue, err := m.updateTask(ctx, UpdateTaskRequest{
			UserID: "user-a", TaskID: view.ID, DueDate: strptr("2026-12-01"),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if withDue.DueDate == nil {
			t.Fatal("withDue.DueDate = nil, want timestamp")
		}

		cleared, err := m.updateTask(ctx, UpdateTaskRequest{
			UserID: "user-a", TaskID: view.ID, DueDate: strptr(""),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if cleared.DueDate != nil {
			t.Errorf("cleared.DueDate = %v, want nil", cleared.DueDate)
		}
	})
}

func TestUpdateTask_CrossUser(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	view, err := m.createTask(ctx, CreateTaskRequest{UserID: "user-a", Title: "mine"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	_, err = m.updateTask(ctx, UpdateTaskRequest{
		UserID: "user-b", TaskID: view.ID, Title: strptr("stolen"),
	}, nil)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("updateTask() error = %v, want ErrTaskNotFound", err)
	}

	// The owner still sees the original title.
	resp, err := m.listTasks(ctx, ListTasksRequest{UserID: "user-a"}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Tasks[0].Title != "mine" {
		t.Errorf("task title = %q after cross-user update attempt, want %q", resp.Tasks[0].Title, "mine")
	}
}

func TestDeleteTask(t *testing.T) {
	m := setupTestModule(t)
	ctx := context.Background()

	view, err := m.createTask(ctx, CreateTaskRequest{UserID: "user-a", Title: "short lived"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("cross-user delete fails", func(t *testing.T) {
		_, err := m.deleteTask(ctx, DeleteTaskRequest{UserID: "user-b", TaskID: view.ID}, nil)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("deleteTask() error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, err := m.deleteTask(ctx, DeleteTaskRequest{UserID: "user-a", TaskID: view.ID}, nil)
		if err != nil {
			t.Fatalf("deleteTask() error = %v", err)
		}
		if !resp.Deleted {
			t.Error("resp.Deleted = false, want true")
		}

		list, err := m.listTasks(ctx, ListTasksRequest{UserID: "user-a"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if list.Total != 0 {
			t.Errorf("list.Total = %d after delete, want 0", list.Total)
		}
	})

	t.Run("double delete fails", func(t *testing.T) {
		_, err := m.deleteTask(ctx, DeleteTaskRequest{UserID: "user-a", TaskID: view.ID}, nil)
		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("deleteTask() error = %v, want ErrTaskNotFound", err)
		}
	})
}
