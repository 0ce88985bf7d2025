package task

import (
	"errors"
	"fmt"

	domain "github.com/ashokt15/taskmate/domain/task"
	"gorm.io/gorm"
)

// ErrTaskNotFound is returned when no task matches both the id and the
// owner. A task owned by another user is deliberately indistinguishable
// from a nonexistent one.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence using GORM. Ownership is
// enforced in the query itself: every read and write filters by the
// owner id, so no fetched-then-checked window exists.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// Create inserts a new task.
func (r *TaskRepository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByOwner returns all tasks owned by userID, newest created first.
func (r *TaskRepository) FindByOwner(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindByIDAndOwner returns the task with the given id if it is owned
// by userID.
func (r *TaskRepository) FindByIDAndOwner(taskID, userID string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.First(&task, "id = ? AND user_id = ?", taskID, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Save writes back all fields of an existing task, including cleared
// optional ones.
func (r *TaskRepository) Save(task *domain.Task) error {
	if err := r.db.Save(task).Error; err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

// DeleteByOwner permanently removes the task if it is owned by userID.
func (r *TaskRepository) DeleteByOwner(taskID, userID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND user_id = ?", taskID, userID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
