package task

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the known priority levels.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the ordering weight of the priority (high > medium > low).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// Task is a todo item owned by exactly one user. Ownership is set at
// creation and never changes. CompletedAt is non-nil if and only if
// Completed is true.
type Task struct {
	ID          string     `gorm:"primaryKey;type:text"`
	Title       string     `gorm:"not null;type:text"`
	Description string     `gorm:"type:text"`
	Completed   bool       `gorm:"not null;default:false"`
	Priority    Priority   `gorm:"not null;type:text"`
	DueDate     *time.Time `gorm:"type:datetime"`
	Tags        []string   `gorm:"serializer:json;type:text"`
	UserID      string     `gorm:"index;not null;type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}
