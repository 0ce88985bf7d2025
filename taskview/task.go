// Package taskview provides pure query and aggregation functions over
// an in-memory snapshot of a user's tasks. Nothing here touches the
// network or mutates server state.
package taskview

import "time"

// Task is the client-side representation of a task, decoded straight
// from the HTTP API.
type Task struct {
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

// Priority display order: high before medium before low.
var priorityRank = map[string]int{
	"high":   3,
	"medium": 2,
	"low":    1,
}
