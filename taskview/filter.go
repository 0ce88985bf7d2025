package taskview

import "strings"

// Status filter values.
const (
	StatusAll       = "all"
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// Filters narrows a task snapshot. Zero-value fields do not filter;
// set fields compose with logical AND.
type Filters struct {
	// Status is one of all, completed or pending. Empty means all.
	Status string
	// Priority matches exactly when set.
	Priority string
	// Tag requires membership in the task's tag set.
	Tag string
	// Search matches case-insensitively against title and description.
	Search string
}

// Filter returns the tasks matching every set filter, preserving the
// input order. The input slice is never modified.
func Filter(tasks []Task, f Filters) []Task {
	result := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, f) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t Task, f Filters) bool {
	switch f.Status {
	case "", StatusAll:
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	default:
		return false
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	if f.Tag != "" && !hasTag(t, f.Tag) {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}

	return true
}

func hasTag(t Task, tag string) bool {
	for _, candidate := range t.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}
