package taskview

import "sort"

// SortField selects the attribute to order by.
type SortField string

// Supported sort fields.
const (
	SortByCreatedAt SortField = "createdAt"
	SortByDueDate   SortField = "dueDate"
	SortByPriority  SortField = "priority"
)

// Direction selects ascending or descending order.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort returns a new slice ordered by the given field. The sort is
// stable, so equal elements keep their relative input order. Tasks
// without a due date always sort after dated tasks, in both
// directions.
func Sort(tasks []Task, field SortField, dir Direction) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)

	var less func(a, b Task) bool
	switch field {
	case SortByDueDate:
		less = dueDateLess
	case SortByPriority:
		less = func(a, b Task) bool {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
	default:
		less = func(a, b Task) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if field == SortByDueDate {
			// The undated-last rule wins regardless of direction.
			if (a.DueDate == nil) != (b.DueDate == nil) {
				return b.DueDate == nil
			}
			if a.DueDate == nil {
				return false
			}
		}
		if dir == Desc {
			a, b = b, a
		}
		return less(a, b)
	})

	return result
}

func dueDateLess(a, b Task) bool {
	return a.DueDate.Before(*b.DueDate)
}
