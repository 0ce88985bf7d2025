package taskview

import (
	"testing"
	"time"
)

func sampleTasks() []Task {
	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return []Task{
		{ID: "t1", Title: "Buy milk", Description: "from the corner shop", Priority: "medium", Tags: []string{"errands"}},
		{ID: "t2", Title: "Write report", Description: "quarterly numbers", Completed: true, Priority: "high", Tags: []string{"work", "writing"}, DueDate: &due},
		{ID: "t3", Title: "Call plumber", Description: "kitchen sink", Priority: "high", Tags: []string{"home"}},
		{ID: "t4", Title: "Read book", Description: "", Completed: true, Priority: "low", Tags: []string{}},
	}
}

func ids(tasks []Task) []string {
	result := make([]string, len(tasks))
	for i, t := range tasks {
		result[i] = t.ID
	}
	return result
}

func assertIDs(t *testing.T, got []Task, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestFilter(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{
			name:    "no filters passes everything",
			filters: Filters{},
			want:    []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:    "status all passes everything",
			filters: Filters{Status: StatusAll},
			want:    []string{"t1", "t2", "t3", "t4"},
		},
		{
			name:    "status completed",
			filters: Filters{Status: StatusCompleted},
			want:    []string{"t2", "t4"},
		},
		{
			name:    "status pending",
			filters: Filters{Status: StatusPending},
			want:    []string{"t1", "t3"},
		},
		{
			name:    "priority exact match",
			filters: Filters{Priority: "high"},
			want:    []string{"t2", "t3"},
		},
		{
			name:    "tag membership",
			filters: Filters{Tag: "work"},
			want:    []string{"t2"},
		},
		{
			name:    "search matches title case-insensitively",
			filters: Filters{Search: "buy MILK"},
			want:    []string{"t1"},
		},
		{
			name:    "search matches description",
			filters: Filters{Search: "Kitchen"},
			want:    []string{"t3"},
		},
		{
			name:    "filters compose with AND",
			filters: Filters{Status: StatusPending, Priority: "high"},
			want:    []string{"t3"},
		},
		{
			name:    "AND with no survivors",
			filters: Filters{Status: StatusCompleted, Tag: "home"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertIDs(t, Filter(tasks, tt.filters), tt.want...)
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	Filter(tasks, Filters{Status: StatusCompleted})

	if tasks[0].ID != "t1" || len(tasks) != 4 {
		t.Errorf("input slice changed: %v", ids(tasks))
	}
}
