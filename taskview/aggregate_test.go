package taskview

import "testing"

func TestAggregate(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Completed: true, Priority: "high", Tags: []string{"work"}},
		{ID: "t2", Completed: false, Priority: "high", Tags: []string{"work", "urgent"}},
		{ID: "t3", Completed: false, Priority: "medium", Tags: []string{"home"}},
	}

	m := Aggregate(tasks)

	if m.Total != 3 {
		t.Errorf("Total = %d, want 3", m.Total)
	}
	if m.Completed != 1 {
		t.Errorf("Completed = %d, want 1", m.Completed)
	}
	if m.Pending != 2 {
		t.Errorf("Pending = %d, want 2", m.Pending)
	}
	// 1/3 rounds to 33.
	if m.CompletionRate != 33 {
		t.Errorf("CompletionRate = %d, want 33", m.CompletionRate)
	}

	if got := m.ByPriority["high"]; got.Count != 2 || got.Percentage != 67 {
		t.Errorf("ByPriority[high] = %+v, want count 2 pct 67", got)
	}
	if got := m.ByPriority["medium"]; got.Count != 1 || got.Percentage != 33 {
		t.Errorf("ByPriority[medium] = %+v, want count 1 pct 33", got)
	}
	if _, ok := m.ByPriority["low"]; ok {
		t.Error("ByPriority contains low with no low tasks")
	}

	wantTags := []TagCount{{"work", 2}, {"urgent", 1}, {"home", 1}}
	if len(m.TagCounts) != len(wantTags) {
		t.Fatalf("TagCounts = %v, want %v", m.TagCounts, wantTags)
	}
	for i, want := range wantTags {
		if m.TagCounts[i] != want {
			t.Errorf("TagCounts[%d] = %+v, want %+v", i, m.TagCounts[i], want)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	m := Aggregate(nil)

	if m.Total != 0 || m.Completed != 0 || m.Pending != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", m.Total, m.Completed, m.Pending)
	}
	// Defined as 0 when there is nothing to complete.
	if m.CompletionRate != 0 {
		t.Errorf("CompletionRate = %d, want 0", m.CompletionRate)
	}
	if len(m.ByPriority) != 0 {
		t.Errorf("ByPriority = %v, want empty", m.ByPriority)
	}
	if m.TagCounts == nil || len(m.TagCounts) != 0 {
		t.Errorf("TagCounts = %v, want empty slice", m.TagCounts)
	}
}

func TestAggregate_Rounding(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"half rounds up", 1, 2, 50},
		{"one third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
		{"one sixth", 1, 6, 17},
		{"all done", 4, 4, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := make([]Task, tt.total)
			for i := 0; i < tt.completed; i++ {
				tasks[i].Completed = true
			}
			if got := Aggregate(tasks).CompletionRate; got != tt.want {
				t.Errorf("CompletionRate = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTopTags(t *testing.T) {
	m := Aggregate([]Task{
		{Tags: []string{"rare", "common", "common"}},
		{Tags: []string{"common", "other"}},
		{Tags: []string{"other"}},
	})

	t.Run("limits to n by count", func(t *testing.T) {
		top := TopTags(m, 2)
		if len(top) != 2 {
			t.Fatalf("TopTags(2) returned %d entries", len(top))
		}
		if top[0].Tag != "common" || top[0].Count != 3 {
			t.Errorf("top[0] = %+v, want common/3", top[0])
		}
		if top[1].Tag != "other" || top[1].Count != 2 {
			t.Errorf("top[1] = %+v, want other/2", top[1])
		}
	})

	t.Run("first-seen breaks ties", func(t *testing.T) {
		tied := Aggregate([]Task{
			{Tags: []string{"alpha"}},
			{Tags: []string{"beta"}},
		})
		top := TopTags(tied, 2)
		if top[0].Tag != "alpha" || top[1].Tag != "beta" {
			t.Errorf("top = %v, want alpha then beta", top)
		}
	})

	t.Run("n larger than tag set", func(t *testing.T) {
		top := TopTags(m, 10)
		if len(top) != 3 {
			t.Errorf("TopTags(10) returned %d entries, want 3", len(top))
		}
	})
}
