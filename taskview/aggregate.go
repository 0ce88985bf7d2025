package taskview

import (
	"math"
	"sort"
)

// PriorityStat is the per-priority slice of the snapshot.
type PriorityStat struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// TagCount is a tag with its occurrence count.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Metrics summarizes a task snapshot.
type Metrics struct {
	Total          int                     `json:"total"`
	Completed      int                     `json:"completed"`
	Pending        int                     `json:"pending"`
	CompletionRate int                     `json:"completionRate"`
	ByPriority     map[string]PriorityStat `json:"byPriority"`
	TagCounts      []TagCount              `json:"tagCounts"`
}

// Aggregate derives summary statistics from a snapshot. Rates and
// percentages are rounded to whole numbers; an empty snapshot yields
// all zeroes. Tag counts keep first-seen order, so equal counts tie
// on which tag appeared first.
func Aggregate(tasks []Task) Metrics {
	m := Metrics{
		ByPriority: make(map[string]PriorityStat),
		TagCounts:  []TagCount{},
	}
	m.Total = len(tasks)

	priorityCounts := make(map[string]int)
	tagIndex := make(map[string]int)

	for _, t := range tasks {
		if t.Completed {
			m.Completed++
		}
		priorityCounts[t.Priority]++

		for _, tag := range t.Tags {
			if i, seen := tagIndex[tag]; seen {
				m.TagCounts[i].Count++
				continue
			}
			tagIndex[tag] = len(m.TagCounts)
			m.TagCounts = append(m.TagCounts, TagCount{Tag: tag, Count: 1})
		}
	}

	m.Pending = m.Total - m.Completed
	m.CompletionRate = percentage(m.Completed, m.Total)

	for priority, count := range priorityCounts {
		m.ByPriority[priority] = PriorityStat{
			Count:      count,
			Percentage: percentage(count, m.Total),
		}
	}

	return m
}

// TopTags returns the n most frequent tags from the metrics, with
// first-seen order breaking count ties. It never modifies the
// metrics.
func TopTags(m Metrics, n int) []TagCount {
	sorted := make([]TagCount, len(m.TagCounts))
	copy(sorted, m.TagCounts)

	// Stable sort keeps first-seen order among equal counts.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})

	if n < 0 || n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
