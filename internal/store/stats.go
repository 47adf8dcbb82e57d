package store

import (
	"os"
	"sort"

	"github.com/rcliao/life-os/internal/model"
)

// Stats holds store statistics.
type Stats struct {
	Driver        string          `json:"driver"`
	Path          string          `json:"path,omitempty"`
	SizeBytes     int64           `json:"size_bytes,omitempty"`
	TotalMemories int             `json:"total_memories"`
	TotalMessages int             `json:"total_messages"`
	Retrievals    int             `json:"retrievals"`
	Categories    []CategoryCount `json:"categories"`
	Tags          []TagCount      `json:"tags,omitempty"`
}

// CategoryCount is the number of memories in one category.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// TagCount is the number of memories carrying one tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Distribution counts memories per category, most frequent first. Ties keep
// the order in which categories first appear in the list.
func Distribution(memories []model.Memory) []CategoryCount {
	counts := map[model.Category]int{}
	var order []model.Category
	for _, m := range memories {
		if _, ok := counts[m.Category]; !ok {
			order = append(order, m.Category)
		}
		counts[m.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Stats returns statistics for the current state.
func (r *Records) Stats(driver, path string) *Stats {
	st := &Stats{
		Driver:        driver,
		Path:          path,
		TotalMemories: len(r.memories),
		TotalMessages: len(r.messages),
		Categories:    Distribution(r.memories),
	}

	if path != "" {
		if info, err := os.Stat(path); err == nil {
			st.SizeBytes = info.Size()
		}
	}

	for _, msg := range r.messages {
		if msg.IsRetrieval {
			st.Retrievals++
		}
	}

	tags := map[string]int{}
	for _, m := range r.memories {
		for _, t := range m.Metadata.Tags {
			tags[t]++
		}
	}
	for t, n := range tags {
		st.Tags = append(st.Tags, TagCount{Tag: t, Count: n})
	}
	sort.Slice(st.Tags, func(i, j int) bool {
		if st.Tags[i].Count != st.Tags[j].Count {
			return st.Tags[i].Count > st.Tags[j].Count
		}
		return st.Tags[i].Tag < st.Tags[j].Tag
	})

	return st
}
