package store

import (
	"context"
	"sort"

	"github.com/rcliao/life-os/internal/model"
)

// Export is the portable form of the whole store.
type Export struct {
	Memories []model.Memory      `json:"memories" yaml:"memories"`
	Messages []model.ChatMessage `json:"messages" yaml:"messages"`
}

// ExportAll returns a copy of both lists.
func (r *Records) ExportAll() Export {
	s := r.Snapshot()
	return Export{Memories: s.Memories, Messages: s.Messages}
}

// Import merges memories from an export. Memories whose ID is already present
// are skipped. The merged list is re-sorted newest first. Returns the number imported.
func (r *Records) Import(ctx context.Context, memories []model.Memory) (int, error) {
	seen := make(map[string]bool, len(r.memories))
	for _, m := range r.memories {
		seen[m.ID] = true
	}

	merged := make([]model.Memory, len(r.memories), len(r.memories)+len(memories))
	copy(merged, r.memories)

	imported := 0
	for _, m := range memories {
		if m.ID == "" || seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		merged = append(merged, m.Clone())
		imported++
	}
	if imported == 0 {
		return 0, nil
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	r.memories = merged
	if err := r.commit(ctx); err != nil {
		return imported, err
	}
	return imported, nil
}
