package store

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rcliao/life-os/internal/model"
)

// SearchParams holds parameters for searching memories.
type SearchParams struct {
	Query      string
	Category   model.Category
	TagPattern string // glob, e.g. "work*"
	Limit      int
}

// Search returns memories matching every given filter, newest first. Query is a
// case-insensitive substring matched against content, intent and facts.
func (r *Records) Search(p SearchParams) ([]model.Memory, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var tagGlob glob.Glob
	if p.TagPattern != "" {
		g, err := glob.Compile(strings.ToLower(p.TagPattern))
		if err != nil {
			return nil, fmt.Errorf("invalid tag pattern %q: %w", p.TagPattern, err)
		}
		tagGlob = g
	}
	query := strings.ToLower(strings.TrimSpace(p.Query))

	results := []model.Memory{}
	for _, m := range r.memories {
		if p.Category != "" && m.Category != p.Category {
			continue
		}
		if tagGlob != nil && !anyTagMatches(tagGlob, m.Metadata.Tags) {
			continue
		}
		if query != "" && !memoryContains(m, query) {
			continue
		}
		results = append(results, m.Clone())
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

func anyTagMatches(g glob.Glob, tags []string) bool {
	for _, t := range tags {
		if g.Match(strings.ToLower(t)) {
			return true
		}
	}
	return false
}

func memoryContains(m model.Memory, query string) bool {
	if strings.Contains(strings.ToLower(m.Content), query) {
		return true
	}
	if strings.Contains(strings.ToLower(m.Metadata.Intent), query) {
		return true
	}
	for _, f := range m.Metadata.Facts {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

// Get returns the memory with the given id.
func (r *Records) Get(id string) (model.Memory, error) {
	for _, m := range r.memories {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return model.Memory{}, fmt.Errorf("memory %s: %w", id, ErrNotFound)
}
