// Package model defines the journal record types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is the kind of a stored memory.
type Category string

const (
	CategoryThought      Category = "Thought"
	CategoryDecision     Category = "Decision"
	CategoryIdea         Category = "Idea"
	CategoryGoal         Category = "Goal"
	CategoryLearning     Category = "Learning"
	CategoryEvent        Category = "Event"
	CategoryRelationship Category = "Relationship"
	CategoryProblem      Category = "Problem"
	CategoryExperiment   Category = "Experiment"
	CategoryIdentity     Category = "Identity"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryThought,
	CategoryDecision,
	CategoryIdea,
	CategoryGoal,
	CategoryLearning,
	CategoryEvent,
	CategoryRelationship,
	CategoryProblem,
	CategoryExperiment,
	CategoryIdentity,
}

// ValidCategories are the allowed memory categories.
var ValidCategories = map[Category]bool{
	CategoryThought:      true,
	CategoryDecision:     true,
	CategoryIdea:         true,
	CategoryGoal:         true,
	CategoryLearning:     true,
	CategoryEvent:        true,
	CategoryRelationship: true,
	CategoryProblem:      true,
	CategoryExperiment:   true,
	CategoryIdentity:     true,
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	return ValidCategories[c]
}

// ParseCategory matches s against the enumerated categories, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Metadata holds what the model extracted from a memory. Every field may be absent.
type Metadata struct {
	Intent     string   `json:"intent,omitempty" yaml:"intent,omitempty"`
	Facts      []string `json:"facts,omitempty" yaml:"facts,omitempty"`
	Emotions   []string `json:"emotions,omitempty" yaml:"emotions,omitempty"`
	Importance *float64 `json:"importance,omitempty" yaml:"importance,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Memory is a categorized record derived from user input.
type Memory struct {
	ID                string    `json:"id" yaml:"id"`
	Timestamp         time.Time `json:"timestamp" yaml:"timestamp"`
	Content           string    `json:"content" yaml:"content"`
	Category          Category  `json:"category" yaml:"category"`
	Metadata          Metadata  `json:"metadata" yaml:"metadata"`
	InferredLifePhase string    `json:"inferredLifePhase,omitempty" yaml:"inferredLifePhase,omitempty"`
}

// Clone returns a copy of m that shares no slices or pointers with it.
func (m Memory) Clone() Memory {
	c := m
	c.Metadata.Facts = cloneStrings(m.Metadata.Facts)
	c.Metadata.Emotions = cloneStrings(m.Metadata.Emotions)
	c.Metadata.Tags = cloneStrings(m.Metadata.Tags)
	if m.Metadata.Importance != nil {
		v := *m.Metadata.Importance
		c.Metadata.Importance = &v
	}
	return c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
