// Package classify decides how a submission is handled and turns model output into
// a typed analysis.
package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/life-os/internal/model"
)

// Mode is the route a submission takes.
type Mode string

const (
	// Storage turns the input into a new memory.
	Storage Mode = "storage"
	// Retrieval answers the input from prior memories.
	Retrieval Mode = "retrieval"
)

// RetrievalKeywords are the lower-case phrases that route input to retrieval.
var RetrievalKeywords = []string{
	"remember when",
	"what did i say",
	"find my thoughts",
	"show patterns",
	"summarize my life",
	"what have i been consistent about",
	"what am i becoming",
	"search",
}

// DefaultContextSize is how many recent memories a retrieval sees.
const DefaultContextSize = 50

// Classify routes input to Retrieval when its lower-cased form contains any
// retrieval keyword, and to Storage otherwise.
func Classify(input string) Mode {
	lower := strings.ToLower(input)
	for _, kw := range RetrievalKeywords {
		if strings.Contains(lower, kw) {
			return Retrieval
		}
	}
	return Storage
}

// InputModeHint is the live hint shown while typing. It is deliberately looser
// than Classify and only used for display.
func InputModeHint(input string) string {
	lower := strings.ToLower(input)
	if strings.Contains(lower, "remember") || strings.Contains(lower, "what") {
		return "RETRIEVAL"
	}
	return "PASSIVE CAPTURE"
}

// ContextWindow formats the n most recent memories, one per line, oldest first.
// memories must be ordered newest first, as the record store keeps them.
func ContextWindow(memories []model.Memory, n int) string {
	if n <= 0 {
		n = DefaultContextSize
	}
	if len(memories) > n {
		memories = memories[:n]
	}
	lines := make([]string, 0, len(memories))
	for i := len(memories) - 1; i >= 0; i-- {
		m := memories[i]
		lines = append(lines, fmt.Sprintf("[%s] (%s): %s", m.Timestamp.UTC().Format(time.RFC3339), m.Category, m.Content))
	}
	return strings.Join(lines, "\n")
}
