package store

import (
	"github.com/rcliao/life-os/internal/model"
)

// IdentityThreshold is the number of memories above which the identity
// breakdown is shown.
const IdentityThreshold = 5

// velocityDays is the fixed window capture velocity is averaged over.
const velocityDays = 7

// Insights summarizes capture habits.
type Insights struct {
	Distribution []CategoryCount `json:"distribution"`
	// DeepestFocus is the most frequent category, empty when there are no memories.
	DeepestFocus model.Category `json:"deepest_focus,omitempty"`
	// Velocity is the memory count spread over a week.
	Velocity float64 `json:"velocity"`
	// Identity is false until there are more than IdentityThreshold memories.
	Identity bool `json:"identity"`
}

// Summarize computes insights for memories.
func Summarize(memories []model.Memory) Insights {
	in := Insights{
		Distribution: Distribution(memories),
		Velocity:     float64(len(memories)) / velocityDays,
		Identity:     len(memories) > IdentityThreshold,
	}
	if len(in.Distribution) > 0 {
		in.DeepestFocus = in.Distribution[0].Category
	}
	return in
}
