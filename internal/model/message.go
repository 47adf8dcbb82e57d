package model

import "time"

// Role identifies who produced a chat message.
type Role string

const (
	RoleUser   Role = "user"
	RoleSystem Role = "system"
)

// StoredMarker is the system reply recorded when a submission becomes a memory.
const StoredMarker = "[Stored]"

// ChatMessage is one entry of the timeline.
type ChatMessage struct {
	ID          string    `json:"id" yaml:"id"`
	Role        Role      `json:"role" yaml:"role"`
	Content     string    `json:"content" yaml:"content"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	IsRetrieval bool      `json:"isRetrieval,omitempty" yaml:"isRetrieval,omitempty"`
}

// Snapshot is a full copy of the memory and message lists.
type Snapshot struct {
	Memories []Memory
	Messages []ChatMessage
}

// Clone returns a deep copy of s. Snapshots held by the history never alias live state.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Memories: make([]Memory, len(s.Memories)),
		Messages: make([]ChatMessage, len(s.Messages)),
	}
	for i, m := range s.Memories {
		out.Memories[i] = m.Clone()
	}
	copy(out.Messages, s.Messages)
	return out
}
