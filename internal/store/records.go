package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rcliao/life-os/internal/model"
)

// Records owns the ordered memory and message lists and writes both to its KV
// after every mutation. Memories are kept newest first, messages oldest first.
//
// Records is not safe for concurrent use; journal.Journal serializes access.
type Records struct {
	kv       KV
	memories []model.Memory
	messages []model.ChatMessage
	version  uint64
}

// NewRecords returns an empty Records backed by kv. Call Load to read persisted state.
func NewRecords(kv KV) *Records {
	return &Records{
		kv:       kv,
		memories: []model.Memory{},
		messages: []model.ChatMessage{},
	}
}

// Load replaces the in-memory lists with the persisted ones. An absent key
// yields an empty list; a value that does not parse is returned as an error.
func (r *Records) Load(ctx context.Context) error {
	memories := []model.Memory{}
	raw, found, err := r.kv.Get(ctx, MemoriesKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", MemoriesKey, err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &memories); err != nil {
			return fmt.Errorf("parse %s: %w", MemoriesKey, err)
		}
	}

	messages := []model.ChatMessage{}
	raw, found, err = r.kv.Get(ctx, MessagesKey)
	if err != nil {
		return fmt.Errorf("read %s: %w", MessagesKey, err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			return fmt.Errorf("parse %s: %w", MessagesKey, err)
		}
	}

	// JSON null decodes to a nil slice
	if memories == nil {
		memories = []model.Memory{}
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}

	r.memories = memories
	r.messages = messages
	return nil
}

// Memories returns a copy of the memory list, newest first.
func (r *Records) Memories() []model.Memory {
	return r.Snapshot().Memories
}

// Messages returns a copy of the message list, oldest first.
func (r *Records) Messages() []model.ChatMessage {
	out := make([]model.ChatMessage, len(r.messages))
	copy(out, r.messages)
	return out
}

// Len returns the number of memories and messages.
func (r *Records) Len() (memories, messages int) {
	return len(r.memories), len(r.messages)
}

// Version counts mutations since the Records was created.
func (r *Records) Version() uint64 {
	return r.version
}

// Snapshot returns an independent copy of the current state.
func (r *Records) Snapshot() model.Snapshot {
	return model.Snapshot{Memories: r.memories, Messages: r.messages}.Clone()
}

// HasMemory reports whether a memory with id exists.
func (r *Records) HasMemory(id string) bool {
	for _, m := range r.memories {
		if m.ID == id {
			return true
		}
	}
	return false
}

// AddMemory prepends m and persists.
func (r *Records) AddMemory(ctx context.Context, m model.Memory) error {
	if r.HasMemory(m.ID) {
		return fmt.Errorf("memory %s already exists", m.ID)
	}
	memories := make([]model.Memory, 0, len(r.memories)+1)
	memories = append(memories, m.Clone())
	memories = append(memories, r.memories...)
	r.memories = memories
	return r.commit(ctx)
}

// AddMessage appends msg and persists.
func (r *Records) AddMessage(ctx context.Context, msg model.ChatMessage) error {
	r.messages = append(r.messages, msg)
	return r.commit(ctx)
}

// Restore makes s the current state and persists. s is copied.
func (r *Records) Restore(ctx context.Context, s model.Snapshot) error {
	c := s.Clone()
	r.memories = c.Memories
	r.messages = c.Messages
	return r.commit(ctx)
}

// Erase removes both persisted keys, then clears both lists. On failure
// nothing changes.
func (r *Records) Erase(ctx context.Context) error {
	if err := r.kv.Delete(ctx, MemoriesKey, MessagesKey); err != nil {
		return fmt.Errorf("erase: %w", err)
	}
	r.memories = []model.Memory{}
	r.messages = []model.ChatMessage{}
	r.version++
	return nil
}

func (r *Records) commit(ctx context.Context) error {
	r.version++

	b, err := json.Marshal(r.memories)
	if err != nil {
		return fmt.Errorf("encode memories: %w", err)
	}
	if err := r.kv.Set(ctx, MemoriesKey, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", MemoriesKey, err)
	}

	b, err = json.Marshal(r.messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	if err := r.kv.Set(ctx, MessagesKey, string(b)); err != nil {
		return fmt.Errorf("write %s: %w", MessagesKey, err)
	}
	return nil
}
