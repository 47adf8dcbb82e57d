package history

import (
	"fmt"
	"testing"

	"github.com/rcliao/life-os/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// state builds a snapshot with n messages so states are easy to tell apart.
func state(n int) model.Snapshot {
	s := model.Snapshot{Memories: []model.Memory{}, Messages: []model.ChatMessage{}}
	for i := 0; i < n; i++ {
		s.Messages = append(s.Messages, model.ChatMessage{ID: fmt.Sprint(i), Role: model.RoleUser, Content: fmt.Sprint("msg ", i)})
	}
	return s
}

func TestSaveBoundsDepth(t *testing.T) {
	tests := []struct {
		saves int
		want  int
	}{
		{0, 0},
		{1, 1},
		{9, 9},
		{10, 10},
		{11, 10},
		{25, 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d saves", tt.saves), func(t *testing.T) {
			s := New(DefaultDepth)
			for i := 0; i < tt.saves; i++ {
				s.Save(state(i))
			}
			assert.Equal(t, tt.want, s.Len())
		})
	}
}

func TestSaveKeepsMostRecent(t *testing.T) {
	s := New(3)
	for i := 0; i < 5; i++ {
		s.Save(state(i))
	}
	// entries are states 2, 3, 4; undoing walks them newest first
	cur := state(5)
	for _, want := range []int{4, 3, 2} {
		prev, ok := s.Undo(cur)
		require.True(t, ok)
		assert.Len(t, prev.Messages, want)
		cur = prev
	}
	_, ok := s.Undo(cur)
	assert.False(t, ok)
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := New(0)
	assert.Equal(t, DefaultDepth, s.Depth())

	_, ok := s.Undo(state(1))
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.RedoLen())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestUndoThenRedoRestores(t *testing.T) {
	s := New(DefaultDepth)
	before := state(1)
	s.Save(before)
	current := state(2)

	prev, ok := s.Undo(current)
	require.True(t, ok)
	assert.Equal(t, before, prev)
	assert.True(t, s.CanRedo())

	next, ok := s.Redo(prev)
	require.True(t, ok)
	assert.Equal(t, current, next)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.RedoLen())
}

func TestSaveAfterUndoClearsRedo(t *testing.T) {
	s := New(DefaultDepth)
	s.Save(state(0))
	s.Save(state(1))

	prev, ok := s.Undo(state(2))
	require.True(t, ok)
	require.True(t, s.CanRedo())

	s.Save(prev)
	assert.False(t, s.CanRedo())
	_, ok = s.Redo(prev)
	assert.False(t, ok)
}

func TestSnapshotsDoNotAlias(t *testing.T) {
	s := New(DefaultDepth)
	live := state(1)
	s.Save(live)
	live.Messages[0].Content = "mutated after save"

	prev, ok := s.Undo(state(2))
	require.True(t, ok)
	assert.Equal(t, "msg 0", prev.Messages[0].Content)

	prev.Messages[0].Content = "mutated after undo"
	next, ok := s.Redo(prev)
	require.True(t, ok)
	back, ok := s.Undo(next)
	require.True(t, ok)
	assert.Equal(t, "mutated after undo", back.Messages[0].Content)
}

func TestRedoRespectsDepth(t *testing.T) {
	s := New(2)
	s.Save(state(0))
	s.Save(state(1))
	_, _ = s.Undo(state(2))
	// history now 1 entry, redo 1 entry
	s.push(state(7))
	s.push(state(8))
	_, ok := s.Redo(state(9))
	require.True(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestClear(t *testing.T) {
	s := New(DefaultDepth)
	s.Save(state(0))
	s.Save(state(1))
	s.Undo(state(2))
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.RedoLen())
}
