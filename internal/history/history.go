// Package history keeps a bounded undo stack of full-state snapshots and its redo stack.
package history

import "github.com/rcliao/life-os/internal/model"

// DefaultDepth is the number of undo steps kept.
const DefaultDepth = 10

// Stack is an undo/redo pair of snapshot stacks. The zero value is not usable; call New.
// Snapshots are cloned on the way in and out, so callers never share state with the stack.
type Stack struct {
	depth int
	undo  []model.Snapshot
	redo  []model.Snapshot
}

// New returns a Stack that keeps at most depth undo entries. depth <= 0 uses DefaultDepth.
func New(depth int) *Stack {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Stack{depth: depth}
}

// Depth returns the undo bound.
func (s *Stack) Depth() int {
	return s.depth
}

// Save records current before a mutating action. The oldest entries beyond the
// bound are dropped and the redo stack is cleared.
func (s *Stack) Save(current model.Snapshot) {
	s.push(current)
	s.redo = nil
}

// Undo returns the most recent saved state and moves current onto the redo stack.
// ok is false, and nothing changes, when there is nothing to undo.
func (s *Stack) Undo(current model.Snapshot) (prev model.Snapshot, ok bool) {
	if len(s.undo) == 0 {
		return model.Snapshot{}, false
	}
	s.redo = append(s.redo, current.Clone())
	prev = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	return prev.Clone(), true
}

// Redo is the inverse of Undo: it returns the most recently undone state and
// pushes current back onto the undo stack.
func (s *Stack) Redo(current model.Snapshot) (next model.Snapshot, ok bool) {
	if len(s.redo) == 0 {
		return model.Snapshot{}, false
	}
	s.push(current)
	next = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	return next.Clone(), true
}

// Clear empties both stacks.
func (s *Stack) Clear() {
	s.undo = nil
	s.redo = nil
}

// Len returns the number of undo entries.
func (s *Stack) Len() int { return len(s.undo) }

// RedoLen returns the number of redo entries.
func (s *Stack) RedoLen() int { return len(s.redo) }

// CanUndo reports whether Undo would change anything.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether Redo would change anything.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

func (s *Stack) push(snap model.Snapshot) {
	s.undo = append(s.undo, snap.Clone())
	if over := len(s.undo) - s.depth; over > 0 {
		// copy down so the dropped snapshots can be collected
		s.undo = append([]model.Snapshot(nil), s.undo[over:]...)
	}
}
