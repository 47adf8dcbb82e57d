// Package journal owns the live memory and message state and applies user
// commands to it: submit, undo, redo and erase.
package journal

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rcliao/life-os/internal/classify"
	"github.com/rcliao/life-os/internal/history"
	"github.com/rcliao/life-os/internal/model"
	"github.com/rcliao/life-os/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrEmptyInput is returned for a blank submission.
	ErrEmptyInput = errors.New("empty input")
	// ErrBusy is returned while a submission is outstanding.
	ErrBusy = errors.New("a submission is already in progress")
)

// Pending is a submission that has been recorded but not yet answered.
type Pending struct {
	Input     string
	Mode      classify.Mode
	Submitted time.Time
	// Memories is the memory list at submission time, newest first.
	Memories []model.Memory
}

// Journal serializes every state change behind one mutex. The model call made
// by Run happens outside the lock so undo and redo stay available meanwhile.
type Journal struct {
	mu      sync.Mutex
	records *store.Records
	history *history.Stack
	proc    *Processor
	logger  *zap.Logger
	now     func() time.Time
	entropy io.Reader
	busy    bool
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithHistory replaces the default depth-10 history.
func WithHistory(s *history.Stack) Option {
	return func(j *Journal) { j.history = s }
}

// New creates a Journal over loaded records.
func New(records *store.Records, proc *Processor, opts ...Option) *Journal {
	j := &Journal{
		records: records,
		history: history.New(history.DefaultDepth),
		proc:    proc,
		logger:  zap.NewNop(),
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func (j *Journal) newID() string {
	return ulid.MustNew(ulid.Timestamp(j.now()), j.entropy).String()
}

// Begin records the user's message and marks the journal busy. The state
// before the message is saved to history first.
func (j *Journal) Begin(ctx context.Context, input string) (*Pending, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.busy {
		return nil, ErrBusy
	}

	j.history.Save(j.records.Snapshot())

	now := j.now().UTC()
	msg := model.ChatMessage{
		ID:        j.newID(),
		Role:      model.RoleUser,
		Content:   input,
		Timestamp: now,
	}
	if err := j.records.AddMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("record message: %w", err)
	}
	j.busy = true

	return &Pending{
		Input:     input,
		Mode:      classify.Classify(input),
		Submitted: now,
		Memories:  j.records.Memories(),
	}, nil
}

// Run makes the model call for p. It does not touch journal state.
func (j *Journal) Run(ctx context.Context, p *Pending) (Result, error) {
	return j.proc.Process(ctx, p.Input, p.Memories)
}

// Complete applies the result of Run to whatever the state is now and clears
// busy. A failed call is logged and the submission dropped; the user's message
// stays and nothing else is recorded. The returned message is the system reply,
// or nil when there is none.
func (j *Journal) Complete(ctx context.Context, p *Pending, res Result, callErr error) (*model.ChatMessage, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	defer func() { j.busy = false }()

	if callErr != nil {
		j.logger.Error("model call failed",
			zap.String("provider", j.proc.provider.Name()),
			zap.String("mode", string(p.Mode)),
			zap.Int("input_len", len(p.Input)),
			zap.Error(callErr),
		)
		return nil, nil
	}

	now := j.now().UTC()
	switch res.Kind {
	case classify.Retrieval:
		reply := model.ChatMessage{
			ID:          j.newID(),
			Role:        model.RoleSystem,
			Content:     res.Text,
			Timestamp:   now,
			IsRetrieval: true,
		}
		if err := j.records.AddMessage(ctx, reply); err != nil {
			return nil, fmt.Errorf("record reply: %w", err)
		}
		return &reply, nil

	default:
		if res.Decoded.Outcome == classify.Fallback {
			j.logger.Warn("unusable analysis, storing fallback",
				zap.Int("input_len", len(p.Input)),
				zap.Int("output_len", len(res.Text)),
			)
		}
		mem := res.Decoded.Analysis.Memory(j.newID(), p.Input, now)
		if err := j.records.AddMemory(ctx, mem); err != nil {
			return nil, fmt.Errorf("record memory: %w", err)
		}
		reply := model.ChatMessage{
			ID:        j.newID(),
			Role:      model.RoleSystem,
			Content:   model.StoredMarker,
			Timestamp: now,
		}
		if err := j.records.AddMessage(ctx, reply); err != nil {
			return nil, fmt.Errorf("record reply: %w", err)
		}
		j.logger.Debug("memory stored",
			zap.String("id", mem.ID),
			zap.String("category", string(mem.Category)),
		)
		return &reply, nil
	}
}

// Submit runs a whole submission synchronously.
func (j *Journal) Submit(ctx context.Context, input string) (*model.ChatMessage, error) {
	p, err := j.Begin(ctx, input)
	if err != nil {
		return nil, err
	}
	res, callErr := j.Run(ctx, p)
	return j.Complete(ctx, p, res, callErr)
}

// Undo restores the previous snapshot. It reports false when there is none.
func (j *Journal) Undo(ctx context.Context) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	prev, ok := j.history.Undo(j.records.Snapshot())
	if !ok {
		return false, nil
	}
	if err := j.records.Restore(ctx, prev); err != nil {
		return true, fmt.Errorf("undo: %w", err)
	}
	return true, nil
}

// Redo re-applies the most recently undone snapshot.
func (j *Journal) Redo(ctx context.Context) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	next, ok := j.history.Redo(j.records.Snapshot())
	if !ok {
		return false, nil
	}
	if err := j.records.Restore(ctx, next); err != nil {
		return true, fmt.Errorf("redo: %w", err)
	}
	return true, nil
}

// Erase removes all memories and messages, their persisted keys and the
// undo/redo history. It cannot be undone.
func (j *Journal) Erase(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.records.Erase(ctx); err != nil {
		return err
	}
	j.history.Clear()
	j.logger.Info("journal erased")
	return nil
}

// Memories returns the memories, newest first.
func (j *Journal) Memories() []model.Memory {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.records.Memories()
}

// Messages returns the timeline, oldest first.
func (j *Journal) Messages() []model.ChatMessage {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.records.Messages()
}

func (j *Journal) Busy() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.busy
}

func (j *Journal) CanUndo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.history.CanUndo()
}

func (j *Journal) CanRedo() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.history.CanRedo()
}

// Version changes whenever the state does.
func (j *Journal) Version() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.records.Version()
}

// HistoryLen returns the number of undo and redo snapshots held.
func (j *Journal) HistoryLen() (undo, redo int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.history.Len(), j.history.RedoLen()
}

// LastReply returns the most recent system message, if any.
func (j *Journal) LastReply() (model.ChatMessage, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	msgs := j.records.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleSystem {
			return msgs[i], true
		}
	}
	return model.ChatMessage{}, false
}
