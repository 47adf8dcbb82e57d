// Package tui is the interactive lifeos session.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcliao/life-os/internal/journal"
)

// View is one of the session's screens.
type View int

const (
	ViewTimeline View = iota
	ViewArchive
	ViewInsights
)

var viewNames = []string{"Timeline", "Archive", "Insights"}

func (v View) String() string {
	if int(v) < len(viewNames) {
		return viewNames[v]
	}
	return fmt.Sprintf("View(%d)", int(v))
}

// copyCommand copies the last system response to the clipboard.
const copyCommand = "/copy"

// submitDoneMsg carries the outcome of an outstanding model call.
type submitDoneMsg struct {
	pending *journal.Pending
	result  journal.Result
	err     error
}

// Model is the bubbletea model of a session.
type Model struct {
	ctx     context.Context
	journal *journal.Journal

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	view         View
	confirmErase bool
	status       string

	width  int
	height int
	ready  bool

	now  func() time.Time
	copy func(string) error
}

// New returns a session model over j.
func New(ctx context.Context, j *journal.Journal) *Model {
	ti := textinput.New()
	ti.Placeholder = "Capture a thought, or ask: what did I say about..."
	ti.Prompt = "› "
	ti.CharLimit = 4000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = modeStyle

	return &Model{
		ctx:      ctx,
		journal:  j,
		viewport: viewport.New(80, 20),
		input:    ti,
		spinner:  sp,
		now:      time.Now,
		copy:     clipboard.WriteAll,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Run starts the session and blocks until the user quits.
func Run(ctx context.Context, j *journal.Journal) error {
	p := tea.NewProgram(New(ctx, j), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	return nil
}

// runCmd performs the model call off the update loop.
func (m *Model) runCmd(p *journal.Pending) tea.Cmd {
	return func() tea.Msg {
		res, err := m.journal.Run(m.ctx, p)
		return submitDoneMsg{pending: p, result: res, err: err}
	}
}
