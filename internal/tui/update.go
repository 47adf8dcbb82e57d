package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcliao/life-os/internal/journal"
	"github.com/rcliao/life-os/internal/logging"
	"go.uber.org/zap"
)

const (
	headerHeight = 2
	footerHeight = 5
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case spinner.TickMsg:
		if !m.journal.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
	m.input.Width = max(msg.Width-8, 10)
	m.ready = true
	m.refresh()
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmErase {
		return m.handleEraseConfirm(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyCtrlZ:
		return m.handleUndo()

	case tea.KeyCtrlY:
		return m.handleRedo()

	case tea.KeyTab:
		m.view = (m.view + 1) % View(len(viewNames))
		m.refresh()
		return m, nil

	case tea.KeyShiftTab:
		m.view = (m.view + View(len(viewNames)) - 1) % View(len(viewNames))
		m.refresh()
		return m, nil

	case tea.KeyCtrlX:
		m.confirmErase = true
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown, tea.KeyUp, tea.KeyDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyEnter:
		return m.handleEnter()
	}

	// typing is disabled while a submission is outstanding
	if m.journal.Busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.journal.Busy() {
		return m, nil
	}

	value := m.input.Value()
	if strings.TrimSpace(value) == copyCommand {
		m.input.Reset()
		return m.handleCopy()
	}

	p, err := m.journal.Begin(m.ctx, value)
	switch {
	case errors.Is(err, journal.ErrEmptyInput):
		return m, nil
	case err != nil:
		logging.FromContext(m.ctx).Error("begin submission", zap.Error(err))
		m.status = "could not record input: " + err.Error()
		return m, nil
	}

	m.input.Reset()
	m.status = ""
	m.view = ViewTimeline
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.runCmd(p))
}

func (m *Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if _, err := m.journal.Complete(m.ctx, msg.pending, msg.result, msg.err); err != nil {
		logging.FromContext(m.ctx).Error("complete submission", zap.Error(err))
		m.status = "could not save: " + err.Error()
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleUndo() (tea.Model, tea.Cmd) {
	ok, err := m.journal.Undo(m.ctx)
	switch {
	case err != nil:
		m.status = "undo failed: " + err.Error()
	case !ok:
		m.status = "nothing to undo"
	default:
		m.status = "undone"
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleRedo() (tea.Model, tea.Cmd) {
	ok, err := m.journal.Redo(m.ctx)
	switch {
	case err != nil:
		m.status = "redo failed: " + err.Error()
	case !ok:
		m.status = "nothing to redo"
	default:
		m.status = "redone"
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleEraseConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.confirmErase = false
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if s := msg.String(); s != "y" && s != "Y" {
		m.status = "erase cancelled"
		return m, nil
	}
	if err := m.journal.Erase(m.ctx); err != nil {
		m.status = "erase failed: " + err.Error()
	} else {
		m.status = "all memories erased"
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleCopy() (tea.Model, tea.Cmd) {
	reply, ok := m.journal.LastReply()
	if !ok {
		m.status = "nothing to copy"
		return m, nil
	}
	if err := m.copy(reply.Content); err != nil {
		m.status = "copy failed: " + err.Error()
		return m, nil
	}
	m.status = "copied last response"
	return m, nil
}
