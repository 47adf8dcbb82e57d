package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rcliao/life-os/internal/classify"
	"github.com/rcliao/life-os/internal/render"
	"github.com/rcliao/life-os/internal/store"
)

func (m *Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.buildHeader(),
		m.viewport.View(),
		m.buildInputBox(),
		m.buildBottomBar(),
	)
}

// refresh re-renders the active view into the viewport.
func (m *Model) refresh() {
	width := m.viewport.Width
	switch m.view {
	case ViewArchive:
		m.viewport.SetContent(render.Archive(m.journal.Memories(), m.now(), width))
		m.viewport.GotoTop()
	case ViewInsights:
		mems := m.journal.Memories()
		m.viewport.SetContent(render.Insights(store.Summarize(mems), len(mems), width))
		m.viewport.GotoTop()
	default:
		m.viewport.SetContent(render.Timeline(m.journal.Messages()))
		m.viewport.GotoBottom()
	}
}

func (m *Model) buildHeader() string {
	tabs := make([]string, len(viewNames))
	for i, name := range viewNames {
		if View(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	left := titleStyle.Render("LIFE OS") + "  " + strings.Join(tabs, "")
	right := hintStyle.Render(m.memoryCount())
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right + "\n"
}

func (m *Model) memoryCount() string {
	n := len(m.journal.Memories())
	if n == 1 {
		return "1 memory"
	}
	return render.Count(n) + " memories"
}

func (m *Model) buildInputBox() string {
	if m.confirmErase {
		return inputBoxStyle.Render(confirmStyle.Render("Erase every memory and message? This cannot be undone. [y/N]"))
	}
	if m.journal.Busy() {
		return busyInputBoxStyle.Render(m.spinner.View() + " " + statusStyle.Render("processing..."))
	}
	return inputBoxStyle.Render(m.input.View())
}

func (m *Model) buildBottomBar() string {
	mode := modeStyle.Render(classify.InputModeHint(m.input.Value()))

	keys := []string{"tab views"}
	if m.journal.CanUndo() {
		keys = append(keys, "^z undo")
	}
	if m.journal.CanRedo() {
		keys = append(keys, "^y redo")
	}
	keys = append(keys, "^x erase", copyCommand, "^c quit")

	bar := mode + "  " + hintStyle.Render(strings.Join(keys, " · "))
	if m.status != "" {
		bar += "  " + statusStyle.Render(m.status)
	}
	return bar
}
