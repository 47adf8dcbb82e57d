package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#38bdf8")
	mutedGray = lipgloss.Color("#71717a")
	dimGray   = lipgloss.Color("#3f3f46")
	warnRed   = lipgloss.Color("#fb7185")
	textWhite = lipgloss.Color("#e4e4e7")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(textWhite).
			Bold(true)

	tabStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Foreground(accent).
			Bold(true).
			Underline(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	modeStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	confirmStyle = lipgloss.NewStyle().
			Foreground(warnRed).
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Padding(0, 1)

	busyInputBoxStyle = inputBoxStyle.
				BorderForeground(accent)
)
