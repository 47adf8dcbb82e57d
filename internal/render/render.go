// Package render turns memories, messages and insights into terminal text.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rcliao/life-os/internal/model"
	"github.com/rcliao/life-os/internal/store"
)

var (
	colorSky     = lipgloss.Color("#38bdf8")
	colorAmber   = lipgloss.Color("#fbbf24")
	colorEmerald = lipgloss.Color("#34d399")
	colorIndigo  = lipgloss.Color("#818cf8")
	colorPink    = lipgloss.Color("#f472b6")
	colorZinc    = lipgloss.Color("#a1a1aa")
	colorMuted   = lipgloss.Color("#71717a")
	colorBorder  = lipgloss.Color("#3f3f46")

	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	contentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e4e4e7"))
	headerStyle  = lipgloss.NewStyle().Foreground(colorZinc).Bold(true)
	factStyle    = lipgloss.NewStyle().Foreground(colorZinc).Background(lipgloss.Color("#27272a")).Padding(0, 1)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	userStyle    = lipgloss.NewStyle().Foreground(contentStyle.GetForeground()).Bold(true)
	storedStyle  = lipgloss.NewStyle().Foreground(colorEmerald)
	replyStyle   = lipgloss.NewStyle().BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(colorSky).PaddingLeft(1)
)

// barColors cycle across distribution bars.
var barColors = []lipgloss.Color{"#38bdf8", "#fbbf24", "#34d399", "#818cf8", "#f472b6", "#a78bfa", "#fb7185"}

// CategoryColor returns the accent color of a category. Categories without
// their own color, including ones outside the known set, share the default.
func CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryThought:
		return colorSky
	case model.CategoryDecision:
		return colorAmber
	case model.CategoryGoal:
		return colorEmerald
	case model.CategoryLearning:
		return colorIndigo
	case model.CategoryIdea:
		return colorPink
	default:
		return colorZinc
	}
}

// Badge renders a category label.
func Badge(c model.Category) string {
	label := strings.ToUpper(string(c))
	if label == "" {
		label = "UNCATEGORIZED"
	}
	return lipgloss.NewStyle().
		Foreground(CategoryColor(c)).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, true).
		BorderForeground(CategoryColor(c)).
		Padding(0, 1).
		Render(label)
}

// Card renders one memory. width <= 0 leaves the card unwrapped.
func Card(m model.Memory, now time.Time, width int) string {
	var b strings.Builder
	b.WriteString(Badge(m.Category))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(m.Timestamp.Local().Format("Jan 2, 2006") + " · " + Ago(m.Timestamp, now)))
	b.WriteString("\n")

	content := m.Content
	if width > 4 {
		content = lipgloss.NewStyle().Width(width - 4).Render(content)
	}
	b.WriteString(contentStyle.Render(content))

	if len(m.Metadata.Facts) > 0 {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Bold(true).Render("EXTRACTED FACTS"))
		b.WriteString("\n")
		facts := make([]string, len(m.Metadata.Facts))
		for i, f := range m.Metadata.Facts {
			facts[i] = factStyle.Render(f)
		}
		b.WriteString(strings.Join(facts, " "))
	}

	var footer []string
	for _, t := range m.Metadata.Tags {
		footer = append(footer, "#"+t)
	}
	if m.InferredLifePhase != "" {
		footer = append(footer, "phase: "+m.InferredLifePhase)
	}
	if len(footer) > 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(strings.Join(footer, "  ")))
	}

	style := cardStyle
	if width > 0 {
		style = style.Width(width - 2)
	}
	return style.Render(b.String())
}

// Message renders one timeline entry.
func Message(msg model.ChatMessage) string {
	ts := mutedStyle.Render(msg.Timestamp.Local().Format("15:04"))
	switch {
	case msg.Role == model.RoleUser:
		return ts + " " + userStyle.Render(msg.Content)
	case msg.IsRetrieval:
		return ts + " " + headerStyle.Render("RETRIEVAL ENGINE") + "\n" + replyStyle.Render(msg.Content)
	case msg.Content == model.StoredMarker:
		return ts + " " + storedStyle.Render("✓ stored")
	default:
		return ts + " " + mutedStyle.Render(msg.Content)
	}
}

// Timeline renders messages oldest first, separated by blank lines.
func Timeline(msgs []model.ChatMessage) string {
	if len(msgs) == 0 {
		return mutedStyle.Render("Nothing captured yet. Type a thought, a decision or a question.")
	}
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = Message(m)
	}
	return strings.Join(parts, "\n\n")
}

// Archive renders memory cards, newest first.
func Archive(memories []model.Memory, now time.Time, width int) string {
	if len(memories) == 0 {
		return mutedStyle.Render("The archive is empty.")
	}
	cards := make([]string, len(memories))
	for i, m := range memories {
		cards[i] = Card(m, now, width)
	}
	return strings.Join(cards, "\n")
}

// Bars renders the category distribution as horizontal bars at most width cells wide.
func Bars(counts []store.CategoryCount, width int) string {
	if len(counts) == 0 {
		return mutedStyle.Render("No memories yet.")
	}
	if width <= 0 {
		width = 40
	}
	labelWidth := 0
	top := 0
	for _, c := range counts {
		if n := len(c.Category); n > labelWidth {
			labelWidth = n
		}
		if c.Count > top {
			top = c.Count
		}
	}

	lines := make([]string, len(counts))
	for i, c := range counts {
		n := c.Count * width / top
		if n == 0 {
			n = 1
		}
		bar := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)]).Render(strings.Repeat("█", n))
		lines[i] = fmt.Sprintf("%-*s %s %d", labelWidth, c.Category, bar, c.Count)
	}
	return strings.Join(lines, "\n")
}

// Insights renders the insights view.
func Insights(in store.Insights, total int, width int) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("CONCEPTUAL DISTRIBUTION"))
	b.WriteString("\n")
	b.WriteString(Bars(in.Distribution, width/2))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("IDENTITY EVOLUTION"))
	b.WriteString("\n")
	if in.Identity {
		for i, c := range in.Distribution {
			share := float64(c.Count) / float64(total) * 100
			dot := lipgloss.NewStyle().Foreground(barColors[i%len(barColors)]).Render("●")
			b.WriteString(fmt.Sprintf("%s %s %.0f%%\n", dot, c.Category, share))
		}
	} else {
		b.WriteString(mutedStyle.Render("Insufficient data for identity mapping. Record more memories to reveal patterns."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	focus := string(in.DeepestFocus)
	if focus == "" {
		focus = "N/A"
	}
	stats := []struct{ label, value string }{
		{"DEEPEST FOCUS", focus},
		{"CAPTURE VELOCITY", fmt.Sprintf("%.1f/day", in.Velocity)},
		{"TOTAL MEMORIES", Count(total)},
	}
	boxes := make([]string, len(stats))
	for i, s := range stats {
		boxes[i] = cardStyle.Render(mutedStyle.Render(s.label) + "\n" + contentStyle.Bold(true).Render(s.value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	return b.String()
}

// Size renders a byte count.
func Size(n int64) string {
	if n <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}

// Count renders n with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// Ago renders t relative to now.
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
