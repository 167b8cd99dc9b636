package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ridewrap/internal/tui/theme"
)

// BarItem is one row of a ranked bar list.
type BarItem struct {
	Label string
	Value int
	Extra string // shown after the count, e.g. spend
}

// RankedBars renders one labelled horizontal bar per item, scaled to the
// largest value and fitted to width.
func RankedBars(items []BarItem, color lipgloss.Color, width int) string {
	t := theme.Active
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no data")
	}

	labelW, valueW, peak := 0, 0, 0
	for _, it := range items {
		labelW = max(labelW, lipgloss.Width(it.Label))
		valueW = max(valueW, len(fmt.Sprint(it.Value)))
		peak = max(peak, it.Value)
	}
	if labelW > width/2 {
		labelW = width / 2
	}
	barW := width - labelW - valueW - 4
	if barW < 1 {
		barW = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	barStyle := lipgloss.NewStyle().Foreground(color)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	lines := make([]string, 0, len(items))
	for _, it := range items {
		label := truncate(it.Label, labelW)
		label += strings.Repeat(" ", labelW-lipgloss.Width(label))

		n := 0
		if peak > 0 {
			n = it.Value * barW / peak
		}
		line := labelStyle.Render(label) + " " +
			barStyle.Render(strings.Repeat("█", n)+strings.Repeat(" ", barW-n)) + " " +
			valueStyle.Render(fmt.Sprintf("%*d", valueW, it.Value))
		if it.Extra != "" {
			line += " " + valueStyle.Render(it.Extra)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Sparkline renders a unicode sparkline from counts.
func Sparkline(values []int, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := v * (len(blocks) - 1) / peak
		idx = min(max(idx, 0), len(blocks)-1)
		buf.WriteRune(blocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 {
		return ""
	}
	if len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
