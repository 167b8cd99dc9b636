package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/ridewrap/internal/tui/theme"
)

// RenderTabs renders a one-line tab strip with the active label highlighted.
func RenderTabs(labels []string, activeIdx int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 1)

	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(l))
		} else {
			parts = append(parts, inactiveStyle.Render(l))
		}
	}
	return strings.Join(parts, " ")
}

// TabAtX returns the index of the tab rendered at column x, or -1.
// Every tab is its label plus one column of padding each side, with one
// separator column between tabs.
func TabAtX(labels []string, x int) int {
	pos := 0
	for i, l := range labels {
		w := lipgloss.Width(l) + 2
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
