// Package components provides render-only building blocks for the wanddns
// terminal screens.
package components

import (
	"strings"

	"nathanbeddoewebdev/wanddns/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding is a single key hint shown in the footer.
type KeyBinding struct {
	Key  string
	Desc string
}

// Header renders the title bar: "wanddns > crumb > crumb" on the left and
// right on the far right, underlined.
func Header(width int, right string, crumbs ...string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Blue).Render("wanddns")
	for _, c := range crumbs {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(c)
	}
	if right != "" {
		right = styles.Subtitle.Render(right)
	}

	gap := max(width-4-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(width, left+strings.Repeat(" ", gap)+right, lipgloss.Border{Bottom: "─"})
}

// Footer renders the key hint bar.
func Footer(width int, bindings ...KeyBinding) string {
	if width < 10 || len(bindings) == 0 {
		return ""
	}

	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = styles.FormatKeyBinding(b.Key, b.Desc)
	}
	return bar(width, strings.Join(parts, styles.KeySepStyle.Render("  ")), lipgloss.Border{Top: "─"})
}

func bar(width int, content string, border lipgloss.Border) string {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(border).
		BorderTop(border.Top != "").
		BorderBottom(border.Bottom != "").
		BorderForeground(styles.DimGray).
		Render(content)
}
