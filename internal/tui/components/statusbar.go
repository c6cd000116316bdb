package components

import (
	"github.com/theirongolddev/finmate/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, an
// optional notice in the middle and the remaining-this-week figure on the
// right.
func RenderStatusBar(width int, notice, remaining string, overBudget bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	noticeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	if overBudget {
		amountStyle = amountStyle.Foreground(t.Red)
	}

	left := base.Render(" [?]help  [tab]next  [ctrl+c]quit")
	if notice != "" {
		left += base.Render("  ") + noticeStyle.Render(notice)
	}

	right := ""
	if remaining != "" {
		right = base.Render("Left this week: ") + amountStyle.Render(remaining) + base.Render(" ")
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	gap := lipgloss.NewStyle().Background(t.Surface).Width(padding).Render("")
	if padding == 0 {
		gap = ""
	}

	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).
		Render(left + gap + right)
}
