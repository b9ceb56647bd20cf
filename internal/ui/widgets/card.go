package widgets

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Card is a rounded action card: a round icon badge followed by a label that
// takes the remaining width.
type Card struct {
	Icon       string
	Label      string
	IconColor  lipgloss.TerminalColor
	LabelColor lipgloss.TerminalColor
	Border     lipgloss.TerminalColor
}

func (c Card) Render(width, height int) string {
	if width < 10 || height <= 0 {
		return ""
	}
	badge := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if c.IconColor != nil {
		badge = badge.Background(c.IconColor).Foreground(lipgloss.Color("#000000"))
	}
	icon := badge.Render("(" + c.Icon + ")")

	// border (2) + padding (2) + gap (2)
	labelW := max(1, width-6-ansi.StringWidth(icon))
	label := lipgloss.NewStyle().Width(labelW).MaxWidth(labelW)
	if c.LabelColor != nil {
		label = label.Foreground(c.LabelColor)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, icon, "  ", label.Render(ansi.Truncate(c.Label, labelW, "…")))

	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(width - 2)
	if c.Border != nil {
		frame = frame.BorderForeground(c.Border)
	}
	return frame.Render(row)
}
