package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetSGR = "\x1b[0m"

// Popup is a bordered card composited over an existing screen.
type Popup struct {
	Title  string
	Body   string
	Border lipgloss.TerminalColor
}

func (p Popup) card(width int) []string {
	content := p.Body
	if p.Title != "" {
		content = lipgloss.NewStyle().Bold(true).Render(p.Title) + "\n\n" + content
	}
	style := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2).MaxWidth(width)
	if p.Border != nil {
		style = style.BorderForeground(p.Border)
	}
	return strings.Split(style.Render(content), "\n")
}

// Over centers the card on base. The result is exactly width x height cells
// and base stays visible around the card.
func (p Popup) Over(base string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	card := p.card(width)
	if len(card) > height {
		card = card[:height]
	}
	cardW := 0
	for _, l := range card {
		cardW = max(cardW, ansi.StringWidth(l))
	}
	cardW = min(cardW, width)
	top := (height - len(card)) / 2
	left := (width - cardW) / 2

	rows := strings.Split(base, "\n")
	out := make([]string, height)
	for y := range out {
		row := ""
		if y < len(rows) {
			row = rows[y]
		}
		row = PadRight(row, width)
		if i := y - top; i >= 0 && i < len(card) {
			row = splice(row, PadRight(card[i], cardW), left, width)
		}
		out[y] = row
	}
	return strings.Join(out, "\n")
}

// splice writes seg over row starting at cell at.
func splice(row, seg string, at, width int) string {
	head := ansi.Truncate(row, at, "")
	tail := ansi.TruncateLeft(row, at+ansi.StringWidth(seg), "")
	return PadRight(head+resetSGR+seg+resetSGR+tail, width)
}
