package pinfield

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pinpad/internal/ui/theme"
)

// Style controls box geometry and colors. Sizes are terminal cells and
// include the box border.
type Style struct {
	ItemWidth  int
	ItemHeight int
	Spacing    int

	Border       lipgloss.Border
	BorderColor  lipgloss.TerminalColor
	FocusedColor lipgloss.TerminalColor
	ErrorColor   lipgloss.TerminalColor
	Background   lipgloss.TerminalColor
	TextColor    lipgloss.TerminalColor
	ErrorText    lipgloss.Style

	// Mask replaces entered digits when non-zero.
	Mask rune
}

func DefaultStyle() Style {
	return Style{
		ItemWidth:    5,
		ItemHeight:   3,
		Spacing:      2,
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  theme.PinBorder,
		FocusedColor: theme.PinFocused,
		ErrorColor:   theme.PinError,
		TextColor:    theme.Text,
		ErrorText:    lipgloss.NewStyle().Foreground(theme.PinError),
	}
}

// TotalWidth is the width of n boxes with spacing between them.
func (s Style) TotalWidth(n int) int {
	if n <= 0 {
		return 0
	}
	return s.ItemWidth*n + s.Spacing*(n-1)
}

func (s Style) normalized() Style {
	s.ItemWidth = max(3, s.ItemWidth)
	s.ItemHeight = max(3, s.ItemHeight)
	s.Spacing = max(0, s.Spacing)
	return s
}

// underlined swaps the bottom edge for a heavy line, the terminal stand-in
// for the focus/error underline.
func underlined(b lipgloss.Border) lipgloss.Border {
	b.Bottom = "━"
	return b
}

func (s Style) box(active, errored bool) lipgloss.Style {
	border := s.Border
	st := lipgloss.NewStyle().
		Width(s.ItemWidth-2).
		Height(s.ItemHeight-2).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true)
	if s.TextColor != nil {
		st = st.Foreground(s.TextColor)
	}
	if s.Background != nil {
		st = st.Background(s.Background)
	}
	switch {
	case errored:
		st = st.Border(underlined(border)).BorderForeground(s.BorderColor).BorderBottomForeground(s.ErrorColor)
	case active:
		st = st.Border(underlined(border)).BorderForeground(s.BorderColor).BorderBottomForeground(s.FocusedColor)
	default:
		st = st.Border(border).BorderForeground(s.BorderColor)
	}
	return st
}
