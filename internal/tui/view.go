package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/ui/keypad"
	"github.com/jask/pinpad/internal/ui/theme"
	"github.com/jask/pinpad/internal/ui/widgets"
)

const (
	measuringText = "Measuring layout..."
	tooSmallText  = "Screen too small to display PIN fields properly."
	// horizontal room kept around the PIN row
	fieldPadding = 4
	cardHeight   = 3
)

// geometry is where each block lands on screen, in cells. Mouse hit-testing
// uses the same numbers as View.
type geometry struct {
	fieldX, fieldY int
	errY, digitsY  int
	cardX, cardY   int
	cardW          int
	padX, padY     int
}

func (g geometry) inCard(x, y int) bool {
	return y >= g.cardY && y < g.cardY+cardHeight && x >= g.cardX && x < g.cardX+g.cardW
}

func (a *App) tooSmall() bool {
	return a.width < a.field.TotalWidth()+fieldPadding
}

func (a *App) relayout() {
	fw := a.field.TotalWidth()
	var g geometry
	g.fieldX = max(0, (a.width-fw)/2)
	g.fieldY = a.bar.Height() + 1
	// boxes, a blank line, then the error line
	g.errY = g.fieldY + a.field.Style().ItemHeight + 1
	g.digitsY = g.errY + 2
	g.cardW = max(10, min(a.width-2, max(fw, 24)))
	g.cardX = max(0, (a.width-g.cardW)/2)
	g.cardY = g.digitsY + 2
	g.padX = max(0, (a.width-keypad.Width())/2)
	g.padY = g.cardY + cardHeight + 1
	a.geo = g

	a.field.SetOrigin(g.fieldX, g.fieldY)
	a.pad.SetOrigin(g.padX, g.padY)
	a.digits.SetWidth(min(a.width-8, 24))
}

func (a *App) View() string {
	if !a.ready {
		return measuringText
	}
	if a.tooSmall() {
		return theme.Alert.Render(tooSmallText)
	}
	canvas := make([]string, max(1, a.height))
	put := func(y, x int, block string) {
		for i, line := range strings.Split(block, "\n") {
			if row := y + i; row >= 0 && row < len(canvas) {
				canvas[row] = strings.Repeat(" ", max(0, x)) + line
			}
		}
	}

	put(0, 0, a.bar.Render(a.width))
	put(a.geo.fieldY, a.geo.fieldX, a.field.BoxesView())
	put(a.geo.errY, 0, a.field.ErrorView(a.width))

	put(a.geo.digitsY, 0, widgets.Center(a.width, a.digits.View()))

	put(a.geo.cardY, a.geo.cardX, a.verifyCard().Render(a.geo.cardW, cardHeight))
	if a.pad.Visible() {
		put(a.geo.padY, a.geo.padX, a.pad.View())
	}
	if a.height >= 2 {
		put(a.height-2, 0, a.footerView())
	}
	put(a.height-1, 0, a.statusView())

	for i := range canvas {
		canvas[i] = widgets.PadRight(canvas[i], a.width)
	}
	out := strings.Join(canvas, "\n")
	if a.popup != popupNone {
		out = a.popupBody.Over(out, a.width, a.height)
	}
	return out
}

func (a *App) verifyCard() widgets.Card {
	c := widgets.Card{
		Icon:       "✓",
		Label:      "Verify PIN",
		IconColor:  theme.Success,
		LabelColor: theme.Text,
		Border:     theme.Border,
	}
	if a.submitting {
		c.Label = "Checking…"
		c.IconColor = theme.Warning
	}
	return c
}

func (a *App) bindings() []key.Binding {
	var out []key.Binding
	switch a.focus {
	case focusDigits:
		out = append(out, a.digits.Paste)
	case focusKeypad:
		out = append(out, a.pad.Bindings()...)
	default:
		out = append(out, a.field.Bindings()...)
	}
	out = append(out, a.keys.Verify, a.keys.Clear, a.keys.Keypad, a.keys.NextFocus, a.keys.History)
	if a.focus != focusField {
		out = append(out, a.keys.Quit)
	}
	return out
}

func (a *App) footerView() string {
	a.help.Width = a.width
	return widgets.PadRight(a.help.ShortHelpView(a.bindings()), a.width)
}

func (a *App) statusView() string {
	left := a.status
	if a.submitting {
		left = "Checking PIN…"
	}
	if strings.TrimSpace(left) == "" {
		left = "Ready"
	}
	by := a.summary.ByKind
	right := fmt.Sprintf("✓ %d  ✗ %d",
		by[repository.OutcomeAccepted],
		by[repository.OutcomeIncorrect]+by[repository.OutcomeIncomplete]+by[repository.OutcomeFailed])
	line := widgets.HStack{
		Widgets: []widgets.Widget{widgets.Text(" " + left), widgets.Text(right + " ")},
		Ratios:  []float64{3, 1},
	}.Render(a.width, 1)
	style := theme.Status
	if a.statusErr {
		style = theme.StatusE
	}
	return style.Width(a.width).MaxWidth(a.width).Render(line)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func acceptedPopup(att repository.Attempt) widgets.Popup {
	body := "Welcome back.\n\n" + theme.Hint.Render("attempt "+shortID(att.ID)+" · press any key")
	return widgets.Popup{Title: "PIN accepted", Body: body, Border: theme.Success}
}

func historyPopup(list []repository.Attempt, sum repository.Summary, width int) widgets.Popup {
	rows := make([]string, 0, len(list))
	for _, att := range list {
		outcome := lipgloss.NewStyle().Width(10).Render(att.Outcome)
		rows = append(rows, fmt.Sprintf("%s  %s %2d  %s",
			att.CreatedAt.Local().Format("2006-01-02 15:04:05"), outcome, att.Digits, att.Source))
	}
	if len(rows) == 0 {
		rows = append(rows, theme.Hint.Render("No attempts yet"))
	}
	totals := fmt.Sprintf("%d total, %d accepted, %d incorrect, %d incomplete",
		sum.Total,
		sum.ByKind[repository.OutcomeAccepted],
		sum.ByKind[repository.OutcomeIncorrect],
		sum.ByKind[repository.OutcomeIncomplete])

	table := strings.Join(rows, "\n")
	body := widgets.VStack{
		Widgets: []widgets.Widget{widgets.Text(table), widgets.Text(theme.Hint.Render(totals))},
		Spacing: 1,
		Ratios:  []float64{float64(len(rows)), 1},
	}.Render(max(1, width-8), len(rows)+2)
	return widgets.Popup{Title: "Recent attempts", Body: body, Border: theme.Focus}
}
