package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/pinpad/internal/config"
	"github.com/jask/pinpad/internal/database/repository"
	"github.com/jask/pinpad/internal/pin"
	"github.com/jask/pinpad/internal/service"
	"github.com/jask/pinpad/internal/ui/keypad"
	"github.com/jask/pinpad/internal/ui/numeric"
	"github.com/jask/pinpad/internal/ui/pinfield"
	"github.com/jask/pinpad/internal/ui/toolbar"
	"github.com/jask/pinpad/internal/ui/widgets"
)

// Toolbar item keys.
const (
	actionBack    = "back"
	actionClear   = "clear"
	actionKeypad  = "keypad"
	actionHistory = "history"
)

type focusTarget int

const (
	focusField focusTarget = iota
	focusDigits
	focusKeypad
	focusCount
)

type popupKind int

const (
	popupNone popupKind = iota
	popupAccepted
	popupHistory
)

// App is the PIN screen.
type App struct {
	ctx      context.Context
	cfg      config.Config
	attempts *service.Attempts
	log      *slog.Logger
	keys     keyMap
	help     help.Model

	field  *pinfield.Model
	digits *numeric.Model
	pad    *keypad.Model
	bar    toolbar.Toolbar

	width  int
	height int
	ready  bool
	geo    geometry

	focus      focusTarget
	submitting bool
	status     string
	statusErr  bool
	summary    repository.Summary

	popup     popupKind
	popupBody widgets.Popup
}

func New(ctx context.Context, cfg config.Config, attempts *service.Attempts, log *slog.Logger) (*App, error) {
	mode, err := pin.ParseFocusMode(cfg.PIN.FocusMode)
	if err != nil {
		return nil, err
	}
	code, err := pin.New(cfg.PIN.Length, pin.WithFocusMode(mode))
	if err != nil {
		return nil, err
	}
	layout, err := toolbar.ParseLayout(cfg.UI.ToolbarLayout)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	style := pinfield.DefaultStyle()
	style.Mask = cfg.PIN.MaskRune()

	a := &App{
		ctx:      ctx,
		cfg:      cfg,
		attempts: attempts,
		log:      log,
		keys:     defaultKeys(),
		help:     help.New(),
		field:    pinfield.New(code, style),
		digits:   numeric.New("Wpisz liczby", 32),
		pad:      keypad.New(),
		bar: toolbar.Toolbar{
			Title:   cfg.UI.Title,
			Leading: &toolbar.Item{Glyph: "←", Label: "Back", Key: actionBack},
			Trailing: []toolbar.Item{
				{Glyph: "⌫", Label: "Clear", Key: actionClear},
				{Glyph: "⌨", Label: "Keypad", Key: actionKeypad},
				{Glyph: "≡", Label: "History", Key: actionHistory},
			},
			Divider: cfg.UI.Divider,
			Layout:  layout,
		},
		summary: repository.Summary{ByKind: map[string]int{}},
	}
	a.setFocus(focusField)
	if cfg.UI.Keypad {
		a.pad.Show()
	}
	return a, nil
}

func (a *App) Init() tea.Cmd {
	return a.loadSummary()
}

func (a *App) loadSummary() tea.Cmd {
	return func() tea.Msg {
		sum, err := a.attempts.Summary(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return summaryMsg{summary: sum}
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		list, err := a.attempts.Recent(a.ctx, 10)
		if err != nil {
			return errMsg{err}
		}
		sum, err := a.attempts.Summary(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg{attempts: list, summary: sum}
	}
}

// submit verifies a snapshot of the current code off the update loop.
func (a *App) submit(src pin.Source) tea.Cmd {
	if a.submitting {
		return nil
	}
	a.submitting = true
	code := a.field.Code().Clone()
	return func() tea.Msg {
		att, err := a.attempts.Submit(a.ctx, code, src)
		return submitResultMsg{attempt: att, err: err}
	}
}

func (a *App) setFocus(t focusTarget) {
	a.focus = t
	if t == focusField {
		a.field.Focus()
	} else {
		a.field.Blur()
	}
	if t == focusDigits {
		a.digits.Focus()
	} else {
		a.digits.Blur()
	}
	if t == focusKeypad {
		a.pad.Focus()
	} else {
		a.pad.Blur()
	}
	a.log.Debug("focus changed", "target", t)
}

func (a *App) cycleFocus(step int) {
	next := (int(a.focus) + step + int(focusCount)) % int(focusCount)
	a.setFocus(focusTarget(next))
}

func (a *App) setStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
}

// clear empties both fields and returns focus to the PIN.
func (a *App) clear() tea.Cmd {
	a.digits.Reset()
	a.setFocus(focusField)
	a.setStatus("Cleared", false)
	return a.field.Reset()
}

func (a *App) toggleKeypad() {
	if a.pad.Visible() {
		a.pad.Hide()
		if a.focus == focusKeypad {
			a.setFocus(focusField)
		}
		return
	}
	a.pad.Show()
}

func (a *App) closePopup() tea.Cmd {
	kind := a.popup
	a.popup = popupNone
	if kind == popupAccepted {
		return a.clear()
	}
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.ready = true
		a.relayout()
		return a, nil

	case errMsg:
		a.log.Error("screen command failed", "err", m.err)
		a.setStatus(m.err.Error(), true)
		return a, nil

	case summaryMsg:
		a.summary = m.summary
		return a, nil

	case historyMsg:
		a.summary = m.summary
		a.popup = popupHistory
		a.popupBody = historyPopup(m.attempts, m.summary, a.width)
		return a, nil

	case submitResultMsg:
		a.submitting = false
		if m.err != nil {
			text := pin.Message(m.err)
			a.field.SetError(text)
			a.setStatus(text, true)
		} else {
			a.field.ClearError()
			a.setStatus("PIN accepted", false)
			a.popup = popupAccepted
			a.popupBody = acceptedPopup(m.attempt)
		}
		return a, a.loadSummary()

	case pinfield.ChangedMsg:
		// editing clears a stale error
		if a.statusErr {
			a.setStatus("", false)
		}
		return a, nil

	case pinfield.CompletedMsg:
		return a, a.submit(m.Source)

	case pinfield.RevealedMsg:
		if a.cfg.UI.Keypad {
			a.pad.Show()
		}
		return a, nil

	case pinfield.DismissedMsg:
		if a.focus == focusKeypad {
			a.setFocus(focusField)
			a.field.Blur()
		}
		a.pad.Hide()
		return a, nil

	case pinfield.PasteMsg:
		if m.Err != nil {
			a.setStatus("Clipboard unavailable", true)
			return a, nil
		}
		return a, a.field.Update(m)

	case numeric.PasteMsg:
		if m.Err != nil {
			a.setStatus("Clipboard unavailable", true)
			return a, nil
		}
		return a, a.digits.Update(m)

	case keypad.KeyPressedMsg:
		return a, a.keypadPressed(m)

	case tea.MouseMsg:
		return a, a.handleMouse(m)

	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) keypadPressed(m keypad.KeyPressedMsg) tea.Cmd {
	if r, ok := m.Digit(); ok {
		return a.field.Type(r, pin.SourceKeypad)
	}
	switch m.Key {
	case keypad.Backspace:
		return a.field.Backspace()
	case keypad.Done:
		if a.field.Code().Complete() {
			return a.field.Done()
		}
		// an incomplete code on ✓ is still checked, so the user sees why
		return sequence(a.field.Done(), a.submit(pin.SourceKeypad))
	}
	return nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.ForceQuit) {
		return a, tea.Quit
	}
	if a.popup != popupNone {
		return a, a.closePopup()
	}
	switch {
	case key.Matches(m, a.keys.Verify):
		return a, a.submit(a.field.Source())
	case key.Matches(m, a.keys.Clear):
		return a, a.clear()
	case key.Matches(m, a.keys.Keypad):
		a.toggleKeypad()
		return a, nil
	case key.Matches(m, a.keys.NextFocus):
		a.cycleFocus(1)
		return a, nil
	case key.Matches(m, a.keys.PrevFocus):
		a.cycleFocus(-1)
		return a, nil
	case key.Matches(m, a.keys.History):
		return a, a.loadHistory()
	case key.Matches(m, a.keys.Quit) && a.focus != focusField:
		return a, tea.Quit
	}

	switch a.focus {
	case focusDigits:
		return a, a.digits.Update(m)
	case focusKeypad:
		return a, a.pad.Update(m)
	default:
		var reveal tea.Cmd
		if !a.field.Focused() && (m.Type == tea.KeyRunes || key.Matches(m, a.field.Keys.Backspace, a.field.Keys.Paste)) {
			// typing after a dismiss brings the field back
			reveal = a.field.Reveal()
		}
		return a, sequence(reveal, a.field.Update(m))
	}
}

func (a *App) handleMouse(m tea.MouseMsg) tea.Cmd {
	if m.Action != tea.MouseActionPress || m.Button != tea.MouseButtonLeft {
		return nil
	}
	if a.popup != popupNone {
		return a.closePopup()
	}
	if !a.ready || a.tooSmall() {
		return nil
	}
	if m.Y == 0 {
		if it, ok := a.bar.HitTest(a.width, m.X); ok {
			return a.runAction(it.Key)
		}
		return nil
	}
	if a.geo.inCard(m.X, m.Y) {
		return a.submit(a.field.Source())
	}
	if m.Y == a.geo.digitsY {
		a.setFocus(focusDigits)
		return nil
	}
	if cmd := a.field.Update(m); cmd != nil {
		if a.focus != focusField {
			a.setFocus(focusField)
		}
		return cmd
	}
	if cmd := a.pad.Update(m); cmd != nil {
		return cmd
	}
	return nil
}

func (a *App) runAction(action string) tea.Cmd {
	a.log.Debug("toolbar action", "action", action)
	switch action {
	case actionBack:
		return tea.Quit
	case actionClear:
		return a.clear()
	case actionKeypad:
		a.toggleKeypad()
	case actionHistory:
		return a.loadHistory()
	default:
		a.setStatus(fmt.Sprintf("Unknown action %q", action), true)
	}
	return nil
}

// sequence runs the non-nil cmds in order.
func sequence(cmds ...tea.Cmd) tea.Cmd {
	kept := cmds[:0]
	for _, c := range cmds {
		if c != nil {
			kept = append(kept, c)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return tea.Sequence(kept...)
	}
}
