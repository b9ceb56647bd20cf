// Package pinfield is a Bubble Tea component that renders a pin.Code as a row
// of boxes and turns key, paste and mouse input into edits.
package pinfield

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/pinpad/internal/pin"
)

// ChangedMsg is sent after any edit that changed a slot.
type ChangedMsg struct{ Value string }

// CompletedMsg is sent when every slot is filled, or on "done" with a full code.
type CompletedMsg struct {
	Value  string
	Source pin.Source
}

// DismissedMsg is sent when the field gives up focus after completion or "done".
type DismissedMsg struct{}

// RevealedMsg is sent when the field asks for its input surface to be shown.
type RevealedMsg struct{}

// PasteMsg carries clipboard contents read in response to the paste binding.
type PasteMsg struct {
	Text string
	Err  error
}

type KeyMap struct {
	Backspace key.Binding
	Left      key.Binding
	Right     key.Binding
	Next      key.Binding
	Done      key.Binding
	Paste     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "delete")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Done:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

type Model struct {
	Keys KeyMap
	// Clipboard reads the system clipboard for the paste binding.
	Clipboard func() (string, error)

	code    *pin.Code
	style   Style
	focused bool
	err     string
	source  pin.Source
	originX int
	originY int
}

func New(code *pin.Code, style Style) *Model {
	style = style.normalized()
	return &Model{
		Keys:      DefaultKeyMap(),
		Clipboard: clipboard.ReadAll,
		code:      code,
		style:     style,
		source:    pin.SourceTyped,
	}
}

func (m *Model) Code() *pin.Code     { return m.code }
func (m *Model) Value() string       { return m.code.String() }
func (m *Model) Source() pin.Source  { return m.source }
func (m *Model) Err() string         { return m.err }
func (m *Model) Style() Style        { return m.style }
func (m *Model) Focused() bool       { return m.focused }
func (m *Model) TotalWidth() int     { return m.style.TotalWidth(m.code.Len()) }
func (m *Model) SetOrigin(x, y int)  { m.originX, m.originY = x, y }
func (m *Model) SetError(msg string) { m.err = msg }
func (m *Model) ClearError()         { m.err = "" }

func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return nil
}

func (m *Model) Blur() { m.focused = false }

// Reset clears the code and any error and takes focus on the first slot.
func (m *Model) Reset() tea.Cmd {
	out := m.code.Reset()
	m.err = ""
	m.source = pin.SourceTyped
	m.focused = true
	if out.Changed {
		return emit(ChangedMsg{Value: m.code.String()})
	}
	return nil
}

// Reveal focuses the field on its target slot, the programmatic "show keyboard".
func (m *Model) Reveal() tea.Cmd {
	return m.apply(m.code.Activate(m.code.Target()), m.source)
}

func (m *Model) Type(r rune, src pin.Source) tea.Cmd {
	return m.apply(m.code.Type(r), src)
}

func (m *Model) Backspace() tea.Cmd {
	return m.apply(m.code.Backspace(), m.source)
}

func (m *Model) Paste(s string) tea.Cmd {
	return m.apply(m.code.Paste(s), pin.SourcePasted)
}

func (m *Model) Done() tea.Cmd {
	return m.apply(m.code.Done(), m.source)
}

func (m *Model) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Backspace, m.Keys.Paste, m.Keys.Done}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PasteMsg:
		if msg.Err != nil || msg.Text == "" {
			return nil
		}
		return m.Paste(msg.Text)
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		idx := m.BoxAt(msg.X, msg.Y)
		if idx < 0 {
			return nil
		}
		m.focused = true
		return m.apply(m.code.Activate(idx), m.source)
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		return m.Paste(string(msg.Runes))
	}
	switch {
	case key.Matches(msg, m.Keys.Paste):
		read := m.Clipboard
		if read == nil {
			return nil
		}
		return func() tea.Msg {
			text, err := read()
			return PasteMsg{Text: text, Err: err}
		}
	case key.Matches(msg, m.Keys.Backspace):
		return m.Backspace()
	case key.Matches(msg, m.Keys.Left):
		return m.apply(m.code.Left(), m.source)
	case key.Matches(msg, m.Keys.Right):
		return m.apply(m.code.Right(), m.source)
	case key.Matches(msg, m.Keys.Next):
		return m.apply(m.code.Next(), m.source)
	case key.Matches(msg, m.Keys.Done):
		return m.Done()
	}
	if msg.Type != tea.KeyRunes {
		return nil
	}
	src := pin.SourceTyped
	if len(pin.Digits(string(msg.Runes))) > 1 {
		src = pin.SourcePasted
	}
	return m.apply(m.code.Input(string(msg.Runes)), src)
}

// apply turns an Outcome into component state and outgoing messages. The
// messages are sequenced so a parent sees the change before the completion.
func (m *Model) apply(out pin.Outcome, src pin.Source) tea.Cmd {
	var cmds []tea.Cmd
	if out.Changed {
		m.err = ""
		m.source = src
		cmds = append(cmds, emit(ChangedMsg{Value: m.code.String()}))
	}
	if out.Reveal {
		m.focused = true
		cmds = append(cmds, emit(RevealedMsg{}))
	}
	if out.Complete {
		cmds = append(cmds, emit(CompletedMsg{Value: m.code.String(), Source: m.source}))
	}
	if out.Dismiss {
		m.focused = false
		cmds = append(cmds, emit(DismissedMsg{}))
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Sequence(cmds...)
	}
}

// BoxAt maps screen coordinates to a box index, or -1 for gaps and misses.
func (m *Model) BoxAt(x, y int) int {
	relX, relY := x-m.originX, y-m.originY
	if relX < 0 || relY < 0 || relY >= m.style.ItemHeight || relX >= m.TotalWidth() {
		return -1
	}
	stride := m.style.ItemWidth + m.style.Spacing
	if relX%stride >= m.style.ItemWidth {
		return -1
	}
	return relX / stride
}

// View renders the boxes, a blank line and the error line sized to the boxes.
func (m *Model) View() string {
	return m.BoxesView() + "\n\n" + m.ErrorView(m.TotalWidth())
}

// BoxesView renders only the row of boxes.
func (m *Model) BoxesView() string {
	cells := pin.Mask(m.code, m.style.Mask)
	errored := m.err != ""
	parts := make([]string, 0, 2*len(cells))
	gap := strings.Repeat(" ", m.style.Spacing)
	for i, cell := range cells {
		active := m.focused && i == m.code.Focus()
		parts = append(parts, m.style.box(active, errored).Render(cell))
		if i < len(cells)-1 && gap != "" {
			parts = append(parts, gap)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// ErrorView renders the error message centered on one line of exactly width
// cells. A message wider than that is truncated, never wrapped.
func (m *Model) ErrorView(width int) string {
	if width <= 0 {
		return ""
	}
	if m.err == "" {
		return strings.Repeat(" ", width)
	}
	msg := ansi.Truncate(m.err, width, "…")
	return m.style.ErrorText.Width(width).Align(lipgloss.Center).Render(msg)
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
