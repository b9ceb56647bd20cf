// Package numeric wraps bubbles/textinput into a field that only ever holds
// ASCII digits.
package numeric

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pinpad/internal/pin"
	"github.com/jask/pinpad/internal/ui/theme"
)

// PasteMsg carries clipboard text for the field.
type PasteMsg struct {
	Text string
	Err  error
}

type Model struct {
	// Clipboard reads the system clipboard for ctrl+v.
	Clipboard func() (string, error)
	Paste     key.Binding

	input textinput.Model
}

func New(placeholder string, limit int) *Model {
	ti := textinput.New()
	ti.Prompt = "# "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.PromptStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	ti.PlaceholderStyle = theme.Hint
	// the screen has no blink loop; a steady cursor matches the PIN boxes
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &Model{
		Clipboard: clipboard.ReadAll,
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		input:     ti,
	}
}

func (m *Model) Value() string     { return m.input.Value() }
func (m *Model) Focused() bool     { return m.input.Focused() }
func (m *Model) Focus() tea.Cmd    { return m.input.Focus() }
func (m *Model) Blur()             { m.input.Blur() }
func (m *Model) SetWidth(w int)    { m.input.Width = max(1, w) }
func (m *Model) View() string      { return m.input.View() }
func (m *Model) Reset()            { m.input.Reset() }
func (m *Model) SetValue(v string) { m.input.SetValue(string(pin.Digits(v))) }

// Input exposes the wrapped textinput for styling.
func (m *Model) Input() textinput.Model {
	return m.input
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PasteMsg:
		if msg.Err != nil {
			return nil
		}
		m.insert(msg.Text)
		return nil
	case tea.KeyMsg:
		if !m.input.Focused() {
			return nil
		}
		if key.Matches(msg, m.Paste) {
			read := m.Clipboard
			if read == nil {
				return nil
			}
			return func() tea.Msg {
				text, err := read()
				return PasteMsg{Text: text, Err: err}
			}
		}
		if msg.Type == tea.KeyRunes {
			if msg.Paste {
				m.insert(string(msg.Runes))
				return nil
			}
			digits := pin.Digits(string(msg.Runes))
			if len(digits) != len(msg.Runes) {
				return nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// insert appends the digits of s at the end of the value, up to the limit.
func (m *Model) insert(s string) {
	digits := pin.Digits(s)
	if len(digits) == 0 {
		return
	}
	v := m.input.Value() + string(digits)
	if m.input.CharLimit > 0 && len(v) > m.input.CharLimit {
		v = v[:m.input.CharLimit]
	}
	m.input.SetValue(v)
	m.input.CursorEnd()
}
