package numeric

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestDropsNonDigitKeys(t *testing.T) {
	m := New("Wpisz liczby", 8)
	m.Clipboard = nil
	m.Focus()

	typeString(m, "1a2-3 ")
	if got := m.Value(); got != "123" {
		t.Fatalf("value = %q, want 123", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("4x")})
	if got := m.Value(); got != "123" {
		t.Fatalf("mixed rune batch should be dropped, value = %q", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Value(); got != "12" {
		t.Fatalf("backspace should reach the input, value = %q", got)
	}
}

func TestBlurredFieldIgnoresKeys(t *testing.T) {
	m := New("", 0)
	typeString(m, "12")
	if m.Value() != "" {
		t.Fatalf("blurred field accepted %q", m.Value())
	}
}

func TestPasteKeepsDigitsUpToLimit(t *testing.T) {
	m := New("", 6)
	m.Focus()
	typeString(m, "9")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+48 600-700"), Paste: true})
	if got := m.Value(); got != "948600" {
		t.Fatalf("value = %q, want 948600", got)
	}
}

func TestClipboardPaste(t *testing.T) {
	m := New("", 0)
	m.Clipboard = func() (string, error) { return "tel. 12 34", nil }
	m.Focus()

	cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if cmd == nil {
		t.Fatalf("ctrl+v should read the clipboard")
	}
	m.Update(cmd())
	if got := m.Value(); got != "1234" {
		t.Fatalf("value = %q, want 1234", got)
	}

	m.Update(PasteMsg{Text: "55", Err: errors.New("unavailable")})
	if got := m.Value(); got != "1234" {
		t.Fatalf("failed read changed value to %q", got)
	}
}

func TestSetValueFilters(t *testing.T) {
	m := New("", 0)
	m.SetValue("a1b2")
	if m.Value() != "12" {
		t.Fatalf("SetValue kept non-digits: %q", m.Value())
	}
	m.Reset()
	if m.Value() != "" {
		t.Fatalf("reset left %q", m.Value())
	}
}
