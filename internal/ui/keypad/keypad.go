// Package keypad is an on-screen numeric keyboard. It stands in for the
// mobile soft keyboard: the screen shows it when the PIN field asks for
// input and hides it when the field is dismissed.
package keypad

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/pinpad/internal/ui/theme"
)

const (
	Backspace = "⌫"
	Done      = "✓"
)

const (
	cellWidth = 5
	colGap    = 1
	rowGap    = 1
)

var grid = [][]string{
	{"1", "2", "3"},
	{"4", "5", "6"},
	{"7", "8", "9"},
	{Backspace, "0", Done},
}

var (
	keyStyle    = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(theme.Text).Background(theme.Surface0)
	cursorStyle = keyStyle.Foreground(theme.Base).Background(theme.Focus).Bold(true)
	actionStyle = keyStyle.Foreground(theme.Accent)
)

// KeyPressedMsg reports a pressed key: a digit, Backspace or Done.
type KeyPressedMsg struct{ Key string }

// Digit returns the pressed digit, if the key is one.
func (m KeyPressedMsg) Digit() (rune, bool) {
	if len(m.Key) == 1 && m.Key[0] >= '0' && m.Key[0] <= '9' {
		return rune(m.Key[0]), true
	}
	return 0, false
}

type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Press key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓←→", "move")),
		Down:  key.NewBinding(key.WithKeys("down", "j")),
		Left:  key.NewBinding(key.WithKeys("left", "h")),
		Right: key.NewBinding(key.WithKeys("right", "l")),
		Press: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press")),
	}
}

type Model struct {
	Keys KeyMap

	row, col int
	visible  bool
	focused  bool
	originX  int
	originY  int
}

func New() *Model {
	return &Model{Keys: DefaultKeyMap()}
}

func (m *Model) Show()              { m.visible = true }
func (m *Model) Visible() bool      { return m.visible }
func (m *Model) Focused() bool      { return m.focused }
func (m *Model) Blur()              { m.focused = false }
func (m *Model) SetOrigin(x, y int) { m.originX, m.originY = x, y }
func (m *Model) Cursor() (int, int) { return m.row, m.col }
func (m *Model) Selected() string   { return grid[m.row][m.col] }

// Hide removes the keypad from the screen and drops its focus.
func (m *Model) Hide() {
	m.visible = false
	m.focused = false
}

// Focus shows the keypad and routes keys to it.
func (m *Model) Focus() tea.Cmd {
	m.visible = true
	m.focused = true
	return nil
}

func (m *Model) Bindings() []key.Binding {
	return []key.Binding{m.Keys.Up, m.Keys.Press}
}

func Width() int  { return len(grid[0])*cellWidth + (len(grid[0])-1)*colGap }
func Height() int { return len(grid) + (len(grid)-1)*rowGap }

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if !m.visible {
		return nil
	}
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return nil
		}
		row, col, ok := m.KeyAt(msg.X, msg.Y)
		if !ok {
			return nil
		}
		m.row, m.col = row, col
		return m.press()
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		switch {
		case key.Matches(msg, m.Keys.Up):
			m.row = max(0, m.row-1)
		case key.Matches(msg, m.Keys.Down):
			m.row = min(len(grid)-1, m.row+1)
		case key.Matches(msg, m.Keys.Left):
			m.col = max(0, m.col-1)
		case key.Matches(msg, m.Keys.Right):
			m.col = min(len(grid[0])-1, m.col+1)
		case key.Matches(msg, m.Keys.Press):
			return m.press()
		case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
			if row, col, ok := find(string(msg.Runes)); ok {
				m.row, m.col = row, col
				return m.press()
			}
		}
	}
	return nil
}

func (m *Model) press() tea.Cmd {
	k := grid[m.row][m.col]
	return func() tea.Msg { return KeyPressedMsg{Key: k} }
}

func find(label string) (int, int, bool) {
	for r, row := range grid {
		for c, k := range row {
			if k == label {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// KeyAt maps screen coordinates to a grid cell. Gaps between keys miss.
func (m *Model) KeyAt(x, y int) (int, int, bool) {
	relX, relY := x-m.originX, y-m.originY
	if relX < 0 || relY < 0 || relX >= Width() || relY >= Height() {
		return 0, 0, false
	}
	if relY%(1+rowGap) != 0 || relX%(cellWidth+colGap) >= cellWidth {
		return 0, 0, false
	}
	return relY / (1 + rowGap), relX / (cellWidth + colGap), true
}

func (m *Model) View() string {
	if !m.visible {
		return ""
	}
	gap := strings.Repeat(" ", colGap)
	lines := make([]string, 0, Height())
	for r, row := range grid {
		cells := make([]string, len(row))
		for c, k := range row {
			st := keyStyle
			if k == Backspace || k == Done {
				st = actionStyle
			}
			if m.focused && r == m.row && c == m.col {
				st = cursorStyle
			}
			cells[c] = st.Render(k)
		}
		lines = append(lines, strings.Join(cells, gap))
		if r < len(grid)-1 {
			for i := 0; i < rowGap; i++ {
				lines = append(lines, strings.Repeat(" ", Width()))
			}
		}
	}
	return strings.Join(lines, "\n")
}
