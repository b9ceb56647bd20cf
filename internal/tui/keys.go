package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Verify    key.Binding
	Clear     key.Binding
	Keypad    key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	History   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Verify:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "verify")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Keypad:    key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "keypad")),
		NextFocus: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "focus")),
		PrevFocus: key.NewBinding(key.WithKeys("ctrl+p")),
		History:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "history")),
	}
}
