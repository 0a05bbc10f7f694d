package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// physicalKey translates a terminal key event to the key identifier the
// keymap table uses. Unmappable events yield "".
func physicalKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyEnter:
		return "Enter"
	case tea.KeyEsc:
		return "Escape"
	case tea.KeyBackspace, tea.KeyCtrlH:
		return "Backspace"
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return string(msg.Runes)
		}
	}
	return ""
}

// keyMap holds the terminal-only bindings layered over the keymap table.
type keyMap struct {
	Quit       key.Binding
	Copy       key.Binding
	Theme      key.Binding
	Sign       key.Binding
	Reciprocal key.Binding
	MemAdd     key.Binding
	MemSub     key.Binding
	MemRecall  key.Binding
	MemClear   key.Binding

	// Active while the history panel is open.
	Up           key.Binding
	Down         key.Binding
	Select       key.Binding
	ClearHistory key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Sign: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "±"),
		),
		Reciprocal: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "1/x"),
		),
		MemAdd: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "M+"),
		),
		MemSub: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "M-"),
		),
		MemRecall: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "MR"),
		),
		MemClear: key.NewBinding(
			key.WithKeys("alt+m"),
			key.WithHelp("alt+m", "MC"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev"),
			key.WithDisabled(),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
			key.WithDisabled(),
		),
		Select: key.NewBinding(
			key.WithKeys(" ", "tab"),
			key.WithHelp("space", "use"),
			key.WithDisabled(),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear history"),
			key.WithDisabled(),
		),
	}
}

// setHistoryMode enables the history navigation bindings.
func (k *keyMap) setHistoryMode(on bool) {
	k.Up.SetEnabled(on)
	k.Down.SetEnabled(on)
	k.Select.SetEnabled(on)
	k.ClearHistory.SetEnabled(on)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Copy, k.Theme, k.Sign, k.MemAdd, k.MemRecall, k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sign, k.Reciprocal},
		{k.MemAdd, k.MemSub, k.MemRecall, k.MemClear},
		{k.Up, k.Down, k.Select, k.ClearHistory},
		{k.Copy, k.Theme, k.Quit},
	}
}

// TerminalBindings lists the bindings that exist only in the interactive
// calculator, for help output.
func TerminalBindings() []key.Binding {
	k := defaultKeyMap()
	var out []key.Binding
	for _, group := range k.FullHelp() {
		out = append(out, group...)
	}
	return out
}
