package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Next       key.Binding
	Prev       key.Binding
	Commit     key.Binding
	Reset      key.Binding
	AutoA      key.Binding
	Hysteresis key.Binding
	Impact     key.Binding
	Compare    key.Binding
	Wider      key.Binding
	Narrower   key.Binding
	Theme      key.Binding
	Save       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		AutoA: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "auto/manual A"),
		),
		Hysteresis: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "hysteresis"),
		),
		Impact: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("f3", "impact"),
		),
		Compare: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("f4", "width chart"),
		),
		Wider: key.NewBinding(
			key.WithKeys("ctrl+right"),
			key.WithHelp("ctrl+→", "wider chart"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("ctrl+left"),
			key.WithHelp("ctrl+←", "narrower chart"),
		),
		Theme: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "theme"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save run"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Commit, k.AutoA, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Commit, k.Reset},
		{k.AutoA, k.Hysteresis, k.Impact, k.Compare},
		{k.Wider, k.Narrower, k.Theme, k.Save},
		{k.Help, k.Quit},
	}
}

func keyMatches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
