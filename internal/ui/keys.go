package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the kiosk keybindings.
type KeyMap struct {
	Next      key.Binding
	Back      key.Binding
	Complete  key.Binding
	Reset     key.Binding
	Add       key.Binding
	Remove    key.Binding
	More      key.Binding
	Less      key.Binding
	Tip1      key.Binding
	Tip2      key.Binding
	Tip3      key.Binding
	NoTip     key.Binding
	CustomTip key.Binding
	ToggleQR  key.Binding
	Pause     key.Binding
	Panel     key.Binding
	Quit      key.Binding
}

// PanelKeyMap defines the dev panel keybindings.
type PanelKeyMap struct {
	Up              key.Binding
	Down            key.Binding
	Jump            key.Binding
	SimulateScan    key.Binding
	AppReady        key.Binding
	HandoffComplete key.Binding
	Close           key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("enter", "right", "l", " "),
			key.WithHelp("enter/→", "next"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "h", "esc"),
			key.WithHelp("←/esc", "back"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start over"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "remove item"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "qty +1"),
		),
		Less: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "qty -1"),
		),
		Tip1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "tip 1"),
		),
		Tip2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tip 2"),
		),
		Tip3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "tip 3"),
		),
		NoTip: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "no tip"),
		),
		CustomTip: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "custom tip"),
		),
		ToggleQR: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "show/hide QR"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Panel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "dev panel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DefaultPanelKeyMap returns the dev panel keybindings.
func DefaultPanelKeyMap() PanelKeyMap {
	return PanelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Jump: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go to screen"),
		),
		SimulateScan: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "simulate scan"),
		),
		AppReady: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "app ready"),
		),
		HandoffComplete: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "handoff complete"),
		),
		Close: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "close"),
		),
	}
}
