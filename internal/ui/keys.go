package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Row actions
	Add    key.Binding
	Delete key.Binding
	Date   key.Binding
	Status key.Binding
	Type   key.Binding
	Count  key.Binding

	// Periods
	PrevPeriod key.Binding
	NextPeriod key.Binding

	// General
	Reload     key.Binding
	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add draft"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Date: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "pick date"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		Count: key.NewBinding(
			key.WithKeys("e", "+", "-"),
			key.WithHelp("e/+/-", "posts per day"),
		),
		PrevPeriod: key.NewBinding(
			key.WithKeys("left", "h", "["),
			key.WithHelp("←/h", "prev month"),
		),
		NextPeriod: key.NewBinding(
			key.WithKeys("right", "l", "]"),
			key.WithHelp("→/l", "next month"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
