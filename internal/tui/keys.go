package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the console.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Incident actions
	New      key.Binding // Register a new incident
	Assign   key.Binding // Assign the selected incident
	Start    key.Binding // Move to in_progress
	Resolve  key.Binding // Resolve (terminal)
	Escalate key.Binding // Escalate manually
	Sweep    key.Binding // Run the escalation policy

	// View
	Detail  key.Binding // Toggle detail view
	Stats   key.Binding // Toggle statistics view
	Refresh key.Binding // Reload the incident list
	Help    key.Binding // Show help

	// General
	Quit   key.Binding // Quit application
	Escape key.Binding // Cancel/back
	Enter  key.Binding // Confirm input
	Tab    key.Binding // Next form field
}

// DefaultKeyMap returns the default keybindings.
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
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new incident"),
		),
		Assign: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "assign"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resolve"),
		),
		Escalate: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "escalate"),
		),
		Sweep: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "sweep"),
		),
		Detail: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "detail"),
		),
		Stats: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "stats"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
	}
}

// ShortHelp returns the keybindings shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Assign, k.Start, k.Resolve, k.Escalate, k.Sweep, k.Stats, k.Help, k.Quit}
}

// FullHelp returns the keybindings shown in the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Detail, k.Refresh},
		{k.New, k.Assign, k.Start, k.Resolve},
		{k.Escalate, k.Sweep, k.Stats},
		{k.Help, k.Escape, k.Quit},
	}
}
