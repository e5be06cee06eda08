// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// FormKeyMap defines the keybindings for the registration form.
type FormKeyMap struct {
	// Navigation
	Next key.Binding
	Prev key.Binding

	// Actions
	Enter        key.Binding
	AddTech      key.Binding
	RemoveTech   key.Binding
	Submit       key.Binding
	Reset        key.Binding
	ToggleFormat key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// Form is the default form keymap.
var Form = DefaultFormKeyMap()

// DefaultFormKeyMap returns the default form keybindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		// Navigation
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),

		// Actions
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "next / press button"),
		),
		AddTech: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add tech"),
		),
		RemoveTech: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "remove tech"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		ToggleFormat: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "json/yaml"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.AddTech, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Enter},                                    // Navigation
		{k.AddTech, k.RemoveTech, k.Submit, k.Reset, k.ToggleFormat}, // Actions
		{k.Help, k.Quit},                                             // General
	}
}
