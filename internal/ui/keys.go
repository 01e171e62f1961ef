package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the plotter.
type KeyMap struct {
	Pause   key.Binding
	Grid    key.Binding
	XLabels key.Binding
	Save    key.Binding

	// Axis overrides.
	NextAxis   key.Binding
	PrevAxis   key.Binding
	SelectAxis key.Binding // 1-4 jump to an axis
	ToggleMode key.Binding
	Edit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Pause: key.NewBinding(
		key.WithKeys("p", "P", " "),
		key.WithHelp("p", "pause/play"),
	),
	Grid: key.NewBinding(
		key.WithKeys("g", "G"),
		key.WithHelp("g", "grid"),
	),
	XLabels: key.NewBinding(
		key.WithKeys("x", "X"),
		key.WithHelp("x", "x labels"),
	),
	Save: key.NewBinding(
		key.WithKeys("s", "S"),
		key.WithHelp("s", "save plot"),
	),
	NextAxis: key.NewBinding(
		key.WithKeys("tab", "down", "j"),
		key.WithHelp("tab", "next axis"),
	),
	PrevAxis: key.NewBinding(
		key.WithKeys("shift+tab", "up", "k"),
		key.WithHelp("S-tab", "prev axis"),
	),
	SelectAxis: key.NewBinding(
		key.WithKeys("1", "2", "3", "4"),
		key.WithHelp("1-4", "select axis"),
	),
	ToggleMode: key.NewBinding(
		key.WithKeys("a", "A"),
		key.WithHelp("a", "auto/manual"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "E", "enter"),
		key.WithHelp("e", "edit value"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "Q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.NextAxis, k.ToggleMode, k.Edit, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Grid, k.XLabels, k.Save},
		{k.NextAxis, k.PrevAxis, k.SelectAxis},
		{k.ToggleMode, k.Edit, k.Confirm, k.Cancel},
		{k.Help, k.Quit},
	}
}

// EditingHelp is the help shown while a bound is being typed.
func (k KeyMap) EditingHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}
