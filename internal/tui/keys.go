package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Summary  key.Binding
	Monthly  key.Binding
	Warnings key.Binding
	Chart    key.Binding
	Reload   key.Binding
	Help     key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Summary:  key.NewBinding(key.WithKeys("1", "s"), key.WithHelp("1/s", "summary")),
		Monthly:  key.NewBinding(key.WithKeys("2", "m"), key.WithHelp("2/m", "monthly")),
		Warnings: key.NewBinding(key.WithKeys("3", "w"), key.WithHelp("3/w", "warnings")),
		Chart:    key.NewBinding(key.WithKeys("4", "c"), key.WithHelp("4/c", "chart")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Summary, k.Monthly, k.Warnings, k.Chart, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Summary, k.Monthly, k.Warnings, k.Chart},
		{k.Reload, k.Help, k.Back, k.Quit},
	}
}
