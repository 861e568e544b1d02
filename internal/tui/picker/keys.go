package picker

import "github.com/charmbracelet/bubbles/key"

type pickerKeyMap struct {
	up            key.Binding
	down          key.Binding
	open          key.Binding
	create        key.Binding
	yank          key.Binding
	togglePreview key.Binding
	quit          key.Binding
}

func newPickerKeyMap() *pickerKeyMap {
	return &pickerKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑/ctrl+k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓/ctrl+j", "down"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		create: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new note from query"),
		),
		yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank link"),
		),
		togglePreview: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "preview"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
