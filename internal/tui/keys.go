package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Create   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Scorer   key.Binding
	Refresh  key.Binding
	APIKeys  key.Binding
	Quit     key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Close    key.Binding
	Submit   key.Binding
	NextItem key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "create")),
		Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Scorer:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scorer")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		APIKeys:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "api keys")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:  key.NewBinding(key.WithKeys("y", "Y")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "n", "N")),
		Close:    key.NewBinding(key.WithKeys("esc")),
		Submit:   key.NewBinding(key.WithKeys("enter")),
		NextItem: key.NewBinding(key.WithKeys("tab", "shift+tab")),
	}
}

// listHelp is the help row under the community list.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Create, k.Edit, k.Delete, k.Scorer, k.Refresh, k.APIKeys, k.Quit}
}
