package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit   key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Upload   key.Binding
	Back     key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "select")),
		Down:     key.NewBinding(key.WithKeys("down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup/pgdn", "scroll")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Upload:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "upload")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Dismiss:  key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) searchHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Up, k.PageUp, k.Upload, k.Quit}
}

func (k keyMap) uploadHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload file")),
		k.Back,
		k.Quit,
	}
}
