package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Open    key.Binding
	Save    key.Binding
	Editor  key.Binding
	Delete  key.Binding
	Sidebar key.Binding
	Pane    key.Binding
	Theme   key.Binding
	Copy    key.Binding
	Reload  key.Binding
	Cancel  key.Binding
	Next    key.Binding
	Prev    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Left:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "column")),
		Right:   key.NewBinding(key.WithKeys("l", "right")),
		Up:      key.NewBinding(key.WithKeys("k", "up", "ctrl+p"), key.WithHelp("j/k", "card")),
		Down:    key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Editor:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "$EDITOR")),
		Delete:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete")),
		Sidebar: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Pane:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "boards")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy title")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Cancel:  key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("esc", "cancel")),
		Next:    key.NewBinding(key.WithKeys("tab")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab")),
	}
}

func (k keyMap) boardHelp() []key.Binding {
	return []key.Binding{k.New, k.Open, k.Left, k.Up, k.Pane, k.Sidebar, k.Theme, k.Copy, k.Quit}
}

func (k keyMap) modalHelp() []key.Binding {
	return []key.Binding{k.Save, k.Editor, k.Cancel}
}
