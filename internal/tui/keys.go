package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Filter key.Binding
	Import key.Binding
	Export key.Binding
	Theme  key.Binding
	UpDown key.Binding
	Enter  key.Binding
	Close  key.Binding
	Next   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Import: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import csv")),
		Export: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export csv")),
		Theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		UpDown: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("j/k", "navigate")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) listBindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Filter, k.Import, k.Export, k.Theme, k.Quit}
}

func (k keyMap) formBindings() []key.Binding {
	return []key.Binding{k.Next, k.Enter, k.Close}
}

func (k keyMap) confirmBindings() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
	}
}

func (k keyMap) pickerBindings() []key.Binding {
	return []key.Binding{k.UpDown, k.Enter, k.Close}
}
