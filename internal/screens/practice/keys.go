package practice

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Record key.Binding
	Retry  key.Binding
	Next   key.Binding
	Prev   key.Binding
	Skip   key.Binding
	Demo   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Record: key.NewBinding(key.WithKeys("space", "enter"), key.WithHelp("Space", "Record / Stop")),
	Retry:  key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Retry")),
	Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("N", "Next")),
	Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "Previous")),
	Skip:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "Skip")),
	Demo:   key.NewBinding(key.WithKeys("p"), key.WithHelp("P", "Play demo")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("Q", "Home")),
}
