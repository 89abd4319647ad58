package picker

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings the picker handles itself. Navigation and
// filtering keys belong to the embedded list.
type keyMap struct {
	Choose      key.Binding
	Cancel      key.Binding
	ForceCancel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "cancel"),
		),
		ForceCancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}
