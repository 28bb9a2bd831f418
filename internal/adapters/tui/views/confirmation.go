package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmKeyMap holds the keys of a yes/no prompt
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var ConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// Confirmation is a yes/no prompt embedded by dialogs that need one
type Confirmation struct {
	ViewState
	Keys ConfirmKeyMap
}

func NewConfirmation() Confirmation {
	return Confirmation{Keys: ConfirmKeys}
}

// Answer maps a key to confirm or cancel. Any other key returns nil.
func (c *Confirmation) Answer(msg tea.KeyMsg, confirm, cancel tea.Cmd) tea.Cmd {
	switch {
	case key.Matches(msg, c.Keys.Confirm):
		return confirm
	case key.Matches(msg, c.Keys.Cancel):
		return cancel
	}
	return nil
}

// Prompt renders question followed by the answer keys
func (c *Confirmation) Prompt(question string) string {
	return question + "  " + RenderHelpLine(c.Keys.Confirm, c.Keys.Cancel)
}
