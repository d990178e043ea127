package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NameInput is a single-line text field for a player name.
type NameInput struct {
	Model textinput.Model
}

// NewNameInput creates a focused input prefilled with value and limited to
// maxLen characters.
func NewNameInput(value string, maxLen int) NameInput {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	ti.SetValue(value)
	ti.Focus()
	return NameInput{Model: ti}
}

// Init returns the cursor blink command.
func (n NameInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update forwards messages to the underlying input.
func (n NameInput) Update(msg tea.Msg) (NameInput, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input.
func (n NameInput) View() string {
	return n.Model.View()
}

// Value returns the trimmed input.
func (n NameInput) Value() string {
	return strings.TrimSpace(n.Model.Value())
}
