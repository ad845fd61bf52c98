package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// typeInto feeds a key to a text input. Printable keys are appended
// directly so the input works before its first render.
func typeInto(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	switch msg.Type {
	case tea.KeyRunes:
		in.SetValue(in.Value() + string(msg.Runes))
		return in
	case tea.KeySpace:
		in.SetValue(in.Value() + " ")
		return in
	}
	in, _ = in.Update(msg)
	return in
}
