package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/aitodo/internal/commands"
	"github.com/sandeepkv93/aitodo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	global := m.bindings(m.globalBindings())
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{global},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.NextView, Action: "next view"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Generate, Action: "generate with AI"},
		{Key: m.Keys.Undo, Action: "undo"},
		{Key: m.Keys.Redo, Action: "redo"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTodos:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: m.Keys.Add, Action: "add todo"},
			{Key: "space", Action: "toggle complete"},
			{Key: m.Keys.Status, Action: "cycle status"},
			{Key: m.Keys.Priority, Action: "cycle priority"},
			{Key: m.Keys.Delete, Action: "delete"},
			{Key: m.Keys.MoveDown + "/" + m.Keys.MoveUp, Action: "move down / up"},
			{Key: m.Keys.Filter, Action: "cycle status filter"},
			{Key: "c", Action: "clear filters"},
			{Key: "/", Action: fmt.Sprintf("commands: %v", commands.Types())},
		}
	case ViewProjects:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter", Action: "show project todos"},
			{Key: "d", Action: "delete project"},
		}
	case ViewActivity:
		return []KeyBinding{{Key: "-", Action: "most recent first"}}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) bindings(kbs []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(kbs))
	for _, kb := range kbs {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
