package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/aitodo/internal/commands"
	"github.com/sandeepkv93/aitodo/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	m.commandInput = typeInto(m.commandInput, msg)
	m.Palette.Input = m.commandInput.Value()
	return m, nil
}

func (m *Model) closePalette() {
	m.Mode = ModeNormal
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func invalid(format string, args ...any) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		return m.setStatus(err.Error(), true)
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: m.addTodo,
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			visible := m.visible()
			if a.Position > len(visible) {
				return commands.Result{}, invalid("no todo at position %d", a.Position)
			}
			t := visible[a.Position-1]
			if _, err := m.ws.Todos.SetStatus(m.ctx, t.ID, model.StatusCompleted); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "completed: " + t.Title}, nil
		},
		Undo: func() (commands.Result, error) {
			if !m.ws.Todos.Undo(m.ctx) {
				return commands.Result{Message: "nothing to undo"}, nil
			}
			return commands.Result{Message: "undone"}, nil
		},
		Redo: func() (commands.Result, error) {
			if !m.ws.Todos.Redo(m.ctx) {
				return commands.Result{Message: "nothing to redo"}, nil
			}
			return commands.Result{Message: "redone"}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			if a.HasProj && model.Constrained(a.Project) {
				id, ok := m.resolveProject(a.Project)
				if !ok {
					return commands.Result{}, invalid("unknown project: %s", a.Project)
				}
				a.Project = id
			}
			m.Filter = a.Apply(m.Filter)
			return commands.Result{Message: fmt.Sprintf("%d todos match", len(m.visible()))}, nil
		},
		Search: func(a commands.TextArgs) (commands.Result, error) {
			m.Filter.Search = a.Text
			return commands.Result{Message: fmt.Sprintf("%d todos match %q", len(m.visible()), a.Text)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.Filter = model.TodoFilter{}
			return commands.Result{Message: "filters cleared"}, nil
		},
		Save: func(a commands.TextArgs) (commands.Result, error) {
			if _, err := m.ws.Filters.Save(m.ctx, a.Text, m.Filter); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "saved filter: " + a.Text}, nil
		},
		Load: func(a commands.TextArgs) (commands.Result, error) {
			sf, ok := m.ws.Filters.FindByName(a.Text)
			if !ok {
				return commands.Result{}, invalid("no saved filter named %s", a.Text)
			}
			m.Filter = sf.Filter
			return commands.Result{Message: "loaded filter: " + sf.Name}, nil
		},
		Project: func(a commands.TextArgs) (commands.Result, error) {
			if p, ok := m.ws.Projects.FindByName(a.Text); ok {
				m.Filter.ProjectID = p.ID
				return commands.Result{Message: "project: " + p.Name}, nil
			}
			id, err := m.ws.Projects.Create(m.ctx, a.Text, "", "")
			if err != nil {
				return commands.Result{}, err
			}
			m.Filter.ProjectID = id
			return commands.Result{Message: "created project: " + a.Text}, nil
		},
		Generate: func(a commands.TextArgs) (commands.Result, error) {
			if !m.ws.AI.Available() {
				return commands.Result{}, invalid("AI generation needs an API key")
			}
			m.Prompt.ProjectID = m.currentProjectID()
			follow = m.submitPrompt(a.Text)
			return commands.Result{Message: "generating..."}, nil
		},
	})
	m.clampCursor()
	if err != nil {
		next, _ := m.setStatus(err.Error(), true)
		return next, follow
	}
	next, toast := m.setStatus(res.Message, false)
	return next, tea.Batch(follow, toast)
}

// resolveProject accepts a project id or a case-insensitive name.
func (m Model) resolveProject(v string) (string, bool) {
	if p, ok := m.ws.Projects.Get(v); ok {
		return p.ID, true
	}
	if p, ok := m.ws.Projects.FindByName(v); ok {
		return p.ID, true
	}
	return "", false
}
