package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/aitodo/internal/commands"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/todo"
)

func (m Model) handleTodoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
		return m, nil
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case m.Keys.Add:
		m.Mode = ModeAdd
		m.addInput.SetValue("")
		m.addInput.Focus()
		return m, nil
	case m.Keys.Filter:
		m.Filter.Status = nextStatusFilter(m.Filter.Status)
		m.clampCursor()
		return m.setStatus("status filter: "+orAll(m.Filter.Status), false)
	case "c":
		m.Filter = model.TodoFilter{}
		m.clampCursor()
		return m.setStatus("filters cleared", false)
	}

	selected, ok := m.selectedTodo()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case m.Keys.Toggle:
		if _, err := m.ws.Todos.ToggleComplete(m.ctx, selected.ID); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.clampCursor()
		return m, nil
	case m.Keys.Delete:
		if m.ws.Todos.Delete(m.ctx, selected.ID) {
			m.clampCursor()
			return m.setStatus("deleted: "+selected.Title, false)
		}
	case m.Keys.Priority:
		p := nextPriority(selected.Priority)
		if _, err := m.ws.Todos.Update(m.ctx, selected.ID, todo.Patch{Priority: &p}); err != nil {
			return m.setStatus(err.Error(), true)
		}
	case m.Keys.Status:
		s := nextStatus(selected.Status)
		if _, err := m.ws.Todos.SetStatus(m.ctx, selected.ID, s); err != nil {
			return m.setStatus(err.Error(), true)
		}
		m.clampCursor()
	case m.Keys.MoveDown:
		if m.Cursor+1 < len(visible) && m.ws.Todos.ReorderByID(m.ctx, selected.ID, visible[m.Cursor+1].ID, m.Filter) {
			m.Cursor++
		}
	case m.Keys.MoveUp:
		if m.Cursor > 0 && m.ws.Todos.ReorderByID(m.ctx, selected.ID, visible[m.Cursor-1].ID, m.Filter) {
			m.Cursor--
		}
	}
	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Mode = ModeNormal
		m.addInput.Blur()
		return m, nil
	case "enter":
		raw := strings.TrimSpace(m.addInput.Value())
		m.Mode = ModeNormal
		m.addInput.SetValue("")
		m.addInput.Blur()
		if raw == "" {
			return m, nil
		}
		cmd, err := commands.Parse("add " + raw)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		res, err := m.addTodo(*cmd.Add)
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		return m.setStatus(res.Message, false)
	}
	m.addInput = typeInto(m.addInput, msg)
	return m, nil
}

func (m *Model) addTodo(a commands.AddArgs) (commands.Result, error) {
	projectID := m.currentProjectID()
	if a.Project != "" {
		p, ok := m.ws.Projects.FindByName(a.Project)
		if !ok {
			return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "unknown project: " + a.Project}
		}
		projectID = p.ID
	}
	t, err := m.ws.Todos.Add(m.ctx, todo.NewTodo{Title: a.Title, Priority: a.Priority, DueDate: a.Due, ProjectID: projectID})
	if err != nil {
		return commands.Result{}, err
	}
	for i, v := range m.visible() {
		if v.ID == t.ID {
			m.Cursor = i
		}
	}
	return commands.Result{Message: fmt.Sprintf("added: %s", t.Title)}, nil
}

func (m Model) visible() []model.Todo {
	return m.ws.Todos.Visible(m.Filter)
}

func (m Model) selectedTodo() (model.Todo, bool) {
	visible := m.visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Todo{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visible())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

// currentProjectID is the project new todos land in: the filtered project,
// or the inbox.
func (m Model) currentProjectID() string {
	if model.Constrained(m.Filter.ProjectID) {
		return m.Filter.ProjectID
	}
	return model.InboxProjectID
}

func nextPriority(p model.Priority) model.Priority {
	all := model.Priorities()
	for i, v := range all {
		if v == p {
			return all[(i+1)%len(all)]
		}
	}
	return model.PriorityMedium
}

func nextStatus(s model.Status) model.Status {
	all := model.Statuses()
	for i, v := range all {
		if v == s {
			return all[(i+1)%len(all)]
		}
	}
	return model.StatusPending
}

// nextStatusFilter cycles all -> pending -> in-progress -> completed -> all.
func nextStatusFilter(current string) string {
	if !model.Constrained(current) {
		return string(model.StatusPending)
	}
	next := nextStatus(model.Status(current))
	if next == model.StatusPending {
		return model.All
	}
	return string(next)
}

func orAll(v string) string {
	if !model.Constrained(v) {
		return model.All
	}
	return v
}
