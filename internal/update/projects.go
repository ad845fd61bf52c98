package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/project"
)

func (m Model) handleProjectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	projects := m.ws.Projects.List()
	switch msg.String() {
	case "j", "down":
		if m.ProjectCursor < len(projects)-1 {
			m.ProjectCursor++
		}
	case "k", "up":
		if m.ProjectCursor > 0 {
			m.ProjectCursor--
		}
	case "enter":
		if m.ProjectCursor < len(projects) {
			m.Filter.ProjectID = projects[m.ProjectCursor].ID
			m.CurrentView = ViewTodos
			m.Cursor = 0
		}
	case "d":
		if m.ProjectCursor >= len(projects) {
			return m, nil
		}
		p := projects[m.ProjectCursor]
		_, n, err := m.ws.DeleteProject(m.ctx, p.ID)
		if errors.Is(err, project.ErrProtectedProject) {
			return m.setStatus("the inbox cannot be deleted", true)
		}
		if err != nil {
			return m.setStatus(err.Error(), true)
		}
		if m.Filter.ProjectID == p.ID {
			m.Filter.ProjectID = ""
		}
		if m.ProjectCursor >= len(projects)-1 && m.ProjectCursor > 0 {
			m.ProjectCursor--
		}
		m.clampCursor()
		verb := "deleted"
		if m.ws.Policy() == app.ReassignTodos {
			verb = "moved to inbox"
		}
		return m.setStatus(fmt.Sprintf("deleted project %s, %d todos %s", p.Name, n, verb), false)
	}
	return m, nil
}
