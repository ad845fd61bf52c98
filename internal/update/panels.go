package update

import (
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/views"
)

func (m Model) renderTodoView() string {
	now := m.now()
	visible := m.visible()
	rows := make([]views.TodoRowData, 0, len(visible))
	for i, t := range visible {
		row := views.TodoRowData{
			Position:  i + 1,
			Title:     t.Title,
			Status:    string(t.Status),
			Priority:  string(t.Priority),
			Project:   m.projectName(t.ProjectID),
			Overdue:   model.IsOverdue(t, now),
			Completed: t.Status == model.StatusCompleted,
			Selected:  i == m.Cursor,
		}
		if t.DueDate != nil {
			row.Due = t.DueDate.Format("Jan 2")
		}
		rows = append(rows, row)
	}
	s := m.ws.Todos.Stats()
	input := ""
	if m.Mode == ModeAdd {
		input = m.addInput.View()
	}
	return views.RenderTodoPanel(views.TodoPanelData{
		Rows:        rows,
		FilterLabel: m.filterLabel(),
		InputView:   input,
		Stats: views.StatsData{
			Total:      s.Total,
			Completed:  s.Completed,
			Pending:    s.Pending,
			InProgress: s.InProgress,
			Overdue:    s.Overdue,
		},
	})
}

func (m Model) renderTodoDetail() string {
	t, ok := m.selectedTodo()
	if !ok {
		return views.RenderTodoDetail(views.TodoDetailData{})
	}
	d := views.TodoDetailData{
		Title:       t.Title,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Project:     m.projectName(t.ProjectID),
		Created:     t.CreatedAt.Local().Format("2006-01-02 15:04"),
		Description: t.Description,
	}
	if t.DueDate != nil {
		d.Due = t.DueDate.Format("Mon Jan 2 2006")
	}
	return views.RenderTodoDetail(d)
}

func (m Model) renderProjectView() string {
	now := m.now()
	todos := m.ws.Todos.All()
	projects := m.ws.Projects.List()
	rows := make([]views.ProjectRowData, 0, len(projects))
	for i, p := range projects {
		s := m.ws.Projects.Stats(p.ID, todos, now)
		rows = append(rows, views.ProjectRowData{
			Name:      s.Name,
			Color:     s.Color,
			Total:     s.TodoCount,
			Completed: s.Completed,
			Pending:   s.Pending,
			Overdue:   s.Overdue,
			Selected:  i == m.ProjectCursor,
		})
	}
	return views.RenderProjectPanel(rows)
}

func (m Model) renderActivityView() string {
	entries := m.ws.ActivityLog(m.ctx)
	if len(entries) > m.cfg.ActivityLimit {
		entries = entries[:m.cfg.ActivityLimit]
	}
	rows := make([]views.ActivityRowData, 0, len(entries))
	for _, a := range entries {
		rows = append(rows, views.ActivityRowData{
			When:        a.Timestamp.Local().Format("01-02 15:04"),
			Type:        string(a.Type),
			Description: a.Description,
		})
	}
	return views.RenderActivityPanel(rows)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderPromptView() string {
	return views.RenderPrompt(views.PromptData{
		Project:     m.projectName(m.Prompt.ProjectID),
		Style:       string(m.Prompt.Style),
		InputView:   m.promptInput.View(),
		Pending:     m.Prompt.Pending,
		SpinnerView: m.aiSpinner.View(),
	})
}

func (m Model) renderReviewView() string {
	cands := make([]views.CandidateData, 0, len(m.Review.Candidates))
	for _, c := range m.Review.Candidates {
		cands = append(cands, views.CandidateData{Title: c.Title, Description: c.Description, Priority: string(c.Priority)})
	}
	return views.RenderReview(views.ReviewData{Project: m.projectName(m.Review.ProjectID), Candidates: cands})
}

func (m Model) projectName(id string) string {
	if p, ok := m.ws.Projects.Get(id); ok {
		return p.Name
	}
	return "Unknown"
}

func (m Model) filterLabel() string {
	f := m.Filter
	if f.IsZero() {
		return ""
	}
	label := ""
	add := func(k, v string) {
		if label != "" {
			label += " "
		}
		label += k + ":" + v
	}
	if model.Constrained(f.Status) {
		add("status", f.Status)
	}
	if model.Constrained(f.Priority) {
		add("priority", f.Priority)
	}
	if model.Constrained(f.ProjectID) {
		add("project", m.projectName(f.ProjectID))
	}
	if model.Constrained(string(f.DueDateRange)) {
		add("due", string(f.DueDateRange))
	}
	if f.Search != "" {
		add("search", f.Search)
	}
	return label
}
