package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type TodoRowData struct {
	Position  int
	Title     string
	Status    string
	Priority  string
	Project   string
	Due       string
	Overdue   bool
	Completed bool
	Selected  bool
}

type TodoPanelData struct {
	Rows        []TodoRowData
	FilterLabel string
	InputView   string
	Stats       StatsData
}

type StatsData struct {
	Total      int
	Completed  int
	Pending    int
	InProgress int
	Overdue    int
}

type TodoDetailData struct {
	Title       string
	Status      string
	Priority    string
	Project     string
	Due         string
	Created     string
	Description string
}

type ProjectRowData struct {
	Name      string
	Color     string
	Total     int
	Completed int
	Pending   int
	Overdue   int
	Selected  bool
}

type ActivityRowData struct {
	When        string
	Type        string
	Description string
}

type PromptData struct {
	Project     string
	Style       string
	InputView   string
	Pending     bool
	SpinnerView string
}

type CandidateData struct {
	Title       string
	Description string
	Priority    string
}

type ReviewData struct {
	Project    string
	Candidates []CandidateData
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTodoPanel(data TodoPanelData) string {
	var b strings.Builder
	s := data.Stats
	fmt.Fprintf(&b, "todos: %d total | %d done | %d pending | %d in progress | %d overdue\n",
		s.Total, s.Completed, s.Pending, s.InProgress, s.Overdue)
	if data.FilterLabel != "" {
		b.WriteString(mutedStyle.Render("filter: "+data.FilterLabel) + "\n")
	}
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	b.WriteString("\n")
	if len(data.Rows) == 0 {
		b.WriteString(mutedStyle.Render("(no todos)"))
		return b.String()
	}
	for _, row := range data.Rows {
		b.WriteString(renderTodoRow(row) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderTodoRow(row TodoRowData) string {
	cursor := " "
	if row.Selected {
		cursor = cursorStyle.Render(">")
	}
	check := "[ ]"
	switch {
	case row.Completed:
		check = "[x]"
	case row.Status == "in-progress":
		check = "[~]"
	}
	title := truncate.StringWithTail(row.Title, 34, "…")
	if row.Completed {
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s %2d %s %s %s", cursor, row.Position, check, priorityBadge(row.Priority), title)
	if row.Due != "" {
		due := "due:" + row.Due
		if row.Overdue {
			due = overdueStyle.Render(due)
		}
		line += " " + due
	}
	return line
}

func priorityBadge(p string) string {
	switch p {
	case "high":
		return overdueStyle.Render("!!!")
	case "low":
		return mutedStyle.Render("!  ")
	default:
		return "!! "
	}
}

func RenderTodoDetail(data TodoDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(Wrap(data.Title, PaneWidth) + "\n\n")
	fmt.Fprintf(&b, "status: %s\npriority: %s\nproject: %s\n", data.Status, data.Priority, data.Project)
	if data.Due != "" {
		fmt.Fprintf(&b, "due: %s\n", data.Due)
	}
	fmt.Fprintf(&b, "created: %s\n", data.Created)
	if md := RenderMarkdown(data.Description, PaneWidth); md != "" {
		b.WriteString("\n" + md)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderProjectPanel(rows []ProjectRowData) string {
	var b strings.Builder
	b.WriteString("projects:\n\n")
	for _, row := range rows {
		cursor := " "
		if row.Selected {
			cursor = cursorStyle.Render(">")
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render("●")
		fmt.Fprintf(&b, "%s %s %s  %d todos, %d done, %d pending", cursor, swatch, row.Name, row.Total, row.Completed, row.Pending)
		if row.Overdue > 0 {
			b.WriteString(overdueStyle.Render(fmt.Sprintf(", %d overdue", row.Overdue)))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderActivityPanel(rows []ActivityRowData) string {
	var b strings.Builder
	b.WriteString("activity:\n\n")
	if len(rows) == 0 {
		b.WriteString(mutedStyle.Render("(nothing yet)"))
		return b.String()
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(row.When), Wrap(row.Description, PaneWidth-18))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderPrompt(data PromptData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "generate todos for %s (style: %s)\n", data.Project, data.Style)
	b.WriteString(data.InputView + "\n")
	if data.Pending {
		b.WriteString(data.SpinnerView + " waiting for the model, [esc] cancels")
	} else {
		b.WriteString(mutedStyle.Render("[enter] generate [tab] style [esc] close"))
	}
	return b.String()
}

func RenderReview(data ReviewData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "suggested todos for %s:\n\n", data.Project)
	if len(data.Candidates) == 0 {
		b.WriteString(mutedStyle.Render("(the model returned nothing usable)") + "\n")
	}
	for i, c := range data.Candidates {
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, priorityBadge(c.Priority), c.Title)
		if c.Description != "" {
			b.WriteString(mutedStyle.Render(Wrap(c.Description, PaneWidth-4)) + "\n")
		}
	}
	b.WriteString("\n" + mutedStyle.Render("[enter] add all [esc] discard"))
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
