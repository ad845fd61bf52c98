package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/model"
	"github.com/sandeepkv93/aitodo/internal/todo"
)

type filterFlags struct {
	status   string
	priority string
	project  string
	due      string
	from     string
	to       string
	search   string
	saved    string
}

func (f *filterFlags) register(cmd *cobra.Command, withSaved bool) {
	fl := cmd.Flags()
	fl.StringVar(&f.status, "status", "", "pending, in-progress or completed")
	fl.StringVar(&f.priority, "priority", "", "low, medium or high")
	fl.StringVar(&f.project, "project", "", "project name")
	fl.StringVar(&f.due, "due", "", "today, tomorrow, this-week, next-week, overdue or custom")
	fl.StringVar(&f.from, "from", "", "custom range start (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "custom range end (YYYY-MM-DD)")
	fl.StringVar(&f.search, "search", "", "fuzzy search over title and description")
	if withSaved {
		fl.StringVar(&f.saved, "filter", "", "start from a saved filter")
	}
}

func (f filterFlags) build(ws *app.Workspace) (model.TodoFilter, error) {
	var out model.TodoFilter
	if f.saved != "" {
		sf, ok := ws.Filters.FindByName(f.saved)
		if !ok {
			return out, fmt.Errorf("no saved filter named %q", f.saved)
		}
		out = sf.Filter
	}
	if f.status != "" {
		if f.status == model.All {
			out.Status = model.All
		} else {
			s, err := model.ParseStatus(f.status)
			if err != nil {
				return out, err
			}
			out.Status = string(s)
		}
	}
	if f.priority != "" {
		if f.priority == model.All {
			out.Priority = model.All
		} else {
			p, err := model.ParsePriority(f.priority)
			if err != nil {
				return out, err
			}
			out.Priority = string(p)
		}
	}
	if f.project != "" {
		id, err := projectID(ws, f.project)
		if err != nil {
			return out, err
		}
		out.ProjectID = id
	}
	if f.due != "" {
		r, err := model.ParseDueDateRange(f.due)
		if err != nil {
			return out, err
		}
		out.DueDateRange = r
	}
	if f.from != "" || f.to != "" {
		from, err := parseDate(f.from)
		if err != nil {
			return out, err
		}
		to, err := parseDate(f.to)
		if err != nil {
			return out, err
		}
		out.DueDateRange, out.DueFrom, out.DueTo = model.DueCustom, from, to
	}
	if f.search != "" {
		out.Search = f.search
	}
	return out, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return &t, nil
}

// projectID accepts a project id or name.
func projectID(ws *app.Workspace, nameOrID string) (string, error) {
	if p, ok := ws.Projects.Get(nameOrID); ok {
		return p.ID, nil
	}
	if p, ok := ws.Projects.FindByName(nameOrID); ok {
		return p.ID, nil
	}
	return "", fmt.Errorf("unknown project %q", nameOrID)
}

// resolveTodo accepts a list position or a todo id.
func resolveTodo(ws *app.Workspace, arg string) (model.Todo, int, error) {
	all := ws.Todos.Visible(model.TodoFilter{})
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(all) {
			return model.Todo{}, 0, fmt.Errorf("no todo at position %d", n)
		}
		return all[n-1], n, nil
	}
	for i, t := range all {
		if t.ID == arg {
			return t, i + 1, nil
		}
	}
	return model.Todo{}, 0, fmt.Errorf("no todo with id %q", arg)
}

func newAddCmd(s *session) *cobra.Command {
	var (
		description string
		priority    string
		due         string
		project     string
	)
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			in := todo.NewTodo{Title: strings.Join(args, " "), Description: description}
			if priority != "" {
				p, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				in.Priority = p
			}
			if in.DueDate, err = parseDate(due); err != nil {
				return err
			}
			if project != "" {
				if in.ProjectID, err = projectID(ws, project); err != nil {
					return err
				}
			}
			t, err := ws.Todos.Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q (%s)\n", t.Title, t.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description (markdown)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&project, "project", "", "project name")
	return cmd
}

type todoJSON struct {
	Position    int    `json:"position"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Project     string `json:"project"`
	DueDate     string `json:"dueDate,omitempty"`
	Overdue     bool   `json:"overdue"`
}

func newListCmd(s *session) *cobra.Command {
	var (
		flags  filterFlags
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos in manual order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			f, err := flags.build(ws)
			if err != nil {
				return err
			}
			positions := map[string]int{}
			for i, t := range ws.Todos.Visible(model.TodoFilter{}) {
				positions[t.ID] = i + 1
			}
			now := time.Now()
			items := make([]todoJSON, 0)
			for _, t := range ws.Todos.Visible(f) {
				row := todoJSON{
					Position:    positions[t.ID],
					ID:          t.ID,
					Title:       t.Title,
					Description: t.Description,
					Status:      string(t.Status),
					Priority:    string(t.Priority),
					Project:     ws.Projects.Stats(t.ProjectID, nil, now).Name,
					Overdue:     model.IsOverdue(t, now),
				}
				if t.DueDate != nil {
					row.DueDate = t.DueDate.Format(time.DateOnly)
				}
				items = append(items, row)
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, items)
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "no todos")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, it := range items {
				due := it.DueDate
				if it.Overdue {
					due += " (overdue)"
				}
				rows = append(rows, []string{strconv.Itoa(it.Position), it.Title, it.Status, it.Priority, it.Project, due})
			}
			fmt.Fprintln(out, renderTable([]string{"#", "Title", "Status", "Priority", "Project", "Due"}, rows))
			return nil
		},
	}
	flags.register(cmd, true)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDoneCmd(s *session) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "done <position|id>...",
		Short: "Mark todos completed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			status := model.StatusCompleted
			if undo {
				status = model.StatusPending
			}
			ids, err := resolveAll(ws, args)
			if err != nil {
				return err
			}
			if len(ids) == 1 {
				if _, err := ws.Todos.SetStatus(cmd.Context(), ids[0], status); err != nil {
					return err
				}
			} else if _, err := ws.Todos.BulkUpdate(cmd.Context(), ids, todo.Patch{Status: &status}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "marked %d %s\n", len(ids), status)
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark pending instead")
	return cmd
}

func resolveAll(ws *app.Workspace, args []string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, a := range args {
		t, _, err := resolveTodo(ws, a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

func newEditCmd(s *session) *cobra.Command {
	var (
		title, description, priority, status, due, project string
		noDue                                              bool
	)
	cmd := &cobra.Command{
		Use:   "edit <position|id>",
		Short: "Change fields of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			t, _, err := resolveTodo(ws, args[0])
			if err != nil {
				return err
			}
			var p todo.Patch
			fl := cmd.Flags()
			if fl.Changed("title") {
				p.Title = &title
			}
			if fl.Changed("description") {
				p.Description = &description
			}
			if priority != "" {
				v, err := model.ParsePriority(priority)
				if err != nil {
					return err
				}
				p.Priority = &v
			}
			if status != "" {
				v, err := model.ParseStatus(status)
				if err != nil {
					return err
				}
				p.Status = &v
			}
			if due != "" {
				if p.DueDate, err = parseDate(due); err != nil {
					return err
				}
			}
			p.ClearDueDate = noDue
			if project != "" {
				id, err := projectID(ws, project)
				if err != nil {
					return err
				}
				p.ProjectID = &id
			}
			if p == (todo.Patch{}) {
				return errors.New("nothing changed")
			}
			if _, err := ws.Todos.Update(cmd.Context(), t.ID, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %q\n", t.Title)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&title, "title", "", "new title")
	fl.StringVarP(&description, "description", "d", "", "new description")
	fl.StringVarP(&priority, "priority", "p", "", "low, medium or high")
	fl.StringVar(&status, "status", "", "pending, in-progress or completed")
	fl.StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	fl.BoolVar(&noDue, "no-due", false, "clear the due date")
	fl.StringVar(&project, "project", "", "move to project")
	return cmd
}

func newRmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <position|id>...",
		Aliases: []string{"delete"},
		Short:   "Delete todos",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			ids, err := resolveAll(ws, args)
			if err != nil {
				return err
			}
			n := 0
			if len(ids) == 1 {
				if ws.Todos.Delete(cmd.Context(), ids[0]) {
					n = 1
				}
			} else {
				n = ws.Todos.BulkDelete(cmd.Context(), ids)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", n)
			return nil
		},
	}
}

func newMoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "move <position> <new-position>",
		Short: "Reorder a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			_, from, err := resolveTodo(ws, args[0])
			if err != nil {
				return err
			}
			_, to, err := resolveTodo(ws, args[1])
			if err != nil {
				return err
			}
			if !ws.Todos.Reorder(cmd.Context(), from-1, to-1) {
				fmt.Fprintln(cmd.OutOrStdout(), "order unchanged")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %d to %d\n", from, to)
			return nil
		},
	}
}

func newStatsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			st := ws.Todos.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "total: %d\ncompleted: %d\npending: %d\nin-progress: %d\noverdue: %d\n",
				st.Total, st.Completed, st.Pending, st.InProgress, st.Overdue)
			return nil
		},
	}
}
