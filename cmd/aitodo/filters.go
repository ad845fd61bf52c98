package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/model"
)

func newFilterCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "filter",
		Aliases: []string{"filters"},
		Short:   "Manage saved filters",
	}
	cmd.AddCommand(newFilterSaveCmd(s), newFilterListCmd(s), newFilterRmCmd(s))
	return cmd
}

func newFilterSaveCmd(s *session) *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a filter under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			f, err := flags.build(ws)
			if err != nil {
				return err
			}
			if _, ok := ws.Filters.FindByName(args[0]); ok {
				return fmt.Errorf("a filter named %q already exists", args[0])
			}
			if _, err := ws.Filters.Save(cmd.Context(), args[0], f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved filter %q: %s\n", args[0], describeFilter(ws, f))
			return nil
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newFilterListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved filters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			list := ws.Filters.List()
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no saved filters")
				return nil
			}
			rows := make([][]string, 0, len(list))
			for _, sf := range list {
				rows = append(rows, []string{sf.Name, describeFilter(ws, sf.Filter)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Filter"}, rows))
			return nil
		},
	}
}

func newFilterRmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a saved filter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			sf, ok := ws.Filters.FindByName(args[0])
			if !ok {
				return fmt.Errorf("no saved filter named %q", args[0])
			}
			if _, err := ws.Filters.Delete(cmd.Context(), sf.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted filter %q\n", sf.Name)
			return nil
		},
	}
}

// describeFilter renders the constrained fields as key:value tokens.
func describeFilter(ws *app.Workspace, f model.TodoFilter) string {
	var parts []string
	if model.Constrained(f.Status) {
		parts = append(parts, "status:"+f.Status)
	}
	if model.Constrained(f.Priority) {
		parts = append(parts, "priority:"+f.Priority)
	}
	if model.Constrained(f.ProjectID) {
		name := f.ProjectID
		if p, ok := ws.Projects.Get(f.ProjectID); ok {
			name = p.Name
		}
		parts = append(parts, "project:"+name)
	}
	if model.Constrained(string(f.DueDateRange)) {
		parts = append(parts, "due:"+string(f.DueDateRange))
	}
	if strings.TrimSpace(f.Search) != "" {
		parts = append(parts, fmt.Sprintf("search:%q", f.Search))
	}
	if len(parts) == 0 {
		return "everything"
	}
	return strings.Join(parts, " ")
}
