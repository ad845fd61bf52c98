package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/aitodo/internal/app"
	"github.com/sandeepkv93/aitodo/internal/project"
)

func newProjectCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(newProjectAddCmd(s), newProjectListCmd(s), newProjectEditCmd(s), newProjectRmCmd(s))
	return cmd
}

func newProjectAddCmd(s *session) *cobra.Command {
	var description, color string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			if _, ok := ws.Projects.FindByName(args[0]); ok {
				return fmt.Errorf("project %q already exists", args[0])
			}
			id, err := ws.Projects.Create(cmd.Context(), args[0], description, color)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created project %q (%s)\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "project description")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #10B981")
	return cmd
}

func newProjectListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects with todo counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			todos, now := ws.Todos.All(), time.Now()
			rows := [][]string{}
			for _, p := range ws.Projects.List() {
				st := ws.Projects.Stats(p.ID, todos, now)
				rows = append(rows, []string{
					p.Name,
					strconv.Itoa(st.TodoCount),
					strconv.Itoa(st.Completed),
					strconv.Itoa(st.Pending),
					strconv.Itoa(st.Overdue),
					p.Color,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Name", "Todos", "Done", "Pending", "Overdue", "Color"}, rows))
			return nil
		},
	}
}

func newProjectEditCmd(s *session) *cobra.Command {
	var name, description, color string
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Rename or recolor a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			id, err := projectID(ws, args[0])
			if err != nil {
				return err
			}
			var p project.Patch
			fl := cmd.Flags()
			if fl.Changed("name") {
				p.Name = &name
			}
			if fl.Changed("description") {
				p.Description = &description
			}
			if fl.Changed("color") {
				p.Color = &color
			}
			if _, err := ws.Projects.Update(cmd.Context(), id, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated project %q\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")
	return cmd
}

func newProjectRmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete a project and apply the delete policy to its todos",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			id, err := projectID(ws, args[0])
			if err != nil {
				return err
			}
			ok, n, err := ws.DeleteProject(cmd.Context(), id)
			if errors.Is(err, project.ErrProtectedProject) {
				return errors.New("the inbox cannot be deleted")
			}
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("unknown project %q", args[0])
			}
			verb := "deleted"
			if ws.Policy() == app.ReassignTodos {
				verb = "moved to the inbox"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted project %q, %d todos %s\n", args[0], n, verb)
			return nil
		},
	}
}
