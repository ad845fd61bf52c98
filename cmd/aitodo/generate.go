package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/aitodo/internal/ai"
	"github.com/sandeepkv93/aitodo/internal/model"
)

func newGenerateCmd(s *session) *cobra.Command {
	var (
		projectName string
		style       string
		accept      bool
	)
	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Draft todos with AI",
		Long: "Draft todos for a project with the configured Gemini model. Candidates are\n" +
			"printed for review; pass --yes to add them all as one undoable step.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := s.workspace(cmd)
			if err != nil {
				return err
			}
			st := ai.Style(style)
			if !st.IsValid() {
				return fmt.Errorf("unknown style %q (want one of %s)", style, joinStyles())
			}
			target := model.InboxProjectID
			if projectName != "" {
				if target, err = projectID(ws, projectName); err != nil {
					return err
				}
			}
			cands, err := ws.Generate(cmd.Context(), strings.Join(args, " "), target, st)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cands) == 0 {
				fmt.Fprintln(out, "the model returned no usable todos")
				return nil
			}
			for i, c := range cands {
				fmt.Fprintf(out, "%d. [%s] %s\n", i+1, c.Priority, c.Title)
				if c.Description != "" {
					fmt.Fprintf(out, "   %s\n", c.Description)
				}
			}
			if !accept {
				fmt.Fprintln(out, "re-run with --yes to add these todos")
				return nil
			}
			added := ws.AcceptGenerated(cmd.Context(), target, cands)
			fmt.Fprintf(out, "added %d todos\n", len(added))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectName, "project", "", "target project (default: inbox)")
	cmd.Flags().StringVar(&style, "style", string(ai.StyleSimple), "generation style: "+joinStyles())
	cmd.Flags().BoolVarP(&accept, "yes", "y", false, "add every candidate without review")
	return cmd
}

func joinStyles() string {
	names := make([]string, 0, len(ai.Styles()))
	for _, st := range ai.Styles() {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}
