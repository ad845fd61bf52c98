package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sandeepkv93/aitodo/internal/update"
)

// runTUI starts the interactive interface. Without a terminal it prints
// usage instead.
func runTUI(cmd *cobra.Command, s *session) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cmd.Help()
	}
	ws, err := s.workspace(cmd)
	if err != nil {
		return err
	}
	rc := update.DefaultRuntimeConfig()
	program := tea.NewProgram(update.NewModel(cmd.Context(), ws, rc), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}
