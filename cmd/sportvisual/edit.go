package main

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/sportvisual/internal/tui"
)

var (
	isInteractive = func() bool {
		return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	editProgramRunner = runEditProgram
)

func newEditCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Launch the interactive editor",
		Long:  `Launch the terminal editor to change fields, themes and effects, undo and redo, and export PNGs.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return newCommandError("edit", "starting the editor", errors.New("not a terminal"), "Use 'sportvisual set' and 'sportvisual render' in scripts.")
			}

			// Log lines would tear the alternate screen.
			app, err := newAppContext(root, discardUnlessVerbose(root, cmd))
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			model := tui.NewModel(tui.Options{
				Session:  app.Session,
				Renderer: app.Renderer,
				Exporter: app.Exporter,
				Timeout:  app.Config.Render.DecodeTimeout,
			})
			return editProgramRunner(model)
		},
	}

	return cmd
}

func runEditProgram(model tui.Model) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
