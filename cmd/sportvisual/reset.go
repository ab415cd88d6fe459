package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved document and start from the defaults",
		Long:  "Forget the saved document and start from the defaults. Saved templates are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			if err := app.Session.Reset(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Document réinitialisé")
			return nil
		},
	}

	return cmd
}
