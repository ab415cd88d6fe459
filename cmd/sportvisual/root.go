package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "sportvisual",
		Short:         "SportVisual builds promotional images for sports clubs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to configuration file (default "+configDefaultPath+")")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newSetCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newTemplatesCmd(flags))
	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newTraceCmd(flags))
	cmd.AddCommand(newDefaultsCmd())
	cmd.AddCommand(newResetCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
