package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

type defaultsOptions struct {
	jsonOutput bool
}

func newDefaultsCmd() *cobra.Command {
	opts := &defaultsOptions{}

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default snapshot, a starting point for snapshot files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := document.New()

			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(snap)
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err := encoder.Encode(snap); err != nil {
				return err
			}
			return encoder.Close()
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
