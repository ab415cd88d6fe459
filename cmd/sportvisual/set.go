package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

type setOptions struct {
	template string
	club     string
	season   string
}

func newSetCmd(root *rootFlags) *cobra.Command {
	opts := &setOptions{}

	cmd := &cobra.Command{
		Use:   "set [key=value ...]",
		Short: "Edit fields of the saved document",
		Long: `Edit fields of one template record and save the document.

Fixtures of the upnext template are addressed as matches[N].key, starting at 0.
Without arguments the record's current fields are printed.`,
		Example: `  sportvisual set homeTeam="FC SION" textSize=90
  sportvisual set -t upnext numMatches=4 'matches[3].stadium=TOURBILLON'
  sportvisual set -t score --club psg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			return runSet(cmd.OutOrStdout(), app, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.template, "template", "t", string(document.VariantMatch), "Template record to edit")
	cmd.Flags().StringVar(&opts.club, "club", "", "Apply a club theme to the record")
	cmd.Flags().StringVar(&opts.season, "season", "", "Apply a seasonal theme to the record")

	return cmd
}

func runSet(out io.Writer, app *AppContext, args []string, opts *setOptions) error {
	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}

	variant, err := document.ParseVariant(opts.template)
	if err != nil {
		return err
	}
	session := app.Session
	if err := session.SetTemplate(variant); err != nil {
		return err
	}

	for _, a := range assignments {
		if a.match >= 0 {
			err = session.SetMatchField(a.match, a.key, a.value)
		} else {
			err = session.SetField(a.key, a.value)
		}
		if err != nil {
			return err
		}
	}
	if len(assignments) > 0 {
		session.Checkpoint()
	}

	if opts.club != "" {
		notice, err := session.SetClub(opts.club)
		if err != nil {
			return err
		}
		printNotice(out, notice)
	}
	if opts.season != "" {
		notice, err := session.SetSeason(opts.season)
		if err != nil {
			return err
		}
		printNotice(out, notice)
	}

	return printRecord(out, app, variant)
}

// printRecord lists every field of the variant's record.
func printRecord(out io.Writer, app *AppContext, variant document.Variant) error {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "FIELD\tVALUE")

	for _, spec := range catalog.Fields(string(variant)) {
		value, err := app.Session.Field(spec.Key)
		if err != nil {
			return err
		}
		fmt.Fprintf(writer, "%s\t%s\n", spec.Key, escapeLinesForTable(value))
	}

	if variant == document.VariantUpNext {
		snap := app.Session.Snapshot()
		for i := range snap.Data.UpNext.Visible() {
			for _, spec := range catalog.MatchEntryFields {
				value, err := snap.Data.MatchField(i, spec.Key)
				if err != nil {
					return err
				}
				fmt.Fprintf(writer, "matches[%d].%s\t%s\n", i, spec.Key, value)
			}
		}
	}

	return writer.Flush()
}

func printNotice(out io.Writer, notice string) {
	if notice != "" {
		fmt.Fprintln(out, notice)
	}
}
