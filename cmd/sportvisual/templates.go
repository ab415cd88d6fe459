package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/storage"
	"github.com/alexisbeaulieu97/sportvisual/pkg/diff"
)

func newTemplatesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage saved templates",
		Long:  fmt.Sprintf("Save, list, load and delete templates. At most %d are kept, newest first.", storage.MaxTemplates),
	}

	cmd.AddCommand(newTemplatesListCmd(root))
	cmd.AddCommand(newTemplatesSaveCmd(root))
	cmd.AddCommand(newTemplatesLoadCmd(root))
	cmd.AddCommand(newTemplatesDeleteCmd(root))
	cmd.AddCommand(newTemplatesDiffCmd(root))

	return cmd
}

type templatesListOptions struct {
	jsonOutput bool
}

type templatesJSONEntry struct {
	Number   int    `json:"number"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Template string `json:"template"`
	Format   string `json:"format"`
}

func newTemplatesListCmd(root *rootFlags) *cobra.Command {
	opts := &templatesListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			saved, err := app.Session.Templates()
			if err != nil {
				return newCommandError("list templates", "reading saved templates", err, "Check storage.path in your configuration.")
			}

			if opts.jsonOutput {
				entries := make([]templatesJSONEntry, len(saved))
				for i, t := range saved {
					entries[i] = templatesJSONEntry{
						Number: i + 1, ID: t.ID, Name: t.Name, Date: t.Date,
						Template: string(t.Template), Format: t.Format,
					}
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(saved) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Aucun template sauvegardé")
				return nil
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "#\tNAME\tTEMPLATE\tFORMAT\tSAVED")
			for i, t := range saved {
				fmt.Fprintf(writer, "%d\t%s\t%s\t%s\t%s\n", i+1, t.Name, t.Template, t.Format, t.Date)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type templatesSaveOptions struct {
	view viewFlags
}

func newTemplatesSaveCmd(root *rootFlags) *cobra.Command {
	opts := &templatesSaveOptions{}

	cmd := &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current document and view settings as a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			if err := applyViewToSession(app, &opts.view); err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			saved, err := app.Session.SaveTemplate(name)
			if err != nil {
				return newCommandError("save template", "writing saved templates", err, "Check storage.path in your configuration.")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💾 Template \"%s\" sauvegardé !\n", saved.Name)
			return nil
		},
	}

	opts.view.bind(cmd)

	return cmd
}

func newTemplatesLoadCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <number>",
		Short: "Restore a saved template into the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			if err := app.Session.LoadTemplate(index); err != nil {
				return newCommandError("load template", "restoring template "+args[0], err, "Run 'sportvisual templates list' to see the saved templates.")
			}

			view := app.Session.View()
			fmt.Fprintf(cmd.OutOrStdout(), "📂 Template chargé (%s, %s)\n", view.Template, view.Format)
			return printRecord(cmd.OutOrStdout(), app, view.Template)
		},
	}

	return cmd
}

func newTemplatesDeleteCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete a saved template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			if err := app.Session.DeleteTemplate(index); err != nil {
				return newCommandError("delete template", "removing template "+args[0], err, "Run 'sportvisual templates list' to see the saved templates.")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "🗑️ Template supprimé")
			return nil
		},
	}

	return cmd
}

func newTemplatesDiffCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <number>",
		Short: "Show what loading a saved template would change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			saved, err := app.Session.Templates()
			if err != nil {
				return err
			}
			if index >= len(saved) {
				return fmt.Errorf("no saved template number %s", args[0])
			}

			out, err := diff.Snapshots(app.Session.Snapshot(), saved[index].Snapshot, "document", saved[index].Name)
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No differences")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	return cmd
}

// applyViewToSession routes view flags through the session setters so that
// a saved template carries them.
func applyViewToSession(app *AppContext, view *viewFlags) error {
	snap := app.Session.Snapshot()
	if err := view.apply(&snap); err != nil {
		return err
	}

	s := app.Session
	steps := []error{
		s.SetTemplate(snap.Template),
		s.SetFormat(snap.Format),
		s.SetFont(snap.Font),
		s.SetPattern(snap.Pattern),
		s.SetEffect(snap.Effect),
		s.SetFilter(snap.Filter),
	}
	s.SetIntensity(snap.EffectIntensity)
	for _, err := range steps {
		if err != nil {
			return err
		}
	}

	if view.club != "" {
		if _, err := s.SetClub(view.club); err != nil {
			return err
		}
	}
	if view.season != "" {
		if _, err := s.SetSeason(view.season); err != nil {
			return err
		}
	}
	return nil
}
