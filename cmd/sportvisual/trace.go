package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
)

type traceOptions struct {
	view viewFlags
}

func newTraceCmd(root *rootFlags) *cobra.Command {
	opts := &traceOptions{}

	cmd := &cobra.Command{
		Use:   "trace [snapshot.yaml]",
		Short: "Print the draw calls a render would issue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			return runTrace(cmd.Context(), cmd.OutOrStdout(), app, args, opts)
		},
	}

	opts.view.bind(cmd)

	return cmd
}

func runTrace(ctx context.Context, out io.Writer, app *AppContext, args []string, opts *traceOptions) error {
	snap, err := loadSnapshot(app, args, &opts.view)
	if err != nil {
		return err
	}

	format, err := catalog.LookupFormat(snap.Format)
	if err != nil {
		return err
	}

	ctx, cancel := withDecodeTimeout(ctx, app.Config.Render.DecodeTimeout)
	defer cancel()

	rec := canvas.NewRecorder(format.Width, format.Height)
	frame := app.Renderer.Draw(ctx, rec, snap)
	if err := frame.Settle(ctx); err != nil {
		app.Logger.Warn(err, "image layers did not arrive in time")
	}

	ops := rec.Ops()
	for i, op := range ops {
		fmt.Fprintf(out, "%4d  %s\n", i, op)
	}
	fmt.Fprintf(out, "\n%s %s: %d draw calls, %d image layers pending\n", snap.Template, format.Label, len(ops), frame.Pending())
	return nil
}
