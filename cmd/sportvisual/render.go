package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
)

type renderOptions struct {
	view    viewFlags
	output  string
	copy    bool
	zoom    float64
	dataURI bool
}

func newRenderCmd(root *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [snapshot.yaml]",
		Short: "Render the saved document, or a snapshot file, to PNG",
		Long: `Render the saved document to a PNG in the export directory.

A YAML or JSON snapshot file may be given instead; view flags override the
settings it carries.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close() //nolint:errcheck

			return runRender(cmd.Context(), cmd.OutOrStdout(), app, args, opts)
		},
	}

	opts.view.bind(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the PNG to this path instead of the export directory")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the PNG to the clipboard, saving it when no clipboard is available")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 1, "Scale the written image (0.5 to 2)")
	cmd.Flags().BoolVar(&opts.dataURI, "data-uri", false, "Print the PNG as a data URI")

	return cmd
}

// loadSnapshot reads the snapshot file in args, or the session's state with
// the configured default format when there is none.
func loadSnapshot(app *AppContext, args []string, view *viewFlags) (document.Snapshot, error) {
	var snap document.Snapshot
	if len(args) > 0 {
		parsed, err := document.ParseSnapshot(args[0])
		if err != nil {
			return document.Snapshot{}, err
		}
		snap = parsed
	} else {
		snap = app.Session.Snapshot()
		if app.Config.Render.Format != "" {
			snap.Format = app.Config.Render.Format
		}
	}

	if err := view.apply(&snap); err != nil {
		return document.Snapshot{}, err
	}
	return snap, nil
}

func withDecodeTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func runRender(ctx context.Context, out io.Writer, app *AppContext, args []string, opts *renderOptions) error {
	snap, err := loadSnapshot(app, args, &opts.view)
	if err != nil {
		return err
	}

	ctx, cancel := withDecodeTimeout(ctx, app.Config.Render.DecodeTimeout)
	defer cancel()

	raster, err := app.Renderer.Render(ctx, snap)
	if err != nil {
		return newCommandError("render", fmt.Sprintf("drawing the %s template", snap.Template), err, "Check the template and format names.")
	}
	defer raster.Close() //nolint:errcheck

	var img image.Image = raster.Image()
	if opts.zoom != 1 {
		img = export.Preview(img, opts.zoom)
	}

	switch {
	case opts.dataURI:
		uri, err := export.DataURI(img)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, uri)

	case opts.copy:
		res, err := app.Exporter.Copy(ctx, img, snap.Template, snap.Format)
		if err != nil {
			return err
		}
		if res.Path != "" {
			fmt.Fprintf(out, "%s %s\n", res.Notice, res.Path)
		} else {
			fmt.Fprintln(out, res.Notice)
		}

	case opts.output != "":
		if err := writePNG(opts.output, img); err != nil {
			return newCommandError("render", "writing "+opts.output, err, "Check that the output directory is writable.")
		}
		fmt.Fprintf(out, "%s %s\n", export.NoticeDownloaded, opts.output)

	default:
		path, err := app.Exporter.Save(img, snap.Template, snap.Format)
		if err != nil {
			return newCommandError("render", "saving the image", err, "Check render.export_dir in your configuration.")
		}
		fmt.Fprintf(out, "%s %s\n", export.NoticeDownloaded, path)
	}

	app.Logger.WithFields(map[string]any{"template": string(snap.Template), "format": snap.Format}).Debug("render complete")
	return nil
}

func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.EncodePNG(file, img); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
