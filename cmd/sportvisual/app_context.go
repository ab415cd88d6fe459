package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/config"
	"github.com/alexisbeaulieu97/sportvisual/internal/editor"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
	"github.com/alexisbeaulieu97/sportvisual/internal/imageref"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	"github.com/alexisbeaulieu97/sportvisual/internal/render"
	"github.com/alexisbeaulieu97/sportvisual/internal/storage"
)

const configDefaultPath = config.DefaultPath

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config   *config.Config
	Logger   *logger.Logger
	Session  *editor.Session
	Renderer *render.Renderer
	Exporter *export.Exporter
}

// loadSettings reads the configuration and builds the logger. Log output goes to errOut.
func loadSettings(flags *rootFlags, errOut io.Writer, human bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: human && cfg.Log.Human, Writer: errOut})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// newAppContext opens the store and the editing session on top of it.
func newAppContext(flags *rootFlags, errOut io.Writer) (*AppContext, error) {
	cfg, log, err := loadSettings(flags, errOut, true)
	if err != nil {
		return nil, err
	}

	store, durable := storage.Open(cfg.Storage.Path, log)
	if durable {
		log.WithField("path", cfg.Storage.Path).Debug("storage opened")
	}

	return &AppContext{
		Config:   cfg,
		Logger:   log,
		Session:  editor.New(editor.Options{Store: store, Logger: log}),
		Renderer: newRenderer(cfg, log, nil),
		Exporter: export.NewExporter(cfg.Render.ExportDir, export.NewCommandClipboard(), log),
	}, nil
}

func newRenderer(cfg *config.Config, log *logger.Logger, observer render.Observer) *render.Renderer {
	return render.New(render.Options{
		Fonts:    canvas.NewFontBook(cfg.Fonts.Dirs, log),
		Decoder:  imageref.FileDecoder{},
		Logger:   log,
		Observer: observer,
	})
}

// Close releases the session's store.
func (a *AppContext) Close() error {
	if a == nil || a.Session == nil {
		return nil
	}
	return a.Session.Close()
}

// discardUnlessVerbose silences logging for full-screen commands unless --verbose is set.
func discardUnlessVerbose(flags *rootFlags, cmd *cobra.Command) io.Writer {
	if flags.verbose {
		return cmd.ErrOrStderr()
	}
	return io.Discard
}
