package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/metrics"
	"github.com/alexisbeaulieu97/sportvisual/internal/server"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	addr string
}

func newServeCmd(root *rootFlags) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve POST /api/v1/render, which turns a snapshot into a PNG, along with the
catalog and default document endpoints and Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), root, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (overrides server.addr)")

	return cmd
}

func runServe(ctx context.Context, root *rootFlags, opts *serveOptions, cmd *cobra.Command) error {
	// The service logs JSON lines.
	cfg, log, err := loadSettings(root, cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if opts.addr != "" {
		addr = opts.addr
	}

	m := metrics.New()
	srv := server.New(server.Config{
		Addr:          addr,
		MetricsPath:   cfg.Server.MetricsPath,
		DecodeTimeout: cfg.Render.DecodeTimeout,
		Version:       version,
	}, newRenderer(cfg, log, m), m, log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
