// Package server exposes the renderer over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	"github.com/alexisbeaulieu97/sportvisual/internal/metrics"
	"github.com/alexisbeaulieu97/sportvisual/internal/render"
)

// MaxBodyBytes bounds a render request. Snapshots may embed images as data URIs.
const MaxBodyBytes = 64 << 20

// Config configures the HTTP server.
type Config struct {
	Addr          string
	MetricsPath   string
	DecodeTimeout time.Duration
	Version       string
}

// Server is the HTTP render service.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	renderer   *render.Renderer
	metrics    *metrics.Metrics
	config     Config
	logger     *logger.Logger
	startTime  time.Time
}

// New creates a Server. m may be nil to disable metrics.
func New(cfg Config, renderer *render.Renderer, m *metrics.Metrics, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		router:    chi.NewRouter(),
		renderer:  renderer,
		metrics:   m,
		config:    cfg,
		logger:    log,
		startTime: time.Now(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware)
	}

	s.router.Get("/health", s.handleHealth)
	if s.metrics != nil && s.config.MetricsPath != "" {
		s.router.Handle(s.config.MetricsPath, s.metrics.Handler())
	}

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)
		r.Get("/catalog", s.handleCatalog)
		r.Get("/fields/{variant}", s.handleFields)
		r.Post("/render", s.handleRender)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.WithField("addr", s.config.Addr).Info("starting HTTP render server")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP render server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.WithFields(map[string]any{
			"request_id":  middleware.GetReqID(r.Context()),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration":    time.Since(start).String(),
			"bytes":       ww.BytesWritten(),
			"remote_addr": r.RemoteAddr,
		}).Info("http request")
	})
}
