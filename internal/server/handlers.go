package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Uptime  string `json:"uptime"`
}

// ErrorResponse carries a failed request's reason.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Line  int    `json:"line,omitempty"`
}

// CatalogResponse lists every selectable value.
type CatalogResponse struct {
	Templates []string              `json:"templates"`
	Formats   []catalog.Format      `json:"formats"`
	Clubs     []catalog.ClubTheme   `json:"clubs"`
	Seasons   []catalog.SeasonTheme `json:"seasons"`
	Patterns  []string              `json:"patterns"`
	Effects   []string              `json:"effects"`
	Filters   []string              `json:"filters"`
	Fonts     []string              `json:"fonts"`
}

// DataURIResponse is returned by /api/v1/render?encoding=datauri.
type DataURIResponse struct {
	FileName string `json:"fileName"`
	DataURI  string `json:"dataUri"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: s.config.Version,
		Uptime:  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, document.New())
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, CatalogResponse{
		Templates: document.VariantNames(),
		Formats:   catalog.Formats(),
		Clubs:     catalog.Clubs(),
		Seasons:   catalog.Seasons(),
		Patterns:  catalog.Patterns,
		Effects:   catalog.Effects,
		Filters:   catalog.Filters,
		Fonts:     catalog.Fonts,
	})
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	variant, err := document.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		s.sendError(w, http.StatusNotFound, err)
		return
	}
	s.sendJSON(w, http.StatusOK, catalog.Fields(string(variant)))
}

// handleRender renders a snapshot body (JSON or YAML) and returns a PNG, or a
// data URI when encoding=datauri. Query parameters template and format
// override the body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		s.sendError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	snap := document.New()
	if len(body) > 0 {
		snap, err = document.DecodeSnapshot("request", body)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, err)
			return
		}
	}

	query := r.URL.Query()
	if v := query.Get("template"); v != "" {
		variant, err := document.ParseVariant(v)
		if err != nil {
			s.sendError(w, http.StatusBadRequest, sverrors.NewValidationError("template", err.Error(), err))
			return
		}
		snap.Template = variant
	}
	if f := query.Get("format"); f != "" {
		if _, err := catalog.LookupFormat(f); err != nil {
			s.sendError(w, http.StatusBadRequest, sverrors.NewValidationError("format", err.Error(), err))
			return
		}
		snap.Format = f
	}

	ctx := r.Context()
	if s.config.DecodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.DecodeTimeout)
		defer cancel()
	}

	raster, err := s.renderer.Render(ctx, snap)
	if err != nil {
		s.sendError(w, http.StatusInternalServerError, err)
		return
	}
	defer raster.Close()

	name := export.FileName(snap.Template, snap.Format, time.Now())
	if query.Get("encoding") == "datauri" {
		uri, err := export.DataURI(raster.Image())
		if err != nil {
			s.sendError(w, http.StatusInternalServerError, err)
			return
		}
		s.sendJSON(w, http.StatusOK, DataURIResponse{FileName: name, DataURI: uri})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="`+name+`"`)
	if err := raster.EncodePNG(w); err != nil {
		s.logger.Error(err, "failed to write PNG response")
	}
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error(err, "failed to encode response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *sverrors.ValidationError
	var parseErr *sverrors.ParseError
	switch {
	case errors.As(err, &validationErr):
		resp.Field = validationErr.Field
	case errors.As(err, &parseErr):
		resp.Line = parseErr.Line
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(err, "request failed")
	}
	s.sendJSON(w, status, resp)
}
