// Package http exposes the engine's preview surface: render a template
// against profile data, validate it, build its stylesheet and browse
// the component catalog. This is the engine's own dev/preview adapter,
// not a production profile API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quiltspace/quilt/internal/cascade"
	"github.com/quiltspace/quilt/pkg/domain"
)

// Engine defines the interface for the rendering core the server
// fronts.
type Engine interface {
	Parse(source string) (*domain.Node, error)
	RenderSource(ctx context.Context, source string, profile *domain.ProfileData) (string, error)
	Stylesheet(in cascade.Input) string
	Components() []*domain.ComponentDescriptor
}

// Server handles the preview HTTP surface.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	metrics *metrics
}

type metrics struct {
	registry    *prometheus.Registry
	renders     *prometheus.CounterVec
	validations *prometheus.CounterVec
	stylesheets prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quilt_render_requests_total",
			Help: "Render requests by outcome.",
		}, []string{"outcome"}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quilt_validate_requests_total",
			Help: "Validation requests by outcome.",
		}, []string{"outcome"}),
		stylesheets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quilt_stylesheet_builds_total",
			Help: "Stylesheet build requests.",
		}),
	}
	m.registry.MustRegister(m.renders, m.validations, m.stylesheets)
	return m
}

// NewHandler creates the preview HTTP handler for the engine.
func NewHandler(engine Engine, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: engine, logger: logger, metrics: newMetrics()}

	r := chi.NewRouter()
	r.Post("/render", s.Render)
	r.Post("/validate", s.Validate)
	r.Post("/stylesheet", s.BuildStylesheet)
	r.Get("/components", s.GetComponents)
	r.Get("/health", s.GetHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RenderRequest is the POST /render body.
type RenderRequest struct {
	Template string              `json:"template"`
	Profile  *domain.ProfileData `json:"profile,omitempty"`
}

// RenderResponse is the POST /render success body.
type RenderResponse struct {
	HTML string `json:"html"`
}

// StructuralErrorDTO is one located template error on the wire.
type StructuralErrorDTO struct {
	Component string `json:"component"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Reason    string `json:"reason"`
}

// ValidationResponse is the POST /validate body and the 422 shape of
// POST /render.
type ValidationResponse struct {
	Valid  bool                 `json:"valid"`
	Errors []StructuralErrorDTO `json:"errors,omitempty"`
}

// Render handles the POST /render request.
func (s *Server) Render(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Render: invalid request body", "err", err)
		s.metrics.renders.WithLabelValues("bad_request").Inc()
		return
	}

	html, err := s.engine.RenderSource(r.Context(), body.Template, body.Profile)
	if err != nil {
		var serrs domain.StructuralErrors
		if errors.As(err, &serrs) {
			s.metrics.renders.WithLabelValues("structural_error").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, ValidationResponse{
				Valid:  false,
				Errors: structuralDTOs(serrs),
			})
			return
		}
		http.Error(w, fmt.Sprintf("Render error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Render failed", "err", err)
		s.metrics.renders.WithLabelValues("error").Inc()
		return
	}

	s.metrics.renders.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, RenderResponse{HTML: html})
}

// Validate handles the POST /validate request. Structural errors are a
// 200 with valid=false; only transport problems are HTTP errors.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Validate: invalid request body", "err", err)
		return
	}

	_, err := s.engine.Parse(body.Template)
	if err != nil {
		var serrs domain.StructuralErrors
		if errors.As(err, &serrs) {
			s.metrics.validations.WithLabelValues("invalid").Inc()
			writeJSON(w, http.StatusOK, ValidationResponse{Valid: false, Errors: structuralDTOs(serrs)})
			return
		}
		http.Error(w, fmt.Sprintf("Parse error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Validate failed", "err", err)
		return
	}

	s.metrics.validations.WithLabelValues("valid").Inc()
	writeJSON(w, http.StatusOK, ValidationResponse{Valid: true})
}

// StylesheetRequest is the POST /stylesheet body.
type StylesheetRequest struct {
	UserCSS      string `json:"userCss"`
	CSSMode      string `json:"cssMode,omitempty"`
	TemplateMode string `json:"templateMode,omitempty"`
	Container    string `json:"container,omitempty"`
	NoLayers     bool   `json:"noLayers,omitempty"`

	SiteWide      string `json:"siteWide,omitempty"`
	GlobalBase    string `json:"globalBase,omitempty"`
	ComponentBase string `json:"componentBase,omitempty"`
}

// BuildStylesheet handles the POST /stylesheet request, answering
// text/css.
func (s *Server) BuildStylesheet(w http.ResponseWriter, r *http.Request) {
	var body StylesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("BuildStylesheet: invalid request body", "err", err)
		return
	}

	out := s.engine.Stylesheet(cascade.Input{
		CSSMode:      cascade.CSSMode(body.CSSMode),
		TemplateMode: cascade.TemplateMode(body.TemplateMode),
		Container:    body.Container,
		NoLayers:     body.NoLayers,
		Origins: cascade.OriginBlocks{
			GlobalBase:    body.GlobalBase,
			SiteWide:      body.SiteWide,
			ComponentBase: body.ComponentBase,
			UserCSS:       body.UserCSS,
		},
	})

	s.metrics.stylesheets.Inc()
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write([]byte(out))
}

// GetComponents handles the GET /components request.
func (s *Server) GetComponents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Components())
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": "quilt-preview"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}

func structuralDTOs(errs domain.StructuralErrors) []StructuralErrorDTO {
	out := make([]StructuralErrorDTO, len(errs))
	for i, e := range errs {
		out[i] = StructuralErrorDTO{
			Component: e.Component,
			Line:      e.Line,
			Column:    e.Column,
			Reason:    e.Reason,
		}
	}
	return out
}
