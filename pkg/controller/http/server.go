package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/waterlens/tapcheck/frontend"
	"github.com/waterlens/tapcheck/pkg/domain/interfaces"
	"github.com/waterlens/tapcheck/pkg/service/render"
	"github.com/waterlens/tapcheck/pkg/utils/metrics"
)

// UseCases bundles the use cases served over HTTP
type UseCases struct {
	Gateway interfaces.Gateway
	Report  interfaces.Report
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router   chi.Router
	useCases *UseCases
	renderer *render.Renderer
	metrics  *metrics.Metrics
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	addr string,
	useCases *UseCases,
	renderer *render.Renderer,
	m *metrics.Metrics,
) (*Server, error) {
	if useCases == nil || useCases.Gateway == nil || useCases.Report == nil {
		return nil, goerr.New("use cases are required")
	}
	if renderer == nil {
		return nil, goerr.New("renderer is required")
	}

	router := chi.NewRouter()
	s := &Server{
		router:   router,
		useCases: useCases,
		renderer: renderer,
		metrics:  m,
	}

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx, m))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", m.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(CORS)
		r.Get("/systems", s.handleSystems)
		r.Get("/contaminants", s.handleContaminants)
		r.Get("/facility", s.handleFacility)
		r.Get("/report", s.handleReportAPI)
	})

	// Endpoint names used by earlier deployments of the web client
	router.Group(func(r chi.Router) {
		r.Use(CORS)
		r.Get("/get-systems", s.handleSystems)
		r.Get("/get-contaminants", s.handleContaminants)
		r.Get("/get-epa-data", s.handleFacility)
	})

	router.Get("/", s.handleIndex)
	router.Get("/report", s.handleReportPage)

	fs, err := frontend.GetHTTPFS()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load static assets")
	}
	router.Handle("/static/*", http.StripPrefix("/static", NewStaticHandler(fs)))

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
	}

	return s, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "tapcheck",
	})
}

// writeJSON encodes v fully before any header is written
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response", "error", err)
	}
}

// writeRaw writes an already encoded JSON payload
func writeRaw(w http.ResponseWriter, r *http.Request, body json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
