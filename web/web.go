// Package web provides the HTTP API: read-only resource lookups, the
// killmail redirect, and the diagnostic event stream.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/evetools/killfeed/adapters/metrics"
	"github.com/evetools/killfeed/app"
)

// Handler provides the API endpoints.
type Handler struct {
	lookups        *app.LookupService
	logger         zerolog.Logger
	metrics        *metrics.Collector
	streamLifetime time.Duration
	version        string
}

// Deps contains dependencies for the API handler.
type Deps struct {
	Lookups *app.LookupService
	Logger  zerolog.Logger
	Metrics *metrics.Collector

	// StreamLifetime bounds the diagnostic stream's lifetime via a
	// scheduled close.
	StreamLifetime time.Duration

	Version string
}

// NewHandler creates a new API handler.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		lookups:        deps.Lookups,
		logger:         deps.Logger,
		metrics:        deps.Metrics,
		streamLifetime: deps.StreamLifetime,
		version:        deps.Version,
	}
}

// Router builds the chi router for the API.
func (h *Handler) Router(gatherer prometheus.Gatherer, metricsPath string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.recoverer)
	r.Use(h.instrument)

	r.Get("/health", h.Health)
	r.Get("/version", h.Version)
	if gatherer != nil {
		r.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/killmail/{id}", h.GetKillmail)
		r.Get("/character/{id}", h.GetCharacter)
		r.Get("/corporation/{id}", h.GetCorporation)
		r.Get("/alliance/{id}", h.GetAlliance)
		r.Get("/stream/test", h.StreamTest)
	})

	// Canonical killmail pages: the bare URL redirects to the ESI view.
	r.Get("/killmail/{id}", h.RedirectKillmail)
	r.Get("/killmail/{id}/esi", h.GetKillmail)

	return r
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Version reports the build version.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "killfeed",
		"version": h.version,
	})
}

// instrument records request metrics.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		h.metrics.RequestsInFlight.Inc()
		defer h.metrics.RequestsInFlight.Dec()

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		routePath := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePath = rctx.RoutePattern()
		}
		h.metrics.RequestsTotal.WithLabelValues(r.Method, routePath, strconv.Itoa(ww.Status())).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method, routePath).Observe(time.Since(start).Seconds())
	})
}

// recoverer converts panics into opaque 500 responses.
func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error().
					Interface("panic", rec).
					Str("path", r.URL.Path).
					Msg("handler panicked")
				writeStatusMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
