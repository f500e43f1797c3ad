// Package httphandler implements the JSON REST API driving adapter.
package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// Portfolio is the subset of the portfolio service the API drives.
type Portfolio interface {
	Username() string
	Load(ctx context.Context, r driven.Renderer) error
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	portfolio Portfolio
	store     Pinger
	logger    *slog.Logger
	now       func() time.Time
}

// NewHandler creates a Handler. store may be nil when the configured cache
// backend has nothing to ping.
func NewHandler(portfolio Portfolio, store Pinger, logger *slog.Logger) *Handler {
	return &Handler{
		portfolio: portfolio,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterAPIRoutes registers the /api/v1 routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/portfolio", h.Portfolio)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// ApplyMiddleware wraps next with logging and recovery middleware.
func ApplyMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, next)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// Portfolio loads the portfolio and returns it as JSON. A degraded load
// answers 200 with a notice; a fatal one answers 502.
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	c := application.NewCollector()

	if err := h.portfolio.Load(r.Context(), c); err != nil {
		if r.Context().Err() != nil {
			h.logger.Debug("portfolio request abandoned", "error", err)
			return
		}
		h.logger.Warn("portfolio unavailable", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	resp := PortfolioResponse{
		Username: h.portfolio.Username(),
		Repos:    toRepositoryResponses(c.Repos()),
	}
	if p := c.Profile(); p != nil {
		resp.Profile = toProfileResponse(*p)
	}
	if n := c.Notice(); n != nil {
		resp.Notice = toNoticeResponse(*n)
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response. When a store is configured
// it must answer a ping for the service to report ok.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   h.now().UTC().Format(time.RFC3339),
	}

	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			h.logger.Error("health check failed", "error", err)
			resp.Status = "unavailable"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
