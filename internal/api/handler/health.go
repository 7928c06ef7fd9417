package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

// HealthHandler serves the liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness reports that the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// BackendPinger answers whether the benchmark backend responds at all.
type BackendPinger interface {
	Ping(ctx context.Context) error
}

// HealthDependenciesHandler serves the readiness probe: the session store
// and the benchmark backend must both be answering before the console can
// be trusted with traffic.
type HealthDependenciesHandler struct {
	store   ports.SessionStore
	backend BackendPinger
}

func NewHealthDependenciesHandler(store ports.SessionStore, backend BackendPinger) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{store: store, backend: backend}
}

// Readiness checks dependency connectivity. The store is probed with a
// read: an empty store is healthy, a failed read is not. This covers both
// backends, a redis round trip and a file access alike.
func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"session_store": "ok", "backend": "ok"}
	healthy := true

	if h.store != nil {
		if _, err := h.store.Get(ctx); err != nil && !errors.Is(err, domain.ErrNoSession) {
			checks["session_store"] = "unreachable"
			healthy = false
		}
	}
	if h.backend != nil {
		if err := h.backend.Ping(ctx); err != nil {
			checks["backend"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, checks)
	}
	return c.JSON(http.StatusOK, checks)
}
