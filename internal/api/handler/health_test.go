package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/llmbench/console/internal/core/domain"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

// stubSessionStore is empty by default; getErr simulates an unusable store.
type stubSessionStore struct {
	getErr error
}

func (s *stubSessionStore) Get(context.Context) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return nil, domain.ErrNoSession
}
func (s *stubSessionStore) Set(context.Context, *domain.Session) error { return nil }
func (s *stubSessionStore) Clear(context.Context) error                { return nil }

func readinessChecks(t *testing.T, h *HealthDependenciesHandler) (int, map[string]string) {
	t.Helper()
	c, rec := newTestContext(t, http.MethodGet, "/health/ready", "")
	if err := h.Readiness(c); err != nil {
		t.Fatalf("readiness failed: %v", err)
	}
	var checks map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &checks); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec.Code, checks
}

func TestReadiness_AllHealthy(t *testing.T) {
	// An empty store is healthy; only a failed read marks it unreachable.
	h := NewHealthDependenciesHandler(&stubSessionStore{}, &stubPinger{})

	code, checks := readinessChecks(t, h)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if checks["session_store"] != "ok" || checks["backend"] != "ok" {
		t.Fatalf("unexpected checks: %v", checks)
	}
}

func TestReadiness_StoreUnreachable(t *testing.T) {
	store := &stubSessionStore{getErr: errors.New("read session file: permission denied")}
	h := NewHealthDependenciesHandler(store, &stubPinger{})

	code, checks := readinessChecks(t, h)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if checks["session_store"] != "unreachable" {
		t.Fatalf("unexpected checks: %v", checks)
	}
}

func TestReadiness_BackendUnreachable(t *testing.T) {
	h := NewHealthDependenciesHandler(&stubSessionStore{}, &stubPinger{err: errors.New("connection refused")})

	code, checks := readinessChecks(t, h)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if checks["backend"] != "unreachable" {
		t.Fatalf("unexpected checks: %v", checks)
	}
}
