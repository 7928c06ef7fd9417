// Package metrics defines all custom Prometheus metrics for the benchmark
// console. It is the single source of truth for metric names, labels, and
// help strings; metrics register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the benchmark backend.
// Labels:
//   - method: HTTP method ("GET", "POST", …)
//   - outcome: "ok", "upstream_error" (non-2xx), or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the benchmark backend.",
	},
	[]string{"method", "outcome"},
)

// BackendRequestDuration measures backend call latency end-to-end.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend requests from send to response decode.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome ("ok" / "rejected").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionRestoresTotal counts startup session restorations.
// Label:
//   - outcome: "restored", "empty", "invalid_token", "expired", "fetch_failed"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restoration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// GuardRedirectsTotal counts navigations turned away by the route guard.
// Label:
//   - reason: "unauthenticated" or "not_staff"
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of route-guard redirects, by reason.",
	},
	[]string{"reason"},
)

// ── Credential metrics ────────────────────────────────────────────────────────

// CredentialIssuesTotal counts get-or-create resolutions.
// Label:
//   - outcome: "existing" (scan hit), "created", or "error"
var CredentialIssuesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_issues_total",
		Help:      "Total number of credential issuance requests, by outcome.",
	},
	[]string{"outcome"},
)
