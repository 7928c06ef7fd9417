// Package middleware contains the route guard deciding, per navigation,
// whether the current operator may see a view. Gating here is a UX
// convenience; the backend independently enforces authorization on every
// call.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/api/metrics"
	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

const (
	// LoginPath is always reachable, guarded or not.
	LoginPath = "/login"
	// LandingPath is the default view unknown and forbidden paths fall
	// back to.
	LandingPath = "/"
)

// Guard protects a route group. While the session is still being restored
// it renders a neutral placeholder instead of redirecting, so an
// authenticated operator never sees an unauthenticated flash. Anonymous
// operators are redirected to the login view.
func Guard(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch auth.State() {
			case domain.StateUninitialized, domain.StateRestoring:
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "restoring session"})
			case domain.StateAnonymous:
				metrics.GuardRedirectsTotal.WithLabelValues("unauthenticated").Inc()
				return c.Redirect(http.StatusFound, LoginPath)
			}
			return next(c)
		}
	}
}

// StaffOnly redirects authenticated non-staff operators to the landing
// view. It assumes Guard already ran, so the operator is authenticated.
func StaffOnly(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !auth.Capability().Staff {
				metrics.GuardRedirectsTotal.WithLabelValues("not_staff").Inc()
				return c.Redirect(http.StatusFound, LandingPath)
			}
			return next(c)
		}
	}
}
