package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

// ProfileHandler serves the operator's own profile view. An update patches
// the backend record and then refetches the Principal so the session view
// reflects the change immediately.
type ProfileHandler struct {
	auth    ports.AuthService
	profile ports.ProfileAPI
}

func NewProfileHandler(auth ports.AuthService, profile ports.ProfileAPI) *ProfileHandler {
	return &ProfileHandler{auth: auth, profile: profile}
}

type profileUpdateRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

func (h *ProfileHandler) View(c echo.Context) error {
	p := h.auth.Principal()
	if p == nil {
		return domain.ErrNotAuthenticated
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	p := h.auth.Principal()
	if p == nil {
		return domain.ErrNotAuthenticated
	}

	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Email == nil && req.Password == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	ctx := c.Request().Context()
	if _, err := h.profile.UpdateUser(ctx, p.ID, ports.UserPatch{Email: req.Email, Password: req.Password}); err != nil {
		return err
	}

	refreshed, err := h.auth.RefreshPrincipal(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refreshed)
}
