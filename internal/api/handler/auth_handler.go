package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	State      domain.AuthState  `json:"state"`
	Capability domain.Capability `json:"capability"`
	User       *domain.Principal `json:"user,omitempty"`
}

// LoginView renders the login view model. It is the one view that is always
// reachable.
func (h *AuthHandler) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"view": "login"})
}

// Login authenticates the operator against the backend token endpoint.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		State:      h.auth.State(),
		Capability: h.auth.Capability(),
		User:       user,
	})
}

// Logout clears the session unconditionally.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.auth.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Session reports the current session state and capability.
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse{
		State:      h.auth.State(),
		Capability: h.auth.Capability(),
		User:       h.auth.Principal(),
	})
}
