package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/ports"
)

// UserHandler serves the staff-only user management view.
type UserHandler struct {
	users ports.UserAdminAPI
}

func NewUserHandler(users ports.UserAdminAPI) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Staff    bool   `json:"is_staff"`
	Password string `json:"password" validate:"required,min=8"`
}

type updateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Staff    *bool   `json:"is_staff"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.users.CreateUser(c.Request().Context(), ports.NewUser{
		Username: req.Username,
		Email:    req.Email,
		Staff:    req.Staff,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.UpdateUser(c.Request().Context(), id, ports.UserPatch{
		Email:    req.Email,
		Staff:    req.Staff,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
