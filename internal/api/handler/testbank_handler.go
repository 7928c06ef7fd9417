package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

// TestBankHandler serves the staff-only unit-test bank view.
type TestBankHandler struct {
	tests ports.TestBankAPI
}

func NewTestBankHandler(tests ports.TestBankAPI) *TestBankHandler {
	return &TestBankHandler{tests: tests}
}

type unitTestRequest struct {
	Name       string `json:"name" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard all"`
	Prompt     string `json:"prompt" validate:"required"`
	Tests      string `json:"tests" validate:"required"`
}

func (r *unitTestRequest) toDomain(id int64) domain.UnitTest {
	return domain.UnitTest{
		ID:         id,
		Name:       r.Name,
		Difficulty: domain.Difficulty(r.Difficulty),
		Prompt:     r.Prompt,
		Tests:      r.Tests,
	}
}

func (h *TestBankHandler) List(c echo.Context) error {
	tests, err := h.tests.ListTests(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tests)
}

func (h *TestBankHandler) Create(c echo.Context) error {
	var req unitTestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.tests.CreateTest(c.Request().Context(), req.toDomain(0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *TestBankHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req unitTestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.tests.UpdateTest(c.Request().Context(), req.toDomain(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *TestBankHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.tests.DeleteTest(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
