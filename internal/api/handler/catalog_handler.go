package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

// CatalogHandler serves the model catalog view: listing, staff CRUD, the
// run-tests trigger, and the per-model get-token action.
type CatalogHandler struct {
	catalog     ports.CatalogAPI
	provisioner ports.CredentialProvisioner
}

func NewCatalogHandler(catalog ports.CatalogAPI, provisioner ports.CredentialProvisioner) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, provisioner: provisioner}
}

type modelRequest struct {
	Name           string `json:"name" validate:"required"`
	OpenAIEndpoint string `json:"openai_link" validate:"omitempty,url"`
	APIToken       string `json:"api_token"`
}

func (h *CatalogHandler) List(c echo.Context) error {
	models, err := h.catalog.ListModels(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models)
}

func (h *CatalogHandler) Create(c echo.Context) error {
	var req modelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.catalog.CreateModel(c.Request().Context(), domain.Model{
		Name:           req.Name,
		OpenAIEndpoint: req.OpenAIEndpoint,
		APIToken:       req.APIToken,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req modelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.catalog.UpdateModel(c.Request().Context(), domain.Model{
		ID:             id,
		Name:           req.Name,
		OpenAIEndpoint: req.OpenAIEndpoint,
		APIToken:       req.APIToken,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteModel(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RunTests fires the benchmark trigger. The 202 means the run was accepted;
// completion is observed later through the results view.
func (h *CatalogHandler) RunTests(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.catalog.RunTests(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"})
}

// IssueToken resolves the caller's API credential for the model via the
// idempotent get-or-create flow and returns it with the gateway endpoint.
func (h *CatalogHandler) IssueToken(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	issued, err := h.provisioner.Issue(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issued)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
