package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/llmbench/console/internal/core/domain"
	"github.com/llmbench/console/internal/core/ports"
)

// DashboardHandler serves the default landing view: benchmark scores per
// model and difficulty bucket.
type DashboardHandler struct {
	results ports.ResultAPI
	catalog ports.CatalogAPI
}

func NewDashboardHandler(results ports.ResultAPI, catalog ports.CatalogAPI) *DashboardHandler {
	return &DashboardHandler{results: results, catalog: catalog}
}

type dashboardResponse struct {
	Models  []domain.Model  `json:"models"`
	Results []domain.Result `json:"results"`
}

func (h *DashboardHandler) View(c echo.Context) error {
	ctx := c.Request().Context()

	models, err := h.catalog.ListModels(ctx)
	if err != nil {
		return err
	}
	results, err := h.results.ListResults(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{Models: models, Results: results})
}
