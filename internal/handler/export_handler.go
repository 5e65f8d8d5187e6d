package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/service"
)

// ExportHandler serves the tabular lead export.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /export requests.
func (h *ExportHandler) Export(c echo.Context) error {
	minScore := 60
	if raw := c.QueryParam("min_score"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "min_score must be an integer")
		}
		minScore = parsed
	}

	data, err := h.exportService.Export(c.Request().Context(), c.QueryParam("category"), minScore)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to export leads")
	}

	return c.JSON(http.StatusOK, data)
}
