package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/service"
)

// CategoriesHandler serves the curated search categories.
type CategoriesHandler struct{}

// NewCategoriesHandler constructs a CategoriesHandler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// List handles GET /categories requests.
func (h *CategoriesHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]dto.Category{"categories": service.Categories()})
}
