package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/service"
)

// SearchHandler exposes the lead search pipeline.
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles POST /search requests.
func (h *SearchHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Location = strings.TrimSpace(req.Location)

	resp, err := h.searchService.Search(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryRequired), errors.Is(err, service.ErrLocationRequired):
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrLocationNotResolved):
			return Error(c, http.StatusBadRequest, "could not geocode location")
		default:
			return Error(c, http.StatusInternalServerError, "search failed")
		}
	}

	return c.JSON(http.StatusOK, resp)
}
