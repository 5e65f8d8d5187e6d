package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/service"
)

// BusinessesHandler serves stored leads.
type BusinessesHandler struct {
	businessesService *service.BusinessesService
}

// NewBusinessesHandler constructs a BusinessesHandler.
func NewBusinessesHandler(businessesService *service.BusinessesService) *BusinessesHandler {
	return &BusinessesHandler{businessesService: businessesService}
}

// List handles GET /businesses requests.
func (h *BusinessesHandler) List(c echo.Context) error {
	filter := dto.BusinessFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		MinScore: 60,
		Limit:    100,
	}

	if raw := c.QueryParam("min_score"); raw != "" {
		minScore, err := strconv.Atoi(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "min_score must be an integer")
		}
		filter.MinScore = minScore
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return Error(c, http.StatusBadRequest, "limit must be an integer")
		}
		filter.Limit = limit
	}

	businesses, err := h.businessesService.ListBusinesses(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list businesses")
	}
	if businesses == nil {
		businesses = []entity.Business{}
	}

	return c.JSON(http.StatusOK, dto.BusinessListResponse{Businesses: businesses, Total: len(businesses)})
}
