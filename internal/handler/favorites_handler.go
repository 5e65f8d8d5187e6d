package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/repository"
	"github.com/leadscout/leadgen-api/internal/service"
)

// FavoritesHandler exposes saved-lead endpoints.
type FavoritesHandler struct {
	favoritesService *service.FavoritesService
}

// NewFavoritesHandler constructs a FavoritesHandler.
func NewFavoritesHandler(favoritesService *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// Add handles POST /favorites requests.
func (h *FavoritesHandler) Add(c echo.Context) error {
	var req dto.AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	businessID, err := uuid.Parse(req.BusinessID)
	if err != nil {
		return Error(c, http.StatusBadRequest, "business_id must be a valid uuid")
	}

	favorite, created, err := h.favoritesService.Add(c.Request().Context(), businessID, req.UserID)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to add favorite")
	}

	message := "Added to favorites"
	if !created {
		message = "Already in favorites"
	}
	return c.JSON(http.StatusOK, dto.AddFavoriteResponse{Message: message, ID: favorite.ID})
}

// List handles GET /favorites requests.
func (h *FavoritesHandler) List(c echo.Context) error {
	favorites, err := h.favoritesService.List(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "unable to list favorites")
	}
	if favorites == nil {
		favorites = []dto.FavoriteBusiness{}
	}

	return c.JSON(http.StatusOK, dto.FavoritesResponse{Favorites: favorites, Total: len(favorites)})
}

// Remove handles DELETE /favorites/:id requests.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "favorite id must be a valid uuid")
	}

	if err := h.favoritesService.Remove(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return Error(c, http.StatusNotFound, "favorite not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to remove favorite")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Removed from favorites"})
}
