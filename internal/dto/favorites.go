package dto

import (
	"github.com/google/uuid"

	"github.com/leadscout/leadgen-api/internal/entity"
)

// AddFavoriteRequest is the payload for POST /favorites.
type AddFavoriteRequest struct {
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id,omitempty"`
}

// FavoriteBusiness is a stored business joined with its favorite entry.
type FavoriteBusiness struct {
	entity.Business
	FavoriteID uuid.UUID `json:"favorite_id"`
}

// AddFavoriteResponse is the body of POST /favorites.
type AddFavoriteResponse struct {
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}

// FavoritesResponse is the body of GET /favorites.
type FavoritesResponse struct {
	Favorites []FavoriteBusiness `json:"favorites"`
	Total     int                `json:"total"`
}
