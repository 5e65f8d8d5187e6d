package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/repository"
)

// DefaultUserID is assumed when a request carries no user identifier.
const DefaultUserID = "default_user"

// FavoritesService manages a user's saved leads.
type FavoritesService struct {
	favorites  repository.FavoritesRepository
	businesses repository.BusinessesRepository
}

// NewFavoritesService creates a new instance of FavoritesService.
func NewFavoritesService(favorites repository.FavoritesRepository, businesses repository.BusinessesRepository) *FavoritesService {
	return &FavoritesService{favorites: favorites, businesses: businesses}
}

// Add saves a business for the user. Adding the same pair twice returns the
// existing favorite with created=false instead of a duplicate.
func (s *FavoritesService) Add(ctx context.Context, businessID uuid.UUID, userID string) (*entity.Favorite, bool, error) {
	if userID == "" {
		userID = DefaultUserID
	}

	existing, err := s.favorites.FindByBusinessAndUser(ctx, businessID, userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrFavoriteNotFound) {
		return nil, false, err
	}

	favorite, err := s.favorites.Create(ctx, businessID, userID)
	if err != nil {
		return nil, false, err
	}
	return favorite, true, nil
}

// List returns the user's favorites joined with their business records.
// Favorites whose business was removed by a staleness sweep are skipped.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]dto.FavoriteBusiness, error) {
	if userID == "" {
		userID = DefaultUserID
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	joined := make([]dto.FavoriteBusiness, 0, len(favorites))
	for _, favorite := range favorites {
		business, err := s.businesses.FindByID(ctx, favorite.BusinessID)
		if err != nil {
			if errors.Is(err, repository.ErrBusinessNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve favorite %s: %w", favorite.ID, err)
		}
		joined = append(joined, dto.FavoriteBusiness{Business: *business, FavoriteID: favorite.ID})
	}
	return joined, nil
}

// Remove deletes a favorite by id. A missing favorite surfaces as
// repository.ErrFavoriteNotFound.
func (s *FavoritesService) Remove(ctx context.Context, id uuid.UUID) error {
	return s.favorites.Delete(ctx, id)
}
