package service

import (
	"context"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/repository"
)

// BusinessesService exposes read operations over stored leads.
type BusinessesService struct {
	repo repository.BusinessesRepository
}

// NewBusinessesService creates a new instance of BusinessesService.
func NewBusinessesService(repo repository.BusinessesRepository) *BusinessesService {
	return &BusinessesService{repo: repo}
}

// ListBusinesses returns stored leads respecting filter defaults.
func (s *BusinessesService) ListBusinesses(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	return s.repo.List(ctx, filter)
}
