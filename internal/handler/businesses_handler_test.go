package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/repository"
	"github.com/leadscout/leadgen-api/internal/service"
)

type stubLeadsRepo struct {
	list        func(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	bulkUpsert  func(ctx context.Context, businesses []entity.Business) (repository.BulkUpsertResult, error)
	upsert      func(ctx context.Context, business *entity.Business) error
	deleteStale func(ctx context.Context, category string, before time.Time) (int64, error)
}

func (s *stubLeadsRepo) Upsert(ctx context.Context, business *entity.Business) error {
	if s.upsert != nil {
		return s.upsert(ctx, business)
	}
	return errors.New("not implemented")
}

func (s *stubLeadsRepo) BulkUpsert(ctx context.Context, businesses []entity.Business) (repository.BulkUpsertResult, error) {
	if s.bulkUpsert != nil {
		return s.bulkUpsert(ctx, businesses)
	}
	return repository.BulkUpsertResult{}, errors.New("not implemented")
}

func (s *stubLeadsRepo) List(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeadsRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (s *stubLeadsRepo) DeleteStale(ctx context.Context, category string, before time.Time) (int64, error) {
	if s.deleteStale != nil {
		return s.deleteStale(ctx, category, before)
	}
	return 0, errors.New("not implemented")
}

func TestBusinessesHandler_List(t *testing.T) {
	e := echo.New()

	t.Run("invalid min_score", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/businesses?min_score=abc", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewBusinessesHandler(service.NewBusinessesService(&stubLeadsRepo{}))
		_ = h.List(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		var gotFilter dto.BusinessFilter
		repo := &stubLeadsRepo{
			list: func(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error) {
				gotFilter = filter
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/businesses", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewBusinessesHandler(service.NewBusinessesService(repo))
		if err := h.List(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.MinScore != 60 || gotFilter.Limit != 100 {
			t.Fatalf("expected defaults 60/100, got %+v", gotFilter)
		}

		var body dto.BusinessListResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Total != 0 || body.Businesses == nil {
			t.Fatalf("expected empty list, got %+v", body)
		}
	})

	t.Run("filters forwarded", func(t *testing.T) {
		var gotFilter dto.BusinessFilter
		repo := &stubLeadsRepo{
			list: func(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error) {
				gotFilter = filter
				return []entity.Business{{Name: "Joe's Diner", QualityScore: 85, LeadStatus: entity.LeadStatusHot}}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/businesses?category=restaurant&min_score=80&status=hot&limit=10", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := NewBusinessesHandler(service.NewBusinessesService(repo))
		_ = h.List(c)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotFilter.Category != "restaurant" || gotFilter.MinScore != 80 || gotFilter.Status != "hot" || gotFilter.Limit != 10 {
			t.Fatalf("unexpected filter: %+v", gotFilter)
		}

		var body dto.BusinessListResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Total != 1 || body.Businesses[0].Name != "Joe's Diner" {
			t.Fatalf("unexpected body: %+v", body)
		}
	})
}
