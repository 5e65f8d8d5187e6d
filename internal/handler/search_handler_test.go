package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/nominatim"
	"github.com/leadscout/leadgen-api/internal/overpass"
	"github.com/leadscout/leadgen-api/internal/service"
	"github.com/leadscout/leadgen-api/internal/service/scoring"
)

type stubGeocoder struct {
	loc nominatim.Location
	err error
}

func (s *stubGeocoder) Geocode(ctx context.Context, location string) (nominatim.Location, error) {
	return s.loc, s.err
}

type stubFetcher struct {
	elements []overpass.Element
}

func (s *stubFetcher) FetchNearby(ctx context.Context, lat, lon, radiusKM float64, tag string) ([]overpass.Element, error) {
	return s.elements, nil
}

type stubRegistry struct{}

func (stubRegistry) LookupCompany(ctx context.Context, name string) (entity.RegistryInfo, error) {
	return entity.RegistryInfo{}, nil
}

func newSearchHandler(geocoder *stubGeocoder, fetcher *stubFetcher, leads *stubLeadsRepo) *SearchHandler {
	svc := service.NewSearchService(geocoder, fetcher, stubRegistry{}, leads, scoring.DefaultProfile())
	return NewSearchHandler(svc)
}

func postSearch(e *echo.Echo, payload string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodPost, "/search", bytes.NewBufferString(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestSearchHandler_Search(t *testing.T) {
	e := echo.New()

	t.Run("invalid payload", func(t *testing.T) {
		rec, c := postSearch(e, "{")
		h := newSearchHandler(&stubGeocoder{}, &stubFetcher{}, &stubLeadsRepo{})
		_ = h.Search(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		rec, c := postSearch(e, `{"location":"New York"}`)
		h := newSearchHandler(&stubGeocoder{}, &stubFetcher{}, &stubLeadsRepo{})
		_ = h.Search(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("unresolvable location", func(t *testing.T) {
		rec, c := postSearch(e, `{"category":"restaurant","location":"Nowhereville"}`)
		h := newSearchHandler(&stubGeocoder{err: nominatim.ErrNoMatch}, &stubFetcher{}, &stubLeadsRepo{})
		_ = h.Search(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		var body APIResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Message != "could not geocode location" {
			t.Fatalf("unexpected message: %q", body.Message)
		}
	})

	t.Run("success", func(t *testing.T) {
		fetcher := &stubFetcher{elements: []overpass.Element{{
			Type: "node", ID: 1, Lat: 40.7128, Lon: -74.0060,
			Tags: map[string]string{"name": "Joe's Diner", "phone": "(212) 555-0199"},
		}}}
		leads := &stubLeadsRepo{
			upsert:      func(ctx context.Context, business *entity.Business) error { return nil },
			deleteStale: func(ctx context.Context, category string, before time.Time) (int64, error) { return 0, nil },
		}

		rec, c := postSearch(e, `{"category":"restaurant","location":"New York"}`)
		h := newSearchHandler(&stubGeocoder{loc: nominatim.Location{Lat: 40.7128, Lon: -74.0060}}, fetcher, leads)
		if err := h.Search(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var body dto.SearchResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body.Total != 1 || body.Records[0].Name != "Joe's Diner" {
			t.Fatalf("unexpected body: %+v", body)
		}
		if body.ResolvedLocation.Lat != 40.7128 {
			t.Fatalf("unexpected resolved location: %+v", body.ResolvedLocation)
		}
	})
}
