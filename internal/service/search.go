package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/nominatim"
	"github.com/leadscout/leadgen-api/internal/opencorporates"
	"github.com/leadscout/leadgen-api/internal/overpass"
	"github.com/leadscout/leadgen-api/internal/repository"
	"github.com/leadscout/leadgen-api/internal/service/scoring"
	"github.com/leadscout/leadgen-api/internal/service/tagmap"
)

var (
	ErrLocationRequired    = errors.New("location or explicit coordinates are required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrLocationNotResolved = errors.New("location could not be resolved")
)

const (
	defaultRadiusKM = 5.0

	// Raw map elements are capped before normalization so one dense urban
	// query cannot fan out into hundreds of enrichment calls.
	maxCandidates = 50

	// Final response cap after filtering and sorting.
	maxResults = 50

	// Bound on concurrent registry lookups per search.
	enrichmentWorkers = 4
)

// SearchService runs the lead pipeline: resolve the location, fetch nearby
// candidates, normalize, enrich and score each, then persist the survivors.
type SearchService struct {
	geocoder   nominatim.Geocoder
	fetcher    overpass.Fetcher
	registry   opencorporates.Lookup
	businesses repository.BusinessesRepository
	profile    scoring.Profile
}

// NewSearchService wires the pipeline dependencies.
func NewSearchService(
	geocoder nominatim.Geocoder,
	fetcher overpass.Fetcher,
	registry opencorporates.Lookup,
	businesses repository.BusinessesRepository,
	profile scoring.Profile,
) *SearchService {
	return &SearchService{
		geocoder:   geocoder,
		fetcher:    fetcher,
		registry:   registry,
		businesses: businesses,
		profile:    profile,
	}
}

// Search executes one full pipeline run. Upstream map and registry failures
// degrade to fewer results; only an unresolvable location or a storage
// failure is reported as an error.
func (s *SearchService) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	if req.Category == "" {
		return nil, ErrCategoryRequired
	}
	if req.Location == "" && (req.Lat == nil || req.Lon == nil) {
		return nil, ErrLocationRequired
	}

	searchStart := time.Now()

	coord, err := s.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}

	radius := req.Radius
	if radius <= 0 {
		radius = defaultRadiusKM
	}

	tag := tagmap.Resolve(req.Category)
	elements, err := s.fetcher.FetchNearby(ctx, coord.Lat, coord.Lon, radius, tag)
	if err != nil {
		log.Printf("event=candidate_fetch_failed category=%s err=%v", req.Category, err)
		elements = nil
	}
	if len(elements) > maxCandidates {
		elements = elements[:maxCandidates]
	}

	var candidates []Candidate
	for _, el := range elements {
		if candidate, ok := NormalizeElement(el, req.Category); ok {
			candidates = append(candidates, candidate)
		}
	}

	snapshots := s.enrich(ctx, candidates)

	records := make([]entity.Business, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for i, candidate := range candidates {
		if seen[candidate.Name] {
			continue
		}
		seen[candidate.Name] = true

		score := s.profile.Score(scoring.Signals{
			Phone:    candidate.Phone,
			Website:  candidate.Website,
			Email:    candidate.Email,
			Address:  candidate.Address,
			Category: tag,
			Registry: snapshots[i],
		})
		if score < s.profile.ColdThreshold {
			continue
		}

		records = append(records, buildBusiness(candidate, snapshots[i], score, s.profile))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].QualityScore > records[j].QualityScore
	})
	if len(records) > maxResults {
		records = records[:maxResults]
	}

	for i := range records {
		if err := s.businesses.Upsert(ctx, &records[i]); err != nil {
			return nil, fmt.Errorf("persist lead %q: %w", records[i].Name, err)
		}
	}

	// Only sweep when this search produced fresh leads. An upstream outage
	// yields zero records and must not wipe previously stored rows.
	if len(records) > 0 {
		if deleted, err := s.businesses.DeleteStale(ctx, req.Category, searchStart); err != nil {
			log.Printf("event=stale_sweep_failed category=%s err=%v", req.Category, err)
		} else if deleted > 0 {
			log.Printf("event=stale_leads_removed category=%s count=%d", req.Category, deleted)
		}
	}

	return &dto.SearchResponse{
		Records:          records,
		Total:            len(records),
		ResolvedLocation: coord,
		Message:          fmt.Sprintf("Found %d qualified leads", len(records)),
	}, nil
}

func (s *SearchService) resolveLocation(ctx context.Context, req dto.SearchRequest) (dto.Coordinate, error) {
	if req.Lat != nil && req.Lon != nil {
		return dto.Coordinate{Lat: *req.Lat, Lon: *req.Lon}, nil
	}

	loc, err := s.geocoder.Geocode(ctx, req.Location)
	if err != nil {
		return dto.Coordinate{}, fmt.Errorf("%w: %q", ErrLocationNotResolved, req.Location)
	}
	return dto.Coordinate{Lat: loc.Lat, Lon: loc.Lon}, nil
}

// enrich looks up every candidate in the company registry with a bounded
// worker pool. Results land at the candidate's index so downstream steps
// see a deterministic order. Lookup failures leave an empty snapshot.
func (s *SearchService) enrich(ctx context.Context, candidates []Candidate) []entity.RegistryInfo {
	snapshots := make([]entity.RegistryInfo, len(candidates))
	if len(candidates) == 0 {
		return snapshots
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentWorkers)
	for i := range candidates {
		g.Go(func() error {
			info, err := s.registry.LookupCompany(gctx, candidates[i].Name)
			if err != nil {
				log.Printf("event=registry_lookup_failed name=%q err=%v", candidates[i].Name, err)
				return nil
			}
			snapshots[i] = info
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures degrade to empty snapshots
	return snapshots
}

func buildBusiness(candidate Candidate, snapshot entity.RegistryInfo, score int, profile scoring.Profile) entity.Business {
	business := entity.Business{
		Name:         candidate.Name,
		Category:     candidate.Category,
		Address:      candidate.Address,
		Latitude:     candidate.Lat,
		Longitude:    candidate.Lon,
		QualityScore: score,
		LeadStatus:   profile.Classify(score),
		LastUpdated:  time.Now(),
	}
	if candidate.Phone != "" {
		business.Phone = &candidate.Phone
	}
	if candidate.Website != "" {
		business.Website = &candidate.Website
	}
	if candidate.Email != "" {
		business.Email = &candidate.Email
	}
	if !snapshot.Empty() {
		info := snapshot
		business.Registry = &info
	}
	return business
}
