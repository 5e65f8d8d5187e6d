package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/leadscout/leadgen-api/internal/entity"
	"github.com/leadscout/leadgen-api/internal/repository"
	"github.com/leadscout/leadgen-api/internal/service/scoring"
)

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// ImportService ingests externally sourced leads from CSV files. Imported
// rows go through the same scorer as searched leads so both populations are
// comparable.
type ImportService struct {
	repo    repository.BusinessesRepository
	profile scoring.Profile
}

// NewImportService creates a new instance of ImportService.
func NewImportService(repo repository.BusinessesRepository, profile scoring.Profile) *ImportService {
	return &ImportService{repo: repo, profile: profile}
}

var requiredCSVHeaders = []string{"name", "address", "category", "phone", "website", "email", "lat", "lon"}

// ImportLeadsCSV parses, scores and upserts leads from a CSV reader.
func (s *ImportService) ImportLeadsCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []entity.Business
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		name := strings.TrimSpace(row[indexMap["name"]])
		address := strings.TrimSpace(row[indexMap["address"]])
		if name == "" || address == "" {
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(row[indexMap["lat"]]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(row[indexMap["lon"]]), 64)
		if latErr != nil || lonErr != nil {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid coordinate on row %d", rowNum)}
		}

		category := strings.TrimSpace(row[indexMap["category"]])
		phone := SanitizePhone(row[indexMap["phone"]])
		website := normalizeWebsite(row[indexMap["website"]])
		email := normalizeEmail(row[indexMap["email"]])

		score := s.profile.Score(scoring.Signals{
			Phone:    phone,
			Website:  website,
			Email:    email,
			Address:  address,
			Category: category,
		})

		business := entity.Business{
			Name:         name,
			Category:     category,
			Address:      address,
			Latitude:     lat,
			Longitude:    lon,
			QualityScore: score,
			LeadStatus:   s.profile.Classify(score),
			LastUpdated:  time.Now(),
		}
		if phone != "" {
			business.Phone = &phone
		}
		if website != "" {
			business.Website = &website
		}
		if email != "" {
			business.Email = &email
		}
		records = append(records, business)
	}

	result, err := s.repo.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}
