package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/repository"
)

var exportHeaders = []string{
	"Name", "Type", "Address", "Phone", "Website", "Email",
	"Quality Score", "Lead Status", "Latitude", "Longitude",
}

const exportRowLimit = 1000

// ExportService turns stored leads into a tabular payload the client can
// render as a CSV download.
type ExportService struct {
	repo repository.BusinessesRepository
}

// NewExportService creates a new instance of ExportService.
func NewExportService(repo repository.BusinessesRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export returns leads at or above minScore, optionally restricted to one
// category, as rows under fixed headers.
func (s *ExportService) Export(ctx context.Context, category string, minScore int) (*dto.ExportData, error) {
	businesses, err := s.repo.List(ctx, dto.BusinessFilter{
		Category: category,
		MinScore: minScore,
		Limit:    exportRowLimit,
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(businesses))
	for _, b := range businesses {
		rows = append(rows, []string{
			b.Name,
			b.Category,
			b.Address,
			derefOrEmpty(b.Phone),
			derefOrEmpty(b.Website),
			derefOrEmpty(b.Email),
			strconv.Itoa(b.QualityScore),
			string(b.LeadStatus),
			strconv.FormatFloat(b.Latitude, 'f', -1, 64),
			strconv.FormatFloat(b.Longitude, 'f', -1, 64),
		})
	}

	scope := category
	if scope == "" {
		scope = "all"
	}

	return &dto.ExportData{
		Headers:  exportHeaders,
		Rows:     rows,
		Total:    len(rows),
		Filename: fmt.Sprintf("leads_%s_%s.csv", scope, time.Now().Format("20060102_150405")),
	}, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
