package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
)

func scanStoredBusiness(dest ...any) error {
	id := uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	phone := sql.NullString{String: "+12125550199", Valid: true}
	website := sql.NullString{String: "https://joes.example.com", Valid: true}
	email := sql.NullString{}
	registry := []byte(`{"name":"JOES DINER LLC","status":"Active"}`)

	*dest[0].(*uuid.UUID) = id
	*dest[1].(*string) = "Joe's Diner"
	*dest[2].(*string) = "restaurant"
	*dest[3].(*string) = "12, Main Street, New York"
	*dest[4].(*sql.NullString) = phone
	*dest[5].(*sql.NullString) = website
	*dest[6].(*sql.NullString) = email
	*dest[7].(*float64) = 40.7128
	*dest[8].(*float64) = -74.0060
	*dest[9].(*int) = 85
	*dest[10].(*string) = "hot"
	*dest[11].(*[]byte) = registry
	*dest[12].(*time.Time) = time.Now()
	return nil
}

func TestPGXBusinessesRepository_UpsertValidation(t *testing.T) {
	repo := &PGXBusinessesRepository{}
	if err := repo.Upsert(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil business")
	}
}

func TestPGXBusinessesRepository_Upsert(t *testing.T) {
	var gotArgs []any
	repo := &PGXBusinessesRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			gotArgs = args
			return pgconn.NewCommandTag("INSERT 0 1"), nil
		},
	}}

	business := &entity.Business{
		Name:         "Joe's Diner",
		Category:     "restaurant",
		Address:      "Near 40.7128, -74.0060",
		Latitude:     40.7128,
		Longitude:    -74.0060,
		QualityScore: 75,
		LeadStatus:   entity.LeadStatusWarm,
	}
	if err := repo.Upsert(context.Background(), business); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotArgs) != 13 {
		t.Fatalf("expected 13 args, got %d", len(gotArgs))
	}
	if gotArgs[0].(uuid.UUID) == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if gotArgs[11].(string) != "{}" {
		t.Fatalf("expected empty registry json, got %v", gotArgs[11])
	}
	if gotArgs[12].(time.Time).IsZero() {
		t.Fatalf("expected last_updated defaulted")
	}
}

func TestPGXBusinessesRepository_BulkUpsertEmpty(t *testing.T) {
	repo := &PGXBusinessesRepository{}
	res, err := repo.BulkUpsert(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 0 {
		t.Fatalf("expected zero summary, got %+v", res)
	}
}

func TestPGXBusinessesRepository_List(t *testing.T) {
	var gotQuery string
	var gotArgs []any
	repo := &PGXBusinessesRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			gotQuery = query
			gotArgs = args
			return &stubRows{scans: []func(dest ...any) error{scanStoredBusiness}}, nil
		},
	}}

	rows, err := repo.List(context.Background(), dto.BusinessFilter{Category: "restaurant", MinScore: 60, Status: "hot", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 business, got %d", len(rows))
	}

	b := rows[0]
	if b.Name != "Joe's Diner" || b.QualityScore != 85 || b.LeadStatus != entity.LeadStatusHot {
		t.Fatalf("unexpected business: %+v", b)
	}
	if b.Phone == nil || *b.Phone != "+12125550199" {
		t.Fatalf("expected phone scanned, got %v", b.Phone)
	}
	if b.Email != nil {
		t.Fatalf("expected nil email, got %v", *b.Email)
	}
	if b.Registry == nil || b.Registry.Status != "Active" {
		t.Fatalf("expected registry snapshot decoded, got %+v", b.Registry)
	}

	if len(gotArgs) != 4 {
		t.Fatalf("expected 4 args, got %d: %v", len(gotArgs), gotArgs)
	}
	for _, fragment := range []string{"quality_score >= $1", "LOWER(category) = LOWER($2)", "lead_status = $3", "LIMIT $4", "ORDER BY quality_score DESC"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Fatalf("expected query to contain %q, got: %s", fragment, gotQuery)
		}
	}
}

func TestPGXBusinessesRepository_FindByID_NotFound(t *testing.T) {
	repo := &PGXBusinessesRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}

	if _, err := repo.FindByID(context.Background(), uuid.New()); !errors.Is(err, ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestPGXBusinessesRepository_DeleteStale(t *testing.T) {
	var gotArgs []any
	repo := &PGXBusinessesRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			gotArgs = args
			return pgconn.NewCommandTag("DELETE 3"), nil
		},
	}}

	cutoff := time.Now()
	deleted, err := repo.DeleteStale(context.Background(), "restaurant", cutoff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}
	if gotArgs[0].(string) != "restaurant" || !gotArgs[1].(time.Time).Equal(cutoff) {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
}
