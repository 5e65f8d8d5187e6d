package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadscout/leadgen-api/internal/dto"
	"github.com/leadscout/leadgen-api/internal/entity"
)

// ErrBusinessNotFound indicates no stored business matches the lookup.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessesRepository describes persistence operations for scored leads.
type BusinessesRepository interface {
	Upsert(ctx context.Context, business *entity.Business) error
	BulkUpsert(ctx context.Context, businesses []entity.Business) (BulkUpsertResult, error)
	List(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	DeleteStale(ctx context.Context, category string, before time.Time) (int64, error)
}

// BulkUpsertResult summarises the number of rows inserted or updated.
type BulkUpsertResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXBusinessesRepository implements BusinessesRepository using pgx.
type PGXBusinessesRepository struct {
	pool pgxPool
}

// NewPGXBusinessesRepository wires a pgx backed repository.
func NewPGXBusinessesRepository(pool *pgxpool.Pool) *PGXBusinessesRepository {
	return &PGXBusinessesRepository{pool: pool}
}

const upsertBusinessSQL = `
        INSERT INTO businesses (
            id, name, category, address, phone, website, email,
            lat, lon, quality_score, lead_status, registry, last_updated
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12::jsonb,$13)
        ON CONFLICT (name, address) DO UPDATE SET
            category = EXCLUDED.category,
            phone = EXCLUDED.phone,
            website = EXCLUDED.website,
            email = EXCLUDED.email,
            lat = EXCLUDED.lat,
            lon = EXCLUDED.lon,
            quality_score = EXCLUDED.quality_score,
            lead_status = EXCLUDED.lead_status,
            registry = EXCLUDED.registry,
            last_updated = EXCLUDED.last_updated
        RETURNING xmax = 0;
    `

// Upsert inserts or replaces a business keyed by its (name, address)
// composite. A repeated search never creates duplicate rows.
func (r *PGXBusinessesRepository) Upsert(ctx context.Context, business *entity.Business) error {
	if business == nil {
		return fmt.Errorf("business payload is nil")
	}

	args, err := upsertArgs(business)
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, upsertBusinessSQL, args...); err != nil {
		return fmt.Errorf("upsert business %q: %w", business.Name, err)
	}
	return nil
}

// BulkUpsert persists a batch of businesses in one transaction with
// idempotent semantics, reporting how many rows were new.
func (r *PGXBusinessesRepository) BulkUpsert(ctx context.Context, businesses []entity.Business) (BulkUpsertResult, error) {
	var result BulkUpsertResult
	if len(businesses) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk upsert tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range businesses {
		args, err := upsertArgs(&businesses[i])
		if err != nil {
			return result, err
		}

		var inserted bool
		if err := tx.QueryRow(ctx, upsertBusinessSQL, args...).Scan(&inserted); err != nil {
			return result, fmt.Errorf("bulk upsert business %q: %w", businesses[i].Name, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk upsert tx: %w", err)
	}
	return result, nil
}

func upsertArgs(business *entity.Business) ([]any, error) {
	id := business.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	registryJSON := []byte("{}")
	if business.Registry != nil {
		encoded, err := json.Marshal(business.Registry)
		if err != nil {
			return nil, fmt.Errorf("marshal registry snapshot: %w", err)
		}
		registryJSON = encoded
	}

	lastUpdated := business.LastUpdated
	if lastUpdated.IsZero() {
		lastUpdated = time.Now()
	}

	return []any{
		id,
		business.Name,
		business.Category,
		business.Address,
		business.Phone,
		business.Website,
		business.Email,
		business.Latitude,
		business.Longitude,
		business.QualityScore,
		string(business.LeadStatus),
		string(registryJSON),
		lastUpdated,
	}, nil
}

const selectBusinessColumns = `
        SELECT id, name, category, address, phone, website, email,
               lat, lon, quality_score, lead_status, registry, last_updated
        FROM businesses
    `

// List retrieves businesses matching the filter, best scores first.
func (r *PGXBusinessesRepository) List(ctx context.Context, filter dto.BusinessFilter) ([]entity.Business, error) {
	query := strings.Builder{}
	query.WriteString(selectBusinessColumns)

	var (
		clauses []string
		args    []any
		idx     = 1
	)

	clauses = append(clauses, fmt.Sprintf("quality_score >= $%d", idx))
	args = append(args, filter.MinScore)
	idx++

	if filter.Category != "" {
		clauses = append(clauses, fmt.Sprintf("LOWER(category) = LOWER($%d)", idx))
		args = append(args, filter.Category)
		idx++
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("lead_status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}

	query.WriteString(" WHERE ")
	query.WriteString(strings.Join(clauses, " AND "))
	query.WriteString(" ORDER BY quality_score DESC, name ASC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query.WriteString(fmt.Sprintf(" LIMIT $%d", idx))
	args = append(args, limit)

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	return scanBusinesses(rows)
}

// FindByID fetches a single stored business.
func (r *PGXBusinessesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	row := r.pool.QueryRow(ctx, selectBusinessColumns+" WHERE id = $1", id)

	business, err := scanBusiness(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("find business by id: %w", err)
	}
	return business, nil
}

// DeleteStale removes rows of the given category whose last_updated predates
// the cutoff. The fresh rows of the search that supplies the cutoff survive
// because they are stamped after the search start.
func (r *PGXBusinessesRepository) DeleteStale(ctx context.Context, category string, before time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM businesses WHERE category = $1 AND last_updated < $2`,
		category, before,
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale businesses: %w", err)
	}
	return cmd.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBusiness(row rowScanner) (*entity.Business, error) {
	var (
		b            entity.Business
		phone        sql.NullString
		website      sql.NullString
		email        sql.NullString
		leadStatus   string
		registryJSON []byte
	)

	err := row.Scan(
		&b.ID,
		&b.Name,
		&b.Category,
		&b.Address,
		&phone,
		&website,
		&email,
		&b.Latitude,
		&b.Longitude,
		&b.QualityScore,
		&leadStatus,
		&registryJSON,
		&b.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		val := phone.String
		b.Phone = &val
	}
	if website.Valid {
		val := website.String
		b.Website = &val
	}
	if email.Valid {
		val := email.String
		b.Email = &val
	}
	b.LeadStatus = entity.LeadStatus(leadStatus)

	if len(registryJSON) > 0 {
		var registry entity.RegistryInfo
		if err := json.Unmarshal(registryJSON, &registry); err != nil {
			return nil, fmt.Errorf("unmarshal registry snapshot: %w", err)
		}
		if !registry.Empty() {
			b.Registry = &registry
		}
	}

	return &b, nil
}

func scanBusinesses(rows pgx.Rows) ([]entity.Business, error) {
	var businesses []entity.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}
		businesses = append(businesses, *business)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}
