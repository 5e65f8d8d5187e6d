package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leadscout/leadgen-api/internal/entity"
)

// ErrFavoriteNotFound indicates no favorite matches the lookup.
var ErrFavoriteNotFound = errors.New("favorite not found")

// FavoritesRepository describes persistence operations for saved leads.
type FavoritesRepository interface {
	Create(ctx context.Context, businessID uuid.UUID, userID string) (*entity.Favorite, error)
	FindByBusinessAndUser(ctx context.Context, businessID uuid.UUID, userID string) (*entity.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGXFavoritesRepository implements FavoritesRepository using pgx.
type PGXFavoritesRepository struct {
	pool pgxPool
}

// NewPGXFavoritesRepository wires a pgx backed repository.
func NewPGXFavoritesRepository(pool *pgxpool.Pool) *PGXFavoritesRepository {
	return &PGXFavoritesRepository{pool: pool}
}

// Create inserts a favorite row for the (business, user) pair.
func (r *PGXFavoritesRepository) Create(ctx context.Context, businessID uuid.UUID, userID string) (*entity.Favorite, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO favorites (business_id, user_id)
        VALUES ($1, $2)
        RETURNING id, business_id, user_id, created_at
    `, businessID, userID)

	var favorite entity.Favorite
	if err := row.Scan(&favorite.ID, &favorite.BusinessID, &favorite.UserID, &favorite.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert favorite: %w", err)
	}
	return &favorite, nil
}

// FindByBusinessAndUser returns the existing favorite for the pair if any.
func (r *PGXFavoritesRepository) FindByBusinessAndUser(ctx context.Context, businessID uuid.UUID, userID string) (*entity.Favorite, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, business_id, user_id, created_at
        FROM favorites
        WHERE business_id = $1 AND user_id = $2
    `, businessID, userID)

	var favorite entity.Favorite
	if err := row.Scan(&favorite.ID, &favorite.BusinessID, &favorite.UserID, &favorite.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("query favorite: %w", err)
	}
	return &favorite, nil
}

// ListByUser returns the user's favorites, newest first.
func (r *PGXFavoritesRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, business_id, user_id, created_at
        FROM favorites
        WHERE user_id = $1
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []entity.Favorite
	for rows.Next() {
		var favorite entity.Favorite
		if err := rows.Scan(&favorite.ID, &favorite.BusinessID, &favorite.UserID, &favorite.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return favorites, nil
}

// Delete removes a favorite by id. A missing row is reported distinctly from
// a successful delete.
func (r *PGXFavoritesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
