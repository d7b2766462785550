package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

// FavoriteLocationRepository implements repository.FavoriteLocationRepository using PostgreSQL.
type FavoriteLocationRepository struct {
	db *sql.DB
}

// NewFavoriteLocationRepository creates a new FavoriteLocationRepository.
func NewFavoriteLocationRepository(db *sql.DB) *FavoriteLocationRepository {
	return &FavoriteLocationRepository{db: db}
}

// Create adds a new favorite location.
func (r *FavoriteLocationRepository) Create(ctx context.Context, l *domain.FavoriteLocation) error {
	query := `
		INSERT INTO favorite_locations (id, user_id, label, address, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, l.ID, l.UserID, l.Label, l.Address, l.Latitude, l.Longitude, l.CreatedAt)
	return err
}

// GetByID retrieves a favorite location by ID.
func (r *FavoriteLocationRepository) GetByID(ctx context.Context, id string) (*domain.FavoriteLocation, error) {
	query := `SELECT id, user_id, label, address, latitude, longitude, created_at FROM favorite_locations WHERE id = $1`

	var l domain.FavoriteLocation
	err := r.db.QueryRowContext(ctx, query, id).Scan(&l.ID, &l.UserID, &l.Label, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListByUser retrieves a user's favorite locations, oldest first.
func (r *FavoriteLocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteLocation, error) {
	query := `
		SELECT id, user_id, label, address, latitude, longitude, created_at
		FROM favorite_locations WHERE user_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*domain.FavoriteLocation
	for rows.Next() {
		var l domain.FavoriteLocation
		if err := rows.Scan(&l.ID, &l.UserID, &l.Label, &l.Address, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, &l)
	}
	return locations, rows.Err()
}
