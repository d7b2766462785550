package postgres

import (
	"context"
	"database/sql"

	"ridebook/internal/domain"
)

// FavoriteDriverRepository implements repository.FavoriteDriverRepository using PostgreSQL.
type FavoriteDriverRepository struct {
	db *sql.DB
}

// NewFavoriteDriverRepository creates a new FavoriteDriverRepository.
func NewFavoriteDriverRepository(db *sql.DB) *FavoriteDriverRepository {
	return &FavoriteDriverRepository{db: db}
}

// Create adds a driver to a user's favorites.
func (r *FavoriteDriverRepository) Create(ctx context.Context, f *domain.FavoriteDriver) error {
	query := `INSERT INTO favorite_drivers (id, user_id, driver_id, name, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, f.ID, f.UserID, f.DriverID, f.Name, f.CreatedAt)
	return err
}

// ListByUser retrieves a user's favorite drivers, oldest first.
func (r *FavoriteDriverRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteDriver, error) {
	query := `SELECT id, user_id, driver_id, name, created_at FROM favorite_drivers WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*domain.FavoriteDriver
	for rows.Next() {
		var f domain.FavoriteDriver
		if err := rows.Scan(&f.ID, &f.UserID, &f.DriverID, &f.Name, &f.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}
