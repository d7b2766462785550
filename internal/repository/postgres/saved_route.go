package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

// SavedRouteRepository implements repository.SavedRouteRepository using PostgreSQL.
type SavedRouteRepository struct {
	db *sql.DB
}

// NewSavedRouteRepository creates a new SavedRouteRepository.
func NewSavedRouteRepository(db *sql.DB) *SavedRouteRepository {
	return &SavedRouteRepository{db: db}
}

// Create adds a new saved route.
func (r *SavedRouteRepository) Create(ctx context.Context, route *domain.SavedRoute) error {
	pickup, err := encodeLocation(route.PickupLocation)
	if err != nil {
		return err
	}
	dropoff, err := encodeLocation(route.DropoffLocation)
	if err != nil {
		return err
	}
	stops, err := encodeStops(route.Stops)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO saved_routes (id, user_id, label, pickup_location, dropoff_location, stops, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = r.db.ExecContext(ctx, query, route.ID, route.UserID, route.Label, pickup, dropoff, stops, route.CreatedAt)
	return err
}

// GetByID retrieves a saved route by ID.
func (r *SavedRouteRepository) GetByID(ctx context.Context, id string) (*domain.SavedRoute, error) {
	query := `SELECT id, user_id, label, pickup_location, dropoff_location, stops, created_at FROM saved_routes WHERE id = $1`

	route, err := scanSavedRoute(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return route, nil
}

// ListByUser retrieves a user's saved routes, oldest first.
func (r *SavedRouteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedRoute, error) {
	query := `
		SELECT id, user_id, label, pickup_location, dropoff_location, stops, created_at
		FROM saved_routes WHERE user_id = $1 ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.SavedRoute
	for rows.Next() {
		route, err := scanSavedRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func scanSavedRoute(row rowScanner) (*domain.SavedRoute, error) {
	var (
		route                  domain.SavedRoute
		pickup, dropoff, stops []byte
	)
	if err := row.Scan(&route.ID, &route.UserID, &route.Label, &pickup, &dropoff, &stops, &route.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if route.PickupLocation, err = decodeLocation(pickup); err != nil {
		return nil, err
	}
	if route.DropoffLocation, err = decodeLocation(dropoff); err != nil {
		return nil, err
	}
	if route.Stops, err = decodeStops(stops); err != nil {
		return nil, err
	}
	return &route, nil
}
