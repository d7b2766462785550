package repository

import (
	"context"

	"ridebook/internal/domain"
)

// FavoriteLocationRepository defines the persistence operations for favorite locations.
type FavoriteLocationRepository interface {
	Create(ctx context.Context, location *domain.FavoriteLocation) error
	GetByID(ctx context.Context, id string) (*domain.FavoriteLocation, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteLocation, error)
}

// SavedRouteRepository defines the persistence operations for saved routes.
type SavedRouteRepository interface {
	Create(ctx context.Context, route *domain.SavedRoute) error
	GetByID(ctx context.Context, id string) (*domain.SavedRoute, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.SavedRoute, error)
}

// FavoriteDriverRepository defines the persistence operations for a user's favorite drivers.
type FavoriteDriverRepository interface {
	Create(ctx context.Context, favorite *domain.FavoriteDriver) error
	ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteDriver, error)
}
