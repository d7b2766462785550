package app

import (
	"database/sql"

	"go.mongodb.org/mongo-driver/mongo"

	"ridebook/internal/repository"
	"ridebook/internal/repository/mongodb"
	"ridebook/internal/repository/postgres"
)

// Repositories bundles every store the services depend on.
type Repositories struct {
	Bookings          repository.BookingRepository
	FavoriteLocations repository.FavoriteLocationRepository
	SavedRoutes       repository.SavedRouteRepository
	FavoriteDrivers   repository.FavoriteDriverRepository
	Users             repository.UserRepository
	Counters          repository.CounterRepository
}

// NewPostgresRepositories builds the PostgreSQL-backed repositories.
func NewPostgresRepositories(db *sql.DB) Repositories {
	return Repositories{
		Bookings:          postgres.NewBookingRepository(db),
		FavoriteLocations: postgres.NewFavoriteLocationRepository(db),
		SavedRoutes:       postgres.NewSavedRouteRepository(db),
		FavoriteDrivers:   postgres.NewFavoriteDriverRepository(db),
		Users:             postgres.NewUserRepository(db),
		Counters:          postgres.NewCounterRepository(db),
	}
}

// NewMongoRepositories builds the MongoDB-backed repositories.
func NewMongoRepositories(db *mongo.Database) Repositories {
	return Repositories{
		Bookings:          mongodb.NewBookingRepository(db),
		FavoriteLocations: mongodb.NewFavoriteLocationRepository(db),
		SavedRoutes:       mongodb.NewSavedRouteRepository(db),
		FavoriteDrivers:   mongodb.NewFavoriteDriverRepository(db),
		Users:             mongodb.NewUserRepository(db),
		Counters:          mongodb.NewCounterRepository(db),
	}
}
