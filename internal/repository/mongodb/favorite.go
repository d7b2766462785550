package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

type favoriteLocationDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	Label     string    `bson:"label"`
	Address   string    `bson:"address"`
	Latitude  float64   `bson:"latitude"`
	Longitude float64   `bson:"longitude"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d favoriteLocationDoc) toDomain() *domain.FavoriteLocation {
	return &domain.FavoriteLocation{
		ID:        d.ID,
		UserID:    d.UserID,
		Label:     d.Label,
		Address:   d.Address,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		CreatedAt: utc(d.CreatedAt),
	}
}

// FavoriteLocationRepository implements repository.FavoriteLocationRepository using MongoDB.
type FavoriteLocationRepository struct {
	coll *mongo.Collection
}

// NewFavoriteLocationRepository creates a new FavoriteLocationRepository.
func NewFavoriteLocationRepository(db *mongo.Database) *FavoriteLocationRepository {
	return &FavoriteLocationRepository{coll: db.Collection(favoriteLocationsCollection)}
}

// Create adds a new favorite location.
func (r *FavoriteLocationRepository) Create(ctx context.Context, l *domain.FavoriteLocation) error {
	_, err := r.coll.InsertOne(ctx, favoriteLocationDoc{
		ID:        l.ID,
		UserID:    l.UserID,
		Label:     l.Label,
		Address:   l.Address,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		CreatedAt: l.CreatedAt,
	})
	return err
}

// GetByID retrieves a favorite location by ID.
func (r *FavoriteLocationRepository) GetByID(ctx context.Context, id string) (*domain.FavoriteLocation, error) {
	var doc favoriteLocationDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByUser retrieves a user's favorite locations, oldest first.
func (r *FavoriteLocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteLocation, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, byCreatedAt())
	if err != nil {
		return nil, err
	}
	var docs []favoriteLocationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.FavoriteLocation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

type savedRouteDoc struct {
	ID              string        `bson:"_id"`
	UserID          string        `bson:"userId"`
	Label           string        `bson:"label"`
	PickupLocation  locationDoc   `bson:"pickupLocation"`
	DropoffLocation locationDoc   `bson:"dropoffLocation"`
	Stops           []locationDoc `bson:"stops,omitempty"`
	CreatedAt       time.Time     `bson:"createdAt"`
}

func (d savedRouteDoc) toDomain() *domain.SavedRoute {
	return &domain.SavedRoute{
		ID:              d.ID,
		UserID:          d.UserID,
		Label:           d.Label,
		PickupLocation:  d.PickupLocation.toDomain(),
		DropoffLocation: d.DropoffLocation.toDomain(),
		Stops:           fromStopDocs(d.Stops),
		CreatedAt:       utc(d.CreatedAt),
	}
}

// SavedRouteRepository implements repository.SavedRouteRepository using MongoDB.
type SavedRouteRepository struct {
	coll *mongo.Collection
}

// NewSavedRouteRepository creates a new SavedRouteRepository.
func NewSavedRouteRepository(db *mongo.Database) *SavedRouteRepository {
	return &SavedRouteRepository{coll: db.Collection(savedRoutesCollection)}
}

// Create adds a new saved route.
func (r *SavedRouteRepository) Create(ctx context.Context, route *domain.SavedRoute) error {
	_, err := r.coll.InsertOne(ctx, savedRouteDoc{
		ID:              route.ID,
		UserID:          route.UserID,
		Label:           route.Label,
		PickupLocation:  toLocationDoc(route.PickupLocation),
		DropoffLocation: toLocationDoc(route.DropoffLocation),
		Stops:           toStopDocs(route.Stops),
		CreatedAt:       route.CreatedAt,
	})
	return err
}

// GetByID retrieves a saved route by ID.
func (r *SavedRouteRepository) GetByID(ctx context.Context, id string) (*domain.SavedRoute, error) {
	var doc savedRouteDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByUser retrieves a user's saved routes, oldest first.
func (r *SavedRouteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedRoute, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, byCreatedAt())
	if err != nil {
		return nil, err
	}
	var docs []savedRouteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.SavedRoute, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

type favoriteDriverDoc struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	DriverID  string    `bson:"driverId"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"createdAt"`
}

// FavoriteDriverRepository implements repository.FavoriteDriverRepository using MongoDB.
// Documents live in one collection keyed by userId.
type FavoriteDriverRepository struct {
	coll *mongo.Collection
}

// NewFavoriteDriverRepository creates a new FavoriteDriverRepository.
func NewFavoriteDriverRepository(db *mongo.Database) *FavoriteDriverRepository {
	return &FavoriteDriverRepository{coll: db.Collection(favoriteDriversCollection)}
}

// Create adds a driver to a user's favorites.
func (r *FavoriteDriverRepository) Create(ctx context.Context, f *domain.FavoriteDriver) error {
	_, err := r.coll.InsertOne(ctx, favoriteDriverDoc{
		ID:        f.ID,
		UserID:    f.UserID,
		DriverID:  f.DriverID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt,
	})
	return err
}

// ListByUser retrieves a user's favorite drivers, oldest first.
func (r *FavoriteDriverRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteDriver, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, byCreatedAt())
	if err != nil {
		return nil, err
	}
	var docs []favoriteDriverDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.FavoriteDriver, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.FavoriteDriver{
			ID:        d.ID,
			UserID:    d.UserID,
			DriverID:  d.DriverID,
			Name:      d.Name,
			CreatedAt: utc(d.CreatedAt),
		})
	}
	return out, nil
}
