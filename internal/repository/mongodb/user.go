package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

type userDoc struct {
	ID                  string    `bson:"_id"`
	Name                string    `bson:"name"`
	Email               string    `bson:"email,omitempty"`
	Phone               string    `bson:"phone,omitempty"`
	Role                string    `bson:"role"`
	AvatarURL           string    `bson:"avatarUrl,omitempty"`
	VehicleMakeModel    string    `bson:"vehicleMakeModel,omitempty"`
	VehicleRegistration string    `bson:"vehicleRegistration,omitempty"`
	CustomID            string    `bson:"customId,omitempty"`
	DriverIdentifier    string    `bson:"driverIdentifier,omitempty"`
	CreatedAt           time.Time `bson:"createdAt"`
}

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.coll.InsertOne(ctx, userDoc{
		ID:                  u.ID,
		Name:                u.Name,
		Email:               u.Email,
		Phone:               u.Phone,
		Role:                string(u.Role),
		AvatarURL:           u.AvatarURL,
		VehicleMakeModel:    u.VehicleMakeModel,
		VehicleRegistration: u.VehicleRegistration,
		CustomID:            u.CustomID,
		DriverIdentifier:    u.DriverIdentifier,
		CreatedAt:           u.CreatedAt,
	})
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{
		ID:                  d.ID,
		Name:                d.Name,
		Email:               d.Email,
		Phone:               d.Phone,
		Role:                domain.UserRole(d.Role),
		AvatarURL:           d.AvatarURL,
		VehicleMakeModel:    d.VehicleMakeModel,
		VehicleRegistration: d.VehicleRegistration,
		CustomID:            d.CustomID,
		DriverIdentifier:    d.DriverIdentifier,
		CreatedAt:           utc(d.CreatedAt),
	}, nil
}

type counterDoc struct {
	Name      string `bson:"_id"`
	CurrentID int64  `bson:"currentId"`
}

// CounterRepository implements repository.CounterRepository using MongoDB.
type CounterRepository struct {
	coll *mongo.Collection
}

// NewCounterRepository creates a new CounterRepository.
func NewCounterRepository(db *mongo.Database) *CounterRepository {
	return &CounterRepository{coll: db.Collection(countersCollection)}
}

// Next increments the named counter with an upserting $inc and returns the new value.
func (r *CounterRepository) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"currentId": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.CurrentID, nil
}
