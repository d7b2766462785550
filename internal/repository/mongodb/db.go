// Package mongodb stores documents in MongoDB collections named after the
// web client's collections (bookings, favoriteLocations, savedRoutes, ...).
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ridebook/internal/domain"
)

// Collection names.
const (
	usersCollection             = "users"
	bookingsCollection          = "bookings"
	favoriteLocationsCollection = "favoriteLocations"
	savedRoutesCollection       = "savedRoutes"
	favoriteDriversCollection   = "favoriteDrivers"
	countersCollection          = "counters"
)

// EnsureIndexes creates the secondary indexes the repositories query by.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	byUser := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}}}

	indexes := map[string][]mongo.IndexModel{
		bookingsCollection: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		favoriteLocationsCollection: {byUser},
		savedRoutesCollection:       {byUser},
		favoriteDriversCollection:   {byUser},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// locationDoc is the embedded document form of domain.LocationPoint.
type locationDoc struct {
	Address    string  `bson:"address"`
	Latitude   float64 `bson:"latitude"`
	Longitude  float64 `bson:"longitude"`
	DoorOrFlat string  `bson:"doorOrFlat,omitempty"`
}

func toLocationDoc(p domain.LocationPoint) locationDoc {
	return locationDoc{Address: p.Address, Latitude: p.Latitude, Longitude: p.Longitude, DoorOrFlat: p.DoorOrFlat}
}

func (d locationDoc) toDomain() domain.LocationPoint {
	return domain.LocationPoint{Address: d.Address, Latitude: d.Latitude, Longitude: d.Longitude, DoorOrFlat: d.DoorOrFlat}
}

func toStopDocs(stops []domain.LocationPoint) []locationDoc {
	if len(stops) == 0 {
		return nil
	}
	out := make([]locationDoc, 0, len(stops))
	for _, s := range stops {
		out = append(out, toLocationDoc(s))
	}
	return out
}

func fromStopDocs(docs []locationDoc) []domain.LocationPoint {
	if len(docs) == 0 {
		return nil
	}
	out := make([]domain.LocationPoint, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

// byCreatedAt sorts oldest first.
func byCreatedAt() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
}

// utc normalizes times read back from BSON, which carries millisecond UTC datetimes.
func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
