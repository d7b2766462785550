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

const defaultBookingListLimit = 100

type bookingDoc struct {
	ID              string        `bson:"_id"`
	PassengerID     string        `bson:"passengerId"`
	PassengerName   string        `bson:"passengerName"`
	PassengerPhone  string        `bson:"passengerPhone,omitempty"`
	PassengerRating float64       `bson:"passengerRating,omitempty"`
	PickupLocation  locationDoc   `bson:"pickupLocation"`
	DropoffLocation locationDoc   `bson:"dropoffLocation"`
	Stops           []locationDoc `bson:"stops,omitempty"`
	FareEstimate    float64       `bson:"fareEstimate"`
	DistanceMiles   float64       `bson:"distanceMiles,omitempty"`
	PassengerCount  int           `bson:"passengerCount"`
	Notes           string        `bson:"notes,omitempty"`
	Status          string        `bson:"status"`
	DriverID        string        `bson:"driverId,omitempty"`
	DriverName      string        `bson:"driverName,omitempty"`

	NotifiedPassengerArrivalAt     time.Time `bson:"notifiedPassengerArrivalTimestamp,omitempty"`
	PassengerAcknowledgedArrivalAt time.Time `bson:"passengerAcknowledgedArrivalTimestamp,omitempty"`
	RideStartedAt                  time.Time `bson:"rideStartedAt,omitempty"`
	CompletedAt                    time.Time `bson:"completedAt,omitempty"`
	CancelledAt                    time.Time `bson:"cancelledAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	return bookingDoc{
		ID:                             b.ID,
		PassengerID:                    b.PassengerID,
		PassengerName:                  b.PassengerName,
		PassengerPhone:                 b.PassengerPhone,
		PassengerRating:                b.PassengerRating,
		PickupLocation:                 toLocationDoc(b.PickupLocation),
		DropoffLocation:                toLocationDoc(b.DropoffLocation),
		Stops:                          toStopDocs(b.Stops),
		FareEstimate:                   b.FareEstimate,
		DistanceMiles:                  b.DistanceMiles,
		PassengerCount:                 b.PassengerCount,
		Notes:                          b.Notes,
		Status:                         string(b.Status),
		DriverID:                       b.DriverID,
		DriverName:                     b.DriverName,
		NotifiedPassengerArrivalAt:     b.NotifiedPassengerArrivalAt,
		PassengerAcknowledgedArrivalAt: b.PassengerAcknowledgedArrivalAt,
		RideStartedAt:                  b.RideStartedAt,
		CompletedAt:                    b.CompletedAt,
		CancelledAt:                    b.CancelledAt,
		CreatedAt:                      b.CreatedAt,
		UpdatedAt:                      b.UpdatedAt,
	}
}

func (d bookingDoc) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:                             d.ID,
		PassengerID:                    d.PassengerID,
		PassengerName:                  d.PassengerName,
		PassengerPhone:                 d.PassengerPhone,
		PassengerRating:                d.PassengerRating,
		PickupLocation:                 d.PickupLocation.toDomain(),
		DropoffLocation:                d.DropoffLocation.toDomain(),
		Stops:                          fromStopDocs(d.Stops),
		FareEstimate:                   d.FareEstimate,
		DistanceMiles:                  d.DistanceMiles,
		PassengerCount:                 d.PassengerCount,
		Notes:                          d.Notes,
		Status:                         domain.BookingStatus(d.Status),
		DriverID:                       d.DriverID,
		DriverName:                     d.DriverName,
		NotifiedPassengerArrivalAt:     utc(d.NotifiedPassengerArrivalAt),
		PassengerAcknowledgedArrivalAt: utc(d.PassengerAcknowledgedArrivalAt),
		RideStartedAt:                  utc(d.RideStartedAt),
		CompletedAt:                    utc(d.CompletedAt),
		CancelledAt:                    utc(d.CancelledAt),
		CreatedAt:                      utc(d.CreatedAt),
		UpdatedAt:                      utc(d.UpdatedAt),
	}
}

// BookingRepository is a MongoDB implementation of repository.BookingRepository.
type BookingRepository struct {
	coll *mongo.Collection
}

// NewBookingRepository creates a new MongoDB booking repository.
func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection(bookingsCollection)}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.coll.InsertOne(ctx, toBookingDoc(b))
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var doc bookingDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// List retrieves bookings, newest first.
func (r *BookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*domain.Booking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultBookingListLimit
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toDomain())
	}
	return bookings, nil
}

// Update replaces an existing booking.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": b.ID}, toBookingDoc(b))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
