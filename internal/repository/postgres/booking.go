package postgres

import (
	"context"
	"database/sql"
	"errors"

	"ridebook/internal/domain"
	"ridebook/internal/repository"
)

const bookingColumns = `id, passenger_id, passenger_name, passenger_phone, passenger_rating,
	pickup_location, dropoff_location, stops, fare_estimate, distance_miles, passenger_count,
	notes, status, driver_id, driver_name, notified_passenger_arrival_at,
	passenger_acknowledged_arrival_at, ride_started_at, completed_at, cancelled_at,
	created_at, updated_at`

const defaultBookingListLimit = 100

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	q Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{q: db}
}

// Create persists a new booking.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args, err := bookingArgs(b)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`
	_, err = r.q.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// List retrieves bookings, newest first.
func (r *BookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*domain.Booking, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultBookingListLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if filter.Status != "" {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 ORDER BY created_at DESC LIMIT $2`
		rows, err = r.q.QueryContext(ctx, query, filter.Status, limit)
	} else {
		query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC LIMIT $1`
		rows, err = r.q.QueryContext(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// Update replaces an existing booking.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args, err := bookingArgs(b)
	if err != nil {
		return err
	}

	query := `
		UPDATE bookings
		SET passenger_id = $2, passenger_name = $3, passenger_phone = $4, passenger_rating = $5,
			pickup_location = $6, dropoff_location = $7, stops = $8, fare_estimate = $9,
			distance_miles = $10, passenger_count = $11, notes = $12, status = $13,
			driver_id = $14, driver_name = $15, notified_passenger_arrival_at = $16,
			passenger_acknowledged_arrival_at = $17, ride_started_at = $18, completed_at = $19,
			cancelled_at = $20, created_at = $21, updated_at = $22
		WHERE id = $1
	`
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// bookingArgs returns the column values in bookingColumns order.
func bookingArgs(b *domain.Booking) ([]any, error) {
	pickup, err := encodeLocation(b.PickupLocation)
	if err != nil {
		return nil, err
	}
	dropoff, err := encodeLocation(b.DropoffLocation)
	if err != nil {
		return nil, err
	}
	stops, err := encodeStops(b.Stops)
	if err != nil {
		return nil, err
	}

	return []any{
		b.ID,
		b.PassengerID,
		b.PassengerName,
		nullString(b.PassengerPhone),
		b.PassengerRating,
		pickup,
		dropoff,
		stops,
		b.FareEstimate,
		b.DistanceMiles,
		b.PassengerCount,
		nullString(b.Notes),
		b.Status,
		nullString(b.DriverID),
		nullString(b.DriverName),
		nullTime(b.NotifiedPassengerArrivalAt),
		nullTime(b.PassengerAcknowledgedArrivalAt),
		nullTime(b.RideStartedAt),
		nullTime(b.CompletedAt),
		nullTime(b.CancelledAt),
		b.CreatedAt,
		b.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                                   domain.Booking
		pickup, dropoff, stops              []byte
		phone, notes, driverID, driverName  sql.NullString
		notifiedAt, acknowledgedAt          sql.NullTime
		startedAt, completedAt, cancelledAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.PassengerID,
		&b.PassengerName,
		&phone,
		&b.PassengerRating,
		&pickup,
		&dropoff,
		&stops,
		&b.FareEstimate,
		&b.DistanceMiles,
		&b.PassengerCount,
		&notes,
		&b.Status,
		&driverID,
		&driverName,
		&notifiedAt,
		&acknowledgedAt,
		&startedAt,
		&completedAt,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.PickupLocation, err = decodeLocation(pickup); err != nil {
		return nil, err
	}
	if b.DropoffLocation, err = decodeLocation(dropoff); err != nil {
		return nil, err
	}
	if b.Stops, err = decodeStops(stops); err != nil {
		return nil, err
	}

	b.PassengerPhone = phone.String
	b.Notes = notes.String
	b.DriverID = driverID.String
	b.DriverName = driverName.String
	b.NotifiedPassengerArrivalAt = timeOrZero(notifiedAt)
	b.PassengerAcknowledgedArrivalAt = timeOrZero(acknowledgedAt)
	b.RideStartedAt = timeOrZero(startedAt)
	b.CompletedAt = timeOrZero(completedAt)
	b.CancelledAt = timeOrZero(cancelledAt)

	return &b, nil
}
