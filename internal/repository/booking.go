package repository

import (
	"context"

	"ridebook/internal/domain"
)

// BookingFilter narrows a booking listing.
type BookingFilter struct {
	// Status is optional: empty means any status.
	Status domain.BookingStatus
	Limit  int
}

// BookingRepository defines the persistence operations for bookings.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id string) (*domain.Booking, error)

	// List retrieves bookings, newest first.
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error)

	// Update replaces an existing booking.
	Update(ctx context.Context, booking *domain.Booking) error
}
