package redis

import (
	"context"
	"time"

	"ridebook/internal/domain"
)

// LocationStoreInterface defines the interface for driver location operations.
type LocationStoreInterface interface {
	UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error
	GetLocation(ctx context.Context, driverID string) (*DriverLocation, error)
	FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]DriverLocation, error)
	RemoveLocation(ctx context.Context, driverID string) error
}

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (token string, err error)
	ReleaseBookingLock(ctx context.Context, bookingID, token string) error
}

// BookingCacheInterface defines the interface for booking read-through caching.
type BookingCacheInterface interface {
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	SetBooking(ctx context.Context, booking *domain.Booking) error
	FillBooking(ctx context.Context, booking *domain.Booking) error
	InvalidateBooking(ctx context.Context, bookingID string) error
}

// AvailabilityStoreInterface tracks which drivers are online.
type AvailabilityStoreInterface interface {
	AddOnlineDriver(ctx context.Context, driverID string) error
	RemoveOnlineDriver(ctx context.Context, driverID string) error
	IsDriverOnline(ctx context.Context, driverID string) (bool, error)
	OnlineDriverCount(ctx context.Context) (int64, error)
}

// IdempotencyStoreInterface stores replayable responses keyed by idempotency key.
type IdempotencyStoreInterface interface {
	GetResponse(ctx context.Context, key string) ([]byte, error)
	SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface     = (*LocationStore)(nil)
	_ LockStoreInterface         = (*LockStore)(nil)
	_ BookingCacheInterface      = (*CacheStore)(nil)
	_ AvailabilityStoreInterface = (*CacheStore)(nil)
	_ IdempotencyStoreInterface  = (*IdempotencyStore)(nil)
)
