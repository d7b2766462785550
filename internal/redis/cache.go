package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"ridebook/internal/domain"
)

// BookingCacheTTL bounds how long a cached booking lives.
const BookingCacheTTL = 30 * time.Second

const (
	bookingCachePrefix = "cache:booking:"
	onlineDriversKey   = "drivers:online"
)

// CacheStore handles booking caching and the online-driver set in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// GetBooking retrieves a booking from cache. A miss returns nil, nil.
func (s *CacheStore) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	data, err := s.client.Get(ctx, bookingCachePrefix+bookingID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var booking domain.Booking
	if err := json.Unmarshal(data, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// SetBooking stores a booking in cache, replacing any cached copy.
func (s *CacheStore) SetBooking(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, bookingCachePrefix+booking.ID, data, BookingCacheTTL).Err()
}

// FillBooking stores a booking read from the database only if nothing is cached yet,
// so a read that raced with an update never overwrites the updated copy.
func (s *CacheStore) FillBooking(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return err
	}
	return s.client.SetNX(ctx, bookingCachePrefix+booking.ID, data, BookingCacheTTL).Err()
}

// InvalidateBooking removes a booking from cache.
func (s *CacheStore) InvalidateBooking(ctx context.Context, bookingID string) error {
	return s.client.Del(ctx, bookingCachePrefix+bookingID).Err()
}

// AddOnlineDriver marks a driver as online.
func (s *CacheStore) AddOnlineDriver(ctx context.Context, driverID string) error {
	return s.client.SAdd(ctx, onlineDriversKey, driverID).Err()
}

// RemoveOnlineDriver marks a driver as offline.
func (s *CacheStore) RemoveOnlineDriver(ctx context.Context, driverID string) error {
	return s.client.SRem(ctx, onlineDriversKey, driverID).Err()
}

// IsDriverOnline checks if a driver is in the online set.
func (s *CacheStore) IsDriverOnline(ctx context.Context, driverID string) (bool, error) {
	return s.client.SIsMember(ctx, onlineDriversKey, driverID).Result()
}

// OnlineDriverCount returns the size of the online set.
func (s *CacheStore) OnlineDriverCount(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, onlineDriversKey).Result()
}
