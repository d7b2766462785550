package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"ridebook/internal/domain"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestLockStore_ReleaseOnlyByOwner(t *testing.T) {
	t.Parallel()

	server, client := newTestClient(t)
	store := NewLockStore(client)
	ctx := context.Background()

	tokenA, err := store.AcquireBookingLock(ctx, "booking-1", 10*time.Second)
	if err != nil || tokenA == "" {
		t.Fatalf("expected first acquire to succeed, got %q, %v", tokenA, err)
	}
	if busy, _ := store.AcquireBookingLock(ctx, "booking-1", 10*time.Second); busy != "" {
		t.Fatal("expected lock to be held")
	}

	// A outlives its TTL and B takes the lock over.
	server.FastForward(11 * time.Second)
	tokenB, err := store.AcquireBookingLock(ctx, "booking-1", 10*time.Second)
	if err != nil || tokenB == "" {
		t.Fatalf("expected acquire after expiry to succeed, got %q, %v", tokenB, err)
	}
	if tokenA == tokenB {
		t.Fatal("expected a fresh token per acquire")
	}

	if err := store.ReleaseBookingLock(ctx, "booking-1", tokenA); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if tokenC, _ := store.AcquireBookingLock(ctx, "booking-1", 10*time.Second); tokenC != "" {
		t.Fatal("expected B's lock to survive A's late release")
	}

	if err := store.ReleaseBookingLock(ctx, "booking-1", tokenB); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if tokenC, _ := store.AcquireBookingLock(ctx, "booking-1", 10*time.Second); tokenC == "" {
		t.Fatal("expected lock to be free after the owner released it")
	}
}

func TestCacheStore_FillNeverOverwrites(t *testing.T) {
	t.Parallel()

	_, client := newTestClient(t)
	store := NewCacheStore(client)
	ctx := context.Background()

	updated := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusAccepted}
	stale := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusPending}

	if err := store.SetBooking(ctx, updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.FillBooking(ctx, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cached, err := store.GetBooking(ctx, "booking-1")
	if err != nil || cached == nil {
		t.Fatalf("expected cached booking, got %v, %v", cached, err)
	}
	if cached.Status != domain.BookingStatusAccepted {
		t.Errorf("expected fill to leave the updated copy, got %s", cached.Status)
	}

	if err := store.InvalidateBooking(ctx, "booking-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.FillBooking(ctx, stale); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached, _ := store.GetBooking(ctx, "booking-1"); cached == nil || cached.Status != domain.BookingStatusPending {
		t.Errorf("expected fill of an empty slot to store, got %+v", cached)
	}
}

func TestIdempotencyStore_MissAndExpiry(t *testing.T) {
	t.Parallel()

	server, client := newTestClient(t)
	store := NewIdempotencyStore(client)
	ctx := context.Background()

	if data, err := store.GetResponse(ctx, "/api/bookings:k1"); err != nil || data != nil {
		t.Fatalf("expected miss, got %q, %v", data, err)
	}

	if err := store.SetResponse(ctx, "/api/bookings:k1", []byte(`{"statusCode":201}`), 24*time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !server.Exists("idempotency:/api/bookings:k1") {
		t.Error("expected key under the idempotency prefix")
	}
	if data, _ := store.GetResponse(ctx, "/api/bookings:k1"); string(data) != `{"statusCode":201}` {
		t.Errorf("unexpected stored response %q", data)
	}

	server.FastForward(24*time.Hour + time.Second)
	if data, _ := store.GetResponse(ctx, "/api/bookings:k1"); data != nil {
		t.Errorf("expected response to expire after 24h, got %q", data)
	}
}
