package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"ridebook/internal/domain"
	"ridebook/internal/redis"
	"ridebook/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	// Counters for verification
	CreateCallCount int32
	GetCallCount    int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]*domain.Booking),
	}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Booking, 0, len(m.bookings))
	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		copy := *b
		result = append(result, &copy)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *booking
	m.bookings[booking.ID] = &copy
	return nil
}

// GetBooking returns the stored booking (for test assertions).
func (m *MockBookingRepository) GetBooking(id string) *domain.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookings[id]
}

// ──────────────────────────────────────────────
// MOCK FAVORITE REPOSITORIES
// ──────────────────────────────────────────────

// MockFavoriteLocationRepository is a mock implementation of FavoriteLocationRepository.
type MockFavoriteLocationRepository struct {
	mu        sync.RWMutex
	locations []*domain.FavoriteLocation

	CreateCallCount int32
	CreateError     error
}

// NewMockFavoriteLocationRepository creates a new mock favorite location repository.
func NewMockFavoriteLocationRepository() *MockFavoriteLocationRepository {
	return &MockFavoriteLocationRepository{}
}

func (m *MockFavoriteLocationRepository) Create(ctx context.Context, location *domain.FavoriteLocation) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *location
	m.locations = append(m.locations, &copy)
	return nil
}

func (m *MockFavoriteLocationRepository) GetByID(ctx context.Context, id string) (*domain.FavoriteLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, l := range m.locations {
		if l.ID == id {
			copy := *l
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockFavoriteLocationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.FavoriteLocation
	for _, l := range m.locations {
		if l.UserID == userID {
			copy := *l
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Count returns the number of stored locations.
func (m *MockFavoriteLocationRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.locations)
}

// MockSavedRouteRepository is a mock implementation of SavedRouteRepository.
type MockSavedRouteRepository struct {
	mu     sync.RWMutex
	routes []*domain.SavedRoute

	CreateCallCount int32
	CreateError     error
}

// NewMockSavedRouteRepository creates a new mock saved route repository.
func NewMockSavedRouteRepository() *MockSavedRouteRepository {
	return &MockSavedRouteRepository{}
}

func (m *MockSavedRouteRepository) Create(ctx context.Context, route *domain.SavedRoute) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *route
	m.routes = append(m.routes, &copy)
	return nil
}

func (m *MockSavedRouteRepository) GetByID(ctx context.Context, id string) (*domain.SavedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.routes {
		if r.ID == id {
			copy := *r
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockSavedRouteRepository) ListByUser(ctx context.Context, userID string) ([]*domain.SavedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.SavedRoute
	for _, r := range m.routes {
		if r.UserID == userID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

// Count returns the number of stored routes.
func (m *MockSavedRouteRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.routes)
}

// MockFavoriteDriverRepository is a mock implementation of FavoriteDriverRepository.
type MockFavoriteDriverRepository struct {
	mu        sync.RWMutex
	favorites []*domain.FavoriteDriver

	CreateError error
	ListError   error
}

// NewMockFavoriteDriverRepository creates a new mock favorite driver repository.
func NewMockFavoriteDriverRepository() *MockFavoriteDriverRepository {
	return &MockFavoriteDriverRepository{}
}

func (m *MockFavoriteDriverRepository) Create(ctx context.Context, favorite *domain.FavoriteDriver) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *favorite
	m.favorites = append(m.favorites, &copy)
	return nil
}

func (m *MockFavoriteDriverRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FavoriteDriver, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.FavoriteDriver
	for _, f := range m.favorites {
		if f.UserID == userID {
			copy := *f
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByIDCallCount int32

	// Error injection
	CreateError  error
	GetByIDError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	atomic.AddInt32(&m.GetByIDCallCount, 1)
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK COUNTER REPOSITORY
// ──────────────────────────────────────────────

// MockCounterRepository is an in-memory CounterRepository. Increments are
// serialized by a mutex, like the row lock or document update in the real stores.
type MockCounterRepository struct {
	mu       sync.Mutex
	counters map[string]int64

	NextCallCount int32
	NextError     error
}

// NewMockCounterRepository creates a new mock counter repository.
func NewMockCounterRepository() *MockCounterRepository {
	return &MockCounterRepository{counters: make(map[string]int64)}
}

// SetCounter seeds a counter's current value.
func (m *MockCounterRepository) SetCounter(name string, value int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name] = value
}

func (m *MockCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	atomic.AddInt32(&m.NextCallCount, 1)
	if m.NextError != nil {
		return 0, m.NextError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
	return m.counters[name], nil
}

// Current returns a counter's value (for test assertions).
func (m *MockCounterRepository) Current(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of LocationStore.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations []redis.DriverLocation

	// Counters
	UpdateLocationCallCount int32

	// Error injection
	UpdateLocationError    error
	FindNearbyDriversError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{
		locations: make([]redis.DriverLocation, 0),
	}
}

// AddDriverLocation adds a driver location to the mock store.
func (m *MockLocationStore) AddDriverLocation(loc redis.DriverLocation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations = append(m.locations, loc)
}

func (m *MockLocationStore) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	// Update existing or add new.
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations[i].Lat = lat
			m.locations[i].Lng = lng
			return nil
		}
	}
	m.locations = append(m.locations, redis.DriverLocation{
		DriverID: driverID,
		Lat:      lat,
		Lng:      lng,
	})
	return nil
}

func (m *MockLocationStore) GetLocation(ctx context.Context, driverID string) (*redis.DriverLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.DriverID == driverID {
			copy := loc
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockLocationStore) FindNearbyDrivers(ctx context.Context, lat, lng, radiusKm float64) ([]redis.DriverLocation, error) {
	if m.FindNearbyDriversError != nil {
		return nil, m.FindNearbyDriversError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	// Return all locations (mock doesn't do real geo filtering).
	result := make([]redis.DriverLocation, len(m.locations))
	copy(result, m.locations)
	return result, nil
}

func (m *MockLocationStore) RemoveLocation(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, loc := range m.locations {
		if loc.DriverID == driverID {
			m.locations = append(m.locations[:i], m.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

// HasLocation checks if a driver location exists.
func (m *MockLocationStore) HasLocation(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, loc := range m.locations {
		if loc.DriverID == driverID {
			return true
		}
	}
	return false
}

// ──────────────────────────────────────────────
// MOCK AVAILABILITY STORE
// ──────────────────────────────────────────────

// MockAvailabilityStore is a mock implementation of the online-driver set.
type MockAvailabilityStore struct {
	mu     sync.RWMutex
	online map[string]struct{}

	IsOnlineError error
}

// NewMockAvailabilityStore creates a new mock availability store.
func NewMockAvailabilityStore() *MockAvailabilityStore {
	return &MockAvailabilityStore{online: make(map[string]struct{})}
}

func (m *MockAvailabilityStore) AddOnlineDriver(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[driverID] = struct{}{}
	return nil
}

func (m *MockAvailabilityStore) RemoveOnlineDriver(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, driverID)
	return nil
}

func (m *MockAvailabilityStore) IsDriverOnline(ctx context.Context, driverID string) (bool, error) {
	if m.IsOnlineError != nil {
		return false, m.IsOnlineError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.online[driverID]
	return ok, nil
}

func (m *MockAvailabilityStore) OnlineDriverCount(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.online)), nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
// Each acquisition hands out a fresh token, and release only succeeds for the current token.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]heldLock
	seq   int

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error
}

type heldLock struct {
	token  string
	expiry time.Time
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]heldLock),
	}
}

// Hold takes the lock for a booking as if another update were in flight.
func (m *MockLockStore) Hold(bookingID string, ttl time.Duration) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.takeLocked(bookingID, ttl)
}

// Expire drops the lock for a booking as if its TTL had run out.
func (m *MockLockStore) Expire(bookingID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, "lock:booking:"+bookingID)
}

func (m *MockLockStore) takeLocked(bookingID string, ttl time.Duration) string {
	m.seq++
	token := fmt.Sprintf("token-%d", m.seq)
	m.locks["lock:booking:"+bookingID] = heldLock{token: token, expiry: time.Now().Add(ttl)}
	return token
}

func (m *MockLockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (string, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if held, exists := m.locks["lock:booking:"+bookingID]; exists && time.Now().Before(held.expiry) {
		return "", nil // Lock still held.
	}
	return m.takeLocked(bookingID, ttl), nil
}

func (m *MockLockStore) ReleaseBookingLock(ctx context.Context, bookingID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	key := "lock:booking:" + bookingID
	if held, exists := m.locks[key]; exists && held.token == token {
		delete(m.locks, key)
	}
	return nil
}

// IsLocked checks if a booking is locked (for test assertions).
func (m *MockLockStore) IsLocked(bookingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	held, exists := m.locks["lock:booking:"+bookingID]
	return exists && time.Now().Before(held.expiry)
}

// ──────────────────────────────────────────────
// MOCK BOOKING CACHE
// ──────────────────────────────────────────────

// MockBookingCache is a mock implementation of the booking cache.
type MockBookingCache struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking

	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	SetError error
}

// NewMockBookingCache creates a new mock booking cache.
func NewMockBookingCache() *MockBookingCache {
	return &MockBookingCache{bookings: make(map[string]domain.Booking)}
}

func (m *MockBookingCache) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *MockBookingCache) SetBooking(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = *booking
	return nil
}

func (m *MockBookingCache) FillBooking(ctx context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[booking.ID]; !ok {
		m.bookings[booking.ID] = *booking
	}
	return nil
}

func (m *MockBookingCache) InvalidateBooking(ctx context.Context, bookingID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookings, bookingID)
	return nil
}

// Cached returns the cached copy of a booking, or nil.
func (m *MockBookingCache) Cached(bookingID string) *domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok {
		return nil
	}
	return &b
}

// Has reports whether a booking is cached.
func (m *MockBookingCache) Has(bookingID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.bookings[bookingID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// MockEventPublisher records published booking events.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent

	PublishError error
}

// NewMockEventPublisher creates a new mock event publisher.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Events returns a copy of the published events.
func (m *MockEventPublisher) Events() []domain.BookingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.BookingEvent, len(m.events))
	copy(out, m.events)
	return out
}

// ──────────────────────────────────────────────
// MOCK IDEMPOTENCY STORE
// ──────────────────────────────────────────────

// MockIdempotencyStore keeps stored responses in memory and records their TTLs.
type MockIdempotencyStore struct {
	mu        sync.Mutex
	responses map[string][]byte
	ttls      map[string]time.Duration

	// Counters
	SetCallCount int32

	// Error injection
	GetError error
}

// NewMockIdempotencyStore creates a new mock idempotency store.
func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		responses: make(map[string][]byte),
		ttls:      make(map[string]time.Duration),
	}
}

func (m *MockIdempotencyStore) GetResponse(ctx context.Context, key string) ([]byte, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.responses[key], nil
}

func (m *MockIdempotencyStore) SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[key] = append([]byte(nil), data...)
	m.ttls[key] = ttl
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MockIdempotencyStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.responses))
	for k := range m.responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TTL returns the expiry a key was stored with.
func (m *MockIdempotencyStore) TTL(key string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[key]
}

// Ensure mocks implement interfaces.
var (
	_ repository.BookingRepository          = (*MockBookingRepository)(nil)
	_ repository.FavoriteLocationRepository = (*MockFavoriteLocationRepository)(nil)
	_ repository.SavedRouteRepository       = (*MockSavedRouteRepository)(nil)
	_ repository.FavoriteDriverRepository   = (*MockFavoriteDriverRepository)(nil)
	_ repository.UserRepository             = (*MockUserRepository)(nil)
	_ repository.CounterRepository          = (*MockCounterRepository)(nil)
	_ redis.LocationStoreInterface          = (*MockLocationStore)(nil)
	_ redis.AvailabilityStoreInterface      = (*MockAvailabilityStore)(nil)
	_ redis.LockStoreInterface              = (*MockLockStore)(nil)
	_ redis.BookingCacheInterface           = (*MockBookingCache)(nil)
	_ redis.IdempotencyStoreInterface       = (*MockIdempotencyStore)(nil)
)
