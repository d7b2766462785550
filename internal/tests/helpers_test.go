package tests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"ridebook/internal/app"
	"ridebook/internal/auth"
	"ridebook/internal/handler"
	"ridebook/internal/realtime"
	"ridebook/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func float(v float64) *float64 {
	return &v
}

// testEnv wires the full router over in-memory stores.
type testEnv struct {
	router        *gin.Engine
	hub           *realtime.Hub
	bookings      *MockBookingRepository
	locations     *MockFavoriteLocationRepository
	routes        *MockSavedRouteRepository
	favorites     *MockFavoriteDriverRepository
	users         *MockUserRepository
	counters      *MockCounterRepository
	locationStore *MockLocationStore
	availability  *MockAvailabilityStore
	lockStore     *MockLockStore
	cache         *MockBookingCache
	publisher     *MockEventPublisher
	idempotency   *MockIdempotencyStore
}

func newTestEnv(t *testing.T, issuer *auth.Issuer) *testEnv {
	t.Helper()

	env := &testEnv{
		hub:           realtime.NewHub(),
		bookings:      NewMockBookingRepository(),
		locations:     NewMockFavoriteLocationRepository(),
		routes:        NewMockSavedRouteRepository(),
		favorites:     NewMockFavoriteDriverRepository(),
		users:         NewMockUserRepository(),
		counters:      NewMockCounterRepository(),
		locationStore: NewMockLocationStore(),
		availability:  NewMockAvailabilityStore(),
		lockStore:     NewMockLockStore(),
		cache:         NewMockBookingCache(),
		publisher:     NewMockEventPublisher(),
		idempotency:   NewMockIdempotencyStore(),
	}
	t.Cleanup(env.hub.Close)

	notificationService := service.NewNotificationService(env.publisher)
	identifierService := service.NewIdentifierService(env.counters)
	favoritesService := service.NewFavoritesService(env.locations, env.routes, env.favorites, env.users, env.hub)
	bookingService := service.NewBookingService(env.bookings, env.lockStore, env.cache, notificationService)
	driverService := service.NewDriverService(env.locationStore, env.availability, env.bookings)
	userService := service.NewUserService(env.users, identifierService)

	env.router = app.NewRouter(app.RouterDeps{
		FavoritesHandler:    handler.NewFavoritesHandler(favoritesService),
		AdminHandler:        handler.NewAdminHandler(identifierService),
		BookingHandler:      handler.NewBookingHandler(bookingService),
		DriverHandler:       handler.NewDriverHandler(driverService),
		UserHandler:         handler.NewUserHandler(userService),
		AuthHandler:         handler.NewAuthHandler(issuer),
		SubscriptionHandler: handler.NewSubscriptionHandler(favoritesService, env.hub, []string{"*"}),
		AllowedOrigins:      []string{"*"},
		Issuer:              issuer,
		IdempotencyStore:    env.idempotency,
	})
	return env
}

// do sends a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	return e.doWithKey(t, method, path, body, token, "")
}

// doWithKey is do with an optional Idempotency-Key header.
func (e *testEnv) doWithKey(t *testing.T, method, path string, body any, token, idempotencyKey string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}
