package tests

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"ridebook/internal/domain"
	"ridebook/internal/realtime"
	"ridebook/internal/service"
	"ridebook/internal/view"
)

// ──────────────────────────────────────────────
// 1. ADD FAVORITE LOCATION
// ──────────────────────────────────────────────

func TestAddFavoriteLocation_MissingFields_Returns400(t *testing.T) {
	t.Parallel()

	valid := map[string]any{
		"userId":    "user-1",
		"label":     "Home",
		"address":   "1 High Street",
		"latitude":  51.5,
		"longitude": -0.12,
	}

	for _, missing := range []string{"userId", "label", "address", "latitude", "longitude"} {
		missing := missing
		t.Run("missing "+missing, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			body := make(map[string]any, len(valid))
			for k, v := range valid {
				if k != missing {
					body[k] = v
				}
			}

			rec := env.do(t, http.MethodPost, "/api/users/favorite-locations/add", body, "")
			expectStatus(t, rec, http.StatusBadRequest)

			if env.locations.Count() != 0 {
				t.Errorf("expected nothing persisted, got %d documents", env.locations.Count())
			}
		})
	}
}

func TestAddFavoriteLocation_InvalidPayloads_Returns400(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"userId":`},
		{name: "latitude as string", body: `{"userId":"u","label":"Home","address":"a","latitude":"51.5","longitude":0}`},
		{name: "blank label", body: `{"userId":"u","label":"  ","address":"a","latitude":51.5,"longitude":0}`},
		{name: "latitude out of range", body: `{"userId":"u","label":"Home","address":"a","latitude":91,"longitude":0}`},
		{name: "longitude out of range", body: `{"userId":"u","label":"Home","address":"a","latitude":0,"longitude":-181}`},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			rec := env.do(t, http.MethodPost, "/api/users/favorite-locations/add", tc.body, "")
			expectStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestAddFavoriteLocation_PersistsOneDocumentAndEchoesID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodPost, "/api/users/favorite-locations/add", map[string]any{
		"userId":    "user-1",
		"label":     "Office",
		"address":   "Null Island",
		"latitude":  0,
		"longitude": 0,
	}, "")
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		ID   string                    `json:"id"`
		Data view.FavoriteLocationData `json:"data"`
	}
	decode(t, rec, &resp)

	if env.locations.Count() != 1 {
		t.Fatalf("expected exactly one document, got %d", env.locations.Count())
	}
	stored, err := env.locations.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("echoed id %q not found: %v", resp.ID, err)
	}
	if stored.Latitude != 0 || stored.Longitude != 0 {
		t.Errorf("expected zero coordinates to be stored, got %v,%v", stored.Latitude, stored.Longitude)
	}
	if resp.Data.Label != "Office" || resp.Data.UserID != "user-1" {
		t.Errorf("unexpected data echoed: %+v", resp.Data)
	}
	if resp.Data.CreatedAt == nil || resp.Data.CreatedAt.Seconds == 0 {
		t.Error("expected createdAt timestamp in response")
	}
}

func TestAddFavoriteLocation_StoreFailure_Returns500WithDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.locations.CreateError = errors.New("connection reset")

	rec := env.do(t, http.MethodPost, "/api/users/favorite-locations/add", map[string]any{
		"userId": "user-1", "label": "Home", "address": "a", "latitude": 1.0, "longitude": 2.0,
	}, "")
	expectStatus(t, rec, http.StatusInternalServerError)

	var resp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	decode(t, rec, &resp)
	if resp.Error != "Failed to add favorite location" {
		t.Errorf("unexpected error message %q", resp.Error)
	}
	if resp.Details != "connection reset" {
		t.Errorf("expected details to carry the cause, got %q", resp.Details)
	}
}

// ──────────────────────────────────────────────
// 2. ADD SAVED ROUTE
// ──────────────────────────────────────────────

func TestAddSavedRoute_Validation(t *testing.T) {
	t.Parallel()

	pickup := map[string]any{"address": "A", "latitude": 51.5, "longitude": -0.1}
	dropoff := map[string]any{"address": "B", "latitude": 51.6, "longitude": -0.2}

	testCases := []struct {
		name string
		body map[string]any
	}{
		{name: "missing userId", body: map[string]any{"label": "Work", "pickupLocation": pickup, "dropoffLocation": dropoff}},
		{name: "missing label", body: map[string]any{"userId": "u", "pickupLocation": pickup, "dropoffLocation": dropoff}},
		{name: "missing pickup", body: map[string]any{"userId": "u", "label": "Work", "dropoffLocation": dropoff}},
		{name: "missing dropoff", body: map[string]any{"userId": "u", "label": "Work", "pickupLocation": pickup}},
		{name: "pickup without latitude", body: map[string]any{
			"userId": "u", "label": "Work", "dropoffLocation": dropoff,
			"pickupLocation": map[string]any{"address": "A", "longitude": -0.1},
		}},
		{name: "dropoff without address", body: map[string]any{
			"userId": "u", "label": "Work", "pickupLocation": pickup,
			"dropoffLocation": map[string]any{"latitude": 51.6, "longitude": -0.2},
		}},
		{name: "incomplete stop", body: map[string]any{
			"userId": "u", "label": "Work", "pickupLocation": pickup, "dropoffLocation": dropoff,
			"stops": []any{map[string]any{"address": "C"}},
		}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nil)
			rec := env.do(t, http.MethodPost, "/api/users/saved-routes/add", tc.body, "")
			expectStatus(t, rec, http.StatusBadRequest)

			if env.routes.Count() != 0 {
				t.Errorf("expected nothing persisted, got %d documents", env.routes.Count())
			}
		})
	}
}

func TestAddSavedRoute_PersistsOneDocumentAndEchoesID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodPost, "/api/users/saved-routes/add", map[string]any{
		"userId":          "user-1",
		"label":           "Commute",
		"pickupLocation":  map[string]any{"address": "A", "latitude": 51.5, "longitude": -0.1, "doorOrFlat": "Flat 2"},
		"dropoffLocation": map[string]any{"address": "B", "latitude": 51.6, "longitude": -0.2},
		"stops":           []any{map[string]any{"address": "C", "latitude": 51.55, "longitude": -0.15}},
	}, "")
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		Message string              `json:"message"`
		ID      string              `json:"id"`
		Data    view.SavedRouteData `json:"data"`
	}
	decode(t, rec, &resp)

	if resp.Message != "Saved route added successfully" {
		t.Errorf("unexpected message %q", resp.Message)
	}
	if env.routes.Count() != 1 {
		t.Fatalf("expected exactly one document, got %d", env.routes.Count())
	}
	stored, err := env.routes.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("echoed id %q not found: %v", resp.ID, err)
	}
	if stored.PickupLocation.DoorOrFlat != "Flat 2" {
		t.Errorf("expected doorOrFlat to be kept, got %q", stored.PickupLocation.DoorOrFlat)
	}
	if len(resp.Data.Stops) != 1 || resp.Data.Stops[0].Address != "C" {
		t.Errorf("expected one stop echoed, got %+v", resp.Data.Stops)
	}
}

// ──────────────────────────────────────────────
// 3. FAVORITE DRIVERS
// ──────────────────────────────────────────────

func TestListFavoriteDrivers_EnrichesFromDriverProfile(t *testing.T) {
	t.Parallel()

	favorites := NewMockFavoriteDriverRepository()
	users := NewMockUserRepository()
	users.AddUser(&domain.User{
		ID:                  "driver-1",
		Name:                "Dana",
		Role:                domain.UserRoleDriver,
		AvatarURL:           "https://example.com/dana.png",
		VehicleMakeModel:    "Toyota Prius",
		VehicleRegistration: "AB12 CDE",
		DriverIdentifier:    "DR007",
	})
	users.AddUser(&domain.User{ID: "driver-2", Name: "Sam", CustomID: "DR002", VehicleMakeModel: "Skoda Octavia"})

	svc := service.NewFavoritesService(NewMockFavoriteLocationRepository(), NewMockSavedRouteRepository(), favorites, users, nil)
	ctx := context.Background()

	for _, req := range []service.AddFavoriteDriverRequest{
		{UserID: "user-1", DriverID: "driver-1"},
		{UserID: "user-1", DriverID: "driver-2", Name: "Sammy"},
		{UserID: "user-1", DriverID: "driver-unknown", Name: "Ghost"},
		{UserID: "user-2", DriverID: "driver-1"},
	} {
		if _, err := svc.AddFavoriteDriver(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	views, err := svc.ListFavoriteDrivers(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 favorites, got %d", len(views))
	}

	if views[0].Name != "Dana" || views[0].VehicleInfo != "Toyota Prius - AB12 CDE" || views[0].CustomID != "DR007" {
		t.Errorf("unexpected enrichment for driver-1: %+v", views[0])
	}
	if views[1].Name != "Sammy" {
		t.Errorf("expected explicit favorite name to win, got %q", views[1].Name)
	}
	if views[1].VehicleInfo != "Skoda Octavia" || views[1].CustomID != "DR002" {
		t.Errorf("unexpected enrichment for driver-2: %+v", views[1])
	}
	if views[2].Name != "Ghost" || views[2].VehicleInfo != "" {
		t.Errorf("expected unknown driver to keep stored fields only, got %+v", views[2])
	}
}

func TestAddFavoriteDriver_MissingDriverID_Rejected(t *testing.T) {
	t.Parallel()

	svc := service.NewFavoritesService(NewMockFavoriteLocationRepository(), NewMockSavedRouteRepository(),
		NewMockFavoriteDriverRepository(), NewMockUserRepository(), nil)

	_, err := svc.AddFavoriteDriver(context.Background(), service.AddFavoriteDriverRequest{UserID: "user-1"})
	if !errors.Is(err, service.ErrMissingFavoriteDriverFields) {
		t.Errorf("expected ErrMissingFavoriteDriverFields, got %v", err)
	}
}

func TestFavoriteDriversEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	env.users.AddUser(&domain.User{ID: "driver-9", Name: "Kim", CustomID: "DR009"})

	rec := env.do(t, http.MethodPost, "/api/users/user-1/favorite-drivers", map[string]any{"driverId": "driver-9"}, "")
	expectStatus(t, rec, http.StatusCreated)

	rec = env.do(t, http.MethodGet, "/api/users/user-1/favorite-drivers", nil, "")
	expectStatus(t, rec, http.StatusOK)

	var resp struct {
		FavoriteDrivers []view.FavoriteDriver `json:"favoriteDrivers"`
	}
	decode(t, rec, &resp)
	if len(resp.FavoriteDrivers) != 1 || resp.FavoriteDrivers[0].CustomID != "DR009" {
		t.Errorf("unexpected favorite drivers: %+v", resp.FavoriteDrivers)
	}
}

// ──────────────────────────────────────────────
// 4. LIVE SNAPSHOTS
// ──────────────────────────────────────────────

func TestAddFavoriteLocation_PublishesSnapshotToSubscribers(t *testing.T) {
	t.Parallel()

	hub := realtime.NewHub()
	defer hub.Close()
	locations := NewMockFavoriteLocationRepository()
	svc := service.NewFavoritesService(locations, NewMockSavedRouteRepository(),
		NewMockFavoriteDriverRepository(), NewMockUserRepository(), hub)

	sub := hub.Subscribe("user-1")
	other := hub.Subscribe("user-2")

	ctx := context.Background()
	for _, label := range []string{"Home", "Gym"} {
		_, err := svc.AddFavoriteLocation(ctx, service.AddFavoriteLocationRequest{
			UserID: "user-1", Label: label, Address: "x", Latitude: float(1), Longitude: float(2),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var last realtime.Message
	for i := 0; i < 2; i++ {
		select {
		case last = <-sub.Messages():
		default:
			t.Fatalf("expected snapshot %d to be delivered", i+1)
		}
	}

	if last.Collection != realtime.CollectionFavoriteLocations {
		t.Errorf("unexpected collection %q", last.Collection)
	}
	docs, ok := last.Docs.([]view.FavoriteLocation)
	if !ok || len(docs) != 2 {
		t.Fatalf("expected a full snapshot of 2 locations, got %#v", last.Docs)
	}

	select {
	case msg := <-other.Messages():
		t.Errorf("other user should not receive snapshots, got %+v", msg)
	default:
	}
}
