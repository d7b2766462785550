package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridebook/internal/domain"
	"ridebook/internal/observability"
	"ridebook/internal/realtime"
	"ridebook/internal/repository"
	"ridebook/internal/view"
)

// Broadcaster delivers collection snapshots to a user's live subscribers.
type Broadcaster interface {
	HasSubscribers(userID string) bool
	Publish(userID string, msg realtime.Message) int
}

// Ensure the hub satisfies Broadcaster.
var _ Broadcaster = (*realtime.Hub)(nil)

// FavoritesService handles favorite locations, saved routes and favorite drivers.
type FavoritesService struct {
	locationRepo repository.FavoriteLocationRepository
	routeRepo    repository.SavedRouteRepository
	driverRepo   repository.FavoriteDriverRepository
	userRepo     repository.UserRepository
	broadcaster  Broadcaster
	now          func() time.Time
}

// NewFavoritesService creates a new FavoritesService. broadcaster may be nil.
func NewFavoritesService(
	locationRepo repository.FavoriteLocationRepository,
	routeRepo repository.SavedRouteRepository,
	driverRepo repository.FavoriteDriverRepository,
	userRepo repository.UserRepository,
	broadcaster Broadcaster,
) *FavoritesService {
	return &FavoritesService{
		locationRepo: locationRepo,
		routeRepo:    routeRepo,
		driverRepo:   driverRepo,
		userRepo:     userRepo,
		broadcaster:  broadcaster,
		now:          time.Now,
	}
}

// AddFavoriteLocationRequest contains the parameters for adding a favorite location.
// Coordinates are pointers so that a missing value can be told apart from 0.
type AddFavoriteLocationRequest struct {
	UserID    string
	Label     string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// AddFavoriteLocation validates and persists one favorite location.
func (s *FavoritesService) AddFavoriteLocation(ctx context.Context, req AddFavoriteLocationRequest) (*domain.FavoriteLocation, error) {
	if blank(req.UserID) || blank(req.Label) || blank(req.Address) || req.Latitude == nil || req.Longitude == nil {
		return nil, ErrMissingFavoriteLocationFields
	}
	if !isValidLatitude(*req.Latitude) || !isValidLongitude(*req.Longitude) {
		return nil, ErrInvalidCoordinates
	}

	location := &domain.FavoriteLocation{
		ID:        uuid.New().String(),
		UserID:    strings.TrimSpace(req.UserID),
		Label:     strings.TrimSpace(req.Label),
		Address:   strings.TrimSpace(req.Address),
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		CreatedAt: s.now().UTC(),
	}

	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	observability.DocumentsCreatedTotal.WithLabelValues(realtime.CollectionFavoriteLocations).Inc()

	s.publishFavoriteLocations(ctx, location.UserID)
	return location, nil
}

// ListFavoriteLocations returns a user's favorite locations.
func (s *FavoritesService) ListFavoriteLocations(ctx context.Context, userID string) ([]*domain.FavoriteLocation, error) {
	if blank(userID) {
		return nil, ErrInvalidUserID
	}
	return s.locationRepo.ListByUser(ctx, userID)
}

// LocationInput is an address with optional-looking coordinates as received from clients.
type LocationInput struct {
	Address    string
	Latitude   *float64
	Longitude  *float64
	DoorOrFlat string
}

// AddSavedRouteRequest contains the parameters for adding a saved route.
type AddSavedRouteRequest struct {
	UserID          string
	Label           string
	PickupLocation  *LocationInput
	DropoffLocation *LocationInput
	Stops           []LocationInput
}

// AddSavedRoute validates and persists one saved route.
func (s *FavoritesService) AddSavedRoute(ctx context.Context, req AddSavedRouteRequest) (*domain.SavedRoute, error) {
	if blank(req.UserID) || blank(req.Label) || req.PickupLocation == nil || req.DropoffLocation == nil {
		return nil, ErrMissingSavedRouteFields
	}

	pickup, err := toLocationPoint(*req.PickupLocation, ErrInvalidPickupLocation)
	if err != nil {
		return nil, err
	}
	dropoff, err := toLocationPoint(*req.DropoffLocation, ErrInvalidDropoffLocation)
	if err != nil {
		return nil, err
	}

	var stops []domain.LocationPoint
	for _, in := range req.Stops {
		stop, err := toLocationPoint(in, ErrInvalidStop)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	route := &domain.SavedRoute{
		ID:              uuid.New().String(),
		UserID:          strings.TrimSpace(req.UserID),
		Label:           strings.TrimSpace(req.Label),
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		Stops:           stops,
		CreatedAt:       s.now().UTC(),
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		return nil, err
	}
	observability.DocumentsCreatedTotal.WithLabelValues(realtime.CollectionSavedRoutes).Inc()

	s.publishSavedRoutes(ctx, route.UserID)
	return route, nil
}

// ListSavedRoutes returns a user's saved routes.
func (s *FavoritesService) ListSavedRoutes(ctx context.Context, userID string) ([]*domain.SavedRoute, error) {
	if blank(userID) {
		return nil, ErrInvalidUserID
	}
	return s.routeRepo.ListByUser(ctx, userID)
}

// AddFavoriteDriverRequest contains the parameters for adding a favorite driver.
type AddFavoriteDriverRequest struct {
	UserID   string
	DriverID string
	Name     string
}

// AddFavoriteDriver adds a driver to a user's favorites.
func (s *FavoritesService) AddFavoriteDriver(ctx context.Context, req AddFavoriteDriverRequest) (*domain.FavoriteDriver, error) {
	if blank(req.UserID) || blank(req.DriverID) {
		return nil, ErrMissingFavoriteDriverFields
	}

	favorite := &domain.FavoriteDriver{
		ID:        uuid.New().String(),
		UserID:    strings.TrimSpace(req.UserID),
		DriverID:  strings.TrimSpace(req.DriverID),
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: s.now().UTC(),
	}

	if err := s.driverRepo.Create(ctx, favorite); err != nil {
		return nil, err
	}
	observability.DocumentsCreatedTotal.WithLabelValues(realtime.CollectionFavoriteDrivers).Inc()

	s.publishFavoriteDrivers(ctx, favorite.UserID)
	return favorite, nil
}

// ListFavoriteDrivers returns a user's favorite drivers, filling gaps from each
// driver's profile. Profile lookups that fail are skipped.
func (s *FavoritesService) ListFavoriteDrivers(ctx context.Context, userID string) ([]domain.FavoriteDriverView, error) {
	if blank(userID) {
		return nil, ErrInvalidUserID
	}

	favorites, err := s.driverRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles := make(map[string]*domain.User)
	views := make([]domain.FavoriteDriverView, 0, len(favorites))
	for _, f := range favorites {
		if f.DriverID == "" {
			continue
		}

		v := domain.FavoriteDriverView{ID: f.ID, DriverID: f.DriverID, Name: f.Name}

		profile, seen := profiles[f.DriverID]
		if !seen && s.userRepo != nil {
			profile, err = s.userRepo.GetByID(ctx, f.DriverID)
			if err != nil {
				profile = nil
			}
			profiles[f.DriverID] = profile
		}
		if profile != nil {
			if v.Name == "" {
				v.Name = profile.Name
			}
			v.AvatarURL = profile.AvatarURL
			v.VehicleInfo = vehicleInfo(profile)
			v.CustomID = profile.CustomID
			if v.CustomID == "" {
				v.CustomID = profile.DriverIdentifier
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// Snapshots returns the current state of every subscribable collection for a user.
func (s *FavoritesService) Snapshots(ctx context.Context, userID string) ([]realtime.Message, error) {
	drivers, err := s.ListFavoriteDrivers(ctx, userID)
	if err != nil {
		return nil, err
	}
	locations, err := s.ListFavoriteLocations(ctx, userID)
	if err != nil {
		return nil, err
	}
	routes, err := s.ListSavedRoutes(ctx, userID)
	if err != nil {
		return nil, err
	}

	return []realtime.Message{
		{Collection: realtime.CollectionFavoriteDrivers, Docs: view.FavoriteDrivers(drivers)},
		{Collection: realtime.CollectionFavoriteLocations, Docs: view.FavoriteLocations(locations)},
		{Collection: realtime.CollectionSavedRoutes, Docs: view.SavedRoutes(routes)},
	}, nil
}

func (s *FavoritesService) subscribed(userID string) bool {
	return s.broadcaster != nil && s.broadcaster.HasSubscribers(userID)
}

func (s *FavoritesService) publishFavoriteLocations(ctx context.Context, userID string) {
	if !s.subscribed(userID) {
		return
	}
	locations, err := s.locationRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("failed to load favorite locations snapshot: user=%s err=%v", userID, err)
		return
	}
	s.broadcaster.Publish(userID, realtime.Message{
		Collection: realtime.CollectionFavoriteLocations,
		Docs:       view.FavoriteLocations(locations),
	})
}

func (s *FavoritesService) publishSavedRoutes(ctx context.Context, userID string) {
	if !s.subscribed(userID) {
		return
	}
	routes, err := s.routeRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Printf("failed to load saved routes snapshot: user=%s err=%v", userID, err)
		return
	}
	s.broadcaster.Publish(userID, realtime.Message{
		Collection: realtime.CollectionSavedRoutes,
		Docs:       view.SavedRoutes(routes),
	})
}

func (s *FavoritesService) publishFavoriteDrivers(ctx context.Context, userID string) {
	if !s.subscribed(userID) {
		return
	}
	drivers, err := s.ListFavoriteDrivers(ctx, userID)
	if err != nil {
		log.Printf("failed to load favorite drivers snapshot: user=%s err=%v", userID, err)
		return
	}
	s.broadcaster.Publish(userID, realtime.Message{
		Collection: realtime.CollectionFavoriteDrivers,
		Docs:       view.FavoriteDrivers(drivers),
	})
}

// vehicleInfo renders "<make model> - <registration>", dropping whichever part is missing.
func vehicleInfo(u *domain.User) string {
	info := u.VehicleMakeModel
	if u.VehicleRegistration != "" {
		info += " - " + u.VehicleRegistration
	}
	return info
}

func toLocationPoint(in LocationInput, invalid error) (domain.LocationPoint, error) {
	if blank(in.Address) || in.Latitude == nil || in.Longitude == nil {
		return domain.LocationPoint{}, invalid
	}
	if !isValidLatitude(*in.Latitude) || !isValidLongitude(*in.Longitude) {
		return domain.LocationPoint{}, ErrInvalidCoordinates
	}
	return domain.LocationPoint{
		Address:    strings.TrimSpace(in.Address),
		Latitude:   *in.Latitude,
		Longitude:  *in.Longitude,
		DoorOrFlat: strings.TrimSpace(in.DoorOrFlat),
	}, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
