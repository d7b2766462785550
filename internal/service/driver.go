package service

import (
	"context"
	"log"
	"sort"

	"ridebook/internal/domain"
	"ridebook/internal/observability"
	"ridebook/internal/redis"
	"ridebook/internal/repository"
)

const (
	defaultSearchRadiusKm      = 5.0
	defaultRideRequestRadiusKm = 10.0
	rideRequestScanLimit       = 200
)

// DriverService handles driver availability, positions and the ride-offer feed.
type DriverService struct {
	locationStore redis.LocationStoreInterface
	availability  redis.AvailabilityStoreInterface
	bookingRepo   repository.BookingRepository
}

// NewDriverService creates a new DriverService.
func NewDriverService(
	locationStore redis.LocationStoreInterface,
	availability redis.AvailabilityStoreInterface,
	bookingRepo repository.BookingRepository,
) *DriverService {
	return &DriverService{
		locationStore: locationStore,
		availability:  availability,
		bookingRepo:   bookingRepo,
	}
}

// SetAvailabilityRequest contains the parameters for going online or offline.
type SetAvailabilityRequest struct {
	DriverID string
	Online   bool
	Lat      *float64 // Optional: recorded when going online
	Lng      *float64
}

// SetAvailability moves a driver in or out of the online set.
// Going offline also drops the driver from the geo index.
func (s *DriverService) SetAvailability(ctx context.Context, req SetAvailabilityRequest) error {
	if blank(req.DriverID) {
		return ErrInvalidDriverID
	}

	if !req.Online {
		if err := s.availability.RemoveOnlineDriver(ctx, req.DriverID); err != nil {
			return err
		}
		if err := s.locationStore.RemoveLocation(ctx, req.DriverID); err != nil {
			return err
		}
		s.refreshOnlineGauge(ctx)
		return nil
	}

	if (req.Lat == nil) != (req.Lng == nil) {
		return ErrInvalidLocation
	}
	if req.Lat != nil {
		if !isValidLatitude(*req.Lat) || !isValidLongitude(*req.Lng) {
			return ErrInvalidLocation
		}
		if err := s.locationStore.UpdateLocation(ctx, req.DriverID, *req.Lat, *req.Lng); err != nil {
			return err
		}
	}

	if err := s.availability.AddOnlineDriver(ctx, req.DriverID); err != nil {
		return err
	}
	s.refreshOnlineGauge(ctx)
	return nil
}

// UpdateLocationRequest contains the parameters for updating driver location.
type UpdateLocationRequest struct {
	DriverID string
	Lat      float64
	Lng      float64
}

// UpdateLocation records a driver's position. Offline drivers are rejected.
func (s *DriverService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) error {
	if blank(req.DriverID) {
		return ErrInvalidDriverID
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	online, err := s.availability.IsDriverOnline(ctx, req.DriverID)
	if err != nil {
		return err
	}
	if !online {
		return ErrDriverOffline
	}

	return s.locationStore.UpdateLocation(ctx, req.DriverID, req.Lat, req.Lng)
}

// NearbyDriversRequest contains the parameters for a nearby search.
type NearbyDriversRequest struct {
	Lat      float64
	Lng      float64
	RadiusKm float64 // Optional: 0 uses default
}

// NearbyDrivers returns online drivers within the radius, nearest first.
func (s *DriverService) NearbyDrivers(ctx context.Context, req NearbyDriversRequest) ([]redis.DriverLocation, error) {
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return nil, ErrInvalidLocation
	}
	radiusKm := req.RadiusKm
	if radiusKm <= 0 {
		radiusKm = defaultSearchRadiusKm
	}

	locations, err := s.locationStore.FindNearbyDrivers(ctx, req.Lat, req.Lng, radiusKm)
	if err != nil {
		return nil, err
	}

	nearby := make([]redis.DriverLocation, 0, len(locations))
	for _, loc := range locations {
		online, err := s.availability.IsDriverOnline(ctx, loc.DriverID)
		if err != nil {
			return nil, err
		}
		if online {
			nearby = append(nearby, loc)
		}
	}
	return nearby, nil
}

// RideRequest is a pending booking offered to a driver.
type RideRequest struct {
	Booking    *domain.Booking
	DistanceKm float64 // From the driver to the pickup point
}

// RideRequests returns pending bookings whose pickup lies within radiusKm of the
// driver, closest first. Each booking's DistanceMiles is filled in when missing.
func (s *DriverService) RideRequests(ctx context.Context, driverID string, radiusKm float64) ([]RideRequest, error) {
	if blank(driverID) {
		return nil, ErrInvalidDriverID
	}
	if radiusKm <= 0 {
		radiusKm = defaultRideRequestRadiusKm
	}

	online, err := s.availability.IsDriverOnline(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if !online {
		return nil, ErrDriverOffline
	}

	position, err := s.locationStore.GetLocation(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, ErrDriverLocationUnknown
	}

	pending, err := s.bookingRepo.List(ctx, repository.BookingFilter{
		Status: domain.BookingStatusPending,
		Limit:  rideRequestScanLimit,
	})
	if err != nil {
		return nil, err
	}

	requests := make([]RideRequest, 0, len(pending))
	for _, b := range pending {
		d := haversineKm(position.Lat, position.Lng, b.PickupLocation.Latitude, b.PickupLocation.Longitude)
		if d > radiusKm {
			continue
		}
		if b.DistanceMiles == 0 {
			b.DistanceMiles = routeMiles(b.PickupLocation, b.Stops, b.DropoffLocation)
		}
		requests = append(requests, RideRequest{Booking: b, DistanceKm: roundTo(d, 3)})
	}

	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].DistanceKm < requests[j].DistanceKm
	})
	return requests, nil
}

func (s *DriverService) refreshOnlineGauge(ctx context.Context) {
	count, err := s.availability.OnlineDriverCount(ctx)
	if err != nil {
		log.Printf("failed to count online drivers: %v", err)
		return
	}
	observability.DriversOnline.Set(float64(count))
}
