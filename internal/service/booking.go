package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridebook/internal/domain"
	"ridebook/internal/observability"
	"ridebook/internal/redis"
	"ridebook/internal/repository"
)

const bookingLockTTL = 10 * time.Second

// actionStatuses maps each action to the status it moves a booking into.
// An empty status leaves the current one untouched.
var actionStatuses = map[domain.BookingAction]domain.BookingStatus{
	domain.BookingActionNotifyArrival:      domain.BookingStatusArrivedAtPickup,
	domain.BookingActionAcknowledgeArrival: "",
	domain.BookingActionStartRide:          domain.BookingStatusInProgress,
	domain.BookingActionCompleteRide:       domain.BookingStatusCompleted,
	domain.BookingActionCancelActive:       domain.BookingStatusCancelledByDriver,
}

// BookingNotifier is told about booking changes after they are persisted.
type BookingNotifier interface {
	NotifyBookingCreated(ctx context.Context, booking *domain.Booking) error
	NotifyBookingUpdated(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus, action domain.BookingAction) error
}

var _ BookingNotifier = (*NotificationService)(nil)

// BookingService handles the booking lifecycle.
type BookingService struct {
	bookingRepo repository.BookingRepository
	lockStore   redis.LockStoreInterface
	cache       redis.BookingCacheInterface
	notifier    BookingNotifier
	now         func() time.Time
}

// NewBookingService creates a new BookingService. lockStore, cache and notifier may be nil.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	lockStore redis.LockStoreInterface,
	cache redis.BookingCacheInterface,
	notifier BookingNotifier,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		lockStore:   lockStore,
		cache:       cache,
		notifier:    notifier,
		now:         time.Now,
	}
}

// CreateBookingRequest contains the parameters for creating a booking.
type CreateBookingRequest struct {
	PassengerID     string
	PassengerName   string
	PassengerPhone  string
	PassengerRating float64
	PickupLocation  *LocationInput
	DropoffLocation *LocationInput
	Stops           []LocationInput
	FareEstimate    float64
	PassengerCount  int // Optional: 0 means one passenger
	Notes           string
}

// CreateBooking validates and persists a new pending booking.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if blank(req.PassengerID) {
		return nil, ErrInvalidPassengerID
	}
	if req.PickupLocation == nil {
		return nil, ErrInvalidPickupLocation
	}
	if req.DropoffLocation == nil {
		return nil, ErrInvalidDropoffLocation
	}
	if req.PassengerCount < 0 {
		return nil, ErrInvalidPassengerCount
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

	passengers := req.PassengerCount
	if passengers == 0 {
		passengers = 1
	}

	now := s.now().UTC()
	booking := &domain.Booking{
		ID:              uuid.New().String(),
		PassengerID:     strings.TrimSpace(req.PassengerID),
		PassengerName:   strings.TrimSpace(req.PassengerName),
		PassengerPhone:  strings.TrimSpace(req.PassengerPhone),
		PassengerRating: req.PassengerRating,
		PickupLocation:  pickup,
		DropoffLocation: dropoff,
		Stops:           stops,
		FareEstimate:    req.FareEstimate,
		DistanceMiles:   routeMiles(pickup, stops, dropoff),
		PassengerCount:  passengers,
		Notes:           strings.TrimSpace(req.Notes),
		Status:          domain.BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}
	observability.DocumentsCreatedTotal.WithLabelValues("bookings").Inc()

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingCreated(ctx, booking); err != nil {
			log.Printf("failed to notify booking created: booking=%s err=%v", booking.ID, err)
		}
	}

	return booking, nil
}

// GetBooking returns a booking, serving from cache when possible.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if blank(id) {
		return nil, ErrInvalidBookingID
	}

	if s.cache != nil {
		if cached, err := s.cache.GetBooking(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.FillBooking(ctx, booking)
	}
	return booking, nil
}

// ListBookings returns bookings newest first, optionally narrowed to one status.
func (s *BookingService) ListBookings(ctx context.Context, status domain.BookingStatus, limit int) ([]*domain.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidBookingStatus
	}
	return s.bookingRepo.List(ctx, repository.BookingFilter{Status: status, Limit: limit})
}

// UpdateBookingRequest carries either an action or an explicit status.
// When both are set the action wins.
type UpdateBookingRequest struct {
	BookingID  string
	Action     domain.BookingAction
	Status     domain.BookingStatus
	DriverID   string
	DriverName string
}

// UpdateBooking applies a driver/operator update to a booking.
// Updates of one booking are serialized; closed bookings are left untouched.
func (s *BookingService) UpdateBooking(ctx context.Context, req UpdateBookingRequest) (*domain.Booking, error) {
	if blank(req.BookingID) {
		return nil, ErrInvalidBookingID
	}

	var (
		target    domain.BookingStatus
		hasTarget bool
	)
	switch {
	case req.Action != "":
		status, ok := actionStatuses[req.Action]
		if !ok {
			return nil, ErrInvalidBookingAction
		}
		target, hasTarget = status, status != ""
	case req.Status != "":
		if !req.Status.Valid() {
			return nil, ErrInvalidBookingStatus
		}
		target, hasTarget = req.Status, true
	default:
		return nil, ErrMissingBookingUpdate
	}

	if s.lockStore != nil {
		token, err := s.lockStore.AcquireBookingLock(ctx, req.BookingID, bookingLockTTL)
		if err != nil {
			return nil, err
		}
		if token == "" {
			return nil, ErrBookingBusy
		}
		defer func() {
			if err := s.lockStore.ReleaseBookingLock(ctx, req.BookingID, token); err != nil {
				log.Printf("failed to release booking lock: booking=%s err=%v", req.BookingID, err)
			}
		}()
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status.Terminal() {
		return nil, ErrBookingClosed
	}

	previous := booking.Status
	now := s.now().UTC()

	switch req.Action {
	case domain.BookingActionNotifyArrival:
		booking.NotifiedPassengerArrivalAt = now
	case domain.BookingActionAcknowledgeArrival:
		booking.PassengerAcknowledgedArrivalAt = now
	case domain.BookingActionStartRide:
		booking.RideStartedAt = now
	case domain.BookingActionCompleteRide:
		booking.CompletedAt = now
	case domain.BookingActionCancelActive:
		booking.CancelledAt = now
	case "":
		switch target {
		case domain.BookingStatusDriverAssigned:
			if id := strings.TrimSpace(req.DriverID); id != "" {
				booking.DriverID = id
			}
			if name := strings.TrimSpace(req.DriverName); name != "" {
				booking.DriverName = name
			}
		case domain.BookingStatusArrivedAtPickup:
			booking.NotifiedPassengerArrivalAt = now
		case domain.BookingStatusInProgress:
			booking.RideStartedAt = now
		case domain.BookingStatusCompleted:
			booking.CompletedAt = now
		case domain.BookingStatusCancelledByDriver, domain.BookingStatusCancelledByPassenger:
			booking.CancelledAt = now
		}
	}
	if hasTarget {
		booking.Status = target
	}
	booking.UpdatedAt = now

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	// Read-through fills never overwrite, so the written copy stays authoritative.
	if s.cache != nil {
		if err := s.cache.SetBooking(ctx, booking); err != nil {
			log.Printf("failed to refresh booking cache: booking=%s err=%v", booking.ID, err)
			if err := s.cache.InvalidateBooking(ctx, booking.ID); err != nil {
				log.Printf("failed to invalidate booking cache: booking=%s err=%v", booking.ID, err)
			}
		}
	}
	observability.BookingUpdatesTotal.WithLabelValues(string(booking.Status)).Inc()

	if s.notifier != nil {
		if err := s.notifier.NotifyBookingUpdated(ctx, booking, previous, req.Action); err != nil {
			log.Printf("failed to notify booking update: booking=%s err=%v", booking.ID, err)
		}
	}

	return booking, nil
}

// routeMiles is the straight-line length of pickup, stops and dropoff in order.
func routeMiles(pickup domain.LocationPoint, stops []domain.LocationPoint, dropoff domain.LocationPoint) float64 {
	points := make([]domain.LocationPoint, 0, len(stops)+2)
	points = append(points, pickup)
	points = append(points, stops...)
	points = append(points, dropoff)

	var km float64
	for i := 1; i < len(points); i++ {
		km += haversineKm(points[i-1].Latitude, points[i-1].Longitude, points[i].Latitude, points[i].Longitude)
	}
	return roundTo(kmToMiles(km), 2)
}
