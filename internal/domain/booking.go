package domain

import "time"

// BookingStatus represents where a booking is in its lifecycle.
type BookingStatus string

const (
	BookingStatusPending              BookingStatus = "pending"
	BookingStatusAccepted             BookingStatus = "accepted"
	BookingStatusDeclined             BookingStatus = "declined"
	BookingStatusActive               BookingStatus = "active"
	BookingStatusDriverAssigned       BookingStatus = "driver_assigned"
	BookingStatusArrivedAtPickup      BookingStatus = "arrived_at_pickup"
	BookingStatusInProgress           BookingStatus = "in_progress"
	BookingStatusCompleted            BookingStatus = "completed"
	BookingStatusCancelledByDriver    BookingStatus = "cancelled_by_driver"
	BookingStatusCancelledByPassenger BookingStatus = "cancelled_by_passenger"
)

// Valid reports whether s is a known status label.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusDeclined,
		BookingStatusActive, BookingStatusDriverAssigned, BookingStatusArrivedAtPickup,
		BookingStatusInProgress, BookingStatusCompleted,
		BookingStatusCancelledByDriver, BookingStatusCancelledByPassenger:
		return true
	}
	return false
}

// Terminal reports whether no further updates are accepted in this status.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusDeclined,
		BookingStatusCancelledByDriver, BookingStatusCancelledByPassenger:
		return true
	}
	return false
}

// BookingAction is a driver or passenger action applied to a booking.
type BookingAction string

const (
	BookingActionNotifyArrival      BookingAction = "notify_arrival"
	BookingActionAcknowledgeArrival BookingAction = "acknowledge_arrival"
	BookingActionStartRide          BookingAction = "start_ride"
	BookingActionCompleteRide       BookingAction = "complete_ride"
	BookingActionCancelActive       BookingAction = "cancel_active"
)

// Booking represents a ride booking.
type Booking struct {
	ID              string
	PassengerID     string
	PassengerName   string
	PassengerPhone  string
	PassengerRating float64
	PickupLocation  LocationPoint
	DropoffLocation LocationPoint
	Stops           []LocationPoint
	FareEstimate    float64
	DistanceMiles   float64
	PassengerCount  int
	Notes           string
	Status          BookingStatus
	DriverID        string
	DriverName      string

	NotifiedPassengerArrivalAt     time.Time
	PassengerAcknowledgedArrivalAt time.Time
	RideStartedAt                  time.Time
	CompletedAt                    time.Time
	CancelledAt                    time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
