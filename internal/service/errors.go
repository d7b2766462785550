package service

import "errors"

var (
	// ErrMissingFavoriteLocationFields is returned when a favorite location lacks a required field.
	ErrMissingFavoriteLocationFields = errors.New("missing required fields: userId, label, address, latitude, longitude")

	// ErrMissingSavedRouteFields is returned when a saved route lacks a required field.
	ErrMissingSavedRouteFields = errors.New("missing required fields: userId, label, pickupLocation, dropoffLocation")

	// ErrInvalidPickupLocation is returned when a pickup location is incomplete.
	ErrInvalidPickupLocation = errors.New("invalid pickupLocation: address, latitude, and longitude are required")

	// ErrInvalidDropoffLocation is returned when a dropoff location is incomplete.
	ErrInvalidDropoffLocation = errors.New("invalid dropoffLocation: address, latitude, and longitude are required")

	// ErrInvalidStop is returned when an intermediate stop is incomplete.
	ErrInvalidStop = errors.New("invalid stop: address, latitude, and longitude are required")

	// ErrInvalidCoordinates is returned when coordinates are out of range.
	ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")

	// ErrMissingFavoriteDriverFields is returned when a favorite driver lacks user or driver ID.
	ErrMissingFavoriteDriverFields = errors.New("missing user or driver ID")

	// ErrInvalidUserID is returned when user ID is empty.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidBookingID is returned when booking ID is empty.
	ErrInvalidBookingID = errors.New("invalid booking id")

	// ErrInvalidPassengerID is returned when passenger ID is empty.
	ErrInvalidPassengerID = errors.New("invalid passenger id")

	// ErrInvalidPassengerCount is returned when passenger count is negative.
	ErrInvalidPassengerCount = errors.New("invalid passenger count")

	// ErrMissingBookingUpdate is returned when neither action nor status is given.
	ErrMissingBookingUpdate = errors.New("either action or status is required")

	// ErrInvalidBookingAction is returned for an unknown action.
	ErrInvalidBookingAction = errors.New("invalid booking action")

	// ErrInvalidBookingStatus is returned for an unknown status label.
	ErrInvalidBookingStatus = errors.New("invalid booking status")

	// ErrBookingClosed is returned when updating a completed, declined or cancelled booking.
	ErrBookingClosed = errors.New("booking is already closed")

	// ErrBookingBusy is returned when another update of the same booking is in flight.
	ErrBookingBusy = errors.New("booking is being updated, retry shortly")

	// ErrInvalidDriverID is returned when driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrDriverOffline is returned for location updates or ride requests while offline.
	ErrDriverOffline = errors.New("driver is offline")

	// ErrDriverLocationUnknown is returned when no position is stored for an online driver.
	ErrDriverLocationUnknown = errors.New("driver location unknown")

	// ErrInvalidName is returned when a user name is empty.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidRole is returned for an unknown role.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUnknownIdentifierKind is returned when no prefix is registered for a kind.
	ErrUnknownIdentifierKind = errors.New("unknown identifier kind")
)
