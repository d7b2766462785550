package domain

import "time"

// BookingEventType names what happened to a booking.
type BookingEventType string

const (
	BookingEventCreated       BookingEventType = "BOOKING_CREATED"
	BookingEventStatusChanged BookingEventType = "BOOKING_STATUS_CHANGED"
	BookingEventArrivalNotice BookingEventType = "PASSENGER_ARRIVAL_NOTIFIED"
	BookingEventArrivalAck    BookingEventType = "PASSENGER_ARRIVAL_ACKNOWLEDGED"
)

// BookingEvent is published whenever a booking is created or changes.
type BookingEvent struct {
	Type           BookingEventType `json:"type"`
	BookingID      string           `json:"bookingId"`
	PassengerID    string           `json:"passengerId"`
	DriverID       string           `json:"driverId,omitempty"`
	Status         BookingStatus    `json:"status"`
	PreviousStatus BookingStatus    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time        `json:"occurredAt"`
}
