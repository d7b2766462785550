package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"ridebook/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationBookingCreated      NotificationType = "BOOKING_CREATED"
	NotificationDriverAssigned      NotificationType = "DRIVER_ASSIGNED"
	NotificationDriverArrived       NotificationType = "DRIVER_ARRIVED"
	NotificationArrivalAcknowledged NotificationType = "ARRIVAL_ACKNOWLEDGED"
	NotificationRideStarted         NotificationType = "RIDE_STARTED"
	NotificationRideCompleted       NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled       NotificationType = "RIDE_CANCELLED"
	NotificationBookingUpdated      NotificationType = "BOOKING_UPDATED"
)

// Notification represents a notification to be sent.
type Notification struct {
	Type        NotificationType
	RecipientID string
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// EventPublisher publishes booking events to downstream consumers.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error
}

// NotificationService tells the other party about booking changes and emits
// booking events when a publisher is configured.
type NotificationService struct {
	publisher EventPublisher
	now       func() time.Time
}

// NewNotificationService creates a new NotificationService. publisher may be nil.
func NewNotificationService(publisher EventPublisher) *NotificationService {
	return &NotificationService{publisher: publisher, now: time.Now}
}

// NotifyBookingCreated records a new booking.
func (s *NotificationService) NotifyBookingCreated(ctx context.Context, booking *domain.Booking) error {
	s.send(Notification{
		Type:        NotificationBookingCreated,
		RecipientID: booking.PassengerID,
		Title:       "Booking Received",
		Message:     fmt.Sprintf("Your ride from %s has been booked", booking.PickupLocation.Address),
		Data: map[string]interface{}{
			"booking_id": booking.ID,
			"status":     booking.Status,
		},
		CreatedAt: s.now(),
	})

	return s.publish(ctx, domain.BookingEvent{
		Type:        domain.BookingEventCreated,
		BookingID:   booking.ID,
		PassengerID: booking.PassengerID,
		Status:      booking.Status,
	})
}

// NotifyBookingUpdated tells the passenger or driver what changed and emits the matching event.
func (s *NotificationService) NotifyBookingUpdated(ctx context.Context, booking *domain.Booking, previous domain.BookingStatus, action domain.BookingAction) error {
	n := Notification{
		RecipientID: booking.PassengerID,
		Data: map[string]interface{}{
			"booking_id":      booking.ID,
			"status":          booking.Status,
			"previous_status": previous,
		},
		CreatedAt: s.now(),
	}
	eventType := domain.BookingEventStatusChanged

	switch {
	case action == domain.BookingActionNotifyArrival:
		n.Type = NotificationDriverArrived
		n.Title = "Driver Arrived"
		n.Message = "Your driver is waiting at the pickup point"
		eventType = domain.BookingEventArrivalNotice
	case action == domain.BookingActionAcknowledgeArrival:
		n.Type = NotificationArrivalAcknowledged
		n.RecipientID = booking.DriverID
		n.Title = "Passenger On The Way"
		n.Message = "The passenger has acknowledged your arrival"
		eventType = domain.BookingEventArrivalAck
	case booking.Status == domain.BookingStatusDriverAssigned:
		n.Type = NotificationDriverAssigned
		n.Title = "Driver Assigned"
		n.Message = fmt.Sprintf("%s is on the way", nonEmpty(booking.DriverName, "Your driver"))
	case booking.Status == domain.BookingStatusInProgress:
		n.Type = NotificationRideStarted
		n.Title = "Ride Started"
		n.Message = "Your ride has started"
	case booking.Status == domain.BookingStatusCompleted:
		n.Type = NotificationRideCompleted
		n.Title = "Ride Completed"
		n.Message = "Thanks for riding with us"
	case booking.Status == domain.BookingStatusCancelledByDriver,
		booking.Status == domain.BookingStatusCancelledByPassenger:
		n.Type = NotificationRideCancelled
		n.Title = "Ride Cancelled"
		n.Message = "Your ride has been cancelled"
		if booking.Status == domain.BookingStatusCancelledByPassenger {
			n.RecipientID = booking.DriverID
			n.Message = "The passenger has cancelled the ride"
		}
	default:
		n.Type = NotificationBookingUpdated
		n.Title = "Booking Updated"
		n.Message = fmt.Sprintf("Your booking is now %s", booking.Status)
	}

	if n.RecipientID != "" {
		s.send(n)
	}

	return s.publish(ctx, domain.BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		PassengerID:    booking.PassengerID,
		DriverID:       booking.DriverID,
		Status:         booking.Status,
		PreviousStatus: previous,
	})
}

func (s *NotificationService) publish(ctx context.Context, event domain.BookingEvent) error {
	if s.publisher == nil {
		return nil
	}
	event.OccurredAt = s.now().UTC()
	if err := s.publisher.PublishBookingEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// send delivers a notification. Delivery channels are not wired yet, so it is logged.
func (s *NotificationService) send(notification Notification) {
	log.Printf("[NOTIFICATION] Type=%s, Recipient=%s, Title=%s, Message=%s",
		notification.Type, notification.RecipientID, notification.Title, notification.Message)
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
