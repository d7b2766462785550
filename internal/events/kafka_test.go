package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"

	"ridebook/internal/domain"
	"ridebook/internal/observability"
)

func TestPublishBookingEvent_DoesNotWaitForBroker(t *testing.T) {
	// Nothing listens on this port.
	publisher := NewKafkaPublisher([]string{"127.0.0.1:1"}, "booking-events")

	start := time.Now()
	err := publisher.PublishBookingEvent(context.Background(), domain.BookingEvent{
		Type:       domain.BookingEventCreated,
		BookingID:  "booking-1",
		Status:     domain.BookingStatusPending,
		OccurredAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("expected publish to return immediately, took %v", elapsed)
	}
}

func TestLogCompletion_CountsResults(t *testing.T) {
	delivered := observability.BookingEventsTotal.WithLabelValues("delivered")
	failed := observability.BookingEventsTotal.WithLabelValues("failed")
	beforeDelivered := testutil.ToFloat64(delivered)
	beforeFailed := testutil.ToFloat64(failed)

	messages := []kafka.Message{{Key: []byte("booking-1")}, {Key: []byte("booking-2")}}
	logCompletion(messages, nil)
	logCompletion(messages[:1], errors.New("broker unreachable"))

	if got := testutil.ToFloat64(delivered) - beforeDelivered; got != 2 {
		t.Errorf("expected 2 delivered, got %v", got)
	}
	if got := testutil.ToFloat64(failed) - beforeFailed; got != 1 {
		t.Errorf("expected 1 failed, got %v", got)
	}
}
