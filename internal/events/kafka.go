// Package events publishes booking events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"ridebook/internal/domain"
	"ridebook/internal/observability"
)

// KafkaPublisher writes booking events keyed by booking ID, so one booking's
// events stay ordered within a partition. Writes are asynchronous: requests
// never wait on the broker, and delivery results are logged and counted.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
			Async:        true,
			Completion:   logCompletion,
		},
	}
}

// PublishBookingEvent queues one event for delivery.
func (p *KafkaPublisher) PublishBookingEvent(ctx context.Context, event domain.BookingEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode booking event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.BookingID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func logCompletion(messages []kafka.Message, err error) {
	if err != nil {
		observability.BookingEventsTotal.WithLabelValues("failed").Add(float64(len(messages)))
		for _, m := range messages {
			log.Printf("failed to deliver booking event: booking=%s err=%v", m.Key, err)
		}
		return
	}
	observability.BookingEventsTotal.WithLabelValues("delivered").Add(float64(len(messages)))
}
