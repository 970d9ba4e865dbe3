// Package orders handles Kafka event production for payment-order lifecycle
// events.
package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/orderhub/orderhub-backend/internal/workflow"
)

// OrderProducer publishes order lifecycle events to Kafka. It satisfies
// workflow.Notifier.
type OrderProducer struct {
	Writer *kafka.Writer
}

// NewOrderProducer initializes a Kafka writer for order events.
func NewOrderProducer(brokers []string, topic string) *OrderProducer {
	return &OrderProducer{
		Writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends one domain event to the order topic. Messages are keyed by
// order so consumers see a given order's events in commit order.
func (p *OrderProducer) Publish(ctx context.Context, evt workflow.Event) error {
	envelope := OrderEventEnvelope{
		EventType:      string(evt.Type),
		EventID:        uuid.New().String(),
		EventTime:      time.Now().UTC(),
		SchemaVersion:  "v1",
		OrderKey:       evt.OrderKey,
		ProfileKey:     evt.ProfileKey,
		ActorKey:       evt.ActorKey,
		PreviousStatus: evt.PreviousStatus,
		NewStatus:      evt.NewStatus,
		Comment:        evt.Comment,
		DocumentLabel:  evt.DocumentLabel,
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.OrderKey),
		Value: payload,
	})
}

// Close cleans up the Kafka writer.
func (p *OrderProducer) Close() error {
	return p.Writer.Close()
}
