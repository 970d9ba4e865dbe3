// Package orders defines types for Kafka event processing of payment-order
// lifecycle events.
package orders

import (
	"time"

	"github.com/orderhub/orderhub-backend/model"
)

// OrderEventEnvelope is the wire contract for order lifecycle events
// published to Kafka.
type OrderEventEnvelope struct {
	EventType     string    `json:"event_type"`
	EventID       string    `json:"event_id"`
	EventTime     time.Time `json:"event_time"`
	SchemaVersion string    `json:"schema_version"`

	OrderKey   string `json:"order_key"`
	ProfileKey string `json:"profile_key,omitempty"`
	ActorKey   string `json:"actor_key"`

	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
	NewStatus      model.OrderStatus `json:"new_status,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	DocumentLabel  string            `json:"document_label,omitempty"`
}
