// Package orders handles Kafka event consumption for payment-order lifecycle
// events.
package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/internal/workflow"
)

// NotificationDispatcher delivers a consumed order event to the people who
// should hear about it (mail, chat webhooks, and so on).
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, envelope OrderEventEnvelope) error
}

// HandleOrderEvent processes one order lifecycle event from Kafka and hands
// it to the dispatcher. Malformed or incomplete messages are rejected so the
// consumer can log and move on.
func HandleOrderEvent(ctx context.Context, msg []byte, dispatcher NotificationDispatcher, log *zap.Logger) error {
	var envelope OrderEventEnvelope
	if err := json.Unmarshal(msg, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	if envelope.OrderKey == "" || envelope.EventType == "" {
		return fmt.Errorf("invalid order event: missing required fields")
	}

	switch workflow.EventType(envelope.EventType) {
	case workflow.EventOrderCreated, workflow.EventStatusChanged, workflow.EventDocumentAdded:
	default:
		return fmt.Errorf("unknown order event type %q", envelope.EventType)
	}

	log.Info("processing order event",
		zap.String("type", envelope.EventType),
		zap.String("order", envelope.OrderKey),
		zap.String("actor", envelope.ActorKey))

	if err := dispatcher.Dispatch(ctx, envelope); err != nil {
		return fmt.Errorf("notification dispatch failed: %w", err)
	}
	return nil
}

// LogDispatcher is the default dispatcher; it only logs the delivery. Real
// channels plug in behind NotificationDispatcher.
type LogDispatcher struct {
	Log *zap.Logger
}

func (d LogDispatcher) Dispatch(_ context.Context, envelope OrderEventEnvelope) error {
	d.Log.Info("order notification",
		zap.String("type", envelope.EventType),
		zap.String("order", envelope.OrderKey),
		zap.String("new_status", string(envelope.NewStatus)))
	return nil
}
