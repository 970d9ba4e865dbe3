package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/model"
)

// EventType identifies a domain event emitted after a committed change.
type EventType string

const (
	EventOrderCreated  EventType = "order.created"
	EventStatusChanged EventType = "order.status.changed"
	EventDocumentAdded EventType = "order.document.added"
)

// Event is the typed domain event handed to the notification collaborator
// after commit. Dispatch is fire-and-forget; a failure is logged, never
// propagated to the caller.
type Event struct {
	Type           EventType         `json:"type"`
	OrderKey       string            `json:"order_key"`
	ProfileKey     string            `json:"profile_key"`
	ActorKey       string            `json:"actor_key"`
	PreviousStatus model.OrderStatus `json:"previous_status,omitempty"`
	NewStatus      model.OrderStatus `json:"new_status,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	DocumentLabel  string            `json:"document_label,omitempty"`
}

// Notifier receives domain events for asynchronous outbound notification.
type Notifier interface {
	Publish(ctx context.Context, evt Event) error
}

// LimitChecker is the external usage-limit collaborator consulted before an
// order is created. A deny returns an error wrapping apperr.ErrLimitExceeded.
type LimitChecker interface {
	AllowOrderCreate(ctx context.Context, profile *model.OrderProfile) error
}

// ObjectStorage removes stored file objects when their metadata row goes
// away. Removal is best-effort: a failure never blocks the core transaction.
type ObjectStorage interface {
	Remove(ctx context.Context, storageKey string) error
}

// AllowAllLimits is the default limit checker; every creation is permitted.
type AllowAllLimits struct{}

func (AllowAllLimits) AllowOrderCreate(context.Context, *model.OrderProfile) error { return nil }

// LogNotifier logs events instead of publishing them; used when no broker is
// configured and in tests.
type LogNotifier struct {
	Log *zap.Logger
}

func (n LogNotifier) Publish(_ context.Context, evt Event) error {
	n.Log.Info("order event",
		zap.String("type", string(evt.Type)),
		zap.String("order", evt.OrderKey),
		zap.String("actor", evt.ActorKey))
	return nil
}

// LogObjectStorage logs removals instead of calling a storage provider.
type LogObjectStorage struct {
	Log *zap.Logger
}

func (s LogObjectStorage) Remove(_ context.Context, storageKey string) error {
	s.Log.Info("object removal requested", zap.String("storage_key", storageKey))
	return nil
}
