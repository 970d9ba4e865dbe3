package model

import "time"

// HistoryAction is the closed set of facts the ledger can record.
type HistoryAction string

const (
	ActionCreated         HistoryAction = "CREATED"
	ActionStatusChanged   HistoryAction = "STATUS_CHANGED"
	ActionDocumentAdded   HistoryAction = "DOCUMENT_ADDED"
	ActionDocumentRemoved HistoryAction = "DOCUMENT_REMOVED"
	ActionUpdated         HistoryAction = "UPDATED"
	ActionCommentAdded    HistoryAction = "COMMENT_ADDED"
)

// HistoryEntry is one immutable audit record of a fact that occurred on an
// order. Entries are append-only: corrections are represented as new entries,
// never edits. The canonical timeline orders by CreatedAt ascending.
type HistoryEntry struct {
	Key            string            `json:"_key,omitempty"`
	OrderKey       string            `json:"order_key"`
	UserKey        string            `json:"user_key"` // "system" for automatic transitions
	Action         HistoryAction     `json:"action"`
	PreviousStatus OrderStatus       `json:"previous_status,omitempty"`
	NewStatus      OrderStatus       `json:"new_status,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// NewHistoryEntry creates a ledger entry with the server timestamp set.
func NewHistoryEntry(orderKey, userKey string, action HistoryAction) *HistoryEntry {
	return &HistoryEntry{
		OrderKey:  orderKey,
		UserKey:   userKey,
		Action:    action,
		CreatedAt: time.Now().UTC(),
	}
}

// HistoryEntryView is a ledger entry enriched with actor display info at read
// time. Enrichment is a read-time join, not part of the stored row.
type HistoryEntryView struct {
	HistoryEntry
	ActorName   string `json:"actor_name,omitempty"`
	ActorEmail  string `json:"actor_email,omitempty"`
	ActorAvatar string `json:"actor_avatar,omitempty"`
}
