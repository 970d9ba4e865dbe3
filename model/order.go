package model

import "time"

// OrderStatus is the closed set of payment-order lifecycle states.
type OrderStatus string

const (
	StatusCreated      OrderStatus = "CREATED"
	StatusInReview     OrderStatus = "IN_REVIEW"
	StatusNeedsSupport OrderStatus = "NEEDS_SUPPORT"
	StatusApproved     OrderStatus = "APPROVED"
	StatusPaid         OrderStatus = "PAID"
	StatusReconciled   OrderStatus = "RECONCILED"
	StatusRejected     OrderStatus = "REJECTED"
	StatusCancelled    OrderStatus = "CANCELLED"
)

// AllStatuses lists every status variant; used for exhaustive transition checks.
var AllStatuses = []OrderStatus{
	StatusCreated,
	StatusInReview,
	StatusNeedsSupport,
	StatusApproved,
	StatusPaid,
	StatusReconciled,
	StatusRejected,
	StatusCancelled,
}

// Valid reports whether the status is one of the known variants.
func (s OrderStatus) Valid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsFinal reports whether the status is terminal. Once an order is final,
// documents can no longer be added or deleted.
func (s OrderStatus) IsFinal() bool {
	return s == StatusReconciled || s == StatusRejected || s == StatusCancelled
}

// PaymentOrder is a payment request submitted against a profile. It is created
// in CREATED and only moves forward through the state machine; it is never
// deleted (cancellation is a terminal status, not removal).
type PaymentOrder struct {
	Key          string      `json:"_key,omitempty"`
	Rev          string      `json:"_rev,omitempty"`
	ProfileKey   string      `json:"profile_key"`
	CreatedByKey string      `json:"created_by_key"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	Reason       string      `json:"reason"`
	Amount       float64     `json:"amount"`
	Currency     string      `json:"currency"`
	Status       OrderStatus `json:"status"`
	TagKey       string      `json:"tag_key,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewPaymentOrder creates an order in CREATED with timestamps set.
func NewPaymentOrder(profileKey, createdByKey, title, reason string, amount float64, currency string) *PaymentOrder {
	now := time.Now().UTC()
	return &PaymentOrder{
		ProfileKey:   profileKey,
		CreatedByKey: createdByKey,
		Title:        title,
		Reason:       reason,
		Amount:       amount,
		Currency:     currency,
		Status:       StatusCreated,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
