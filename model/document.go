package model

import "time"

// OrderDocument holds the metadata of a file uploaded against an order.
// The bytes themselves live with the external storage collaborator; only the
// storage key, URL, MIME type and size are recorded here.
//
// At most one document exists per (order, requirement label); uploading the
// same label again replaces the prior document.
type OrderDocument struct {
	Key              string    `json:"_key,omitempty"`
	OrderKey         string    `json:"order_key"`
	UploadedByKey    string    `json:"uploaded_by_key"`
	RequirementLabel string    `json:"requirement_label"`
	FileName         string    `json:"file_name"`
	StorageKey       string    `json:"storage_key"`
	URL              string    `json:"url"`
	MimeType         string    `json:"mime_type"`
	SizeBytes        int64     `json:"size_bytes"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewOrderDocument creates a document metadata row with the timestamp set.
func NewOrderDocument(orderKey, uploadedByKey, label string) *OrderDocument {
	return &OrderDocument{
		OrderKey:         orderKey,
		UploadedByKey:    uploadedByKey,
		RequirementLabel: label,
		CreatedAt:        time.Now().UTC(),
	}
}
