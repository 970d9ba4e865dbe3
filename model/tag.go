package model

import "time"

// FileRequirement declares one document a tag demands before submission.
// The label correlates the requirement with an uploaded document.
type FileRequirement struct {
	Label            string   `json:"label"`
	Description      string   `json:"description,omitempty"`
	AllowedMimeTypes []string `json:"allowed_mime_types"`
	MaxFileSizeMB    int64    `json:"max_file_size_mb,omitempty"`
	Required         bool     `json:"required"`
}

// AllowsMimeType reports whether the uploaded MIME type is acceptable.
func (r FileRequirement) AllowsMimeType(mimeType string) bool {
	for _, m := range r.AllowedMimeTypes {
		if m == mimeType {
			return true
		}
	}
	return false
}

// MaxFileSizeBytes converts the MB cap to bytes; zero means no cap.
func (r FileRequirement) MaxFileSizeBytes() int64 {
	return r.MaxFileSizeMB * 1024 * 1024
}

// Tag is a labeled category attachable to an order, optionally carrying the
// file requirements that gate submission.
type Tag struct {
	Key              string            `json:"_key,omitempty"`
	ProfileKey       string            `json:"profile_key"`
	Name             string            `json:"name"`
	Color            string            `json:"color"`
	FileRequirements []FileRequirement `json:"file_requirements,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// Requirement returns the file requirement with the given label, if declared.
func (t *Tag) Requirement(label string) (FileRequirement, bool) {
	for _, req := range t.FileRequirements {
		if req.Label == label {
			return req, true
		}
	}
	return FileRequirement{}, false
}

// RequiredLabels returns the labels of all requirements marked required,
// in declaration order.
func (t *Tag) RequiredLabels() []string {
	var labels []string
	for _, req := range t.FileRequirements {
		if req.Required {
			labels = append(labels, req.Label)
		}
	}
	return labels
}
