// Package requirement implements the document-requirement gate that
// conditions order submission and validates uploads against a tag's
// declared file requirements.
package requirement

import (
	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/model"
)

// Missing returns the required labels that have no uploaded document yet,
// in declaration order. A nil tag, or a tag without file requirements,
// yields nothing.
func Missing(tag *model.Tag, docs []model.OrderDocument) []string {
	if tag == nil || len(tag.FileRequirements) == 0 {
		return nil
	}

	uploaded := make(map[string]bool, len(docs))
	for _, d := range docs {
		uploaded[d.RequirementLabel] = true
	}

	var missing []string
	for _, label := range tag.RequiredLabels() {
		if !uploaded[label] {
			missing = append(missing, label)
		}
	}
	return missing
}

// Complete reports whether every required label has an uploaded document.
// Vacuously true without a tag or without file requirements.
func Complete(tag *model.Tag, docs []model.OrderDocument) bool {
	return len(Missing(tag, docs)) == 0
}

// ValidateUpload checks an upload against the tag's requirements before any
// persistence. Orders without a tag accept any label; with a tag, the label
// must be declared, the MIME type allowed, and the size within the cap.
func ValidateUpload(tag *model.Tag, label, mimeType string, sizeBytes int64) error {
	if label == "" {
		return apperr.Wrap(apperr.ErrInvalidInput, "requirement label is required")
	}
	if sizeBytes < 0 {
		return apperr.Wrap(apperr.ErrInvalidInput, "negative file size")
	}
	if tag == nil || len(tag.FileRequirements) == 0 {
		return nil
	}

	req, ok := tag.Requirement(label)
	if !ok {
		return apperr.Wrap(apperr.ErrInvalidInput, "label %q is not declared by tag %q", label, tag.Name)
	}
	if len(req.AllowedMimeTypes) > 0 && !req.AllowsMimeType(mimeType) {
		return apperr.Wrap(apperr.ErrInvalidInput, "MIME type %q not allowed for label %q", mimeType, label)
	}
	if req.MaxFileSizeMB > 0 && sizeBytes > req.MaxFileSizeBytes() {
		return apperr.Wrap(apperr.ErrInvalidInput, "file exceeds %d MB limit for label %q", req.MaxFileSizeMB, label)
	}
	return nil
}
