package model

import (
	"strings"
	"time"
)

// MaxAllowedEmails caps the whitelist size on a profile.
const MaxAllowedEmails = 100

// OrderProfile is the submission endpoint within an org that payment orders
// are created against. It is owned by one user and scoped to one org.
type OrderProfile struct {
	Key           string    `json:"_key,omitempty"`
	OrgKey        string    `json:"org_key"`
	OwnerKey      string    `json:"owner_key"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	AllowedEmails []string  `json:"allowed_emails"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewOrderProfile creates a profile with timestamps set.
func NewOrderProfile(orgKey, ownerKey, name, slug string) *OrderProfile {
	now := time.Now().UTC()
	return &OrderProfile{
		OrgKey:        orgKey,
		OwnerKey:      ownerKey,
		Name:          name,
		Slug:          slug,
		AllowedEmails: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsWhitelisted reports whether the given email is on the allow-list.
// Comparison is case-insensitive; stored entries are already lower-cased.
func (p *OrderProfile) IsWhitelisted(email string) bool {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range p.AllowedEmails {
		if allowed == needle {
			return true
		}
	}
	return false
}
