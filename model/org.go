package model

import "time"

// Org represents an organization that payment-order profiles belong to.
// The owner is immutable except via an explicit ownership transfer.
type Org struct {
	Key       string    `json:"_key,omitempty"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerKey  string    `json:"owner_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MembershipRole is the closed set of roles an org member can hold.
type MembershipRole string

const (
	RoleOwner  MembershipRole = "owner"
	RoleAdmin  MembershipRole = "admin"
	RoleMember MembershipRole = "member"
)

// Rank orders roles for hierarchy checks: owner(3) > admin(2) > member(1).
// Unknown roles rank 0 so they never pass a guard.
func (r MembershipRole) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the role is one of the known variants.
func (r MembershipRole) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}

// OrgMembership links a user to an org with a role. The (org, user) pair is
// unique; exactly one owner membership exists per org, created with the org.
type OrgMembership struct {
	Key       string         `json:"_key,omitempty"`
	OrgKey    string         `json:"org_key"`
	UserKey   string         `json:"user_key"`
	Role      MembershipRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewOrgMembership creates a membership with timestamps set.
func NewOrgMembership(orgKey, userKey string, role MembershipRole) *OrgMembership {
	now := time.Now().UTC()
	return &OrgMembership{
		OrgKey:    orgKey,
		UserKey:   userKey,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
