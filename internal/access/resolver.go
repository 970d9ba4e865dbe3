// Package access computes the caller's effective access tier for a profile
// and guards org-membership mutations with the role hierarchy.
package access

import (
	"context"

	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

// Tier is the caller's effective access level on a profile.
type Tier int

const (
	// TierNone means the caller sees nothing. Order-scoped reads return
	// empty results rather than errors so existence is not leaked.
	TierNone Tier = iota

	// TierScoped means whitelisted-only access: the caller can create orders
	// and see/act only on orders they created.
	TierScoped

	// TierMember means org member with role member: read everything in the
	// profile, create orders, no reviewer actions.
	TierMember

	// TierElevated means profile owner or org owner/admin: full visibility
	// plus reviewer actions and member management.
	TierElevated
)

func (t Tier) String() string {
	switch t {
	case TierScoped:
		return "scoped"
	case TierMember:
		return "member"
	case TierElevated:
		return "elevated"
	default:
		return "none"
	}
}

// Access is the resolved view of one user against one profile.
type Access struct {
	Tier           Tier
	Role           model.MembershipRole // effective org role; empty when not a member
	IsProfileOwner bool
	IsOrgMember    bool
	IsWhitelisted  bool
}

// CanReview reports whether reviewer actions (approve/reject/needsSupport/
// markPaid/reconcile) are permitted.
func (a Access) CanReview() bool {
	return a.Tier == TierElevated
}

// CanCreateOrders reports whether the caller may create orders on the profile.
func (a Access) CanCreateOrders() bool {
	return a.Tier != TierNone
}

// CanSeeAllOrders reports whether the caller sees every order in the profile.
func (a Access) CanSeeAllOrders() bool {
	return a.Tier == TierMember || a.Tier == TierElevated
}

// IsOrgAdminOrOwner reports elevated standing for document permissions.
func (a Access) IsOrgAdminOrOwner() bool {
	return a.Tier == TierElevated
}

// CanSeeOrder reports whether the caller may see the given order.
func (a Access) CanSeeOrder(order *model.PaymentOrder, userKey string) bool {
	if a.CanSeeAllOrders() {
		return true
	}
	if a.Tier == TierScoped {
		return order.CreatedByKey == userKey
	}
	return false
}

// Resolver derives access tiers from profile ownership, org membership and
// the email whitelist.
type Resolver struct {
	memberships store.MembershipStore
}

// NewResolver creates a resolver over the given membership store.
func NewResolver(memberships store.MembershipStore) *Resolver {
	return &Resolver{memberships: memberships}
}

// Resolve computes the three independent booleans and derives the tier.
// Precedence: profile owner / org owner or admin > org member > whitelisted.
func (r *Resolver) Resolve(ctx context.Context, user *model.User, profile *model.OrderProfile) (Access, error) {
	if user == nil {
		return Access{}, apperr.Wrap(apperr.ErrUnauthorized, "no resolved identity")
	}

	a := Access{
		IsProfileOwner: user.Key == profile.OwnerKey,
		IsWhitelisted:  profile.IsWhitelisted(user.NormalizedEmail()),
	}

	membership, err := r.memberships.Get(ctx, profile.OrgKey, user.Key)
	if err != nil {
		return Access{}, err
	}
	if membership != nil {
		a.IsOrgMember = true
		a.Role = membership.Role
	}

	switch {
	case a.IsProfileOwner || (a.IsOrgMember && (a.Role == model.RoleOwner || a.Role == model.RoleAdmin)):
		a.Tier = TierElevated
	case a.IsOrgMember:
		a.Tier = TierMember
	case a.IsWhitelisted:
		a.Tier = TierScoped
	default:
		a.Tier = TierNone
	}

	return a, nil
}

// GuardMemberChange enforces the role hierarchy for membership mutations.
// callerRole is the caller's effective role in the org. targetRole is the
// current role of the member being changed; newRole is the role being
// assigned, or empty for a removal.
//
// Rules: a caller may only act at or below their own rank; admins cannot
// remove or modify other admins (only the owner can); the owner role is
// immutable via this path — ownership transfer is a distinct operation.
func GuardMemberChange(callerRole, targetRole, newRole model.MembershipRole) error {
	if callerRole.Rank() < model.RoleAdmin.Rank() {
		return apperr.Wrap(apperr.ErrForbidden, "member management requires admin or owner")
	}
	if targetRole == model.RoleOwner {
		return apperr.Wrap(apperr.ErrForbidden, "the owner role is immutable; use ownership transfer")
	}
	if newRole == model.RoleOwner {
		return apperr.Wrap(apperr.ErrForbidden, "the owner role cannot be assigned; use ownership transfer")
	}
	if newRole != "" && !newRole.Valid() {
		return apperr.Wrap(apperr.ErrInvalidInput, "unknown role %q", newRole)
	}
	if targetRole.Rank() > callerRole.Rank() {
		return apperr.Wrap(apperr.ErrForbidden, "cannot modify a member above your rank")
	}
	if newRole != "" && newRole.Rank() > callerRole.Rank() {
		return apperr.Wrap(apperr.ErrForbidden, "cannot assign a role above your rank")
	}
	if callerRole == model.RoleAdmin && targetRole == model.RoleAdmin {
		return apperr.Wrap(apperr.ErrForbidden, "only the owner can modify other admins")
	}
	return nil
}
