package access

import (
	"context"
	"errors"
	"testing"

	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

func seedProfile(t *testing.T, st *store.MemoryStore) *model.OrderProfile {
	t.Helper()
	profile := model.NewOrderProfile("org1", "owner-user", "Procurement", "procurement")
	profile.AllowedEmails = []string{"guest@example.com"}
	if _, err := st.Profiles().Create(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return profile
}

func addMembership(t *testing.T, st *store.MemoryStore, userKey string, role model.MembershipRole) {
	t.Helper()
	if _, err := st.Memberships().Create(context.Background(), model.NewOrgMembership("org1", userKey, role)); err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func TestResolveTiers(t *testing.T) {
	st := store.NewMemoryStore()
	profile := seedProfile(t, st)
	addMembership(t, st, "owner-user", model.RoleOwner)
	addMembership(t, st, "admin-user", model.RoleAdmin)
	addMembership(t, st, "member-user", model.RoleMember)
	r := NewResolver(st.Memberships())

	tests := []struct {
		name string
		user *model.User
		want Tier
	}{
		{"org owner", &model.User{Key: "owner-user", Email: "owner@example.com"}, TierElevated},
		{"org admin", &model.User{Key: "admin-user", Email: "admin@example.com"}, TierElevated},
		{"org member", &model.User{Key: "member-user", Email: "member@example.com"}, TierMember},
		{"whitelisted outsider", &model.User{Key: "guest-user", Email: "guest@example.com"}, TierScoped},
		{"whitelist is case-insensitive", &model.User{Key: "guest-user", Email: "Guest@Example.COM"}, TierScoped},
		{"stranger", &model.User{Key: "stranger", Email: "stranger@example.com"}, TierNone},
	}

	for _, tt := range tests {
		acc, err := r.Resolve(context.Background(), tt.user, profile)
		if err != nil {
			t.Errorf("%s: Resolve error: %v", tt.name, err)
			continue
		}
		if acc.Tier != tt.want {
			t.Errorf("%s: tier = %s, want %s", tt.name, acc.Tier, tt.want)
		}
	}
}

// Membership outranks the whitelist: a member whose email is also on the
// allow-list still resolves to the member tier.
func TestResolvePrecedence(t *testing.T) {
	st := store.NewMemoryStore()
	profile := seedProfile(t, st)
	addMembership(t, st, "member-user", model.RoleMember)
	profile.AllowedEmails = append(profile.AllowedEmails, "member@example.com")
	if err := st.Profiles().Update(context.Background(), profile); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(st.Memberships())
	acc, err := r.Resolve(context.Background(), &model.User{Key: "member-user", Email: "member@example.com"}, profile)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Tier != TierMember {
		t.Errorf("tier = %s, want member", acc.Tier)
	}
	if !acc.IsWhitelisted || !acc.IsOrgMember {
		t.Errorf("expected both booleans set, got %+v", acc)
	}
}

// The profile owner is elevated even without an org membership.
func TestResolveProfileOwner(t *testing.T) {
	st := store.NewMemoryStore()
	profile := seedProfile(t, st)
	r := NewResolver(st.Memberships())

	acc, err := r.Resolve(context.Background(), &model.User{Key: "owner-user", Email: "owner@example.com"}, profile)
	if err != nil {
		t.Fatal(err)
	}
	if acc.Tier != TierElevated || !acc.IsProfileOwner {
		t.Errorf("profile owner should be elevated, got %+v", acc)
	}
}

func TestResolveNilUser(t *testing.T) {
	st := store.NewMemoryStore()
	profile := seedProfile(t, st)
	r := NewResolver(st.Memberships())

	_, err := r.Resolve(context.Background(), nil, profile)
	if !errors.Is(err, apperr.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestCanSeeOrder(t *testing.T) {
	order := &model.PaymentOrder{Key: "o1", CreatedByKey: "creator"}

	if !(Access{Tier: TierMember}).CanSeeOrder(order, "someone-else") {
		t.Error("member should see every order")
	}
	if !(Access{Tier: TierScoped}).CanSeeOrder(order, "creator") {
		t.Error("scoped caller should see their own order")
	}
	if (Access{Tier: TierScoped}).CanSeeOrder(order, "someone-else") {
		t.Error("scoped caller should not see another creator's order")
	}
	if (Access{Tier: TierNone}).CanSeeOrder(order, "creator") {
		t.Error("no-access caller should see nothing")
	}
}

func TestGuardMemberChange(t *testing.T) {
	tests := []struct {
		name     string
		caller   model.MembershipRole
		target   model.MembershipRole
		newRole  model.MembershipRole
		wantKind error
	}{
		{"member cannot manage", model.RoleMember, model.RoleMember, model.RoleAdmin, apperr.ErrForbidden},
		{"admin adds member", model.RoleAdmin, "", model.RoleMember, nil},
		{"admin promotes member to admin", model.RoleAdmin, model.RoleMember, model.RoleAdmin, nil},
		{"admin cannot touch admin", model.RoleAdmin, model.RoleAdmin, model.RoleMember, apperr.ErrForbidden},
		{"admin cannot remove admin", model.RoleAdmin, model.RoleAdmin, "", apperr.ErrForbidden},
		{"owner demotes admin", model.RoleOwner, model.RoleAdmin, model.RoleMember, nil},
		{"owner removes admin", model.RoleOwner, model.RoleAdmin, "", nil},
		{"owner role is immutable", model.RoleOwner, model.RoleOwner, model.RoleMember, apperr.ErrForbidden},
		{"owner cannot be assigned", model.RoleOwner, model.RoleMember, model.RoleOwner, apperr.ErrForbidden},
		{"unknown role", model.RoleOwner, model.RoleMember, "superuser", apperr.ErrInvalidInput},
	}

	for _, tt := range tests {
		err := GuardMemberChange(tt.caller, tt.target, tt.newRole)
		if tt.wantKind == nil {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantKind) {
			t.Errorf("%s: error = %v, want kind %v", tt.name, err, tt.wantKind)
		}
	}
}
