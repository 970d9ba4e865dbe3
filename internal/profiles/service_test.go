package profiles

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

type fixture struct {
	st  *store.MemoryStore
	svc *Service

	owner  *model.User
	admin  *model.User
	member *model.User
	other  *model.User

	org     *model.Org
	profile *model.OrderProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()
	f := &fixture{st: st, svc: NewService(st, zap.NewNop())}

	mkUser := func(key, name, email string) *model.User {
		u := model.NewUser(name, email)
		u.Key = key
		if _, err := st.Users().Create(ctx, u); err != nil {
			t.Fatal(err)
		}
		return u
	}
	f.owner = mkUser("u-owner", "Olivia Owner", "olivia@example.com")
	f.admin = mkUser("u-admin", "Adam Admin", "adam@example.com")
	f.member = mkUser("u-member", "Mia Member", "mia@example.com")
	f.other = mkUser("u-other", "Oscar Other", "oscar@example.com")

	org, err := f.svc.CreateOrg(ctx, f.owner, "ACME Corp")
	if err != nil {
		t.Fatalf("CreateOrg: %v", err)
	}
	f.org = org

	if _, err := f.svc.AddMember(ctx, f.owner, org.Key, f.admin.Key, model.RoleAdmin); err != nil {
		t.Fatalf("add admin: %v", err)
	}
	if _, err := f.svc.AddMember(ctx, f.owner, org.Key, f.member.Key, model.RoleMember); err != nil {
		t.Fatalf("add member: %v", err)
	}

	profile, err := f.svc.CreateProfile(ctx, f.owner, org.Key, "Procurement")
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	f.profile = profile
	return f
}

func TestCreateOrg(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if f.org.Slug != "acme-corp" || f.org.OwnerKey != f.owner.Key {
		t.Errorf("org = %+v", f.org)
	}

	// The creator gets the owner membership atomically.
	m, err := f.st.Memberships().Get(ctx, f.org.Key, f.owner.Key)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil || m.Role != model.RoleOwner {
		t.Errorf("owner membership = %+v", m)
	}

	// Slugs are unique.
	if _, err := f.svc.CreateOrg(ctx, f.other, "ACME  Corp"); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate org: error = %v, want ErrAlreadyExists", err)
	}
}

func TestMemberManagement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Members cannot manage membership.
	if _, err := f.svc.AddMember(ctx, f.member, f.org.Key, f.other.Key, model.RoleMember); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member adds member: error = %v, want ErrForbidden", err)
	}

	// Admins can add and promote members.
	if _, err := f.svc.AddMember(ctx, f.admin, f.org.Key, f.other.Key, model.RoleMember); err != nil {
		t.Fatalf("admin adds member: %v", err)
	}
	if _, err := f.svc.AddMember(ctx, f.admin, f.org.Key, f.other.Key, model.RoleMember); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate membership: error = %v, want ErrAlreadyExists", err)
	}
	if err := f.svc.UpdateMemberRole(ctx, f.admin, f.org.Key, f.other.Key, model.RoleAdmin); err != nil {
		t.Fatalf("admin promotes member: %v", err)
	}

	// Admins cannot touch other admins; the owner can.
	if err := f.svc.UpdateMemberRole(ctx, f.admin, f.org.Key, f.other.Key, model.RoleMember); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("admin demotes admin: error = %v, want ErrForbidden", err)
	}
	if err := f.svc.RemoveMember(ctx, f.admin, f.org.Key, f.other.Key); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("admin removes admin: error = %v, want ErrForbidden", err)
	}
	if err := f.svc.UpdateMemberRole(ctx, f.owner, f.org.Key, f.other.Key, model.RoleMember); err != nil {
		t.Fatalf("owner demotes admin: %v", err)
	}
	if err := f.svc.RemoveMember(ctx, f.owner, f.org.Key, f.other.Key); err != nil {
		t.Fatalf("owner removes member: %v", err)
	}

	// The owner role is immutable through membership management.
	if err := f.svc.UpdateMemberRole(ctx, f.owner, f.org.Key, f.owner.Key, model.RoleMember); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("demote owner: error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.AddMember(ctx, f.owner, f.org.Key, f.other.Key, model.RoleOwner); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("assign owner: error = %v, want ErrForbidden", err)
	}
}

func TestCreateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if f.profile.Slug != "procurement" || f.profile.OwnerKey != f.owner.Key {
		t.Errorf("profile = %+v", f.profile)
	}

	if _, err := f.svc.CreateProfile(ctx, f.member, f.org.Key, "Travel"); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member creates profile: error = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.CreateProfile(ctx, f.admin, f.org.Key, "Procurement"); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate profile: error = %v, want ErrAlreadyExists", err)
	}

	// A user owns at most one profile.
	if _, err := f.svc.CreateProfile(ctx, f.owner, f.org.Key, "Travel"); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("second profile for same owner: error = %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateAllowedEmails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profile, err := f.svc.UpdateAllowedEmails(ctx, f.owner, f.profile.Key, []string{
		"  Guest@Example.COM ", "guest@example.com", "second@example.com", "",
	})
	if err != nil {
		t.Fatalf("UpdateAllowedEmails: %v", err)
	}
	if len(profile.AllowedEmails) != 2 {
		t.Errorf("whitelist = %v, want trimmed, lower-cased and de-duplicated", profile.AllowedEmails)
	}
	if profile.AllowedEmails[0] != "guest@example.com" {
		t.Errorf("whitelist[0] = %q", profile.AllowedEmails[0])
	}

	if _, err := f.svc.UpdateAllowedEmails(ctx, f.owner, f.profile.Key, []string{"not-an-email"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("invalid email: error = %v, want ErrInvalidInput", err)
	}

	// Members cannot edit the whitelist.
	if _, err := f.svc.UpdateAllowedEmails(ctx, f.member, f.profile.Key, nil); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member edits whitelist: error = %v, want ErrForbidden", err)
	}

	over := make([]string, 0, model.MaxAllowedEmails+1)
	for i := 0; i <= model.MaxAllowedEmails; i++ {
		over = append(over, fmt.Sprintf("user%d@example.com", i))
	}
	if _, err := f.svc.UpdateAllowedEmails(ctx, f.owner, f.profile.Key, over); !errors.Is(err, apperr.ErrLimitExceeded) {
		t.Errorf("oversized whitelist: error = %v, want ErrLimitExceeded", err)
	}
}

func TestTagLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := TagInput{
		Name:  "hardware",
		Color: "#0a7f3c",
		FileRequirements: []model.FileRequirement{
			{Label: "invoice", AllowedMimeTypes: []string{"application/pdf"}, MaxFileSizeMB: 5, Required: true},
		},
	}

	tag, err := f.svc.CreateTag(ctx, f.owner, f.profile.Key, in)
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if _, err := f.svc.CreateTag(ctx, f.owner, f.profile.Key, in); !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("duplicate tag name: error = %v, want ErrAlreadyExists", err)
	}
	if _, err := f.svc.CreateTag(ctx, f.owner, f.profile.Key, TagInput{Name: "bad", Color: "green"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("bad color: error = %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.CreateTag(ctx, f.owner, f.profile.Key, TagInput{
		Name: "dup-labels",
		FileRequirements: []model.FileRequirement{
			{Label: "x", Required: true},
			{Label: "x", Required: false},
		},
	}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("duplicate labels: error = %v, want ErrInvalidInput", err)
	}

	// Members cannot manage tags.
	if _, err := f.svc.CreateTag(ctx, f.member, f.profile.Key, TagInput{Name: "other"}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member creates tag: error = %v, want ErrForbidden", err)
	}

	renamed, err := f.svc.UpdateTag(ctx, f.admin, f.profile.Key, tag.Key, TagInput{Name: "hardware-eu", Color: "#112233"})
	if err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}
	if renamed.Name != "hardware-eu" {
		t.Errorf("renamed = %+v", renamed)
	}

	// A tag referenced by an order cannot be deleted.
	order := model.NewPaymentOrder(f.profile.Key, f.member.Key, "Laptops", "refresh", 100, "EUR")
	order.TagKey = tag.Key
	if _, err := f.st.Orders().Create(ctx, order); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.DeleteTag(ctx, f.owner, f.profile.Key, tag.Key); !errors.Is(err, apperr.ErrHasDependencies) {
		t.Errorf("delete referenced tag: error = %v, want ErrHasDependencies", err)
	}

	order.TagKey = ""
	if err := f.st.Orders().Update(ctx, order); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.DeleteTag(ctx, f.owner, f.profile.Key, tag.Key); err != nil {
		t.Fatalf("delete unused tag: %v", err)
	}
}
