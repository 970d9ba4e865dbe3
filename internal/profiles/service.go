// Package profiles manages organizations, memberships, order profiles with
// their email whitelists, and tags with file requirements.
package profiles

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/internal/access"
	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
	"github.com/orderhub/orderhub-backend/util"
)

// Service implements org, membership, profile and tag administration.
type Service struct {
	store store.Store
	log   *zap.Logger
}

// NewService creates the administration service.
func NewService(st store.Store, log *zap.Logger) *Service {
	return &Service{store: st, log: log}
}

func timeNow() time.Time { return time.Now().UTC() }

// CreateOrg creates an organization and its owner membership atomically.
// The creator becomes the owner.
func (s *Service) CreateOrg(ctx context.Context, actor *model.User, name string) (*model.Org, error) {
	if actor == nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no resolved identity")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "org name is required")
	}

	slug := util.Slugify(name)
	existing, err := s.store.Orgs().GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Wrap(apperr.ErrAlreadyExists, "org %q", slug)
	}

	now := timeNow()
	org := &model.Org{
		Name:      strings.TrimSpace(name),
		Slug:      slug,
		OwnerKey:  actor.Key,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.Orgs().Create(ctx, org); err != nil {
			return err
		}
		_, err := tx.Memberships().Create(ctx, model.NewOrgMembership(org.Key, actor.Key, model.RoleOwner))
		return err
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

// GetOrg returns an organization if the caller is a member of it.
func (s *Service) GetOrg(ctx context.Context, actor *model.User, orgKey string) (*model.Org, error) {
	org, err := s.store.Orgs().GetByKey(ctx, orgKey)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "org %q", orgKey)
	}
	if _, err := s.requireMember(ctx, actor, orgKey); err != nil {
		return nil, err
	}
	return org, nil
}

// ListMembers returns an org's memberships; callers must themselves be members.
func (s *Service) ListMembers(ctx context.Context, actor *model.User, orgKey string) ([]model.OrgMembership, error) {
	if _, err := s.requireMember(ctx, actor, orgKey); err != nil {
		return nil, err
	}
	return s.store.Memberships().ListByOrg(ctx, orgKey)
}

// AddMember adds a user to the org with the given role, subject to the role
// hierarchy: the caller must be admin or owner, and cannot assign a role
// above their own rank. Assigning owner is never possible here.
func (s *Service) AddMember(ctx context.Context, actor *model.User, orgKey, userKey string, role model.MembershipRole) (*model.OrgMembership, error) {
	caller, err := s.requireMember(ctx, actor, orgKey)
	if err != nil {
		return nil, err
	}
	if err := access.GuardMemberChange(caller.Role, "", role); err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByKey(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "user %q", userKey)
	}

	existing, err := s.store.Memberships().Get(ctx, orgKey, userKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Wrap(apperr.ErrAlreadyExists, "user %q is already a member", userKey)
	}

	m := model.NewOrgMembership(orgKey, userKey, role)
	if _, err := s.store.Memberships().Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMemberRole changes a member's role within the hierarchy rules.
func (s *Service) UpdateMemberRole(ctx context.Context, actor *model.User, orgKey, userKey string, role model.MembershipRole) error {
	caller, err := s.requireMember(ctx, actor, orgKey)
	if err != nil {
		return err
	}
	target, err := s.store.Memberships().Get(ctx, orgKey, userKey)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.Wrap(apperr.ErrNotFound, "membership for user %q", userKey)
	}
	if err := access.GuardMemberChange(caller.Role, target.Role, role); err != nil {
		return err
	}
	return s.store.Memberships().UpdateRole(ctx, orgKey, userKey, role)
}

// RemoveMember removes a member, subject to the hierarchy rules. The owner
// membership cannot be removed.
func (s *Service) RemoveMember(ctx context.Context, actor *model.User, orgKey, userKey string) error {
	caller, err := s.requireMember(ctx, actor, orgKey)
	if err != nil {
		return err
	}
	target, err := s.store.Memberships().Get(ctx, orgKey, userKey)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.Wrap(apperr.ErrNotFound, "membership for user %q", userKey)
	}
	if err := access.GuardMemberChange(caller.Role, target.Role, ""); err != nil {
		return err
	}
	return s.store.Memberships().Delete(ctx, orgKey, userKey)
}

// CreateProfile creates an order profile in the org. Admins and the owner may
// create profiles; the creator becomes the profile owner, and a user owns at
// most one profile.
func (s *Service) CreateProfile(ctx context.Context, actor *model.User, orgKey, name string) (*model.OrderProfile, error) {
	caller, err := s.requireMember(ctx, actor, orgKey)
	if err != nil {
		return nil, err
	}
	if caller.Role.Rank() < model.RoleAdmin.Rank() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "profile creation requires admin or owner")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "profile name is required")
	}

	owned, err := s.store.Profiles().GetByOwner(ctx, actor.Key)
	if err != nil {
		return nil, err
	}
	if owned != nil {
		return nil, apperr.Wrap(apperr.ErrAlreadyExists, "user %q already owns profile %q", actor.Key, owned.Key)
	}

	slug := util.Slugify(name)
	existing, err := s.store.Profiles().GetBySlug(ctx, orgKey, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Wrap(apperr.ErrAlreadyExists, "profile %q", slug)
	}

	profile := model.NewOrderProfile(orgKey, actor.Key, strings.TrimSpace(name), slug)
	if _, err := s.store.Profiles().Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetProfile returns a profile when the caller has any access to it.
func (s *Service) GetProfile(ctx context.Context, actor *model.User, profileKey string) (*model.OrderProfile, error) {
	profile, err := s.store.Profiles().GetByKey(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "profile %q", profileKey)
	}
	acc, err := access.NewResolver(s.store.Memberships()).Resolve(ctx, actor, profile)
	if err != nil {
		return nil, err
	}
	if acc.Tier == access.TierNone {
		return nil, nil
	}
	return profile, nil
}

// UpdateAllowedEmails replaces the profile's whitelist. Entries are trimmed,
// lower-cased and de-duplicated; each must be a syntactically valid address
// and the resulting list may hold at most model.MaxAllowedEmails entries.
// Only the profile owner or an org admin/owner may edit the whitelist.
func (s *Service) UpdateAllowedEmails(ctx context.Context, actor *model.User, profileKey string, emails []string) (*model.OrderProfile, error) {
	profile, err := s.requireProfileAdmin(ctx, actor, profileKey)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(emails))
	normalized := make([]string, 0, len(emails))
	for _, raw := range emails {
		email := util.NormalizeEmail(raw)
		if email == "" {
			continue
		}
		if !util.ValidEmail(email) {
			return nil, apperr.Wrap(apperr.ErrInvalidInput, "invalid email %q", raw)
		}
		if seen[email] {
			continue
		}
		seen[email] = true
		normalized = append(normalized, email)
	}
	if len(normalized) > model.MaxAllowedEmails {
		return nil, apperr.Wrap(apperr.ErrLimitExceeded, "whitelist holds at most %d addresses", model.MaxAllowedEmails)
	}

	profile.AllowedEmails = normalized
	profile.UpdatedAt = timeNow()
	if err := s.store.Profiles().Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// TagInput carries tag fields for create and update.
type TagInput struct {
	Name             string                  `json:"name"`
	Color            string                  `json:"color"`
	FileRequirements []model.FileRequirement `json:"file_requirements"`
}

func validateTagInput(in TagInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperr.Wrap(apperr.ErrInvalidInput, "tag name is required")
	}
	if in.Color != "" && !util.ValidHexColor(in.Color) {
		return apperr.Wrap(apperr.ErrInvalidInput, "color must be a hex code like #0a7f3c")
	}
	seen := make(map[string]bool, len(in.FileRequirements))
	for _, req := range in.FileRequirements {
		label := strings.TrimSpace(req.Label)
		if label == "" {
			return apperr.Wrap(apperr.ErrInvalidInput, "file requirement label is required")
		}
		if seen[label] {
			return apperr.Wrap(apperr.ErrInvalidInput, "duplicate requirement label %q", label)
		}
		seen[label] = true
		if req.MaxFileSizeMB < 0 {
			return apperr.Wrap(apperr.ErrInvalidInput, "negative size cap for label %q", label)
		}
	}
	return nil
}

// CreateTag creates a tag on the profile. Tag names are unique per profile.
func (s *Service) CreateTag(ctx context.Context, actor *model.User, profileKey string, in TagInput) (*model.Tag, error) {
	profile, err := s.requireProfileAdmin(ctx, actor, profileKey)
	if err != nil {
		return nil, err
	}
	if err := validateTagInput(in); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	existing, err := s.store.Tags().GetByName(ctx, profile.Key, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Wrap(apperr.ErrAlreadyExists, "tag %q", name)
	}

	now := timeNow()
	tag := &model.Tag{
		ProfileKey:       profile.Key,
		Name:             name,
		Color:            in.Color,
		FileRequirements: in.FileRequirements,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := s.store.Tags().Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// UpdateTag replaces a tag's name, color and file requirements. Changing
// requirements never retroactively affects orders already past submission.
func (s *Service) UpdateTag(ctx context.Context, actor *model.User, profileKey, tagKey string, in TagInput) (*model.Tag, error) {
	profile, err := s.requireProfileAdmin(ctx, actor, profileKey)
	if err != nil {
		return nil, err
	}
	if err := validateTagInput(in); err != nil {
		return nil, err
	}

	tag, err := s.store.Tags().GetByKey(ctx, tagKey)
	if err != nil {
		return nil, err
	}
	if tag == nil || tag.ProfileKey != profile.Key {
		return nil, apperr.Wrap(apperr.ErrNotFound, "tag %q", tagKey)
	}

	name := strings.TrimSpace(in.Name)
	if name != tag.Name {
		clash, err := s.store.Tags().GetByName(ctx, profile.Key, name)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, apperr.Wrap(apperr.ErrAlreadyExists, "tag %q", name)
		}
	}

	tag.Name = name
	tag.Color = in.Color
	tag.FileRequirements = in.FileRequirements
	tag.UpdatedAt = timeNow()
	if err := s.store.Tags().Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag unless any order still references it.
func (s *Service) DeleteTag(ctx context.Context, actor *model.User, profileKey, tagKey string) error {
	profile, err := s.requireProfileAdmin(ctx, actor, profileKey)
	if err != nil {
		return err
	}
	tag, err := s.store.Tags().GetByKey(ctx, tagKey)
	if err != nil {
		return err
	}
	if tag == nil || tag.ProfileKey != profile.Key {
		return apperr.Wrap(apperr.ErrNotFound, "tag %q", tagKey)
	}

	n, err := s.store.Orders().CountByTag(ctx, tag.Key)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Wrap(apperr.ErrHasDependencies, "tag %q is referenced by %d order(s)", tag.Name, n)
	}
	return s.store.Tags().Delete(ctx, tag.Key)
}

// ListTags returns the profile's tags for any caller with access to it.
func (s *Service) ListTags(ctx context.Context, actor *model.User, profileKey string) ([]model.Tag, error) {
	profile, err := s.GetProfile(ctx, actor, profileKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return s.store.Tags().ListByProfile(ctx, profile.Key)
}

// requireMember loads the caller's membership, failing with Forbidden when
// they are not in the org.
func (s *Service) requireMember(ctx context.Context, actor *model.User, orgKey string) (*model.OrgMembership, error) {
	if actor == nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no resolved identity")
	}
	m, err := s.store.Memberships().Get(ctx, orgKey, actor.Key)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperr.Wrap(apperr.ErrForbidden, "not a member of org %q", orgKey)
	}
	return m, nil
}

// requireProfileAdmin loads a profile and checks the caller is its owner or
// an org admin/owner.
func (s *Service) requireProfileAdmin(ctx context.Context, actor *model.User, profileKey string) (*model.OrderProfile, error) {
	profile, err := s.store.Profiles().GetByKey(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "profile %q", profileKey)
	}
	acc, err := access.NewResolver(s.store.Memberships()).Resolve(ctx, actor, profile)
	if err != nil {
		return nil, err
	}
	if !acc.IsOrgAdminOrOwner() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "profile administration requires the profile owner or an org admin")
	}
	return profile, nil
}
