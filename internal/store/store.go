// Package store defines the storage interfaces for the order approval system.
//
// Two implementations exist: ArangoStore for production and MemoryStore for
// tests. State-changing operations run through InTx so that an order mutation
// and its history entry commit as one atomic unit.
package store

import (
	"context"
	"errors"

	"github.com/orderhub/orderhub-backend/model"
)

// ErrConflict is returned when a transactional write loses a race with a
// concurrent commit. Callers re-read and re-validate before retrying once.
var ErrConflict = errors.New("storage conflict")

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, user *model.User) (string, error)
	GetByKey(ctx context.Context, key string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// OrgStore persists organizations.
type OrgStore interface {
	Create(ctx context.Context, org *model.Org) (string, error)
	GetByKey(ctx context.Context, key string) (*model.Org, error)
	GetBySlug(ctx context.Context, slug string) (*model.Org, error)
}

// MembershipStore persists org memberships. The (org, user) pair is unique.
type MembershipStore interface {
	Create(ctx context.Context, m *model.OrgMembership) (string, error)
	Get(ctx context.Context, orgKey, userKey string) (*model.OrgMembership, error)
	ListByOrg(ctx context.Context, orgKey string) ([]model.OrgMembership, error)
	UpdateRole(ctx context.Context, orgKey, userKey string, role model.MembershipRole) error
	Delete(ctx context.Context, orgKey, userKey string) error
}

// ProfileStore persists payment-order profiles.
type ProfileStore interface {
	Create(ctx context.Context, p *model.OrderProfile) (string, error)
	GetByKey(ctx context.Context, key string) (*model.OrderProfile, error)
	GetBySlug(ctx context.Context, orgKey, slug string) (*model.OrderProfile, error)
	GetByOwner(ctx context.Context, ownerKey string) (*model.OrderProfile, error)
	Update(ctx context.Context, p *model.OrderProfile) error
}

// TagStore persists tags and their file requirements.
type TagStore interface {
	Create(ctx context.Context, t *model.Tag) (string, error)
	GetByKey(ctx context.Context, key string) (*model.Tag, error)
	GetByName(ctx context.Context, profileKey, name string) (*model.Tag, error)
	ListByProfile(ctx context.Context, profileKey string) ([]model.Tag, error)
	Update(ctx context.Context, t *model.Tag) error
	Delete(ctx context.Context, key string) error
}

// OrderStore persists payment orders. Update compares the revision read with
// the committed revision and returns ErrConflict on a lost race.
type OrderStore interface {
	Create(ctx context.Context, o *model.PaymentOrder) (string, error)
	GetByKey(ctx context.Context, key string) (*model.PaymentOrder, error)
	Update(ctx context.Context, o *model.PaymentOrder) error
	ListByProfile(ctx context.Context, profileKey string, createdByKey string) ([]model.PaymentOrder, error)
	CountByTag(ctx context.Context, tagKey string) (int, error)
}

// DocumentStore persists uploaded-document metadata.
type DocumentStore interface {
	Create(ctx context.Context, d *model.OrderDocument) (string, error)
	GetByKey(ctx context.Context, key string) (*model.OrderDocument, error)
	GetByLabel(ctx context.Context, orderKey, label string) (*model.OrderDocument, error)
	ListByOrder(ctx context.Context, orderKey string) ([]model.OrderDocument, error)
	Delete(ctx context.Context, key string) error
}

// HistoryStore is the append-only audit ledger. No update or delete exists;
// corrections are represented as new entries.
type HistoryStore interface {
	Append(ctx context.Context, e *model.HistoryEntry) (string, error)
	ListByOrder(ctx context.Context, orderKey string) ([]model.HistoryEntry, error)
}

// Store aggregates all storage concerns.
type Store interface {
	Users() UserStore
	Orgs() OrgStore
	Memberships() MembershipStore
	Profiles() ProfileStore
	Tags() TagStore
	Orders() OrderStore
	Documents() DocumentStore
	History() HistoryStore

	// InTx runs fn against a transactional view of the store. Either every
	// write inside fn commits, or none do. Concurrent transactions against
	// the same order are serialized; the loser sees ErrConflict.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
