package store

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/orderhub/orderhub-backend/model"
)

// MemoryStore is an in-memory Store used by tests. A single mutex serializes
// transactions, and InTx snapshots state so a failed unit of work rolls back.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[string]model.User
	orgs        map[string]model.Org
	memberships map[string]model.OrgMembership
	profiles    map[string]model.OrderProfile
	tags        map[string]model.Tag
	orders      map[string]model.PaymentOrder
	documents   map[string]model.OrderDocument
	history     map[string]model.HistoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]model.User),
		orgs:        make(map[string]model.Org),
		memberships: make(map[string]model.OrgMembership),
		profiles:    make(map[string]model.OrderProfile),
		tags:        make(map[string]model.Tag),
		orders:      make(map[string]model.PaymentOrder),
		documents:   make(map[string]model.OrderDocument),
		history:     make(map[string]model.HistoryEntry),
	}
}

func (s *MemoryStore) Users() UserStore             { return &memUsers{s: s} }
func (s *MemoryStore) Orgs() OrgStore               { return &memOrgs{s: s} }
func (s *MemoryStore) Memberships() MembershipStore { return &memMemberships{s: s} }
func (s *MemoryStore) Profiles() ProfileStore       { return &memProfiles{s: s} }
func (s *MemoryStore) Tags() TagStore               { return &memTags{s: s} }
func (s *MemoryStore) Orders() OrderStore           { return &memOrders{s: s} }
func (s *MemoryStore) Documents() DocumentStore     { return &memDocuments{s: s} }
func (s *MemoryStore) History() HistoryStore        { return &memHistory{s: s} }

// InTx serializes on the store mutex and restores a snapshot if fn fails.
// The callback receives a view whose sub-stores skip locking, so the
// transaction stays race-clean against concurrent non-transactional access.
func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.copyState()
	if err := fn(txView{s}); err != nil {
		s.restoreState(snapshot)
		return err
	}
	return nil
}

// txView is the Store handed to InTx callbacks. Its sub-stores run without
// locking because the transaction already holds the store mutex.
type txView struct{ s *MemoryStore }

func (v txView) Users() UserStore             { return &memUsers{s: v.s, tx: true} }
func (v txView) Orgs() OrgStore               { return &memOrgs{s: v.s, tx: true} }
func (v txView) Memberships() MembershipStore { return &memMemberships{s: v.s, tx: true} }
func (v txView) Profiles() ProfileStore       { return &memProfiles{s: v.s, tx: true} }
func (v txView) Tags() TagStore               { return &memTags{s: v.s, tx: true} }
func (v txView) Orders() OrderStore           { return &memOrders{s: v.s, tx: true} }
func (v txView) Documents() DocumentStore     { return &memDocuments{s: v.s, tx: true} }
func (v txView) History() HistoryStore        { return &memHistory{s: v.s, tx: true} }

// InTx on a transaction view joins the surrounding transaction.
func (v txView) InTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(v)
}

type memState struct {
	users       map[string]model.User
	orgs        map[string]model.Org
	memberships map[string]model.OrgMembership
	profiles    map[string]model.OrderProfile
	tags        map[string]model.Tag
	orders      map[string]model.PaymentOrder
	documents   map[string]model.OrderDocument
	history     map[string]model.HistoryEntry
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *MemoryStore) copyState() memState {
	return memState{
		users:       copyMap(s.users),
		orgs:        copyMap(s.orgs),
		memberships: copyMap(s.memberships),
		profiles:    copyMap(s.profiles),
		tags:        copyMap(s.tags),
		orders:      copyMap(s.orders),
		documents:   copyMap(s.documents),
		history:     copyMap(s.history),
	}
}

func (s *MemoryStore) restoreState(st memState) {
	s.users = st.users
	s.orgs = st.orgs
	s.memberships = st.memberships
	s.profiles = st.profiles
	s.tags = st.tags
	s.orders = st.orders
	s.documents = st.documents
	s.history = st.history
}

// lock acquires the mutex unless the caller is already inside a transaction.
func (s *MemoryStore) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) rlock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func newKey() string {
	return uuid.New().String()
}

//
// Users
//

type memUsers struct {
	s  *MemoryStore
	tx bool
}

func (u *memUsers) Create(ctx context.Context, user *model.User) (string, error) {
	defer u.s.lock(u.tx)()
	if user.Key == "" {
		user.Key = newKey()
	}
	u.s.users[user.Key] = *user
	return user.Key, nil
}

func (u *memUsers) GetByKey(ctx context.Context, key string) (*model.User, error) {
	defer u.s.rlock(u.tx)()
	if user, ok := u.s.users[key]; ok {
		return &user, nil
	}
	return nil, nil
}

func (u *memUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer u.s.rlock(u.tx)()
	for _, user := range u.s.users {
		if user.Email == email {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

//
// Orgs
//

type memOrgs struct {
	s  *MemoryStore
	tx bool
}

func (o *memOrgs) Create(ctx context.Context, org *model.Org) (string, error) {
	defer o.s.lock(o.tx)()
	if org.Key == "" {
		org.Key = newKey()
	}
	o.s.orgs[org.Key] = *org
	return org.Key, nil
}

func (o *memOrgs) GetByKey(ctx context.Context, key string) (*model.Org, error) {
	defer o.s.rlock(o.tx)()
	if org, ok := o.s.orgs[key]; ok {
		return &org, nil
	}
	return nil, nil
}

func (o *memOrgs) GetBySlug(ctx context.Context, slug string) (*model.Org, error) {
	defer o.s.rlock(o.tx)()
	for _, org := range o.s.orgs {
		if org.Slug == slug {
			found := org
			return &found, nil
		}
	}
	return nil, nil
}

//
// Memberships
//

type memMemberships struct {
	s  *MemoryStore
	tx bool
}

func (m *memMemberships) Create(ctx context.Context, ms *model.OrgMembership) (string, error) {
	defer m.s.lock(m.tx)()
	if ms.Key == "" {
		ms.Key = newKey()
	}
	m.s.memberships[ms.Key] = *ms
	return ms.Key, nil
}

func (m *memMemberships) Get(ctx context.Context, orgKey, userKey string) (*model.OrgMembership, error) {
	defer m.s.rlock(m.tx)()
	for _, ms := range m.s.memberships {
		if ms.OrgKey == orgKey && ms.UserKey == userKey {
			found := ms
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memMemberships) ListByOrg(ctx context.Context, orgKey string) ([]model.OrgMembership, error) {
	defer m.s.rlock(m.tx)()
	var result []model.OrgMembership
	for _, ms := range m.s.memberships {
		if ms.OrgKey == orgKey {
			result = append(result, ms)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *memMemberships) UpdateRole(ctx context.Context, orgKey, userKey string, role model.MembershipRole) error {
	defer m.s.lock(m.tx)()
	for key, ms := range m.s.memberships {
		if ms.OrgKey == orgKey && ms.UserKey == userKey {
			ms.Role = role
			m.s.memberships[key] = ms
			return nil
		}
	}
	return nil
}

func (m *memMemberships) Delete(ctx context.Context, orgKey, userKey string) error {
	defer m.s.lock(m.tx)()
	for key, ms := range m.s.memberships {
		if ms.OrgKey == orgKey && ms.UserKey == userKey {
			delete(m.s.memberships, key)
			return nil
		}
	}
	return nil
}

//
// Profiles
//

type memProfiles struct {
	s  *MemoryStore
	tx bool
}

func (p *memProfiles) Create(ctx context.Context, profile *model.OrderProfile) (string, error) {
	defer p.s.lock(p.tx)()
	if profile.Key == "" {
		profile.Key = newKey()
	}
	p.s.profiles[profile.Key] = *profile
	return profile.Key, nil
}

func (p *memProfiles) GetByKey(ctx context.Context, key string) (*model.OrderProfile, error) {
	defer p.s.rlock(p.tx)()
	if profile, ok := p.s.profiles[key]; ok {
		return &profile, nil
	}
	return nil, nil
}

func (p *memProfiles) GetBySlug(ctx context.Context, orgKey, slug string) (*model.OrderProfile, error) {
	defer p.s.rlock(p.tx)()
	for _, profile := range p.s.profiles {
		if profile.OrgKey == orgKey && profile.Slug == slug {
			found := profile
			return &found, nil
		}
	}
	return nil, nil
}

func (p *memProfiles) GetByOwner(ctx context.Context, ownerKey string) (*model.OrderProfile, error) {
	defer p.s.rlock(p.tx)()
	for _, profile := range p.s.profiles {
		if profile.OwnerKey == ownerKey {
			found := profile
			return &found, nil
		}
	}
	return nil, nil
}

func (p *memProfiles) Update(ctx context.Context, profile *model.OrderProfile) error {
	defer p.s.lock(p.tx)()
	p.s.profiles[profile.Key] = *profile
	return nil
}

//
// Tags
//

type memTags struct {
	s  *MemoryStore
	tx bool
}

func (t *memTags) Create(ctx context.Context, tag *model.Tag) (string, error) {
	defer t.s.lock(t.tx)()
	if tag.Key == "" {
		tag.Key = newKey()
	}
	t.s.tags[tag.Key] = *tag
	return tag.Key, nil
}

func (t *memTags) GetByKey(ctx context.Context, key string) (*model.Tag, error) {
	defer t.s.rlock(t.tx)()
	if tag, ok := t.s.tags[key]; ok {
		return &tag, nil
	}
	return nil, nil
}

func (t *memTags) GetByName(ctx context.Context, profileKey, name string) (*model.Tag, error) {
	defer t.s.rlock(t.tx)()
	for _, tag := range t.s.tags {
		if tag.ProfileKey == profileKey && tag.Name == name {
			found := tag
			return &found, nil
		}
	}
	return nil, nil
}

func (t *memTags) ListByProfile(ctx context.Context, profileKey string) ([]model.Tag, error) {
	defer t.s.rlock(t.tx)()
	var result []model.Tag
	for _, tag := range t.s.tags {
		if tag.ProfileKey == profileKey {
			result = append(result, tag)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (t *memTags) Update(ctx context.Context, tag *model.Tag) error {
	defer t.s.lock(t.tx)()
	t.s.tags[tag.Key] = *tag
	return nil
}

func (t *memTags) Delete(ctx context.Context, key string) error {
	defer t.s.lock(t.tx)()
	delete(t.s.tags, key)
	return nil
}

//
// Orders
//

type memOrders struct {
	s  *MemoryStore
	tx bool
}

func (o *memOrders) Create(ctx context.Context, order *model.PaymentOrder) (string, error) {
	defer o.s.lock(o.tx)()
	if order.Key == "" {
		order.Key = newKey()
	}
	order.Rev = "1"
	o.s.orders[order.Key] = *order
	return order.Key, nil
}

func (o *memOrders) GetByKey(ctx context.Context, key string) (*model.PaymentOrder, error) {
	defer o.s.rlock(o.tx)()
	if order, ok := o.s.orders[key]; ok {
		return &order, nil
	}
	return nil, nil
}

func (o *memOrders) Update(ctx context.Context, order *model.PaymentOrder) error {
	defer o.s.lock(o.tx)()
	current, ok := o.s.orders[order.Key]
	if !ok {
		return ErrConflict
	}
	if order.Rev != "" && order.Rev != current.Rev {
		return ErrConflict
	}
	rev, _ := strconv.Atoi(current.Rev)
	order.Rev = strconv.Itoa(rev + 1)
	o.s.orders[order.Key] = *order
	return nil
}

func (o *memOrders) ListByProfile(ctx context.Context, profileKey string, createdByKey string) ([]model.PaymentOrder, error) {
	defer o.s.rlock(o.tx)()
	var result []model.PaymentOrder
	for _, order := range o.s.orders {
		if order.ProfileKey != profileKey {
			continue
		}
		if createdByKey != "" && order.CreatedByKey != createdByKey {
			continue
		}
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (o *memOrders) CountByTag(ctx context.Context, tagKey string) (int, error) {
	defer o.s.rlock(o.tx)()
	count := 0
	for _, order := range o.s.orders {
		if order.TagKey == tagKey {
			count++
		}
	}
	return count, nil
}

//
// Documents
//

type memDocuments struct {
	s  *MemoryStore
	tx bool
}

func (d *memDocuments) Create(ctx context.Context, doc *model.OrderDocument) (string, error) {
	defer d.s.lock(d.tx)()
	if doc.Key == "" {
		doc.Key = newKey()
	}
	d.s.documents[doc.Key] = *doc
	return doc.Key, nil
}

func (d *memDocuments) GetByKey(ctx context.Context, key string) (*model.OrderDocument, error) {
	defer d.s.rlock(d.tx)()
	if doc, ok := d.s.documents[key]; ok {
		return &doc, nil
	}
	return nil, nil
}

func (d *memDocuments) GetByLabel(ctx context.Context, orderKey, label string) (*model.OrderDocument, error) {
	defer d.s.rlock(d.tx)()
	for _, doc := range d.s.documents {
		if doc.OrderKey == orderKey && doc.RequirementLabel == label {
			found := doc
			return &found, nil
		}
	}
	return nil, nil
}

func (d *memDocuments) ListByOrder(ctx context.Context, orderKey string) ([]model.OrderDocument, error) {
	defer d.s.rlock(d.tx)()
	var result []model.OrderDocument
	for _, doc := range d.s.documents {
		if doc.OrderKey == orderKey {
			result = append(result, doc)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (d *memDocuments) Delete(ctx context.Context, key string) error {
	defer d.s.lock(d.tx)()
	delete(d.s.documents, key)
	return nil
}

//
// History
//

type memHistory struct {
	s  *MemoryStore
	tx bool
}

func (h *memHistory) Append(ctx context.Context, e *model.HistoryEntry) (string, error) {
	defer h.s.lock(h.tx)()
	if e.Key == "" {
		e.Key = newKey()
	}
	h.s.history[e.Key] = *e
	return e.Key, nil
}

func (h *memHistory) ListByOrder(ctx context.Context, orderKey string) ([]model.HistoryEntry, error) {
	defer h.s.rlock(h.tx)()
	var result []model.HistoryEntry
	for _, e := range h.s.history {
		if e.OrderKey == orderKey {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].Key < result[j].Key
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
