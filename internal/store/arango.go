package store

import (
	"context"
	"errors"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/arangodb/go-driver/v2/arangodb/shared"

	"github.com/orderhub/orderhub-backend/database"
	"github.com/orderhub/orderhub-backend/model"
)

// dbAccess is the slice of the driver API the store runs queries against.
// Both a database handle and a stream transaction satisfy it, so every
// sub-store works unchanged inside and outside a transaction.
type dbAccess interface {
	arangodb.DatabaseCollection
	arangodb.DatabaseQuery
}

// ArangoStore implements Store on top of ArangoDB. Lookups that find nothing
// return (nil, nil); callers translate that into their own error kinds.
type ArangoStore struct {
	db dbAccess

	// base is the database handle transactions are started on; a store built
	// around a transaction keeps the original handle here.
	base arangodb.Database
}

// NewArangoStore wraps an initialized database connection.
func NewArangoStore(conn database.DBConnection) *ArangoStore {
	return &ArangoStore{db: conn.Database, base: conn.Database}
}

func (s *ArangoStore) Users() UserStore             { return &arangoUsers{s} }
func (s *ArangoStore) Orgs() OrgStore               { return &arangoOrgs{s} }
func (s *ArangoStore) Memberships() MembershipStore { return &arangoMemberships{s} }
func (s *ArangoStore) Profiles() ProfileStore       { return &arangoProfiles{s} }
func (s *ArangoStore) Tags() TagStore               { return &arangoTags{s} }
func (s *ArangoStore) Orders() OrderStore           { return &arangoOrders{s} }
func (s *ArangoStore) Documents() DocumentStore     { return &arangoDocuments{s} }
func (s *ArangoStore) History() HistoryStore        { return &arangoHistory{s} }

// InTx executes fn inside an ArangoDB stream transaction covering every
// mutable collection. Lost writes surface as ErrConflict.
func (s *ArangoStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	tx, err := s.base.BeginTransaction(ctx, arangodb.TransactionCollections{
		Write: []string{
			database.ColOrders, database.ColDocuments, database.ColHistory,
			database.ColTags, database.ColProfiles, database.ColMemberships,
			database.ColOrgs, database.ColUsers,
		},
	}, nil)
	if err != nil {
		return mapArangoErr(err)
	}

	if err := fn(&ArangoStore{db: tx, base: s.base}); err != nil {
		_ = tx.Abort(ctx, nil)
		return mapArangoErr(err)
	}

	if err := tx.Commit(ctx, nil); err != nil {
		return mapArangoErr(err)
	}
	return nil
}

func (s *ArangoStore) collection(ctx context.Context, name string) (arangodb.Collection, error) {
	var options arangodb.GetCollectionOptions
	return s.db.GetCollection(ctx, name, &options)
}

func mapArangoErr(err error) error {
	if err == nil {
		return nil
	}
	if shared.IsArangoErrorWithCode(err, 409) || shared.IsArangoErrorWithCode(err, 412) {
		return errors.Join(ErrConflict, err)
	}
	return err
}

func isArangoNotFound(err error) bool {
	return shared.IsArangoErrorWithCode(err, 404)
}

func (s *ArangoStore) createDoc(ctx context.Context, colName string, doc interface{}) (string, error) {
	col, err := s.collection(ctx, colName)
	if err != nil {
		return "", err
	}
	meta, err := col.CreateDocument(ctx, doc)
	if err != nil {
		return "", mapArangoErr(err)
	}
	return meta.Key, nil
}

func (s *ArangoStore) readDoc(ctx context.Context, colName, key string, out interface{}) (bool, error) {
	col, err := s.collection(ctx, colName)
	if err != nil {
		return false, err
	}
	if _, err := col.ReadDocument(ctx, key, out); err != nil {
		if isArangoNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *ArangoStore) queryOne(ctx context.Context, query string, bindVars map[string]interface{}, out interface{}) (bool, error) {
	cursor, err := s.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return false, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return false, nil
	}
	if _, err := cursor.ReadDocument(ctx, out); err != nil {
		return false, err
	}
	return true, nil
}

//
// Users
//

type arangoUsers struct{ s *ArangoStore }

func (u *arangoUsers) Create(ctx context.Context, user *model.User) (string, error) {
	key, err := u.s.createDoc(ctx, database.ColUsers, user)
	if err == nil {
		user.Key = key
	}
	return key, err
}

func (u *arangoUsers) GetByKey(ctx context.Context, key string) (*model.User, error) {
	var user model.User
	found, err := u.s.readDoc(ctx, database.ColUsers, key, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (u *arangoUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		FOR u IN user
			FILTER u.email == @email
			LIMIT 1
			RETURN u
	`
	var user model.User
	found, err := u.s.queryOne(ctx, query, map[string]interface{}{"email": email}, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

//
// Orgs
//

type arangoOrgs struct{ s *ArangoStore }

func (o *arangoOrgs) Create(ctx context.Context, org *model.Org) (string, error) {
	key, err := o.s.createDoc(ctx, database.ColOrgs, org)
	if err == nil {
		org.Key = key
	}
	return key, err
}

func (o *arangoOrgs) GetByKey(ctx context.Context, key string) (*model.Org, error) {
	var org model.Org
	found, err := o.s.readDoc(ctx, database.ColOrgs, key, &org)
	if err != nil || !found {
		return nil, err
	}
	return &org, nil
}

func (o *arangoOrgs) GetBySlug(ctx context.Context, slug string) (*model.Org, error) {
	query := `
		FOR o IN org
			FILTER o.slug == @slug
			LIMIT 1
			RETURN o
	`
	var org model.Org
	found, err := o.s.queryOne(ctx, query, map[string]interface{}{"slug": slug}, &org)
	if err != nil || !found {
		return nil, err
	}
	return &org, nil
}

//
// Memberships
//

type arangoMemberships struct{ s *ArangoStore }

func (m *arangoMemberships) Create(ctx context.Context, ms *model.OrgMembership) (string, error) {
	key, err := m.s.createDoc(ctx, database.ColMemberships, ms)
	if err == nil {
		ms.Key = key
	}
	return key, err
}

func (m *arangoMemberships) Get(ctx context.Context, orgKey, userKey string) (*model.OrgMembership, error) {
	query := `
		FOR m IN org_membership
			FILTER m.org_key == @orgKey AND m.user_key == @userKey
			LIMIT 1
			RETURN m
	`
	var ms model.OrgMembership
	found, err := m.s.queryOne(ctx, query, map[string]interface{}{"orgKey": orgKey, "userKey": userKey}, &ms)
	if err != nil || !found {
		return nil, err
	}
	return &ms, nil
}

func (m *arangoMemberships) ListByOrg(ctx context.Context, orgKey string) ([]model.OrgMembership, error) {
	query := `
		FOR m IN org_membership
			FILTER m.org_key == @orgKey
			SORT m.created_at ASC
			RETURN m
	`
	cursor, err := m.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"orgKey": orgKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []model.OrgMembership
	for cursor.HasMore() {
		var ms model.OrgMembership
		if _, err := cursor.ReadDocument(ctx, &ms); err != nil {
			return nil, err
		}
		result = append(result, ms)
	}
	return result, nil
}

func (m *arangoMemberships) UpdateRole(ctx context.Context, orgKey, userKey string, role model.MembershipRole) error {
	query := `
		FOR m IN org_membership
			FILTER m.org_key == @orgKey AND m.user_key == @userKey
			UPDATE m WITH { role: @role, updated_at: DATE_ISO8601(DATE_NOW()) } IN org_membership
	`
	cursor, err := m.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"orgKey": orgKey, "userKey": userKey, "role": string(role)},
	})
	if err != nil {
		return mapArangoErr(err)
	}
	cursor.Close()
	return nil
}

func (m *arangoMemberships) Delete(ctx context.Context, orgKey, userKey string) error {
	query := `
		FOR m IN org_membership
			FILTER m.org_key == @orgKey AND m.user_key == @userKey
			REMOVE m IN org_membership
	`
	cursor, err := m.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"orgKey": orgKey, "userKey": userKey},
	})
	if err != nil {
		return mapArangoErr(err)
	}
	cursor.Close()
	return nil
}

//
// Profiles
//

type arangoProfiles struct{ s *ArangoStore }

func (p *arangoProfiles) Create(ctx context.Context, profile *model.OrderProfile) (string, error) {
	key, err := p.s.createDoc(ctx, database.ColProfiles, profile)
	if err == nil {
		profile.Key = key
	}
	return key, err
}

func (p *arangoProfiles) GetByKey(ctx context.Context, key string) (*model.OrderProfile, error) {
	var profile model.OrderProfile
	found, err := p.s.readDoc(ctx, database.ColProfiles, key, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func (p *arangoProfiles) GetBySlug(ctx context.Context, orgKey, slug string) (*model.OrderProfile, error) {
	query := `
		FOR p IN order_profile
			FILTER p.org_key == @orgKey AND p.slug == @slug
			LIMIT 1
			RETURN p
	`
	var profile model.OrderProfile
	found, err := p.s.queryOne(ctx, query, map[string]interface{}{"orgKey": orgKey, "slug": slug}, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func (p *arangoProfiles) GetByOwner(ctx context.Context, ownerKey string) (*model.OrderProfile, error) {
	query := `
		FOR p IN order_profile
			FILTER p.owner_key == @ownerKey
			LIMIT 1
			RETURN p
	`
	var profile model.OrderProfile
	found, err := p.s.queryOne(ctx, query, map[string]interface{}{"ownerKey": ownerKey}, &profile)
	if err != nil || !found {
		return nil, err
	}
	return &profile, nil
}

func (p *arangoProfiles) Update(ctx context.Context, profile *model.OrderProfile) error {
	col, err := p.s.collection(ctx, database.ColProfiles)
	if err != nil {
		return err
	}
	_, err = col.UpdateDocument(ctx, profile.Key, profile)
	return mapArangoErr(err)
}

//
// Tags
//

type arangoTags struct{ s *ArangoStore }

func (t *arangoTags) Create(ctx context.Context, tag *model.Tag) (string, error) {
	key, err := t.s.createDoc(ctx, database.ColTags, tag)
	if err == nil {
		tag.Key = key
	}
	return key, err
}

func (t *arangoTags) GetByKey(ctx context.Context, key string) (*model.Tag, error) {
	var tag model.Tag
	found, err := t.s.readDoc(ctx, database.ColTags, key, &tag)
	if err != nil || !found {
		return nil, err
	}
	return &tag, nil
}

func (t *arangoTags) GetByName(ctx context.Context, profileKey, name string) (*model.Tag, error) {
	query := `
		FOR t IN tag
			FILTER t.profile_key == @profileKey AND t.name == @name
			LIMIT 1
			RETURN t
	`
	var tag model.Tag
	found, err := t.s.queryOne(ctx, query, map[string]interface{}{"profileKey": profileKey, "name": name}, &tag)
	if err != nil || !found {
		return nil, err
	}
	return &tag, nil
}

func (t *arangoTags) ListByProfile(ctx context.Context, profileKey string) ([]model.Tag, error) {
	query := `
		FOR t IN tag
			FILTER t.profile_key == @profileKey
			SORT t.name ASC
			RETURN t
	`
	cursor, err := t.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"profileKey": profileKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []model.Tag
	for cursor.HasMore() {
		var tag model.Tag
		if _, err := cursor.ReadDocument(ctx, &tag); err != nil {
			return nil, err
		}
		result = append(result, tag)
	}
	return result, nil
}

func (t *arangoTags) Update(ctx context.Context, tag *model.Tag) error {
	col, err := t.s.collection(ctx, database.ColTags)
	if err != nil {
		return err
	}
	_, err = col.UpdateDocument(ctx, tag.Key, tag)
	return mapArangoErr(err)
}

func (t *arangoTags) Delete(ctx context.Context, key string) error {
	col, err := t.s.collection(ctx, database.ColTags)
	if err != nil {
		return err
	}
	_, err = col.DeleteDocument(ctx, key)
	return mapArangoErr(err)
}

//
// Orders
//

type arangoOrders struct{ s *ArangoStore }

func (o *arangoOrders) Create(ctx context.Context, order *model.PaymentOrder) (string, error) {
	key, err := o.s.createDoc(ctx, database.ColOrders, order)
	if err == nil {
		order.Key = key
	}
	return key, err
}

func (o *arangoOrders) GetByKey(ctx context.Context, key string) (*model.PaymentOrder, error) {
	var order model.PaymentOrder
	found, err := o.s.readDoc(ctx, database.ColOrders, key, &order)
	if err != nil || !found {
		return nil, err
	}
	return &order, nil
}

// Update replaces the order document. The revision read earlier is sent with
// the update so a concurrent commit surfaces as ErrConflict, not a lost write.
func (o *arangoOrders) Update(ctx context.Context, order *model.PaymentOrder) error {
	col, err := o.s.collection(ctx, database.ColOrders)
	if err != nil {
		return err
	}
	ignoreRevs := false
	_, err = col.UpdateDocumentWithOptions(ctx, order.Key, order, &arangodb.CollectionDocumentUpdateOptions{
		IgnoreRevs: &ignoreRevs,
	})
	return mapArangoErr(err)
}

func (o *arangoOrders) ListByProfile(ctx context.Context, profileKey string, createdByKey string) ([]model.PaymentOrder, error) {
	query := `
		FOR o IN payment_order
			FILTER o.profile_key == @profileKey
	`
	bindVars := map[string]interface{}{"profileKey": profileKey}
	if createdByKey != "" {
		query += ` FILTER o.created_by_key == @createdByKey`
		bindVars["createdByKey"] = createdByKey
	}
	query += `
			SORT o.created_at DESC
			RETURN o
	`

	cursor, err := o.s.db.Query(ctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []model.PaymentOrder
	for cursor.HasMore() {
		var order model.PaymentOrder
		if _, err := cursor.ReadDocument(ctx, &order); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, nil
}

func (o *arangoOrders) CountByTag(ctx context.Context, tagKey string) (int, error) {
	query := `
		RETURN LENGTH(
			FOR o IN payment_order
				FILTER o.tag_key == @tagKey
				RETURN 1
		)
	`
	var count int
	if _, err := o.s.queryOne(ctx, query, map[string]interface{}{"tagKey": tagKey}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

//
// Documents
//

type arangoDocuments struct{ s *ArangoStore }

func (d *arangoDocuments) Create(ctx context.Context, doc *model.OrderDocument) (string, error) {
	key, err := d.s.createDoc(ctx, database.ColDocuments, doc)
	if err == nil {
		doc.Key = key
	}
	return key, err
}

func (d *arangoDocuments) GetByKey(ctx context.Context, key string) (*model.OrderDocument, error) {
	var doc model.OrderDocument
	found, err := d.s.readDoc(ctx, database.ColDocuments, key, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func (d *arangoDocuments) GetByLabel(ctx context.Context, orderKey, label string) (*model.OrderDocument, error) {
	query := `
		FOR d IN payment_order_document
			FILTER d.order_key == @orderKey AND d.requirement_label == @label
			LIMIT 1
			RETURN d
	`
	var doc model.OrderDocument
	found, err := d.s.queryOne(ctx, query, map[string]interface{}{"orderKey": orderKey, "label": label}, &doc)
	if err != nil || !found {
		return nil, err
	}
	return &doc, nil
}

func (d *arangoDocuments) ListByOrder(ctx context.Context, orderKey string) ([]model.OrderDocument, error) {
	query := `
		FOR d IN payment_order_document
			FILTER d.order_key == @orderKey
			SORT d.created_at ASC
			RETURN d
	`
	cursor, err := d.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"orderKey": orderKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []model.OrderDocument
	for cursor.HasMore() {
		var doc model.OrderDocument
		if _, err := cursor.ReadDocument(ctx, &doc); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, nil
}

func (d *arangoDocuments) Delete(ctx context.Context, key string) error {
	col, err := d.s.collection(ctx, database.ColDocuments)
	if err != nil {
		return err
	}
	_, err = col.DeleteDocument(ctx, key)
	return mapArangoErr(err)
}

//
// History
//

type arangoHistory struct{ s *ArangoStore }

func (h *arangoHistory) Append(ctx context.Context, e *model.HistoryEntry) (string, error) {
	key, err := h.s.createDoc(ctx, database.ColHistory, e)
	if err == nil {
		e.Key = key
	}
	return key, err
}

func (h *arangoHistory) ListByOrder(ctx context.Context, orderKey string) ([]model.HistoryEntry, error) {
	query := `
		FOR e IN payment_order_history
			FILTER e.order_key == @orderKey
			SORT e.created_at ASC
			RETURN e
	`
	cursor, err := h.s.db.Query(ctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"orderKey": orderKey},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var result []model.HistoryEntry
	for cursor.HasMore() {
		var e model.HistoryEntry
		if _, err := cursor.ReadDocument(ctx, &e); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}
