package workflow

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

type recordingNotifier struct {
	events []Event
}

func (n *recordingNotifier) Publish(_ context.Context, evt Event) error {
	n.events = append(n.events, evt)
	return nil
}

type recordingStorage struct {
	removed []string
}

func (s *recordingStorage) Remove(_ context.Context, storageKey string) error {
	s.removed = append(s.removed, storageKey)
	return nil
}

type denyLimits struct{}

func (denyLimits) AllowOrderCreate(context.Context, *model.OrderProfile) error {
	return apperr.Wrap(apperr.ErrLimitExceeded, "order quota reached")
}

type fixture struct {
	st       *store.MemoryStore
	svc      *Service
	notifier *recordingNotifier
	storage  *recordingStorage

	owner   *model.User
	admin   *model.User
	member  *model.User
	guest   *model.User // whitelisted, not a member
	nobody  *model.User // no access at all
	profile *model.OrderProfile
	tag     *model.Tag
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemoryStore()

	f := &fixture{
		st:       st,
		notifier: &recordingNotifier{},
		storage:  &recordingStorage{},
	}

	mkUser := func(key, name, email string) *model.User {
		u := model.NewUser(name, email)
		u.Key = key
		if _, err := st.Users().Create(ctx, u); err != nil {
			t.Fatalf("seed user %s: %v", key, err)
		}
		return u
	}
	f.owner = mkUser("u-owner", "Olivia Owner", "olivia@example.com")
	f.admin = mkUser("u-admin", "Adam Admin", "adam@example.com")
	f.member = mkUser("u-member", "Mia Member", "mia@example.com")
	f.guest = mkUser("u-guest", "Gary Guest", "gary@guest.example")
	f.nobody = mkUser("u-nobody", "Nadia Nobody", "nadia@example.com")

	org := &model.Org{Key: "org1", Name: "ACME", Slug: "acme", OwnerKey: f.owner.Key}
	if _, err := st.Orgs().Create(ctx, org); err != nil {
		t.Fatal(err)
	}
	for user, role := range map[*model.User]model.MembershipRole{
		f.owner:  model.RoleOwner,
		f.admin:  model.RoleAdmin,
		f.member: model.RoleMember,
	} {
		if _, err := st.Memberships().Create(ctx, model.NewOrgMembership(org.Key, user.Key, role)); err != nil {
			t.Fatal(err)
		}
	}

	f.profile = model.NewOrderProfile(org.Key, f.owner.Key, "Procurement", "procurement")
	f.profile.AllowedEmails = []string{"gary@guest.example"}
	if _, err := st.Profiles().Create(ctx, f.profile); err != nil {
		t.Fatal(err)
	}

	f.tag = &model.Tag{
		ProfileKey: f.profile.Key,
		Name:       "hardware",
		Color:      "#0a7f3c",
		FileRequirements: []model.FileRequirement{
			{Label: "invoice", AllowedMimeTypes: []string{"application/pdf"}, MaxFileSizeMB: 5, Required: true},
		},
	}
	if _, err := st.Tags().Create(ctx, f.tag); err != nil {
		t.Fatal(err)
	}

	f.svc = NewService(st, AllowAllLimits{}, f.storage, f.notifier, zap.NewNop())
	return f
}

func (f *fixture) createOrder(t *testing.T, actor *model.User, tagKey string) *model.PaymentOrder {
	t.Helper()
	order, err := f.svc.CreateOrder(context.Background(), actor, CreateOrderInput{
		ProfileKey: f.profile.Key,
		Title:      "New laptops",
		Reason:     "Team hardware refresh",
		Amount:     4200,
		Currency:   "EUR",
		TagKey:     tagKey,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	return order
}

func (f *fixture) upload(t *testing.T, actor *model.User, orderKey, label, storageKey string) *model.OrderDocument {
	t.Helper()
	doc, err := f.svc.AddDocument(context.Background(), actor, AddDocumentInput{
		OrderKey:         orderKey,
		RequirementLabel: label,
		FileName:         label + ".pdf",
		StorageKey:       storageKey,
		MimeType:         "application/pdf",
		SizeBytes:        1024,
	})
	if err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	return doc
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, f.member, f.tag.Key)
	if order.Status != model.StatusCreated {
		t.Errorf("status = %s, want CREATED", order.Status)
	}

	entries, err := f.st.History().ListByOrder(ctx, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Action != model.ActionCreated {
		t.Errorf("history = %+v, want one CREATED entry", entries)
	}
	if entries[0].UserKey != f.member.Key {
		t.Errorf("ledger actor = %s, want %s", entries[0].UserKey, f.member.Key)
	}

	if len(f.notifier.events) != 1 || f.notifier.events[0].Type != EventOrderCreated {
		t.Errorf("events = %+v, want one order.created", f.notifier.events)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		actor    *model.User
		in       CreateOrderInput
		wantKind error
	}{
		{"no access", f.nobody, CreateOrderInput{ProfileKey: f.profile.Key, Title: "x", Reason: "y", Amount: 1, Currency: "EUR"}, apperr.ErrForbidden},
		{"missing title", f.member, CreateOrderInput{ProfileKey: f.profile.Key, Reason: "y", Amount: 1, Currency: "EUR"}, apperr.ErrInvalidInput},
		{"missing reason", f.member, CreateOrderInput{ProfileKey: f.profile.Key, Title: "x", Amount: 1, Currency: "EUR"}, apperr.ErrInvalidInput},
		{"zero amount", f.member, CreateOrderInput{ProfileKey: f.profile.Key, Title: "x", Reason: "y", Currency: "EUR"}, apperr.ErrInvalidInput},
		{"unknown profile", f.member, CreateOrderInput{ProfileKey: "missing", Title: "x", Reason: "y", Amount: 1, Currency: "EUR"}, apperr.ErrNotFound},
		{"unknown tag", f.member, CreateOrderInput{ProfileKey: f.profile.Key, Title: "x", Reason: "y", Amount: 1, Currency: "EUR", TagKey: "missing"}, apperr.ErrNotFound},
	}

	for _, tt := range tests {
		_, err := f.svc.CreateOrder(ctx, tt.actor, tt.in)
		if !errors.Is(err, tt.wantKind) {
			t.Errorf("%s: error = %v, want kind %v", tt.name, err, tt.wantKind)
		}
	}
}

func TestCreateOrderLimit(t *testing.T) {
	f := newFixture(t)
	f.svc = NewService(f.st, denyLimits{}, f.storage, f.notifier, zap.NewNop())

	_, err := f.svc.CreateOrder(context.Background(), f.member, CreateOrderInput{
		ProfileKey: f.profile.Key, Title: "x", Reason: "y", Amount: 1, Currency: "EUR",
	})
	if !errors.Is(err, apperr.ErrLimitExceeded) {
		t.Errorf("error = %v, want ErrLimitExceeded", err)
	}
}

func TestSubmitGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)

	// Gate blocks submission while the invoice is missing.
	_, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, "")
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("submit without documents: error = %v, want ErrInvalidState", err)
	}

	complete, missing, err := f.svc.CanSubmit(ctx, f.member, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	if complete || len(missing) != 1 || missing[0] != "invoice" {
		t.Errorf("CanSubmit = (%v, %v)", complete, missing)
	}

	f.upload(t, f.member, order.Key, "invoice", "s3://docs/invoice-1")

	updated, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, "")
	if err != nil {
		t.Fatalf("submit after upload: %v", err)
	}
	if updated.Status != model.StatusInReview {
		t.Errorf("status = %s, want IN_REVIEW", updated.Status)
	}
}

func TestTransitionPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, "")

	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, ""); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Plain members hold no reviewer powers, not even on their own order.
	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionApprove, ""); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("member approve: error = %v, want ErrForbidden", err)
	}

	// Reject needs a comment.
	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionReject, "  "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("reject without comment: error = %v, want ErrInvalidInput", err)
	}

	updated, err := f.svc.Transition(ctx, f.admin, order.Key, ActionApprove, "")
	if err != nil {
		t.Fatalf("admin approve: %v", err)
	}
	if updated.Status != model.StatusApproved {
		t.Errorf("status = %s, want APPROVED", updated.Status)
	}

	// Approved orders only move forward via markPaid.
	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionApprove, ""); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("double approve: error = %v, want ErrInvalidState", err)
	}

	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionMarkPaid, ""); err != nil {
		t.Fatalf("markPaid: %v", err)
	}
	updated, err = f.svc.Transition(ctx, f.owner, order.Key, ActionReconcile, "")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if updated.Status != model.StatusReconciled {
		t.Errorf("status = %s, want RECONCILED", updated.Status)
	}
}

func TestAutoTransitionOnUpload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)
	f.upload(t, f.member, order.Key, "invoice", "s3://docs/invoice-1")

	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionNeedsSupport, "invoice is blurry"); err != nil {
		t.Fatal(err)
	}

	f.notifier.events = nil
	f.upload(t, f.member, order.Key, "invoice", "s3://docs/invoice-2")

	got, err := f.svc.GetOrder(ctx, f.member, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusInReview {
		t.Errorf("status = %s, want IN_REVIEW after auto-transition", got.Status)
	}

	entries, err := f.st.History().ListByOrder(ctx, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	var auto *model.HistoryEntry
	for i := range entries {
		if entries[i].UserKey == model.SystemActorKey {
			auto = &entries[i]
		}
	}
	if auto == nil {
		t.Fatal("no system ledger entry recorded")
	}
	if auto.Action != model.ActionStatusChanged || auto.Comment != AutoTransitionComment {
		t.Errorf("system entry = %+v", auto)
	}
	if auto.PreviousStatus != model.StatusNeedsSupport || auto.NewStatus != model.StatusInReview {
		t.Errorf("system entry statuses = %s -> %s", auto.PreviousStatus, auto.NewStatus)
	}

	// The replaced invoice object is removed best-effort.
	if len(f.storage.removed) != 1 || f.storage.removed[0] != "s3://docs/invoice-1" {
		t.Errorf("removed = %v", f.storage.removed)
	}

	// Both the document event and the system status change are published.
	var types []EventType
	for _, e := range f.notifier.events {
		types = append(types, e.Type)
	}
	if len(types) != 2 || types[0] != EventDocumentAdded || types[1] != EventStatusChanged {
		t.Errorf("event types = %v", types)
	}
	if f.notifier.events[1].ActorKey != model.SystemActorKey {
		t.Errorf("status event actor = %s, want system", f.notifier.events[1].ActorKey)
	}
}

func TestDocumentReplacement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)

	f.upload(t, f.member, order.Key, "invoice", "s3://docs/v1")
	f.upload(t, f.member, order.Key, "invoice", "s3://docs/v2")

	docs, err := f.svc.ListDocuments(ctx, f.member, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("documents = %d, want 1 after replacement", len(docs))
	}
	if docs[0].StorageKey != "s3://docs/v2" {
		t.Errorf("surviving document = %s", docs[0].StorageKey)
	}
	if len(f.storage.removed) != 1 || f.storage.removed[0] != "s3://docs/v1" {
		t.Errorf("removed = %v", f.storage.removed)
	}
}

func TestDocumentUploadValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)

	_, err := f.svc.AddDocument(ctx, f.member, AddDocumentInput{
		OrderKey: order.Key, RequirementLabel: "invoice", MimeType: "image/jpeg", SizeBytes: 10,
	})
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("wrong mime: error = %v, want ErrInvalidInput", err)
	}

	_, err = f.svc.AddDocument(ctx, f.guest, AddDocumentInput{
		OrderKey: order.Key, RequirementLabel: "invoice", MimeType: "application/pdf", SizeBytes: 10,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("non-creator upload: error = %v, want ErrForbidden", err)
	}
}

func TestDocumentsFrozenWhenFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)
	doc := f.upload(t, f.member, order.Key, "invoice", "s3://docs/v1")

	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionCancel, ""); err != nil {
		t.Fatal(err)
	}

	_, err := f.svc.AddDocument(ctx, f.member, AddDocumentInput{
		OrderKey: order.Key, RequirementLabel: "invoice", MimeType: "application/pdf", SizeBytes: 10,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("upload to final order: error = %v, want ErrForbidden", err)
	}

	if err := f.svc.DeleteDocument(ctx, f.member, order.Key, doc.Key); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("delete on final order: error = %v, want ErrForbidden", err)
	}
}

func TestDeleteDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)
	doc := f.upload(t, f.member, order.Key, "invoice", "s3://docs/v1")

	// Another member cannot delete someone else's upload; an admin can.
	if err := f.svc.DeleteDocument(ctx, f.guest, order.Key, doc.Key); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("guest delete: error = %v, want ErrForbidden", err)
	}
	if err := f.svc.DeleteDocument(ctx, f.admin, order.Key, doc.Key); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	docs, err := f.svc.ListDocuments(ctx, f.member, order.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("documents = %d, want 0", len(docs))
	}

	entries, _ := f.st.History().ListByOrder(ctx, order.Key)
	last := entries[len(entries)-1]
	if last.Action != model.ActionDocumentRemoved {
		t.Errorf("last ledger action = %s, want DOCUMENT_REMOVED", last.Action)
	}
}

func TestVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	memberOrder := f.createOrder(t, f.member, "")
	guestOrder := f.createOrder(t, f.guest, "")

	// The whitelisted guest only sees their own order.
	list, err := f.svc.ListOrders(ctx, f.guest, f.profile.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Key != guestOrder.Key {
		t.Errorf("guest list = %+v", list)
	}

	got, err := f.svc.GetOrder(ctx, f.guest, memberOrder.Key)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("guest should not see a member's order")
	}

	// Members see everything in the profile.
	list, err = f.svc.ListOrders(ctx, f.member, f.profile.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Errorf("member list = %d orders, want 2", len(list))
	}

	// A caller with no access gets an empty result, not an error.
	list, err = f.svc.ListOrders(ctx, f.nobody, f.profile.Key)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("nobody list = %+v, want empty", list)
	}
	docs, err := f.svc.ListDocuments(ctx, f.nobody, memberOrder.Key)
	if err != nil || docs != nil {
		t.Errorf("nobody documents = (%v, %v), want (nil, nil)", docs, err)
	}
}

func TestUpdateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, "")

	title := "New laptops (amended)"
	amount := 4800.0
	updated, err := f.svc.UpdateOrder(ctx, f.member, order.Key, UpdateOrderInput{Title: &title, Amount: &amount})
	if err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}
	if updated.Title != title || updated.Amount != amount {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := f.svc.UpdateOrder(ctx, f.admin, order.Key, UpdateOrderInput{Title: &title}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("non-creator edit: error = %v, want ErrForbidden", err)
	}

	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.UpdateOrder(ctx, f.member, order.Key, UpdateOrderInput{Title: &title}); !errors.Is(err, apperr.ErrInvalidState) {
		t.Errorf("edit in review: error = %v, want ErrInvalidState", err)
	}

	entries, _ := f.st.History().ListByOrder(ctx, order.Key)
	var sawUpdate bool
	for _, e := range entries {
		if e.Action == model.ActionUpdated {
			sawUpdate = true
		}
	}
	if !sawUpdate {
		t.Error("no UPDATED ledger entry recorded")
	}
}

func TestHistoryEnrichment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, f.tag.Key)
	f.upload(t, f.member, order.Key, "invoice", "s3://docs/v1")
	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionNeedsSupport, "need a second quote"); err != nil {
		t.Fatal(err)
	}
	f.upload(t, f.member, order.Key, "invoice", "s3://docs/v2") // auto-transition

	views, err := f.svc.History(ctx, f.member, order.Key)
	if err != nil {
		t.Fatal(err)
	}

	byActor := make(map[string]string)
	for _, v := range views {
		byActor[v.UserKey] = v.ActorName
	}
	if byActor[f.member.Key] != "Mia Member" {
		t.Errorf("member actor name = %q", byActor[f.member.Key])
	}
	if byActor[f.admin.Key] != "Adam Admin" {
		t.Errorf("admin actor name = %q", byActor[f.admin.Key])
	}
	if byActor[model.SystemActorKey] != "System" {
		t.Errorf("system actor name = %q", byActor[model.SystemActorKey])
	}
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, "")

	if _, err := f.svc.AddComment(ctx, f.member, order.Key, "   "); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("blank comment: error = %v, want ErrInvalidInput", err)
	}

	entry, err := f.svc.AddComment(ctx, f.admin, order.Key, "looks fine so far")
	if err != nil {
		t.Fatal(err)
	}
	if entry.Action != model.ActionCommentAdded || entry.Comment != "looks fine so far" {
		t.Errorf("entry = %+v", entry)
	}
}

// conflictOnceStore wraps a Store and fails the first order update with
// ErrConflict to exercise the single retry.
type conflictOnceStore struct {
	store.Store
	fired *bool
}

func (c conflictOnceStore) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	return c.Store.InTx(ctx, func(tx store.Store) error {
		return fn(conflictOnceStore{Store: tx, fired: c.fired})
	})
}

func (c conflictOnceStore) Orders() store.OrderStore {
	return conflictOnceOrders{OrderStore: c.Store.Orders(), fired: c.fired}
}

type conflictOnceOrders struct {
	store.OrderStore
	fired *bool
}

func (o conflictOnceOrders) Update(ctx context.Context, order *model.PaymentOrder) error {
	if !*o.fired {
		*o.fired = true
		return store.ErrConflict
	}
	return o.OrderStore.Update(ctx, order)
}

func TestTransitionRetriesOnConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, f.member, "")

	fired := false
	f.svc = NewService(conflictOnceStore{Store: f.st, fired: &fired}, AllowAllLimits{}, f.storage, f.notifier, zap.NewNop())

	updated, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, "")
	if err != nil {
		t.Fatalf("Transition with one conflict: %v", err)
	}
	if updated.Status != model.StatusInReview {
		t.Errorf("status = %s, want IN_REVIEW", updated.Status)
	}
	if !fired {
		t.Error("conflict was never injected")
	}

	entries, _ := f.st.History().ListByOrder(ctx, order.Key)
	changes := 0
	for _, e := range entries {
		if e.Action == model.ActionStatusChanged {
			changes++
		}
	}
	if changes != 1 {
		t.Errorf("STATUS_CHANGED entries = %d, want exactly 1 after retry", changes)
	}
}

// Cancelling is reachable from several statuses, so the emitted event must
// carry the status the order actually held, not one derived from the action.
func TestCancelEventCarriesPreviousStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order := f.createOrder(t, f.member, f.tag.Key)
	f.upload(t, f.member, order.Key, "invoice", "s3://orders/invoice.pdf")
	if _, err := f.svc.Transition(ctx, f.member, order.Key, ActionSubmit, ""); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := f.svc.Transition(ctx, f.admin, order.Key, ActionCancel, ""); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	evt := f.notifier.events[len(f.notifier.events)-1]
	if evt.Type != EventStatusChanged {
		t.Fatalf("last event = %s, want %s", evt.Type, EventStatusChanged)
	}
	if evt.PreviousStatus != model.StatusInReview || evt.NewStatus != model.StatusCancelled {
		t.Errorf("event statuses = %s -> %s, want IN_REVIEW -> CANCELLED", evt.PreviousStatus, evt.NewStatus)
	}
}
