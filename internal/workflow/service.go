package workflow

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderhub/orderhub-backend/internal/access"
	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/requirement"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

// Service orchestrates payment-order operations: each state-changing call
// validates access and the transition table, then commits the order mutation
// together with its history entry in one unit of work.
type Service struct {
	store    store.Store
	resolver *access.Resolver
	limits   LimitChecker
	objects  ObjectStorage
	notifier Notifier
	log      *zap.Logger
}

// NewService wires the order service with its collaborators.
func NewService(st store.Store, limits LimitChecker, objects ObjectStorage, notifier Notifier, log *zap.Logger) *Service {
	return &Service{
		store:    st,
		resolver: access.NewResolver(st.Memberships()),
		limits:   limits,
		objects:  objects,
		notifier: notifier,
		log:      log,
	}
}

// Resolver exposes the access resolver for transport-layer checks.
func (s *Service) Resolver() *access.Resolver {
	return s.resolver
}

// CreateOrderInput carries the fields of a new payment order.
type CreateOrderInput struct {
	ProfileKey  string  `json:"profile_key"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Reason      string  `json:"reason"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	TagKey      string  `json:"tag_key"`
}

// CreateOrder validates input and access, consults the usage-limit
// collaborator, then creates the order with its CREATED ledger entry.
func (s *Service) CreateOrder(ctx context.Context, actor *model.User, in CreateOrderInput) (*model.PaymentOrder, error) {
	profile, err := s.store.Profiles().GetByKey(ctx, in.ProfileKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "profile %q", in.ProfileKey)
	}

	acc, err := s.resolver.Resolve(ctx, actor, profile)
	if err != nil {
		return nil, err
	}
	if !acc.CanCreateOrders() {
		return nil, apperr.Wrap(apperr.ErrForbidden, "no access to profile %q", profile.Slug)
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "title is required")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "reason is required")
	}
	if in.Amount <= 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "amount must be positive")
	}
	if strings.TrimSpace(in.Currency) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "currency is required")
	}

	if in.TagKey != "" {
		tag, err := s.store.Tags().GetByKey(ctx, in.TagKey)
		if err != nil {
			return nil, err
		}
		if tag == nil {
			return nil, apperr.Wrap(apperr.ErrNotFound, "tag %q", in.TagKey)
		}
		if tag.ProfileKey != profile.Key {
			return nil, apperr.Wrap(apperr.ErrInvalidInput, "tag %q belongs to a different profile", tag.Name)
		}
	}

	if err := s.limits.AllowOrderCreate(ctx, profile); err != nil {
		return nil, err
	}

	order := model.NewPaymentOrder(profile.Key, actor.Key, in.Title, in.Reason, in.Amount, in.Currency)
	order.Description = in.Description
	order.TagKey = in.TagKey

	err = s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := tx.Orders().Create(ctx, order); err != nil {
			return err
		}
		entry := model.NewHistoryEntry(order.Key, actor.Key, model.ActionCreated)
		entry.NewStatus = order.Status
		_, err := tx.History().Append(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, Event{
		Type:       EventOrderCreated,
		OrderKey:   order.Key,
		ProfileKey: profile.Key,
		ActorKey:   actor.Key,
		NewStatus:  order.Status,
	})
	return order, nil
}

// Transition applies a manual action from the transition table. Validation
// and the write happen inside one transaction; a storage conflict triggers a
// single re-read/re-validate retry before surfacing InvalidState.
func (s *Service) Transition(ctx context.Context, actor *model.User, orderKey string, action Action, comment string) (*model.PaymentOrder, error) {
	order, previous, err := s.applyTransition(ctx, actor, orderKey, action, comment)
	if errors.Is(err, store.ErrConflict) {
		order, previous, err = s.applyTransition(ctx, actor, orderKey, action, comment)
		if errors.Is(err, store.ErrConflict) {
			return nil, apperr.Wrap(apperr.ErrInvalidState, "order %q changed concurrently", orderKey)
		}
	}
	if err != nil {
		return nil, err
	}

	s.emit(ctx, Event{
		Type:           EventStatusChanged,
		OrderKey:       order.Key,
		ProfileKey:     order.ProfileKey,
		ActorKey:       actor.Key,
		PreviousStatus: previous,
		NewStatus:      order.Status,
		Comment:        comment,
	})
	return order, nil
}

// applyTransition runs one transactional attempt and reports the status the
// order held before the write, for the event payload.
func (s *Service) applyTransition(ctx context.Context, actor *model.User, orderKey string, action Action, comment string) (*model.PaymentOrder, model.OrderStatus, error) {
	var applied *model.PaymentOrder
	var previous model.OrderStatus

	err := s.store.InTx(ctx, func(tx store.Store) error {
		order, acc, err := s.visibleOrder(ctx, tx, actor, orderKey)
		if err != nil {
			return err
		}

		isCreator := order.CreatedByKey == actor.Key
		rule, ok := RuleFor(order.Status, action)
		if !ok {
			return apperr.Wrap(apperr.ErrInvalidState, "%s is not permitted from %s", action, order.Status)
		}
		if !((rule.AllowCreator && isCreator) || (rule.AllowElevated && acc.CanReview())) {
			return apperr.Wrap(apperr.ErrForbidden, "%s on order %q", action, orderKey)
		}
		if rule.RequireComment && strings.TrimSpace(comment) == "" {
			return apperr.Wrap(apperr.ErrInvalidInput, "%s requires a comment", action)
		}

		if rule.Gated {
			tag, err := s.orderTag(ctx, tx, order)
			if err != nil {
				return err
			}
			docs, err := tx.Documents().ListByOrder(ctx, order.Key)
			if err != nil {
				return err
			}
			if missing := requirement.Missing(tag, docs); len(missing) > 0 {
				return apperr.Wrap(apperr.ErrInvalidState, "required documents missing: %s", strings.Join(missing, ", "))
			}
		}

		previous = order.Status
		order.Status = rule.To
		order.UpdatedAt = time.Now().UTC()
		if err := tx.Orders().Update(ctx, order); err != nil {
			return err
		}

		entry := model.NewHistoryEntry(order.Key, actor.Key, model.ActionStatusChanged)
		entry.PreviousStatus = previous
		entry.NewStatus = order.Status
		entry.Comment = strings.TrimSpace(comment)
		if _, err := tx.History().Append(ctx, entry); err != nil {
			return err
		}

		applied = order
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return applied, previous, nil
}

// AddDocumentInput carries uploaded-document metadata from the upload
// pipeline; the bytes themselves never pass through this service.
type AddDocumentInput struct {
	OrderKey         string `json:"order_key"`
	RequirementLabel string `json:"requirement_label"`
	FileName         string `json:"file_name"`
	StorageKey       string `json:"storage_key"`
	URL              string `json:"url"`
	MimeType         string `json:"mime_type"`
	SizeBytes        int64  `json:"size_bytes"`
}

// AddDocument validates the upload against the order's tag requirements and
// stores the metadata. Uploading a label that already has a document replaces
// it. A successful upload while the order is in NEEDS_SUPPORT automatically
// moves it back to IN_REVIEW under the system actor.
func (s *Service) AddDocument(ctx context.Context, actor *model.User, in AddDocumentInput) (*model.OrderDocument, error) {
	doc, replacedKey, autoTransitioned, err := s.applyAddDocument(ctx, actor, in)
	if errors.Is(err, store.ErrConflict) {
		doc, replacedKey, autoTransitioned, err = s.applyAddDocument(ctx, actor, in)
		if errors.Is(err, store.ErrConflict) {
			return nil, apperr.Wrap(apperr.ErrInvalidState, "order %q changed concurrently", in.OrderKey)
		}
	}
	if err != nil {
		return nil, err
	}

	if replacedKey != "" {
		s.removeObject(ctx, replacedKey)
	}

	s.emit(ctx, Event{
		Type:          EventDocumentAdded,
		OrderKey:      doc.OrderKey,
		ActorKey:      actor.Key,
		DocumentLabel: doc.RequirementLabel,
	})
	if autoTransitioned {
		s.emit(ctx, Event{
			Type:           EventStatusChanged,
			OrderKey:       doc.OrderKey,
			ActorKey:       model.SystemActorKey,
			PreviousStatus: model.StatusNeedsSupport,
			NewStatus:      model.StatusInReview,
			Comment:        AutoTransitionComment,
		})
	}
	return doc, nil
}

func (s *Service) applyAddDocument(ctx context.Context, actor *model.User, in AddDocumentInput) (*model.OrderDocument, string, bool, error) {
	var (
		doc              *model.OrderDocument
		replacedKey      string
		autoTransitioned bool
	)

	err := s.store.InTx(ctx, func(tx store.Store) error {
		replacedKey = ""
		autoTransitioned = false

		order, acc, err := s.visibleOrder(ctx, tx, actor, in.OrderKey)
		if err != nil {
			return err
		}
		if order.Status.IsFinal() {
			return apperr.Wrap(apperr.ErrForbidden, "order %q is final; documents are frozen", order.Key)
		}
		if order.CreatedByKey != actor.Key && !acc.IsOrgAdminOrOwner() {
			return apperr.Wrap(apperr.ErrForbidden, "only the order creator or an org admin can upload documents")
		}

		tag, err := s.orderTag(ctx, tx, order)
		if err != nil {
			return err
		}
		if err := requirement.ValidateUpload(tag, in.RequirementLabel, in.MimeType, in.SizeBytes); err != nil {
			return err
		}

		// Single document per label: drop the previous row before inserting.
		existing, err := tx.Documents().GetByLabel(ctx, order.Key, in.RequirementLabel)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := tx.Documents().Delete(ctx, existing.Key); err != nil {
				return err
			}
			replacedKey = existing.StorageKey
		}

		doc = model.NewOrderDocument(order.Key, actor.Key, in.RequirementLabel)
		doc.FileName = in.FileName
		doc.StorageKey = in.StorageKey
		doc.URL = in.URL
		doc.MimeType = in.MimeType
		doc.SizeBytes = in.SizeBytes
		if _, err := tx.Documents().Create(ctx, doc); err != nil {
			return err
		}

		entry := model.NewHistoryEntry(order.Key, actor.Key, model.ActionDocumentAdded)
		entry.Metadata = map[string]string{
			"requirement_label": in.RequirementLabel,
			"file_name":         in.FileName,
		}
		if _, err := tx.History().Append(ctx, entry); err != nil {
			return err
		}

		if order.Status == model.StatusNeedsSupport {
			order.Status = model.StatusInReview
			order.UpdatedAt = time.Now().UTC()
			if err := tx.Orders().Update(ctx, order); err != nil {
				return err
			}
			auto := model.NewHistoryEntry(order.Key, model.SystemActorKey, model.ActionStatusChanged)
			auto.PreviousStatus = model.StatusNeedsSupport
			auto.NewStatus = model.StatusInReview
			auto.Comment = AutoTransitionComment
			if _, err := tx.History().Append(ctx, auto); err != nil {
				return err
			}
			autoTransitioned = true
		}
		return nil
	})
	if err != nil {
		return nil, "", false, err
	}
	return doc, replacedKey, autoTransitioned, nil
}

// DeleteDocument removes a document's metadata row and records the removal.
// Only the uploader or an org admin/owner may delete, and never once the
// order has reached a final status.
func (s *Service) DeleteDocument(ctx context.Context, actor *model.User, orderKey, docKey string) error {
	var storageKey string

	err := s.store.InTx(ctx, func(tx store.Store) error {
		order, acc, err := s.visibleOrder(ctx, tx, actor, orderKey)
		if err != nil {
			return err
		}
		if order.Status.IsFinal() {
			return apperr.Wrap(apperr.ErrForbidden, "order %q is final; documents are frozen", order.Key)
		}

		doc, err := tx.Documents().GetByKey(ctx, docKey)
		if err != nil {
			return err
		}
		if doc == nil || doc.OrderKey != order.Key {
			return apperr.Wrap(apperr.ErrNotFound, "document %q", docKey)
		}
		if doc.UploadedByKey != actor.Key && !acc.IsOrgAdminOrOwner() {
			return apperr.Wrap(apperr.ErrForbidden, "only the uploader or an org admin can delete documents")
		}

		if err := tx.Documents().Delete(ctx, doc.Key); err != nil {
			return err
		}
		storageKey = doc.StorageKey

		entry := model.NewHistoryEntry(order.Key, actor.Key, model.ActionDocumentRemoved)
		entry.Metadata = map[string]string{
			"requirement_label": doc.RequirementLabel,
			"file_name":         doc.FileName,
		}
		_, err = tx.History().Append(ctx, entry)
		return err
	})
	if err != nil {
		return err
	}

	s.removeObject(ctx, storageKey)
	return nil
}

// UpdateOrderInput carries optional edits; nil fields are left unchanged.
type UpdateOrderInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Reason      *string  `json:"reason"`
	Amount      *float64 `json:"amount"`
	TagKey      *string  `json:"tag_key"`
}

// UpdateOrder lets the creator edit an order before it enters review, i.e.
// while the status is CREATED or NEEDS_SUPPORT. An UPDATED entry is recorded.
func (s *Service) UpdateOrder(ctx context.Context, actor *model.User, orderKey string, in UpdateOrderInput) (*model.PaymentOrder, error) {
	var updated *model.PaymentOrder

	err := s.store.InTx(ctx, func(tx store.Store) error {
		order, _, err := s.visibleOrder(ctx, tx, actor, orderKey)
		if err != nil {
			return err
		}
		if order.CreatedByKey != actor.Key {
			return apperr.Wrap(apperr.ErrForbidden, "only the creator can edit an order")
		}
		if order.Status != model.StatusCreated && order.Status != model.StatusNeedsSupport {
			return apperr.Wrap(apperr.ErrInvalidState, "orders cannot be edited in %s", order.Status)
		}

		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return apperr.Wrap(apperr.ErrInvalidInput, "title is required")
			}
			order.Title = *in.Title
		}
		if in.Description != nil {
			order.Description = *in.Description
		}
		if in.Reason != nil {
			if strings.TrimSpace(*in.Reason) == "" {
				return apperr.Wrap(apperr.ErrInvalidInput, "reason is required")
			}
			order.Reason = *in.Reason
		}
		if in.Amount != nil {
			if *in.Amount <= 0 {
				return apperr.Wrap(apperr.ErrInvalidInput, "amount must be positive")
			}
			order.Amount = *in.Amount
		}
		if in.TagKey != nil {
			if *in.TagKey != "" {
				tag, err := tx.Tags().GetByKey(ctx, *in.TagKey)
				if err != nil {
					return err
				}
				if tag == nil {
					return apperr.Wrap(apperr.ErrNotFound, "tag %q", *in.TagKey)
				}
				if tag.ProfileKey != order.ProfileKey {
					return apperr.Wrap(apperr.ErrInvalidInput, "tag %q belongs to a different profile", tag.Name)
				}
			}
			order.TagKey = *in.TagKey
		}

		order.UpdatedAt = time.Now().UTC()
		if err := tx.Orders().Update(ctx, order); err != nil {
			return err
		}

		entry := model.NewHistoryEntry(order.Key, actor.Key, model.ActionUpdated)
		if _, err := tx.History().Append(ctx, entry); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddComment appends a COMMENT_ADDED entry. History is append-only, so a
// comment can never be edited; corrections are further comments.
func (s *Service) AddComment(ctx context.Context, actor *model.User, orderKey, comment string) (*model.HistoryEntry, error) {
	if strings.TrimSpace(comment) == "" {
		return nil, apperr.Wrap(apperr.ErrInvalidInput, "comment is required")
	}

	var entry *model.HistoryEntry
	err := s.store.InTx(ctx, func(tx store.Store) error {
		order, _, err := s.visibleOrder(ctx, tx, actor, orderKey)
		if err != nil {
			return err
		}
		entry = model.NewHistoryEntry(order.Key, actor.Key, model.ActionCommentAdded)
		entry.Comment = strings.TrimSpace(comment)
		_, err = tx.History().Append(ctx, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetOrder returns the order if the caller may see it, nil otherwise.
// Invisibility is not an error so existence is not leaked.
func (s *Service) GetOrder(ctx context.Context, actor *model.User, orderKey string) (*model.PaymentOrder, error) {
	order, err := s.store.Orders().GetByKey(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "order %q", orderKey)
	}

	acc, err := s.accessFor(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !acc.CanSeeOrder(order, actor.Key) {
		return nil, nil
	}
	return order, nil
}

// ListOrders returns the profile's orders visible to the caller: all of them
// for members and elevated callers, only their own for whitelisted callers,
// and none for callers without access.
func (s *Service) ListOrders(ctx context.Context, actor *model.User, profileKey string) ([]model.PaymentOrder, error) {
	profile, err := s.store.Profiles().GetByKey(ctx, profileKey)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "profile %q", profileKey)
	}

	acc, err := s.resolver.Resolve(ctx, actor, profile)
	if err != nil {
		return nil, err
	}
	switch {
	case acc.CanSeeAllOrders():
		return s.store.Orders().ListByProfile(ctx, profile.Key, "")
	case acc.Tier == access.TierScoped:
		return s.store.Orders().ListByProfile(ctx, profile.Key, actor.Key)
	default:
		return nil, nil
	}
}

// ListDocuments returns the order's documents, or nothing if the caller may
// not see the order.
func (s *Service) ListDocuments(ctx context.Context, actor *model.User, orderKey string) ([]model.OrderDocument, error) {
	order, err := s.store.Orders().GetByKey(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "order %q", orderKey)
	}
	acc, err := s.accessFor(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !acc.CanSeeOrder(order, actor.Key) {
		return nil, nil
	}
	return s.store.Documents().ListByOrder(ctx, order.Key)
}

// History returns the order's ledger ascending by creation time, enriched
// with actor display info. Enrichment is a read-time join.
func (s *Service) History(ctx context.Context, actor *model.User, orderKey string) ([]model.HistoryEntryView, error) {
	order, err := s.store.Orders().GetByKey(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "order %q", orderKey)
	}
	acc, err := s.accessFor(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !acc.CanSeeOrder(order, actor.Key) {
		return nil, nil
	}

	entries, err := s.store.History().ListByOrder(ctx, order.Key)
	if err != nil {
		return nil, err
	}

	views := make([]model.HistoryEntryView, 0, len(entries))
	actors := make(map[string]*model.User)
	for _, e := range entries {
		view := model.HistoryEntryView{HistoryEntry: e}
		if e.UserKey == model.SystemActorKey {
			view.ActorName = "System"
		} else {
			u, ok := actors[e.UserKey]
			if !ok {
				u, err = s.store.Users().GetByKey(ctx, e.UserKey)
				if err != nil {
					return nil, err
				}
				actors[e.UserKey] = u
			}
			if u != nil {
				view.ActorName = u.Name
				view.ActorEmail = u.Email
				view.ActorAvatar = u.AvatarURL
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// Actions lists the transition actions the caller could attempt on the
// order from its current status, before gating. Empty when the order is not
// visible to the caller.
func (s *Service) Actions(ctx context.Context, actor *model.User, orderKey string) ([]Action, error) {
	order, err := s.store.Orders().GetByKey(ctx, orderKey)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperr.Wrap(apperr.ErrNotFound, "order %q", orderKey)
	}
	acc, err := s.accessFor(ctx, actor, order)
	if err != nil {
		return nil, err
	}
	if !acc.CanSeeOrder(order, actor.Key) {
		return nil, nil
	}
	return AvailableActions(order.Status, order.CreatedByKey == actor.Key, acc.CanReview()), nil
}

// CanSubmit reports whether the submission gate is satisfied and which
// required labels are still missing.
func (s *Service) CanSubmit(ctx context.Context, actor *model.User, orderKey string) (bool, []string, error) {
	order, err := s.GetOrder(ctx, actor, orderKey)
	if err != nil {
		return false, nil, err
	}
	if order == nil {
		return false, nil, nil
	}

	tag, err := s.orderTag(ctx, s.store, order)
	if err != nil {
		return false, nil, err
	}
	docs, err := s.store.Documents().ListByOrder(ctx, order.Key)
	if err != nil {
		return false, nil, err
	}
	missing := requirement.Missing(tag, docs)
	return len(missing) == 0, missing, nil
}

// visibleOrder loads an order plus the caller's access, failing with
// NotFound when the order is missing and Forbidden when it is not visible.
// Mutations use this; pure reads return empty results instead.
func (s *Service) visibleOrder(ctx context.Context, st store.Store, actor *model.User, orderKey string) (*model.PaymentOrder, access.Access, error) {
	order, err := st.Orders().GetByKey(ctx, orderKey)
	if err != nil {
		return nil, access.Access{}, err
	}
	if order == nil {
		return nil, access.Access{}, apperr.Wrap(apperr.ErrNotFound, "order %q", orderKey)
	}

	profile, err := st.Profiles().GetByKey(ctx, order.ProfileKey)
	if err != nil {
		return nil, access.Access{}, err
	}
	if profile == nil {
		return nil, access.Access{}, apperr.Wrap(apperr.ErrNotFound, "profile %q", order.ProfileKey)
	}

	acc, err := s.resolver.Resolve(ctx, actor, profile)
	if err != nil {
		return nil, access.Access{}, err
	}
	if !acc.CanSeeOrder(order, actor.Key) {
		return nil, access.Access{}, apperr.Wrap(apperr.ErrForbidden, "order %q", orderKey)
	}
	return order, acc, nil
}

func (s *Service) accessFor(ctx context.Context, actor *model.User, order *model.PaymentOrder) (access.Access, error) {
	profile, err := s.store.Profiles().GetByKey(ctx, order.ProfileKey)
	if err != nil {
		return access.Access{}, err
	}
	if profile == nil {
		return access.Access{}, apperr.Wrap(apperr.ErrNotFound, "profile %q", order.ProfileKey)
	}
	return s.resolver.Resolve(ctx, actor, profile)
}

func (s *Service) orderTag(ctx context.Context, st store.Store, order *model.PaymentOrder) (*model.Tag, error) {
	if order.TagKey == "" {
		return nil, nil
	}
	return st.Tags().GetByKey(ctx, order.TagKey)
}

// emit publishes a domain event after commit. Dispatch failures are logged
// and never surfaced to the caller.
func (s *Service) emit(ctx context.Context, evt Event) {
	if err := s.notifier.Publish(ctx, evt); err != nil {
		s.log.Warn("notification dispatch failed",
			zap.String("type", string(evt.Type)),
			zap.String("order", evt.OrderKey),
			zap.Error(err))
	}
}

// removeObject asks the storage collaborator to drop a stored object.
// Best-effort: failures are logged only.
func (s *Service) removeObject(ctx context.Context, storageKey string) {
	if storageKey == "" {
		return
	}
	if err := s.objects.Remove(ctx, storageKey); err != nil {
		s.log.Warn("object storage removal failed",
			zap.String("storage_key", storageKey),
			zap.Error(err))
	}
}
