// Package orders implements the resolvers for payment-order data.
package orders

import (
	"context"

	"github.com/orderhub/orderhub-backend/internal/apperr"
	"github.com/orderhub/orderhub-backend/internal/workflow"
	"github.com/orderhub/orderhub-backend/model"
)

type userCtxKey struct{}

// WithUser attaches the authenticated user to the resolver context. The
// transport layer calls this before executing a query.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

func userFrom(ctx context.Context) (*model.User, error) {
	user, _ := ctx.Value(userCtxKey{}).(*model.User)
	if user == nil {
		return nil, apperr.Wrap(apperr.ErrUnauthorized, "no resolved identity")
	}
	return user, nil
}

// ResolveOrder fetches one order; nil when not visible to the caller.
func ResolveOrder(ctx context.Context, svc *workflow.Service, key string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	order, err := svc.GetOrder(ctx, user, key)
	if err != nil || order == nil {
		return nil, err
	}
	return *order, nil
}

// ResolveOrders lists the profile's orders visible to the caller.
func ResolveOrders(ctx context.Context, svc *workflow.Service, profileKey string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	return svc.ListOrders(ctx, user, profileKey)
}

// ResolveDocuments lists an order's documents.
func ResolveDocuments(ctx context.Context, svc *workflow.Service, orderKey string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	return svc.ListDocuments(ctx, user, orderKey)
}

// ResolveHistory returns the enriched ledger as flat maps so embedded actor
// fields resolve alongside the entry fields.
func ResolveHistory(ctx context.Context, svc *workflow.Service, orderKey string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	views, err := svc.History(ctx, user, orderKey)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]interface{}, 0, len(views))
	for _, v := range views {
		out = append(out, map[string]interface{}{
			"_key":            v.Key,
			"order_key":       v.OrderKey,
			"user_key":        v.UserKey,
			"action":          string(v.Action),
			"previous_status": string(v.PreviousStatus),
			"new_status":      string(v.NewStatus),
			"comment":         v.Comment,
			"created_at":      v.CreatedAt,
			"actor_name":      v.ActorName,
			"actor_email":     v.ActorEmail,
			"actor_avatar":    v.ActorAvatar,
		})
	}
	return out, nil
}

// ResolveActions lists the actions the caller could attempt on the order.
func ResolveActions(ctx context.Context, svc *workflow.Service, orderKey string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	actions, err := svc.Actions(ctx, user, orderKey)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return out, nil
}

// ResolveSubmitGate reports the document gate for an order.
func ResolveSubmitGate(ctx context.Context, svc *workflow.Service, orderKey string) (interface{}, error) {
	user, err := userFrom(ctx)
	if err != nil {
		return nil, err
	}
	complete, missing, err := svc.CanSubmit(ctx, user, orderKey)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"can_submit":     complete,
		"missing_labels": missing,
	}, nil
}
