// Package workflow implements the payment-order state machine and the
// order service that applies it transactionally.
package workflow

import (
	"github.com/orderhub/orderhub-backend/model"
)

// Action is a manual transition requested by a caller.
type Action string

const (
	ActionSubmit       Action = "submit"
	ActionApprove      Action = "approve"
	ActionReject       Action = "reject"
	ActionNeedsSupport Action = "needsSupport"
	ActionCancel       Action = "cancel"
	ActionMarkPaid     Action = "markPaid"
	ActionReconcile    Action = "reconcile"
)

// AutoTransitionComment is recorded on the automatic NEEDS_SUPPORT ->
// IN_REVIEW transition triggered by a document upload.
const AutoTransitionComment = "Auto-transitioned after document upload"

// Rule describes one permitted transition.
type Rule struct {
	To             model.OrderStatus
	AllowCreator   bool // the order's creator may perform it
	AllowElevated  bool // elevated callers (reviewers) may perform it
	RequireComment bool
	Gated          bool // requires the document-requirement gate to be complete
}

// transitions is the authoritative table. Any (status, action) pair absent
// here is rejected with InvalidState.
var transitions = map[model.OrderStatus]map[Action]Rule{
	model.StatusCreated: {
		ActionSubmit: {To: model.StatusInReview, AllowCreator: true, Gated: true},
		ActionCancel: {To: model.StatusCancelled, AllowCreator: true},
	},
	model.StatusInReview: {
		ActionApprove:      {To: model.StatusApproved, AllowElevated: true},
		ActionReject:       {To: model.StatusRejected, AllowElevated: true, RequireComment: true},
		ActionNeedsSupport: {To: model.StatusNeedsSupport, AllowElevated: true, RequireComment: true},
		ActionCancel:       {To: model.StatusCancelled, AllowCreator: true, AllowElevated: true},
	},
	model.StatusNeedsSupport: {
		ActionSubmit: {To: model.StatusInReview, AllowCreator: true},
		ActionCancel: {To: model.StatusCancelled, AllowCreator: true, AllowElevated: true},
	},
	model.StatusApproved: {
		ActionMarkPaid: {To: model.StatusPaid, AllowElevated: true},
	},
	model.StatusPaid: {
		ActionReconcile: {To: model.StatusReconciled, AllowElevated: true},
	},
}

// RuleFor returns the transition rule for (from, action), if one exists.
func RuleFor(from model.OrderStatus, action Action) (Rule, bool) {
	rules, ok := transitions[from]
	if !ok {
		return Rule{}, false
	}
	rule, ok := rules[action]
	return rule, ok
}

// AvailableActions lists the actions the given caller could attempt from a
// status, before gating. Used by the API to drive action menus.
func AvailableActions(from model.OrderStatus, isCreator, isElevated bool) []Action {
	order := []Action{
		ActionSubmit, ActionApprove, ActionReject,
		ActionNeedsSupport, ActionMarkPaid, ActionReconcile, ActionCancel,
	}
	var out []Action
	for _, action := range order {
		rule, ok := RuleFor(from, action)
		if !ok {
			continue
		}
		if (rule.AllowCreator && isCreator) || (rule.AllowElevated && isElevated) {
			out = append(out, action)
		}
	}
	return out
}
