// Package orders defines the GraphQL types for the payment-order read API.
package orders

import (
	"github.com/graphql-go/graphql"
)

// OrderType represents a payment order.
var OrderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PaymentOrder",
	Fields: graphql.Fields{
		"_key":           &graphql.Field{Type: graphql.String},
		"profile_key":    &graphql.Field{Type: graphql.String},
		"created_by_key": &graphql.Field{Type: graphql.String},
		"title":          &graphql.Field{Type: graphql.String},
		"description":    &graphql.Field{Type: graphql.String},
		"reason":         &graphql.Field{Type: graphql.String},
		"amount":         &graphql.Field{Type: graphql.Float},
		"currency":       &graphql.Field{Type: graphql.String},
		"status":         &graphql.Field{Type: graphql.String},
		"tag_key":        &graphql.Field{Type: graphql.String},
		"created_at":     &graphql.Field{Type: graphql.DateTime},
		"updated_at":     &graphql.Field{Type: graphql.DateTime},
	},
})

// DocumentType represents uploaded-document metadata on an order.
var DocumentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderDocument",
	Fields: graphql.Fields{
		"_key":              &graphql.Field{Type: graphql.String},
		"order_key":         &graphql.Field{Type: graphql.String},
		"uploaded_by_key":   &graphql.Field{Type: graphql.String},
		"requirement_label": &graphql.Field{Type: graphql.String},
		"file_name":         &graphql.Field{Type: graphql.String},
		"url":               &graphql.Field{Type: graphql.String},
		"mime_type":         &graphql.Field{Type: graphql.String},
		"size_bytes":        &graphql.Field{Type: graphql.Int},
		"created_at":        &graphql.Field{Type: graphql.DateTime},
	},
})

// HistoryEntryType represents one ledger entry with actor display info.
var HistoryEntryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HistoryEntry",
	Fields: graphql.Fields{
		"_key":            &graphql.Field{Type: graphql.String},
		"order_key":       &graphql.Field{Type: graphql.String},
		"user_key":        &graphql.Field{Type: graphql.String},
		"action":          &graphql.Field{Type: graphql.String},
		"previous_status": &graphql.Field{Type: graphql.String},
		"new_status":      &graphql.Field{Type: graphql.String},
		"comment":         &graphql.Field{Type: graphql.String},
		"created_at":      &graphql.Field{Type: graphql.DateTime},
		"actor_name":      &graphql.Field{Type: graphql.String},
		"actor_email":     &graphql.Field{Type: graphql.String},
		"actor_avatar":    &graphql.Field{Type: graphql.String},
	},
})

// SubmitGateType reports the document gate for an order.
var SubmitGateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SubmitGate",
	Fields: graphql.Fields{
		"can_submit":     &graphql.Field{Type: graphql.Boolean},
		"missing_labels": &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})
