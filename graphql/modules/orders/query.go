// Package orders defines the GraphQL queries for the payment-order read API.
package orders

import (
	"github.com/graphql-go/graphql"

	"github.com/orderhub/orderhub-backend/internal/workflow"
)

// GetQueryFields returns the order queries to be mounted in the root schema.
func GetQueryFields(svc *workflow.Service) graphql.Fields {
	return graphql.Fields{
		"order": &graphql.Field{
			Type: OrderType,
			Args: graphql.FieldConfigArgument{
				"key": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOrder(p.Context, svc, p.Args["key"].(string))
			},
		},
		"orders": &graphql.Field{
			Type: graphql.NewList(OrderType),
			Args: graphql.FieldConfigArgument{
				"profileKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveOrders(p.Context, svc, p.Args["profileKey"].(string))
			},
		},
		"orderDocuments": &graphql.Field{
			Type: graphql.NewList(DocumentType),
			Args: graphql.FieldConfigArgument{
				"orderKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveDocuments(p.Context, svc, p.Args["orderKey"].(string))
			},
		},
		"orderHistory": &graphql.Field{
			Type: graphql.NewList(HistoryEntryType),
			Args: graphql.FieldConfigArgument{
				"orderKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveHistory(p.Context, svc, p.Args["orderKey"].(string))
			},
		},
		"availableActions": &graphql.Field{
			Type: graphql.NewList(graphql.String),
			Args: graphql.FieldConfigArgument{
				"orderKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveActions(p.Context, svc, p.Args["orderKey"].(string))
			},
		},
		"submitGate": &graphql.Field{
			Type: SubmitGateType,
			Args: graphql.FieldConfigArgument{
				"orderKey": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveSubmitGate(p.Context, svc, p.Args["orderKey"].(string))
			},
		},
	}
}
