// Package graphql assembles the root schema from the module query fields.
package graphql

import (
	"github.com/graphql-go/graphql"

	gqlorders "github.com/orderhub/orderhub-backend/graphql/modules/orders"
	"github.com/orderhub/orderhub-backend/internal/workflow"
)

// CreateSchema builds the root query schema over the order service.
func CreateSchema(svc *workflow.Service) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range gqlorders.GetQueryFields(svc) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
