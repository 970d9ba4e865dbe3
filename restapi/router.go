// Package restapi wires the HTTP routes for the order approval service.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	gqlorders "github.com/orderhub/orderhub-backend/graphql/modules/orders"
	"github.com/orderhub/orderhub-backend/internal/profiles"
	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/internal/workflow"
	authmod "github.com/orderhub/orderhub-backend/restapi/modules/auth"
	ordersmod "github.com/orderhub/orderhub-backend/restapi/modules/orders"
	profilesmod "github.com/orderhub/orderhub-backend/restapi/modules/profiles"
)

// RegisterRoutes mounts the REST and GraphQL endpoints on the app.
func RegisterRoutes(app *fiber.App, st store.Store, orderSvc *workflow.Service, profileSvc *profiles.Service, schema graphql.Schema) {
	api := app.Group("/api/v1")

	// Auth
	api.Post("/auth/signup", authmod.Signup(st))
	api.Post("/auth/login", authmod.Login(st))
	api.Post("/auth/logout", authmod.Logout())
	api.Get("/auth/me", authmod.RequireAuth(st), authmod.Me())

	// Everything below requires an authenticated account.
	protected := api.Group("", authmod.RequireAuth(st))

	// Orgs and memberships
	protected.Post("/orgs", profilesmod.PostOrg(profileSvc))
	protected.Get("/orgs/:orgKey", profilesmod.GetOrg(profileSvc))
	protected.Get("/orgs/:orgKey/members", profilesmod.GetMembers(profileSvc))
	protected.Post("/orgs/:orgKey/members", profilesmod.PostMember(profileSvc))
	protected.Patch("/orgs/:orgKey/members/:userKey", profilesmod.PatchMember(profileSvc))
	protected.Delete("/orgs/:orgKey/members/:userKey", profilesmod.DeleteMember(profileSvc))

	// Profiles, whitelist and tags
	protected.Post("/orgs/:orgKey/profiles", profilesmod.PostProfile(profileSvc))
	protected.Get("/profiles/:profileKey", profilesmod.GetProfile(profileSvc))
	protected.Put("/profiles/:profileKey/allowed-emails", profilesmod.PutAllowedEmails(profileSvc))
	protected.Get("/profiles/:profileKey/tags", profilesmod.GetTags(profileSvc))
	protected.Post("/profiles/:profileKey/tags", profilesmod.PostTag(profileSvc))
	protected.Put("/profiles/:profileKey/tags/:tagKey", profilesmod.PutTag(profileSvc))
	protected.Delete("/profiles/:profileKey/tags/:tagKey", profilesmod.DeleteTag(profileSvc))

	// Orders
	protected.Post("/profiles/:profileKey/orders", ordersmod.PostOrder(orderSvc))
	protected.Get("/profiles/:profileKey/orders", ordersmod.GetOrders(orderSvc))
	protected.Get("/orders/:key", ordersmod.GetOrder(orderSvc))
	protected.Patch("/orders/:key", ordersmod.PatchOrder(orderSvc))
	protected.Post("/orders/:key/transition", ordersmod.PostTransition(orderSvc))
	protected.Get("/orders/:key/can-submit", ordersmod.GetCanSubmit(orderSvc))
	protected.Post("/orders/:key/documents", ordersmod.PostDocument(orderSvc))
	protected.Get("/orders/:key/documents", ordersmod.GetDocuments(orderSvc))
	protected.Delete("/orders/:key/documents/:docKey", ordersmod.DeleteDocument(orderSvc))
	protected.Get("/orders/:key/history", ordersmod.GetHistory(orderSvc))
	protected.Post("/orders/:key/comments", ordersmod.PostComment(orderSvc))

	// GraphQL read surface. Identity is optional at the transport level;
	// resolvers report missing identity inside the GraphQL response.
	api.Post("/graphql", authmod.OptionalAuth(st), GraphQLHandler(schema))
}

// GraphQLHandler handles GraphQL requests with the caller's identity
// attached to the resolver context.
func GraphQLHandler(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var params struct {
			Query         string                 `json:"query"`
			OperationName string                 `json:"operationName"`
			Variables     map[string]interface{} `json:"variables"`
		}

		if err := c.BodyParser(&params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []map[string]interface{}{
					{"message": "Invalid request body"},
				},
			})
		}

		ctx := gqlorders.WithUser(c.Context(), authmod.CurrentUser(c))

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			Context:        ctx,
			RequestString:  params.Query,
			VariableValues: params.Variables,
			OperationName:  params.OperationName,
		})

		return c.JSON(result)
	}
}
