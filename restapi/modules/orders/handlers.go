// Package orders provides the payment-order REST handlers for Fiber.
package orders

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderhub/orderhub-backend/internal/workflow"
	"github.com/orderhub/orderhub-backend/restapi/modules/auth"
	"github.com/orderhub/orderhub-backend/restapi/modules/common"
)

// PostOrder creates a payment order on a profile
func PostOrder(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req workflow.CreateOrderInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		req.ProfileKey = c.Params("profileKey")

		order, err := svc.CreateOrder(c.Context(), auth.CurrentUser(c), req)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
	}
}

// GetOrders lists the profile's orders visible to the caller
func GetOrders(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListOrders(c.Context(), auth.CurrentUser(c), c.Params("profileKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"orders": list})
	}
}

// GetOrder returns one order, or null when it is not visible to the caller
func GetOrder(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		order, err := svc.GetOrder(c.Context(), auth.CurrentUser(c), c.Params("key"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"order": order})
	}
}

// PatchOrder edits an order while it is still editable by its creator
func PatchOrder(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req workflow.UpdateOrderInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		order, err := svc.UpdateOrder(c.Context(), auth.CurrentUser(c), c.Params("key"), req)
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"order": order})
	}
}

// PostTransition applies a workflow action to an order
func PostTransition(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Action  string `json:"action"`
			Comment string `json:"comment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Action == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Action is required"})
		}

		order, err := svc.Transition(c.Context(), auth.CurrentUser(c), c.Params("key"), workflow.Action(req.Action), req.Comment)
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"order": order})
	}
}

// GetCanSubmit reports whether the document gate allows submission
func GetCanSubmit(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		complete, missing, err := svc.CanSubmit(c.Context(), auth.CurrentUser(c), c.Params("key"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{
			"can_submit":     complete,
			"missing_labels": missing,
		})
	}
}

// PostDocument records uploaded-document metadata on an order
func PostDocument(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req workflow.AddDocumentInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		req.OrderKey = c.Params("key")

		doc, err := svc.AddDocument(c.Context(), auth.CurrentUser(c), req)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"document": doc})
	}
}

// GetDocuments lists an order's documents
func GetDocuments(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docs, err := svc.ListDocuments(c.Context(), auth.CurrentUser(c), c.Params("key"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"documents": docs})
	}
}

// DeleteDocument removes a document from an order
func DeleteDocument(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.DeleteDocument(c.Context(), auth.CurrentUser(c), c.Params("key"), c.Params("docKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// GetHistory returns the order's audit ledger with actor display info
func GetHistory(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := svc.History(c.Context(), auth.CurrentUser(c), c.Params("key"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"history": entries})
	}
}

// PostComment adds a comment entry to the order's ledger
func PostComment(svc *workflow.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Comment string `json:"comment"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		entry, err := svc.AddComment(c.Context(), auth.CurrentUser(c), c.Params("key"), req.Comment)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
	}
}
