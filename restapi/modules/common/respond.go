// Package common holds helpers shared by the REST handler modules.
package common

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderhub/orderhub-backend/internal/apperr"
)

// Error writes a service error as JSON with the status mapped from its kind.
func Error(c *fiber.Ctx, err error) error {
	status := apperr.HTTPStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "Internal server error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
