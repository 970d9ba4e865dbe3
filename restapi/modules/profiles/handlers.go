// Package profiles provides org, membership, profile and tag REST handlers
// for Fiber.
package profiles

import (
	"github.com/gofiber/fiber/v2"

	profilesvc "github.com/orderhub/orderhub-backend/internal/profiles"
	"github.com/orderhub/orderhub-backend/model"
	"github.com/orderhub/orderhub-backend/restapi/modules/auth"
	"github.com/orderhub/orderhub-backend/restapi/modules/common"
)

// PostOrg creates an organization owned by the caller
func PostOrg(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		org, err := svc.CreateOrg(c.Context(), auth.CurrentUser(c), req.Name)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"org": org})
	}
}

// GetOrg returns an organization the caller belongs to
func GetOrg(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		org, err := svc.GetOrg(c.Context(), auth.CurrentUser(c), c.Params("orgKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"org": org})
	}
}

// GetMembers lists an org's memberships
func GetMembers(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := svc.ListMembers(c.Context(), auth.CurrentUser(c), c.Params("orgKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"members": members})
	}
}

// PostMember adds a user to the org
func PostMember(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserKey string `json:"user_key"`
			Role    string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		m, err := svc.AddMember(c.Context(), auth.CurrentUser(c), c.Params("orgKey"), req.UserKey, model.MembershipRole(req.Role))
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"membership": m})
	}
}

// PatchMember changes a member's role
func PatchMember(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Role string `json:"role"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		err := svc.UpdateMemberRole(c.Context(), auth.CurrentUser(c), c.Params("orgKey"), c.Params("userKey"), model.MembershipRole(req.Role))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// DeleteMember removes a member from the org
func DeleteMember(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.RemoveMember(c.Context(), auth.CurrentUser(c), c.Params("orgKey"), c.Params("userKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// PostProfile creates an order profile in the org
func PostProfile(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		profile, err := svc.CreateProfile(c.Context(), auth.CurrentUser(c), c.Params("orgKey"), req.Name)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"profile": profile})
	}
}

// GetProfile returns a profile, or null when the caller has no access
func GetProfile(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile, err := svc.GetProfile(c.Context(), auth.CurrentUser(c), c.Params("profileKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"profile": profile})
	}
}

// PutAllowedEmails replaces the profile's email whitelist
func PutAllowedEmails(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			Emails []string `json:"emails"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		profile, err := svc.UpdateAllowedEmails(c.Context(), auth.CurrentUser(c), c.Params("profileKey"), req.Emails)
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"profile": profile})
	}
}

// GetTags lists the profile's tags
func GetTags(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tags, err := svc.ListTags(c.Context(), auth.CurrentUser(c), c.Params("profileKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"tags": tags})
	}
}

// PostTag creates a tag on the profile
func PostTag(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profilesvc.TagInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		tag, err := svc.CreateTag(c.Context(), auth.CurrentUser(c), c.Params("profileKey"), req)
		if err != nil {
			return common.Error(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tag": tag})
	}
}

// PutTag replaces a tag's name, color and file requirements
func PutTag(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profilesvc.TagInput
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		tag, err := svc.UpdateTag(c.Context(), auth.CurrentUser(c), c.Params("profileKey"), c.Params("tagKey"), req)
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"tag": tag})
	}
}

// DeleteTag removes a tag that no order references
func DeleteTag(svc *profilesvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := svc.DeleteTag(c.Context(), auth.CurrentUser(c), c.Params("profileKey"), c.Params("tagKey"))
		if err != nil {
			return common.Error(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
