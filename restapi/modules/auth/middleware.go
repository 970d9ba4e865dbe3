package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
)

const userLocal = "current_user"

// tokenFrom extracts the JWT from the auth cookie or a Bearer header.
func tokenFrom(c *fiber.Ctx) string {
	if token := c.Cookies("auth_token"); token != "" {
		return token
	}
	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// RequireAuth validates the JWT, loads the account and blocks guests and
// deactivated accounts.
func RequireAuth(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		user, err := st.Users().GetByKey(c.Context(), claims.UserKey)
		if err != nil || user == nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// OptionalAuth identifies the caller if a valid token is present but does not
// block guests. Invalid or expired tokens are treated as guest access; the
// handler decides what anonymous callers may see.
func OptionalAuth(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c)
		if token == "" {
			return c.Next()
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			return c.Next()
		}

		user, err := st.Users().GetByKey(c.Context(), claims.UserKey)
		if err != nil || user == nil || !user.IsActive {
			return c.Next()
		}

		c.Locals(userLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocal).(*model.User)
	return user
}
