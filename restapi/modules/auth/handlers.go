// Package auth provides authentication handlers for Fiber.
package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orderhub/orderhub-backend/internal/store"
	"github.com/orderhub/orderhub-backend/model"
	"github.com/orderhub/orderhub-backend/util"
)

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(GetJWTExpirationTime()),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func userPayload(user *model.User) fiber.Map {
	return fiber.Map{
		"_key":       user.Key,
		"name":       user.Name,
		"email":      user.Email,
		"avatar_url": user.AvatarURL,
	}
}

// Signup handles user registration
func Signup(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SignupRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		if req.Name == "" || req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, email and password are required"})
		}
		if !util.ValidEmail(util.NormalizeEmail(req.Email)) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid email address"})
		}
		if err := ValidatePasswordStrength(req.Password); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		ctx := c.Context()
		existing, err := st.Users().GetByEmail(ctx, util.NormalizeEmail(req.Email))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check account"})
		}
		if existing != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email is already in use"})
		}

		hash, err := HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
		}

		user := model.NewUser(req.Name, req.Email)
		user.PasswordHash = hash
		if _, err := st.Users().Create(ctx, user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create account"})
		}

		token, err := GenerateJWT(user.Key, user.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
		}
		setAuthCookie(c, token)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"user":    userPayload(user),
		})
	}
}

// Login handles user login and sets the auth cookie
func Login(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		user, err := st.Users().GetByEmail(c.Context(), util.NormalizeEmail(req.Email))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
		if user == nil || !user.IsActive || !CheckPasswordHash(req.Password, user.PasswordHash) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
		}

		token, err := GenerateJWT(user.Key, user.Email)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create session"})
		}
		setAuthCookie(c, token)

		return c.JSON(fiber.Map{
			"success": true,
			"user":    userPayload(user),
		})
	}
}

// Logout clears the auth cookie
func Logout() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     "auth_token",
			Value:    "",
			Expires:  time.Now().Add(-time.Hour),
			HTTPOnly: true,
			SameSite: "Lax",
		})
		return c.JSON(fiber.Map{"success": true})
	}
}

// Me returns the authenticated account
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
		}
		return c.JSON(fiber.Map{"user": userPayload(user)})
	}
}
