package middleware

import (
	"errors"
	"strings"

	"donation-desk/internal/core/domain"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AdminAuth
const (
	LocalEmail = "adminEmail"
	LocalToken = "adminToken"
)

// TokenFromRequest reads the session token from the cookie, falling back to
// an Authorization: Bearer header
func TokenFromRequest(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}

// AdminAuth rejects requests without a valid admin session
func AdminAuth(gate services.SessionGate, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromRequest(c, cookieName)
		if token == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		claims, err := gate.Verify(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return response.Unauthorized(c, "Unauthorized")
			}
			return err
		}

		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}
