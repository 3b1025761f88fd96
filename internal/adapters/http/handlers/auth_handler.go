package handlers

import (
	"errors"
	"strings"
	"time"

	"donation-desk/internal/adapters/http/middleware"
	"donation-desk/internal/config"
	"donation-desk/internal/core/domain"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles admin session endpoints
type AuthHandler struct {
	gate   services.SessionGate
	cookie config.CookieConfig
	log    *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(gate services.SessionGate, cookie config.CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		gate:   gate,
		cookie: cookie,
		log:    log,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Success   bool      `json:"success"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CheckResponse reports whether the caller holds a valid session
type CheckResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
}

// Login handles admin login
// @Summary Admin login
// @Description Authenticate an admin and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 401 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	session, err := h.gate.Authenticate(c.UserContext(), email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Invalid credentials")
		}
		return response.InternalServerError(c, "Failed to process login")
	}

	h.setAuthCookie(c, session)

	return response.OK(c, LoginResponse{
		Success:   true,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles admin logout
// @Summary Admin logout
// @Description Revoke the current session and clear the cookie. Always succeeds.
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFromRequest(c, h.cookie.Name); token != "" {
		h.gate.Revoke(c.UserContext(), token)
	}

	h.clearAuthCookie(c)
	return response.OK(c, fiber.Map{"success": true})
}

// Check reports whether the caller is authenticated
// @Summary Check session
// @Description Report whether the session cookie is valid
// @Tags Auth
// @Produce json
// @Success 200 {object} CheckResponse
// @Failure 401 {object} CheckResponse
// @Router /auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	token := middleware.TokenFromRequest(c, h.cookie.Name)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(CheckResponse{Authenticated: false})
	}

	claims, err := h.gate.Verify(c.UserContext(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(CheckResponse{Authenticated: false})
	}
	return response.OK(c, CheckResponse{Authenticated: true, Email: claims.Email})
}

// setAuthCookie sets the HTTP-only session cookie
func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, session *services.Session) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  session.ExpiresAt,
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})
}

// clearAuthCookie expires the session cookie
func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cookie.SameSite,
		Domain:   h.cookie.Domain,
	})
}
