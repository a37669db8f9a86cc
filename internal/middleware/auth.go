// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"tally/internal/repositories"
	"tally/internal/utils"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber.Ctx locals key holding the request's claims.
const ClaimsKey = "claims"

// AuthMiddleware validates bearer tokens and attaches their claims to
// the request context.
type AuthMiddleware struct {
	users repositories.UserRepository
}

// NewAuthMiddleware creates an AuthMiddleware.
func NewAuthMiddleware(users repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Handler checks the Authorization header, the token signature and
// expiry, and the token version against the current user record.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}

	claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return response.Unauthorized(c, "invalid or expired token")
	}

	user, err := m.users.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return response.Unauthorized(c, "unknown user")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "token revoked")
	}

	c.Locals(ClaimsKey, claims)
	return c.Next()
}
