package handlers

import (
	"errors"

	"tally/internal/services/auth"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes login, refresh and logout endpoints.
type AuthHandler struct {
	service auth.Service
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(s auth.Service) *AuthHandler {
	return &AuthHandler{service: s}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, access, refresh, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Unauthorized(c, "invalid credentials")
		}
		return response.ServerError(c, "login failed")
	}

	return response.Success(c, "login successful", fiber.Map{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Refresh handles POST /api/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	access, refresh, err := h.service.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "invalid refresh token")
	}

	return response.Success(c, "token refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}
	if err := h.service.Logout(c.Context(), claims.UserID); err != nil {
		return response.ServerError(c, "logout failed")
	}
	return response.Success(c, "logged out", nil)
}
