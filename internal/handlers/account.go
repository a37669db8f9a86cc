package handlers

import (
	"errors"

	"tally/internal/models"
	"tally/internal/services/account"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler exposes the authenticated user's account snapshot.
type AccountHandler struct {
	service account.Service
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(s account.Service) *AccountHandler {
	return &AccountHandler{service: s}
}

func claimsFromCtx(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

// Get handles GET /api/account.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	acct, err := h.service.Get(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to get account")
	}

	return response.Success(c, "account detail", acct)
}
