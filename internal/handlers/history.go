package handlers

import (
	"errors"

	"tally/internal/services/account"
	"tally/internal/services/history"
	"tally/internal/utils/pagination"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// HistoryHandler exposes the transaction log.
type HistoryHandler struct {
	service  history.Service
	accounts account.Service
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(s history.Service, accounts account.Service) *HistoryHandler {
	return &HistoryHandler{service: s, accounts: accounts}
}

// List handles GET /api/account/transactions, newest first.
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return response.Unauthorized(c, "invalid claims")
	}

	acct, err := h.accounts.Get(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to get account")
	}

	p := pagination.ParseFromRequest(c)
	txns, total, err := h.service.List(c.Context(), acct.ID, p.Limit, p.Offset)
	if err != nil {
		if errors.Is(err, history.ErrAccountNotFound) {
			return response.NotFound(c, "account not found")
		}
		return response.ServerError(c, "failed to list transactions")
	}
	p.Total = total

	return c.JSON(pagination.Response(p, txns))
}
