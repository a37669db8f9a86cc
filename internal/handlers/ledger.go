package handlers

import (
	"errors"

	"tally/internal/services/account"
	"tally/internal/services/ledger"
	"tally/internal/utils/response"
	"tally/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LedgerHandler exposes deposit, withdraw and transfer.
type LedgerHandler struct {
	engine   ledger.Service
	accounts account.Service
}

// NewLedgerHandler creates a LedgerHandler.
func NewLedgerHandler(engine ledger.Service, accounts account.Service) *LedgerHandler {
	return &LedgerHandler{engine: engine, accounts: accounts}
}

type amountRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// badAmount reports a malformed amount before any store access.
func badAmount(amount decimal.Decimal) (string, bool) {
	v := validation.New()
	v.Amount("amount", amount)
	if !v.Valid() {
		return v.First(), true
	}
	return "", false
}

// resolveAccount maps the authenticated identity onto its account.
func (h *LedgerHandler) resolveAccount(c *fiber.Ctx) (uint, error) {
	claims, err := claimsFromCtx(c)
	if err != nil {
		return 0, err
	}
	acct, err := h.accounts.Get(c.Context(), claims.UserID)
	if err != nil {
		return 0, err
	}
	return acct.ID, nil
}

// Deposit handles POST /api/account/deposit.
func (h *LedgerHandler) Deposit(c *fiber.Ctx) error {
	accountID, err := h.resolveAccount(c)
	if err != nil {
		return ledgerError(c, err)
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if msg, bad := badAmount(req.Amount); bad {
		return response.BadRequest(c, msg)
	}

	balance, err := h.engine.Deposit(c.Context(), accountID, req.Amount, req.Description)
	if err != nil {
		return ledgerError(c, err)
	}

	return response.Success(c, "deposit successful", fiber.Map{
		"new_balance": balance,
	})
}

// Withdraw handles POST /api/account/withdraw.
func (h *LedgerHandler) Withdraw(c *fiber.Ctx) error {
	accountID, err := h.resolveAccount(c)
	if err != nil {
		return ledgerError(c, err)
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if msg, bad := badAmount(req.Amount); bad {
		return response.BadRequest(c, msg)
	}

	balance, err := h.engine.Withdraw(c.Context(), accountID, req.Amount, req.Description)
	if err != nil {
		return ledgerError(c, err)
	}

	return response.Success(c, "withdrawal successful", fiber.Map{
		"new_balance": balance,
	})
}

// Transfer handles POST /api/account/transfer.
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	accountID, err := h.resolveAccount(c)
	if err != nil {
		return ledgerError(c, err)
	}

	var req struct {
		RecipientUsername string          `json:"recipient_username"`
		Amount            decimal.Decimal `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.RecipientUsername == "" {
		return response.BadRequest(c, "recipient_username is required")
	}
	if msg, bad := badAmount(req.Amount); bad {
		return response.BadRequest(c, msg)
	}

	balance, err := h.engine.Transfer(c.Context(), accountID, req.RecipientUsername, req.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	return response.Success(c, "transfer successful", fiber.Map{
		"new_balance": balance,
	})
}

// ledgerError maps engine and account errors onto HTTP statuses.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, fiber.ErrUnauthorized):
		return response.Unauthorized(c, "invalid claims")
	case errors.Is(err, ledger.ErrInvalidAmount):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return response.BadRequest(c, "insufficient funds")
	case errors.Is(err, ledger.ErrSelfTransfer):
		return response.BadRequest(c, "cannot transfer to yourself")
	case errors.Is(err, ledger.ErrRecipientNotFound):
		return response.NotFound(c, "recipient not found")
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, account.ErrAccountNotFound):
		return response.NotFound(c, "account not found")
	default:
		return response.ServerError(c, "operation failed")
	}
}
