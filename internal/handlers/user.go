package handlers

import (
	"errors"

	"tally/internal/models"
	"tally/internal/services/user"
	"tally/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler exposes registration.
type UserHandler struct {
	service user.Service
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(s user.Service) *UserHandler {
	return &UserHandler{service: s}
}

// Register handles POST /api/register. The created user includes their
// zero-balance account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	created, err := h.service.Register(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, user.ErrDuplicateUser), errors.Is(err, user.ErrDuplicateAccount):
			return response.Conflict(c, "user already exists")
		}
		return response.ServerError(c, "registration failed")
	}

	return response.Created(c, "user registered", created)
}
