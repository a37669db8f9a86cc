package repositories

import (
	"context"

	"tally/internal/models"
)

// UserRepository is the store boundary for identities.
type UserRepository interface {
	// CreateWithAccount writes the user and their zero-balance account
	// in one database transaction. Either both rows exist or neither.
	CreateWithAccount(ctx context.Context, user *models.User) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	IncrementTokenVersion(ctx context.Context, id uint) error
}
