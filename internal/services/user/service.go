// Package user handles registration. A user and their zero-balance
// account are created in one atomic unit; a half-registered identity
// without an account can never exist.
package user

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Service errors
var (
	ErrDuplicateUser    = errors.New("user already exists")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrInvalidInput     = errors.New("invalid input")
)

// Service registers and looks up users.
type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	repo repositories.UserRepository
}

// NewService creates a new user service.
func NewService(repo repositories.UserRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	v := validation.New()
	v.Username("username", input.Username)
	v.Email("email", input.Email)
	v.MinLength("password", input.Password, validation.MinPasswordLength)
	v.MaxLength("password", input.Password, validation.MaxPasswordLength)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.First())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
	}
	if err := s.repo.CreateWithAccount(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUser):
			return nil, ErrDuplicateUser
		case errors.Is(err, repositories.ErrDuplicateAccount):
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
