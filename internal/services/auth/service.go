// Package auth issues and refreshes JWT credentials for the API layer.
package auth

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/models"
	"tally/internal/repositories"
	"tally/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// Service errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Service handles login, token refresh and logout.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, userID uint) error
}

type service struct {
	users repositories.UserRepository
}

// NewService creates a new auth service.
func NewService(users repositories.UserRepository) Service {
	if users == nil {
		panic("users is required")
	}
	return &service{users: users}
}

func (s *service) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Same reply for unknown user and bad password.
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}
	return user, access, refresh, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", ErrInvalidToken
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
	})
}

// Logout bumps the token version, invalidating every outstanding token.
func (s *service) Logout(ctx context.Context, userID uint) error {
	return s.users.IncrementTokenVersion(ctx, userID)
}
