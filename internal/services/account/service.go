// Package account provides lookup and creation of ledger accounts.
// Accounts map one-to-one onto users; balance mutation is the ledger
// engine's job, not this package's.
package account

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/models"
	"tally/internal/repositories"
)

// Cache is the read cache for account snapshots.
type Cache interface {
	GetAccount(ctx context.Context, userID uint) (*models.Account, error)
	SetAccount(ctx context.Context, acct *models.Account) error
	InvalidateAccount(ctx context.Context, userID uint) error
}

// Service exposes account lookup and creation.
type Service interface {
	Create(ctx context.Context, userID uint) (*models.Account, error)
	Get(ctx context.Context, userID uint) (*models.Account, error)
	ResolveRecipient(ctx context.Context, username string) (*models.Account, error)
}

type service struct {
	repo  repositories.AccountRepository
	cache Cache
}

// NewService creates a new account service.
func NewService(repo repositories.AccountRepository, cache Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) Create(ctx context.Context, userID uint) (*models.Account, error) {
	acct := &models.Account{UserID: userID}
	if err := s.repo.Create(ctx, acct); err != nil {
		if errors.Is(err, repositories.ErrDuplicateAccount) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.SetAccount(ctx, acct)
	}
	return acct, nil
}

func (s *service) Get(ctx context.Context, userID uint) (*models.Account, error) {
	if s.cache != nil {
		if acct, err := s.cache.GetAccount(ctx, userID); err == nil {
			return acct, nil
		}
	}

	acct, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetAccount(ctx, acct)
	}
	return acct, nil
}

// ResolveRecipient looks up the account behind a username, for transfer
// destinations. The recipient-specific error keeps the transfer failure
// taxonomy distinct from plain account lookups.
func (s *service) ResolveRecipient(ctx context.Context, username string) (*models.Account, error) {
	acct, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}
	return acct, nil
}
