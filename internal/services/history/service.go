// Package history provides read-only access to an account's
// transaction log.
package history

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/models"
	"tally/internal/repositories"
)

// ErrAccountNotFound indicates the account does not exist.
var ErrAccountNotFound = errors.New("account not found")

// Service lists committed transactions, most recent first.
type Service interface {
	List(ctx context.Context, accountID uint, limit, offset int) ([]models.Transaction, int64, error)
}

type service struct {
	repo repositories.AccountRepository
}

// NewService creates a new history service.
func NewService(repo repositories.AccountRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

// List returns one page of the account's records in descending
// creation order, plus the total count for pagination.
func (s *service) List(ctx context.Context, accountID uint, limit, offset int) ([]models.Transaction, int64, error) {
	if _, err := s.repo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, 0, ErrAccountNotFound
		}
		return nil, 0, fmt.Errorf("failed to check account: %w", err)
	}

	txns, err := s.repo.ListTransactions(ctx, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	total, err := s.repo.CountTransactions(ctx, accountID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return txns, total, nil
}
