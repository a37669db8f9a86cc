package repositories

import (
	"context"

	"tally/internal/models"
)

// AccountRepository is the store boundary for accounts and their
// transaction log. Mutating methods are meant to run inside
// ExecuteInTransaction so a balance change and its log entry always
// commit or abort together.
type AccountRepository interface {
	Create(ctx context.Context, acct *models.Account) error
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// LockForUpdate loads and row-locks the given accounts. Locks are
	// taken in ascending ID order so two opposite-direction transfers
	// cannot deadlock each other.
	LockForUpdate(ctx context.Context, ids ...uint) (map[uint]*models.Account, error)

	SaveBalance(ctx context.Context, acct *models.Account) error
	CreateTransaction(ctx context.Context, txn *models.Transaction) error

	ListTransactions(ctx context.Context, accountID uint, limit, offset int) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, accountID uint) (int64, error)

	// ExecuteInTransaction runs fn against a repository bound to one
	// database transaction; fn's error aborts the whole unit.
	ExecuteInTransaction(fn func(AccountRepository) error) error
}
