// Package ledger implements the transaction engine: the only code path
// that mutates balances. Every operation runs as one database
// transaction in which the affected rows are locked, the invariant is
// checked, the balance is written and the audit record appended. A
// failure on any step aborts the whole unit.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tally/internal/models"
	"tally/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultMaxAttempts = 3
	retryBackoff       = 10 * time.Millisecond
)

// Cache invalidates cached account snapshots after a committed mutation.
type Cache interface {
	InvalidateAccount(ctx context.Context, userID uint) error
}

// Service is the transaction engine surface.
type Service interface {
	// Deposit increases the balance and appends a DEPOSIT record.
	// Returns the new balance.
	Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error)

	// Withdraw decreases the balance if funds suffice and appends a
	// WITHDRAWAL record. Returns the new balance.
	Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error)

	// Transfer moves funds to the account owned by recipientUsername,
	// appending mirrored TRANSFER_OUT/TRANSFER_IN records. Returns the
	// sender's new balance.
	Transfer(ctx context.Context, senderAccountID uint, recipientUsername string, amount decimal.Decimal) (decimal.Decimal, error)
}

// Config tunes engine behaviour.
type Config struct {
	// MaxAttempts bounds internal retries of conflicted atomic units.
	MaxAttempts int
}

type service struct {
	repo        repositories.AccountRepository
	users       repositories.UserRepository
	cache       Cache
	metrics     MetricsCollector
	maxAttempts int
}

// NewService creates the transaction engine.
func NewService(repo repositories.AccountRepository, users repositories.UserRepository, cache Cache, cfg Config, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if users == nil {
		panic("users is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	return &service{
		repo:        repo,
		users:       users,
		cache:       cache,
		metrics:     metrics,
		maxAttempts: cfg.MaxAttempts,
	}
}

func (s *service) Deposit(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		s.metrics.RecordError("deposit", "invalid_amount")
		return decimal.Zero, ErrInvalidAmount
	}
	if description == "" {
		description = "Deposit to account"
	}

	var newBalance decimal.Decimal
	var ownerID uint
	err := s.withRetry(ctx, "deposit", func() error {
		return s.repo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
			accts, err := tx.LockForUpdate(ctx, accountID)
			if err != nil {
				return err
			}
			acct := accts[accountID]
			acct.Balance = acct.Balance.Add(amount)
			if err := tx.SaveBalance(ctx, acct); err != nil {
				return err
			}
			if err := tx.CreateTransaction(ctx, &models.Transaction{
				AccountID:   acct.ID,
				Kind:        models.KindDeposit,
				Amount:      amount,
				Description: description,
			}); err != nil {
				return err
			}
			newBalance = acct.Balance
			ownerID = acct.UserID
			return nil
		})
	})
	if err != nil {
		return decimal.Zero, s.mapError("deposit", err)
	}

	s.invalidate(ctx, ownerID)
	s.metrics.RecordTransaction(string(models.KindDeposit), amount)
	return newBalance, nil
}

func (s *service) Withdraw(ctx context.Context, accountID uint, amount decimal.Decimal, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		s.metrics.RecordError("withdraw", "invalid_amount")
		return decimal.Zero, ErrInvalidAmount
	}
	if description == "" {
		description = "Withdrawal from account"
	}

	var newBalance decimal.Decimal
	var ownerID uint
	err := s.withRetry(ctx, "withdraw", func() error {
		return s.repo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
			accts, err := tx.LockForUpdate(ctx, accountID)
			if err != nil {
				return err
			}
			acct := accts[accountID]
			// The funds check runs on the locked row, so a concurrent
			// debit cannot slip in between check and write.
			if acct.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}
			acct.Balance = acct.Balance.Sub(amount)
			if err := tx.SaveBalance(ctx, acct); err != nil {
				return err
			}
			if err := tx.CreateTransaction(ctx, &models.Transaction{
				AccountID:   acct.ID,
				Kind:        models.KindWithdrawal,
				Amount:      amount,
				Description: description,
			}); err != nil {
				return err
			}
			newBalance = acct.Balance
			ownerID = acct.UserID
			return nil
		})
	})
	if err != nil {
		return decimal.Zero, s.mapError("withdraw", err)
	}

	s.invalidate(ctx, ownerID)
	s.metrics.RecordTransaction(string(models.KindWithdrawal), amount)
	return newBalance, nil
}

func (s *service) Transfer(ctx context.Context, senderAccountID uint, recipientUsername string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		s.metrics.RecordError("transfer", "invalid_amount")
		return decimal.Zero, ErrInvalidAmount
	}

	sender, err := s.repo.GetByID(ctx, senderAccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return decimal.Zero, ErrAccountNotFound
		}
		return decimal.Zero, s.mapError("transfer", err)
	}
	senderUser, err := s.users.GetByID(ctx, sender.UserID)
	if err != nil {
		return decimal.Zero, s.mapError("transfer", err)
	}

	// Cheapest, most specific failure first.
	if senderUser.Username == recipientUsername {
		s.metrics.RecordError("transfer", "self_transfer")
		return decimal.Zero, ErrSelfTransfer
	}

	recipient, err := s.repo.GetByUsername(ctx, recipientUsername)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return decimal.Zero, ErrRecipientNotFound
		}
		return decimal.Zero, s.mapError("transfer", err)
	}

	var newBalance decimal.Decimal
	err = s.withRetry(ctx, "transfer", func() error {
		return s.repo.ExecuteInTransaction(func(tx repositories.AccountRepository) error {
			accts, err := tx.LockForUpdate(ctx, sender.ID, recipient.ID)
			if err != nil {
				return err
			}
			from, to := accts[sender.ID], accts[recipient.ID]
			if from.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}

			from.Balance = from.Balance.Sub(amount)
			to.Balance = to.Balance.Add(amount)
			if err := tx.SaveBalance(ctx, from); err != nil {
				return err
			}
			if err := tx.SaveBalance(ctx, to); err != nil {
				return err
			}

			// Both legs share one correlation reference.
			ref := uuid.NewString()
			if err := tx.CreateTransaction(ctx, &models.Transaction{
				AccountID:   from.ID,
				Kind:        models.KindTransferOut,
				Amount:      amount,
				Description: fmt.Sprintf("Transfer to %s", recipientUsername),
				Reference:   ref,
			}); err != nil {
				return err
			}
			if err := tx.CreateTransaction(ctx, &models.Transaction{
				AccountID:   to.ID,
				Kind:        models.KindTransferIn,
				Amount:      amount,
				Description: fmt.Sprintf("Transfer from %s", senderUser.Username),
				Reference:   ref,
			}); err != nil {
				return err
			}

			newBalance = from.Balance
			return nil
		})
	})
	if err != nil {
		return decimal.Zero, s.mapError("transfer", err)
	}

	s.invalidate(ctx, sender.UserID)
	s.invalidate(ctx, recipient.UserID)
	s.metrics.RecordTransaction(string(models.KindTransferOut), amount)
	return newBalance, nil
}

// withRetry re-runs a conflicted atomic unit up to maxAttempts times.
// Conflicts are transient by definition; everything else returns to the
// caller on the first attempt.
func (s *service) withRetry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			s.metrics.RecordRetry(op)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt-1) * retryBackoff):
			}
		}
		err = fn()
		if err == nil || !repositories.IsConflict(err) {
			return err
		}
	}
	return fmt.Errorf("%w: retries exhausted: %v", ErrTransactionFailed, err)
}

// mapError translates store errors into the engine's taxonomy. Business
// failures pass through untouched; anything unexpected collapses into
// the generic ErrTransactionFailed so store internals never leak out.
func (s *service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrSelfTransfer),
		errors.Is(err, ErrRecipientNotFound),
		errors.Is(err, ErrTransactionFailed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		s.metrics.RecordError(op, err.Error())
		return err
	case errors.Is(err, repositories.ErrAccountNotFound):
		s.metrics.RecordError(op, "account_not_found")
		return ErrAccountNotFound
	default:
		s.metrics.RecordError(op, "store_failure")
		return fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	// Invalidation failure only means a stale snapshot until TTL.
	_ = s.cache.InvalidateAccount(ctx, userID)
}
