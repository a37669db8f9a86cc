package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors returned by the data access layer.
var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists for user")
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateUser    = errors.New("user already exists")

	// ErrConflict marks a transient atomic-unit conflict (serialization
	// failure or deadlock). Callers retry; it never reaches the API.
	ErrConflict = errors.New("store conflict")
)

// Postgres error codes the ledger cares about.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrCode(err) == pgUniqueViolation
}

// IsConflict reports whether err is a transient conflict worth retrying.
// Fake stores used in tests signal the same condition with ErrConflict.
func IsConflict(err error) bool {
	if errors.Is(err, ErrConflict) {
		return true
	}
	switch pgErrCode(err) {
	case pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}
