package ledger

import "errors"

// Engine errors. All of these are reported to the caller as-is; only
// store conflicts are retried, and those stay internal.
var (
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrAccountNotFound   = errors.New("account not found")
	ErrSelfTransfer      = errors.New("cannot transfer to yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrTransactionFailed = errors.New("transaction failed")
)
