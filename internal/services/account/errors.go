package account

import "errors"

// Service errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrRecipientNotFound = errors.New("recipient not found")
)
