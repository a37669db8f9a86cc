package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionKind is the closed set of ledger entry types. Unknown
// values are rejected before a row is written.
type TransactionKind string

const (
	KindDeposit     TransactionKind = "DEPOSIT"
	KindWithdrawal  TransactionKind = "WITHDRAWAL"
	KindTransferOut TransactionKind = "TRANSFER_OUT"
	KindTransferIn  TransactionKind = "TRANSFER_IN"
)

// ErrInvalidKind indicates a transaction kind outside the closed enum.
var ErrInvalidKind = errors.New("invalid transaction kind")

// ParseTransactionKind validates a raw kind string against the enum.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch k := TransactionKind(s); k {
	case KindDeposit, KindWithdrawal, KindTransferOut, KindTransferIn:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Valid reports whether the kind is one of the four known variants.
func (k TransactionKind) Valid() bool {
	_, err := ParseTransactionKind(string(k))
	return err == nil
}

// Transaction is one immutable ledger entry. Rows are append-only;
// nothing in the codebase updates or deletes them. A transfer writes
// two rows (TRANSFER_OUT and TRANSFER_IN) that share a Reference.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	AccountID   uint            `gorm:"not null;index" json:"account_id"`
	Account     *Account        `gorm:"foreignKey:AccountID" json:"-"`
	Kind        TransactionKind `gorm:"type:varchar(16);not null" json:"kind"`
	Amount      decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"amount"`
	Description string          `json:"description"`
	Reference   string          `gorm:"type:uuid;index;default:null" json:"reference,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate rejects malformed entries before they reach the store.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if !t.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, t.Kind)
	}
	if !t.Amount.IsPositive() {
		return errors.New("transaction amount must be positive")
	}
	return nil
}
