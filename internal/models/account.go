package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account holds the balance for a single user. Balances are stored as
// numeric(20,2) and handled as decimal.Decimal everywhere; float types
// would drift across repeated arithmetic.
type Account struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	UserID    uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"-"`
}

// BeforeCreate forces every new account to start at zero regardless of
// what the caller populated.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	a.Balance = decimal.Zero
	return nil
}
