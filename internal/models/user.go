package models

import (
	"gorm.io/gorm"
)

// User is the owning identity behind a ledger account. Each user has
// exactly one account, created together with the user at registration.
type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	Password     string   `gorm:"not null" json:"-"`
	TokenVersion int      `gorm:"default:1" json:"-"`
	Account      *Account `gorm:"foreignKey:UserID" json:"account,omitempty"`
}

// CreateUserInput carries the registration payload.
type CreateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
