package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the JWT payload carried by access and refresh tokens.
// TokenVersion lets logout invalidate everything issued before it.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion int    `json:"token_version"`
}
