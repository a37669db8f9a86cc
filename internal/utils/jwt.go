package utils

import (
	"errors"
	"strconv"
	"time"

	"tally/internal/config"
	"tally/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
	tokenIssuer     = "tally-api"
)

// GenerateTokens issues an access token and a refresh token for the
// given claims, signed with JWT_SECRET.
func GenerateTokens(claims *models.UserClaims) (accessToken, refreshToken string, err error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return "", "", errors.New("JWT_SECRET not configured")
	}

	now := time.Now()
	for _, ttl := range []time.Duration{accessTokenTTL, refreshTokenTTL} {
		tokenClaims := models.UserClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
				IssuedAt:  jwt.NewNumericDate(now),
				Issuer:    tokenIssuer,
				Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
			},
			UserID:       claims.UserID,
			Username:     claims.Username,
			TokenVersion: claims.TokenVersion,
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
		signed, signErr := token.SignedString([]byte(secret))
		if signErr != nil {
			return "", "", signErr
		}
		if ttl == accessTokenTTL {
			accessToken = signed
		} else {
			refreshToken = signed
		}
	}
	return accessToken, refreshToken, nil
}

// ParseToken parses and validates a JWT token string.
func ParseToken(tokenStr string) (*models.UserClaims, error) {
	secret := config.GetEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not configured")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
