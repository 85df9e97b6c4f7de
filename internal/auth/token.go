// Package auth issues and verifies the signed access tokens used by the API.
// Tokens are HS256 JWTs carrying the authenticated username and a short
// expiry; the signing secret comes from configuration.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned for malformed, mis-signed, or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the token claims issued at login.
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Issue signs a token for user, valid for ttl.
func Issue(secret, user string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify parses and validates tokenString against secret. Any failure
// (bad signature, expiry, wrong signing method) yields ErrInvalidToken.
func Verify(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
