// Package auth issues and verifies the stateless bearer tokens that carry a
// user's identity between requests. Verification never touches the store.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the subject user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken signs {userID, issuedAt} with HS256 over the process-wide
// secret. Each call mints a fresh token; prior tokens are never reused.
func GenerateToken(userID string, secretKey []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	return token.SignedString(secretKey)
}

// UserIDFromToken validates the signature and returns the subject user id.
// Malformed, foreign-signed, or empty-subject tokens report ok=false; the
// caller treats that as the normal anonymous state, not a fault.
func UserIDFromToken(tokenString string, secretKey []byte) (string, bool) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", false
	}

	return claims.UserID, true
}
