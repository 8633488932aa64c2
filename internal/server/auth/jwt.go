// Package auth implements JWT access-token generation and validation for the
// server's HTTP boundary.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered JWT claims plus the authenticated user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// GenerateToken mints an HS256-signed access token for userID valid for
// validityDuration.
func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityClaims is the assertion an external identity provider issues after
// authenticating a user. Subject is the provider's stable id for the identity
// and becomes the profile id during provisioning.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// ParseIdentityAssertion validates an HS256 assertion signed with the
// external provider's shared secret and returns its claims. Assertions
// without a subject, with a bad signature, or past their expiry are rejected;
// the subject is therefore never attacker-chosen.
func ParseIdentityAssertion(tokenString string, secretKey []byte) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// GetUserIDFromToken validates tokenString and extracts the user id claim.
// Expired tokens yield common.ErrTokenExpired; any other validation failure
// yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
