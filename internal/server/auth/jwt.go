// Package auth issues and verifies the grant token handed to a caller
// after a successful graphical login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/common"
	"github.com/dmitrijs2005/graphauth/internal/credential"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the authenticated user and the
// method that authenticated them.
type Claims struct {
	jwt.RegisteredClaims
	Username string            `json:"username"`
	Method   credential.Method `json:"method"`
}

// now is a seam for tests.
var now = time.Now

func GenerateToken(username string, method credential.Method, secretKey []byte, validityDuration time.Duration) (string, error) {
	issued := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   credential.UsernameKey(username),
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(validityDuration)),
		},
		Username: username,
		Method:   method,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; any other defect yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
