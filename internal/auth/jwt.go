// Package auth mints and verifies the session tokens handed out on login.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/common"
	"github.com/dmitrijs2005/bannerkeeper/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity and role resolved at login.
type Claims struct {
	jwt.RegisteredClaims
	Identity string      `json:"identity"`
	Role     models.Role `json:"role"`
}

func GenerateToken(identity string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Identity: identity,
		Role:     role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired, anything else unusable common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Identity == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
