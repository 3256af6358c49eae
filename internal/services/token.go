package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret is returned when token verification is attempted without a signing secret
var ErrNoSecret = errors.New("token secret is not configured")

// Claims are the claims carried by session tokens
type Claims struct {
	UserID any    `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// User returns a printable user identifier
func (c *Claims) User() string {
	switch v := c.UserID.(type) {
	case nil:
		return c.Subject
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprint(v)
	}
}

// VerifyToken checks signature, algorithm (HS256 only) and expiry of tokenString
func VerifyToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

// SignToken issues an HS256 token, used by tests and local tooling
func SignToken(secret string, claims Claims) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
