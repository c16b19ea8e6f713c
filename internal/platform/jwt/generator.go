// Package jwtmw provides JWT issuance, verification, and the Gin middleware
// protecting authenticated routes.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiration is the token TTL used when none is configured.
const DefaultExpiration = time.Hour

// Token verification errors. Callers can distinguish why a token was rejected
// with errors.Is.
var (
	// ErrTokenMalformed is returned when a token cannot be parsed at all.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenExpired is returned when a token's expiry time has passed.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenSignature is returned when a token's signature does not verify
	// against the configured secret.
	ErrTokenSignature = errors.New("token signature is invalid")
)

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given account.
	GenerateToken(accountID uint) (string, error)
}

// Verifier defines the interface for JWT token verification.
type Verifier interface {
	// VerifyToken checks the token's signature and expiry and returns the
	// account ID it was issued for.
	VerifyToken(token string) (uint, error)
}

// generator implements the Generator and Verifier interfaces.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
// An expiration of 0 or less falls back to DefaultExpiration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT token with standard claims.
func (g *generator) GenerateToken(accountID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": accountID,
		"iat": now.Unix(),
		"exp": now.Add(g.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses the token, checks its signature and expiry, and returns
// the account ID from the sub claim.
func (g *generator) VerifyToken(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return g.secret, nil
	})

	switch {
	case err == nil && token.Valid:
		// fall through to claim extraction
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return 0, ErrTokenSignature
	default:
		return 0, ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	sub, ok := claims["sub"].(float64) // JWT numbers are decoded as float64
	if !ok {
		return 0, ErrTokenMalformed
	}

	return uint(sub), nil
}
