package auth

import (
	"context"
	"errors"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer is both the iss and the aud of session tokens.
const Issuer = "quizbot-api"

var ErrEmptySecret = errors.New("session secret not set")

// CreateToken signs a token whose subject is the server-side session id.
func CreateToken(secret []byte, sessionID string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   sessionID,
		Audience:  jwt.ClaimStrings{Issuer},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(secret)
}

// NewValidator checks tokens made by CreateToken with the same secret.
func NewValidator(secret []byte) (*validator.Validator, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	keyFunc := func(context.Context) (interface{}, error) {
		return secret, nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		Issuer,
		[]string{Issuer},
		validator.WithAllowedClockSkew(30*time.Second),
	)
}

// SessionID extracts the session id from validated claims.
func SessionID(claims interface{}) (string, bool) {
	validated, ok := claims.(*validator.ValidatedClaims)
	if !ok || validated.RegisteredClaims.Subject == "" {
		return "", false
	}
	return validated.RegisteredClaims.Subject, true
}
