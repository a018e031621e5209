package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkozyrev/gatekeeper/internal/common"
	"github.com/mkozyrev/gatekeeper/internal/server/models"
)

// Claims carries the redacted user identity plus the registered lifecycle
// claims (iat, exp, jti, sub) injected at signing time.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// TokenCodec signs redacted user claims into HS256 JWTs and verifies them
// back. It owns the signing secret and the token TTL; both are immutable
// after construction.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Sign embeds the user's identity together with issued-at and expiry
// (now + TTL) and returns the signed token string. A fresh token id (jti)
// is minted on every call, so two tokens for the same user are never equal.
func (c *TokenCodec) Sign(user models.RedactedUser) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.NewString(),
		},
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// domain identity with all lifecycle metadata stripped. Expired tokens
// yield common.ErrTokenExpired; every other failure (bad signature,
// malformed token, wrong algorithm) yields common.ErrTokenInvalid.
func (c *TokenCodec) Verify(tokenString string) (models.RedactedUser, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.RedactedUser{}, common.ErrTokenExpired
		}
		return models.RedactedUser{}, common.ErrTokenInvalid
	}
	if !token.Valid {
		return models.RedactedUser{}, common.ErrTokenInvalid
	}

	return models.RedactedUser{ID: claims.UserID, Email: claims.Email, Name: claims.Name}, nil
}
