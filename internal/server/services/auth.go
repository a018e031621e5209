// Package services contains the server-side business logic. AuthService
// handles registration, login, and token verification, and owns the policy
// that maps internal failures to the caller-visible error taxonomy.
package services

import (
	"context"
	"errors"

	"github.com/mkozyrev/gatekeeper/internal/common"
	"github.com/mkozyrev/gatekeeper/internal/logging"
	"github.com/mkozyrev/gatekeeper/internal/server/auth"
	"github.com/mkozyrev/gatekeeper/internal/server/models"
	"github.com/mkozyrev/gatekeeper/internal/server/users"
)

// Result is the success payload of every auth operation: the redacted user
// and a freshly signed session token.
type Result struct {
	User  models.RedactedUser `json:"user"`
	Token string              `json:"token"`
}

// AuthService orchestrates the user store, the password hasher, and the
// token codec. It is stateless; every request is an independent unit of
// work. Errors returned from the exported methods are always classified
// (*common.Error) — nothing internal crosses the boundary.
type AuthService struct {
	users  users.Repository
	hasher auth.PasswordHasher
	codec  *auth.TokenCodec
	logger logging.Logger
}

// NewAuthService constructs an AuthService. The store is injected as a
// capability, so any Repository implementation can back it.
func NewAuthService(repo users.Repository, hasher auth.PasswordHasher, codec *auth.TokenCodec, logger logging.Logger) *AuthService {
	return &AuthService{
		users:  repo,
		hasher: hasher,
		codec:  codec,
		logger: logger.With("module", "auth_service"),
	}
}

// Register creates a new user and issues its first session token.
// A taken email yields AlreadyExists; any other store or hashing failure
// yields BadRequest with the underlying message.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*Result, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.AlreadyExists()
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}

	user, err := s.users.Create(ctx, &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	})
	if err != nil {
		// The store's unique index is the authority on uniqueness; a
		// concurrent duplicate insert lands here, not in the lookup above.
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.AlreadyExists()
		}
		s.logger.Error(ctx, "user creation failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}

	result, err := s.issue(user.Redacted())
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}
	return result, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password return byte-identical failures so callers cannot
// probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Result, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.InvalidCredentials()
		}
		s.logger.Error(ctx, "user lookup failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// Malformed stored digest: an internal fault, not a user error.
		s.logger.Error(ctx, "stored password digest is malformed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}
	if !ok {
		return nil, common.InvalidCredentials()
	}

	result, err := s.issue(user.Redacted())
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err.Error())
		return nil, common.BadRequest(err.Error())
	}
	return result, nil
}

// VerifyToken checks a session token and, on success, reissues a fresh one
// with a renewed expiry (sliding expiration; the prior token stays valid
// until its own expiry). Every codec failure collapses to Unauthorized.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*Result, error) {
	user, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, common.Unauthorized()
	}

	result, err := s.issue(user)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err.Error())
		return nil, common.Unauthorized()
	}
	return result, nil
}

func (s *AuthService) issue(user models.RedactedUser) (*Result, error) {
	token, err := s.codec.Sign(user)
	if err != nil {
		return nil, err
	}
	return &Result{User: user, Token: token}, nil
}
