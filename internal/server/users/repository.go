// Package users declares the user store contract and its implementations.
// The auth service depends only on Repository; the Postgres implementation
// is the production store, the in-memory one serves tests and local runs.
package users

import (
	"context"

	"github.com/mkozyrev/gatekeeper/internal/server/models"
)

// Repository is the persistence capability the auth service consumes.
//
// Create must enforce email uniqueness and return common.ErrAlreadyExists
// on a conflict; the service's prior existence check is only advisory.
// GetByEmail returns common.ErrNotFound when no user has that email.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
