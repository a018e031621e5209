// Package db wires the persistence layer: it opens the connection pool,
// applies migrations, and hands out repositories. The pool is acquired at
// startup and released by an explicit Close at shutdown.
package db

import (
	"context"

	"github.com/mkozyrev/gatekeeper/internal/server/users"
)

// Manager owns the store connection and its repositories.
type Manager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close() error
}
