package db

import (
	"context"

	"github.com/mkozyrev/gatekeeper/internal/server/users"
)

// InMemoryManager backs the service with the in-memory user store. Used by
// tests and for local runs without a database (empty DSN).
type InMemoryManager struct {
	users *users.InMemoryRepository
}

func NewInMemoryManager() *InMemoryManager {
	return &InMemoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryManager) Users() users.Repository { return m.users }

func (m *InMemoryManager) Close() error { return nil }
