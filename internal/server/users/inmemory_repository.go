package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkozyrev/gatekeeper/internal/common"
	"github.com/mkozyrev/gatekeeper/internal/server/models"
)

// InMemoryRepository keeps users in a map keyed by email. It honors the
// same error contract as the Postgres store, including uniqueness under
// concurrent Create calls.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, common.ErrAlreadyExists
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now()
	r.users[user.Email] = *user

	u := *user
	return &u, nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

// Count reports the number of stored users.
func (r *InMemoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
