package users

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mkozyrev/gatekeeper/internal/common"
	"github.com/mkozyrev/gatekeeper/internal/server/models"
)

func TestInMemory_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	u, err := repo.Create(ctx, &models.User{Email: "a@x.com", Name: "A", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("Create must assign an id")
	}

	got, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != u.ID || got.Name != "A" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestInMemory_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("first Create error: %v", err)
	}
	_, err := repo.Create(ctx, &models.User{Email: "a@x.com"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if repo.Count() != 1 {
		t.Fatalf("duplicate insert changed store size: %d", repo.Count())
	}
}

func TestInMemory_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInMemory_ConcurrentCreateSameEmail(t *testing.T) {
	t.Parallel()

	repo := NewInMemoryRepository()
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &models.User{Email: "race@x.com"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	okCount := 0
	for err := range errs {
		if err == nil {
			okCount++
		} else if !errors.Is(err, common.ErrAlreadyExists) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("exactly one Create should win, got %d", okCount)
	}
}
