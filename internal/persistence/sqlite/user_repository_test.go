package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	storage := setupStorage(t)
	ctx := context.Background()

	created := seedUser(t, storage, "user-1", "alice")

	byID, err := storage.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("expected username alice, got %s", byID.Username)
	}
	if !byID.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected created_at %s, got %s", created.CreatedAt, byID.CreatedAt)
	}

	byName, err := storage.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != "user-1" {
		t.Errorf("expected user-1, got %s", byName.ID)
	}
}

func TestUserRepository_UsernameLookupIsCaseInsensitive(t *testing.T) {
	storage := setupStorage(t)

	seedUser(t, storage, "user-1", "Alice")

	user, err := storage.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	storage := setupStorage(t)

	seedUser(t, storage, "user-1", "alice")

	now := time.Now().UTC()
	err := storage.CreateUser(context.Background(), persistence.User{
		ID:           "user-2",
		Username:     "ALICE",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if !errors.Is(err, persistence.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	storage := setupStorage(t)

	if _, err := storage.GetUser(context.Background(), "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := storage.GetUserByUsername(context.Background(), "missing"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
