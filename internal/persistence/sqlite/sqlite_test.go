package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/workout-tracker/internal/persistence"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tracker.db")
	storage, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return storage
}

func seedUser(t *testing.T, storage *Storage, id, username string) persistence.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := persistence.User{
		ID:           id,
		Username:     username,
		PasswordHash: "hash-" + id,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := storage.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestMigrateIsIdempotent(t *testing.T) {
	storage := setupStorage(t)

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	var count int
	if err := storage.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count); err != nil {
		t.Fatalf("failed to count migrations: %v", err)
	}
	if count != len(migrations) {
		t.Fatalf("expected %d applied migrations, got %d", len(migrations), count)
	}
}
