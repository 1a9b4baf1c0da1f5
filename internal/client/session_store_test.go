package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store := NewStore(path)
	assert.False(t, store.IsAuthenticated())
	assert.Empty(t, store.Token())
	_, ok := store.CurrentUser()
	assert.False(t, ok)

	identity := Identity{UserID: "user-1", Username: "alice"}
	require.NoError(t, store.SetSession(identity, "token-1"))

	assert.True(t, store.IsAuthenticated())
	assert.Equal(t, "token-1", store.Token())
	current, ok := store.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, identity, current)

	store.ClearSession()
	assert.False(t, store.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "persisted file should be removed")
}

func TestStoreSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewStore(path)
	require.NoError(t, first.SetSession(Identity{UserID: "user-1", Username: "alice"}, "token-1"))

	second := NewStore(path)
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "token-1", second.Token())
	current, ok := second.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "alice", current.Username)
}

func TestStoreRejectsEmptyToken(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "session.json"))
	assert.Error(t, store.SetSession(Identity{UserID: "user-1"}, ""))
	assert.False(t, store.IsAuthenticated())
}

func TestStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewStore(path)
	assert.False(t, store.IsAuthenticated())
}
