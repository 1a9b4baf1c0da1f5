package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

// fakeTracker emulates the server side of the API for client tests.
type fakeTracker struct {
	mu       sync.Mutex
	users    map[string]string
	userIDs  map[string]string
	workouts map[string]struct{}
	requests int
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		users:    make(map[string]string),
		userIDs:  make(map[string]string),
		workouts: make(map[string]struct{}),
	}
}

func (f *fakeTracker) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		creds := decodeCreds(r)
		if _, exists := f.users[creds.Username]; exists {
			writeJSON(w, http.StatusConflict, map[string]any{"success": false, "message": "Username already exists"})
			return
		}
		f.users[creds.Username] = creds.Password
		f.userIDs[creds.Username] = "user-" + creds.Username
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "userId": f.userIDs[creds.Username], "username": creds.Username, "token": "token-" + creds.Username,
		})
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		creds := decodeCreds(r)
		if password, ok := f.users[creds.Username]; !ok || password != creds.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Invalid username or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true, "userId": f.userIDs[creds.Username], "username": creds.Username, "token": "token-" + creds.Username,
		})
	})
	mux.HandleFunc("POST /workouts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		if r.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Session is no longer valid"})
			return
		}
		var payload struct {
			Date string `json:"date"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		f.workouts[payload.Date] = struct{}{}
		writeJSON(w, http.StatusOK, map[string]any{"id": "workout-" + payload.Date, "date": payload.Date})
	})
	mux.HandleFunc("GET /workouts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests++
		entries := make([]map[string]string, 0, len(f.workouts))
		for date := range f.workouts {
			entries = append(entries, map[string]string{"date": date})
		}
		writeJSON(w, http.StatusOK, entries)
	})
	return mux
}

type creds struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func decodeCreds(r *http.Request) creds {
	var c creds
	_ = json.NewDecoder(r.Body).Decode(&c)
	return c
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestClientRegister(t *testing.T) {
	t.Run("rejects mismatched confirmation before any network call", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		_, err := api.Register(context.Background(), "alice", "pw123", "pw124")

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.FieldErrors, "confirmPassword")
		assert.Zero(t, tracker.requests, "no request should reach the server")
	})

	t.Run("rejects empty fields before any network call", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		_, err := api.Register(context.Background(), "  ", "", "")

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Zero(t, tracker.requests)
	})

	t.Run("populates the session store on success", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		store := newTestStore(t)
		api := NewClient(server.URL, store, time.Second)

		identity, err := api.Register(context.Background(), "alice", "pw123", "pw123")
		require.NoError(t, err)
		assert.Equal(t, "user-alice", identity.UserID)

		require.True(t, store.IsAuthenticated())
		current, ok := store.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, "alice", current.Username)
		assert.Equal(t, "token-alice", store.Token())
	})

	t.Run("maps a conflict to ErrUsernameTaken", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		_, err := api.Register(context.Background(), "alice", "pw123", "pw123")
		require.NoError(t, err)

		_, err = api.Register(context.Background(), "alice", "other", "other")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestClientLogin(t *testing.T) {
	t.Run("register then login yields the same user ID", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		registered, err := api.Register(context.Background(), "alice", "pw123", "pw123")
		require.NoError(t, err)

		authenticated, err := api.Login(context.Background(), "alice", "pw123")
		require.NoError(t, err)

		assert.Equal(t, registered.UserID, authenticated.UserID)
	})

	t.Run("maps a rejection to ErrInvalidCredentials", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		_, err := api.Login(context.Background(), "ghost", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wraps transport failures in ErrNetwork", func(t *testing.T) {
		api := NewClient("http://127.0.0.1:1", newTestStore(t), 200*time.Millisecond)

		_, err := api.Login(context.Background(), "alice", "pw123")
		assert.ErrorIs(t, err, ErrNetwork)
	})
}

func TestClientUnauthorizedPolicy(t *testing.T) {
	t.Run("a 401 clears the session and fires the hook", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "Session is no longer valid"})
		}))
		defer server.Close()

		store := newTestStore(t)
		require.NoError(t, store.SetSession(Identity{UserID: "user-1", Username: "alice"}, "stale-token"))

		api := NewClient(server.URL, store, time.Second)
		hookFired := false
		api.OnUnauthorized(func() { hookFired = true })

		_, err := api.ListWorkoutDays(context.Background())

		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.False(t, store.IsAuthenticated())
		assert.True(t, hookFired)
	})

	t.Run("operations without a session fail locally", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		api := NewClient(server.URL, newTestStore(t), time.Second)

		_, err := api.RecordWorkout(context.Background(), time.Now())
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Zero(t, tracker.requests)
	})
}

func TestClientRecordWorkout(t *testing.T) {
	t.Run("recording the same date twice keeps one ledger entry", func(t *testing.T) {
		tracker := newFakeTracker()
		server := httptest.NewServer(tracker.handler())
		defer server.Close()

		store := newTestStore(t)
		api := NewClient(server.URL, store, time.Second)
		_, err := api.Register(context.Background(), "alice", "pw123", "pw123")
		require.NoError(t, err)

		today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		first, err := api.RecordWorkout(context.Background(), today)
		require.NoError(t, err)
		second, err := api.RecordWorkout(context.Background(), today)
		require.NoError(t, err)

		assert.Equal(t, first.Date, second.Date)

		dates, err := api.ListWorkoutDays(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []time.Time{today}, dates)
	})
}

func TestClientLogout(t *testing.T) {
	t.Run("clears the session even when the server is unreachable", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.SetSession(Identity{UserID: "user-1", Username: "alice"}, "token"))

		api := NewClient("http://127.0.0.1:1", store, 200*time.Millisecond)

		err := api.Logout(context.Background())
		assert.Error(t, err)
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("is a no-op without a session", func(t *testing.T) {
		store := newTestStore(t)
		api := NewClient("http://127.0.0.1:1", store, 200*time.Millisecond)

		assert.NoError(t, api.Logout(context.Background()))
	})
}
