package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/workout-tracker/internal/application"
)

func TestExtractTokenFromRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "bearer token", header: "Bearer token-1", want: "token-1"},
		{name: "bearer token with padding", header: "  Bearer  token-1 ", want: "token-1"},
		{name: "missing header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw==", want: ""},
		{name: "bare token without scheme", header: "token-1", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := extractTokenFromRequest(req); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	t.Run("attaches the principal to the request context", func(t *testing.T) {
		t.Parallel()

		want := application.Principal{UserID: "user-1", Username: "alice"}
		var got application.Principal

		handler := RequireSession(sessionValidatorStub{principal: want}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = PrincipalFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer token-1")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if got != want {
			t.Fatalf("expected principal %v, got %v", want, got)
		}
	})

	t.Run("rejects requests without a token", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(sessionValidatorStub{}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects tokens the validator refuses", func(t *testing.T) {
		t.Parallel()

		handler := RequireSession(sessionValidatorStub{err: application.ErrSessionRevoked}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer revoked")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", recorder.Code)
		}
	})
}
