package introspect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
	"github.com/riskibarqy/tournament-registration/internal/usecase"
)

func newTestClient(srv *httptest.Server, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(srv.Client(), Config{
		BaseURL:        srv.URL,
		IntrospectPath: "auth/introspect",
		CircuitBreaker: breaker,
	}, logging.NewNop())
}

func TestClientVerifyAccessToken_ParsesResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":  true,
			"user_id": "user-123",
			"email":   "captain@example.com",
			"role":    "admin",
		})
	}))
	defer srv.Close()

	principal, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), " token-abc ")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.UserID != "user-123" || principal.Email != "captain@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if !principal.IsAdmin() {
		t.Fatalf("expected admin role, got %q", principal.Role)
	}
}

func TestClientVerifyAccessToken_DefaultsRole(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-1"}`))
	}))
	defer srv.Close()

	principal, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token")
	if err != nil {
		t.Fatalf("verify token failed: %v", err)
	}
	if principal.Role != user.RoleUser {
		t.Fatalf("unexpected role: %q", principal.Role)
	}
}

func TestClientVerifyAccessToken_InactiveOrDeniedIsUnauthorized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{name: "inactive", status: http.StatusOK, payload: `{"active":false}`},
		{name: "denied", status: http.StatusUnauthorized, payload: `{"error":"bad token"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			}))
			defer srv.Close()

			_, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token")
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}

	_, err := NewClient(nil, Config{BaseURL: "http://127.0.0.1:1"}, logging.NewNop()).VerifyAccessToken(context.Background(), "  ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestClientVerifyAccessToken_ForbiddenMappedToDependencyUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"forbidden"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, resilience.CircuitBreakerConfig{}).VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestClientVerifyAccessToken_CachesActiveTokens(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"active":true,"user_id":"user-cache"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{})
	for i := 0; i < 2; i++ {
		principal, err := client.VerifyAccessToken(context.Background(), "cached-token")
		if err != nil {
			t.Fatalf("verify token failed: %v", err)
		}
		if principal.UserID != "user-cache" {
			t.Fatalf("unexpected user id: %s", principal.UserID)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one introspection call with cache, got %d", calls.Load())
	}
}

func TestClientVerifyAccessToken_CircuitOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 3; i++ {
		_, err := client.VerifyAccessToken(context.Background(), "token")
		if !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if calls.Load() != 2 {
		t.Fatalf("expected breaker to stop upstream calls after 2 failures, got %d", calls.Load())
	}
}

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := map[string][2]string{
		"http://acct/auth":         {"http://acct/", "auth"},
		"http://acct":              {" http://acct ", ""},
		"https://other/introspect": {"http://acct", "https://other/introspect"},
	}
	for want, in := range tests {
		if got := buildURL(in[0], in[1]); got != want {
			t.Fatalf("buildURL(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}
