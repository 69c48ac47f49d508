package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spec-kit/account-gateway/internal/config"
	"github.com/spec-kit/account-gateway/internal/domain"
)

func testClient(url string) *Client {
	return NewClient(config.BackendConfig{InternalURL: url, TimeoutSeconds: 2})
}

func TestClientLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Email != "jane@example.com" {
			t.Fatalf("email = %q", req.Email)
		}
		_ = json.NewEncoder(w).Encode(AuthResponse{
			Success:      true,
			Message:      "logged in",
			User:         &domain.User{ID: "u1", Role: domain.RoleAdmin},
			AccessToken:  "access",
			RefreshToken: "refresh",
		})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Login(context.Background(), "jane@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Fatalf("tokens %+v", resp)
	}
	if resp.User == nil || resp.User.Role != domain.RoleAdmin {
		t.Fatalf("user %+v", resp.User)
	}
}

func TestClientBackendFailureMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(MessageResponse{Success: false, Message: "email already registered"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Signup(context.Background(), SignupRequest{
		Name: "Jane", Email: "jane@example.com", Password: "pw",
	})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "email already registered" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestClientFailureWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListUsers(context.Background(), "token")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Message == "" {
		t.Fatalf("expected status text fallback message")
	}
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL).Login(context.Background(), "a@b.c", "pw")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestClientForwardsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer my-token" {
			t.Fatalf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(UserResponse{
			Success: true,
			Data:    &domain.User{ID: "u1", Email: "jane@example.com"},
		})
	}))
	defer srv.Close()

	user, err := testClient(srv.URL).CurrentUser(context.Background(), "my-token")
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("user %+v", user)
	}
}

func TestClientRoleChangePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/users/u2/role" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req RoleChange
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.NewRole != domain.RoleAdmin {
			t.Fatalf("newRole = %s", req.NewRole)
		}
		_ = json.NewEncoder(w).Encode(UserResponse{Success: true, Message: "updated"})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).ChangeRole(context.Background(), "token", "u2", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if !resp.Success {
		t.Fatalf("resp %+v", resp)
	}
}
