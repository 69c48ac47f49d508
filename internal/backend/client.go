package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spec-kit/account-gateway/internal/config"
	"github.com/spec-kit/account-gateway/internal/domain"
)

// ErrUnreachable wraps transport-level failures. Callers surface it as a
// generic retry message; the raw cause stays in logs only.
var ErrUnreachable = errors.New("account backend unreachable")

/// APIError is a backend-reported failure: a non-2xx status plus the
// backend's own message, which is shown to users verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Client is a typed HTTP client for the account backend REST API. All calls
// are single-shot; there is no automatic retry.
type Client struct {
	base string
	http *http.Client
}

// NewClient resolves the base URL once and builds the client.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		base: strings.TrimRight(cfg.BaseURL(), "/"),
		http: &http.Client{Timeout: cfg.Timeout()},
	}
}

// Signup registers a new account; the backend sends the OTP email.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP confirms email ownership and returns session tokens.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResendOTP re-triggers OTP delivery for a pending signup.
func (c *Client) ResendOTP(ctx context.Context, userID, email string) (*MessageResponse, error) {
	var out MessageResponse
	req := ResendOTPRequest{UserID: userID, Email: email}
	if err := c.do(ctx, http.MethodPost, "/auth/resend-otp", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates credentials and returns session tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the backend of session termination.
func (c *Client) Logout(ctx context.Context, token string) error {
	var out MessageResponse
	return c.do(ctx, http.MethodPost, "/auth/logout", token, nil, &out)
}

// CurrentUser fetches the authenticated user's own record.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/profile/me", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// UpdateProfile patches name, contact number, or password.
func (c *Client) UpdateProfile(ctx context.Context, token string, req ProfileUpdate) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/profile/me", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestEmailChange starts the email change flow for the current user.
func (c *Client) RequestEmailChange(ctx context.Context, token string, req EmailChangeRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodPost, "/users/profile/email/request", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyEmailChange confirms the new address with its OTP.
func (c *Client) VerifyEmailChange(ctx context.Context, token string, req EmailChangeVerify) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/users/profile/email/verify", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches the full user directory.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out UsersResponse
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ChangeRole assigns a new role to the target user.
func (c *Client) ChangeRole(ctx context.Context, token, userID string, newRole domain.Role) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPatch, "/users/"+userID+"/role", token, RoleChange{NewRole: newRole}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes the target user permanently.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/users/"+userID, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	if res.StatusCode >= 400 {
		var failure MessageResponse
		message := http.StatusText(res.StatusCode)
		if err := json.Unmarshal(payload, &failure); err == nil && failure.Message != "" {
			message = failure.Message
		}
		return &APIError{StatusCode: res.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
