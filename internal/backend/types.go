package backend

import "github.com/spec-kit/account-gateway/internal/domain"

// Request payloads forwarded to the account backend.

type SignupRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
}

type VerifyOTPRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	OTP    string `json:"otp"`
}

type ResendOTPRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name          string `json:"name,omitempty"`
	ContactNumber string `json:"contactNumber,omitempty"`
	Password      string `json:"password,omitempty"`
}

type EmailChangeRequest struct {
	NewEmail string `json:"newEmail"`
	Password string `json:"password"`
}

type EmailChangeVerify struct {
	NewEmail string `json:"newEmail"`
	OTP      string `json:"otp"`
}

type RoleChange struct {
	NewRole domain.Role `json:"newRole"`
}

// Response envelopes mirroring the backend's uniform shape.

// AuthResponse is returned by the signup, login and OTP endpoints.
type AuthResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	User         *domain.User `json:"user,omitempty"`
	AccessToken  string       `json:"accessToken,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
	UserID       string       `json:"userId,omitempty"`
	Email        string       `json:"email,omitempty"`
}

// UserResponse wraps a single user record.
type UserResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *domain.User `json:"data,omitempty"`
}

// UsersResponse wraps the user directory listing.
type UsersResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    []domain.User `json:"data,omitempty"`
}

// MessageResponse carries operations with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
