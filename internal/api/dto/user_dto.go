package dto

import "github.com/spec-kit/account-gateway/internal/domain"

// ProfileUpdateRequest payload for PATCH /users/profile/me. All fields are
// optional; empty fields are omitted from the backend call.
type ProfileUpdateRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contactNumber"`
	Password      string `json:"password"`
}

// EmailChangeRequest payload for starting an email change.
type EmailChangeRequest struct {
	NewEmail string `json:"newEmail"`
	Password string `json:"password"`
}

// EmailChangeVerifyRequest payload for confirming an email change.
type EmailChangeVerifyRequest struct {
	NewEmail string `json:"newEmail"`
	OTP      string `json:"otp"`
}

// RoleChangeRequest payload for PATCH /users/:id/role.
type RoleChangeRequest struct {
	NewRole domain.Role `json:"newRole"`
}
