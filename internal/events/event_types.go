package events

import (
	"time"

	"github.com/spec-kit/account-gateway/internal/domain"
)

// EventType enumerates auth and administration events the gateway emits.
type EventType string

const (
	EventUserSignedUp  EventType = "user_signed_up"
	EventOTPVerified   EventType = "otp_verified"
	EventSessionLogin  EventType = "session_login"
	EventSessionLogout EventType = "session_logout"
	EventRoleChanged   EventType = "role_changed"
	EventUserDeleted   EventType = "user_deleted"
)

// Event is a single audit-worthy occurrence. ActorID is empty for
// anonymous-flow events (signup, OTP verification).
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	SubjectID string      `json:"subject_id,omitempty"`
	Email     string      `json:"email,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// RoleChangedPayload records a role transition.
type RoleChangedPayload struct {
	OldRole domain.Role `json:"old_role"`
	NewRole domain.Role `json:"new_role"`
}

// UserDeletedPayload records the deleted account's last known state.
type UserDeletedPayload struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
}
