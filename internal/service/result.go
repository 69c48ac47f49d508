package service

import (
	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/domain"
)

// genericNetworkMessage hides transport-level detail from users.
const genericNetworkMessage = "Network error. Please try again."

// Result is the uniform envelope every flow operation resolves to. Callers
// branch on Success; transport errors are already normalized and no
// exception-style propagation crosses into the presentation layer.
type Result struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *domain.User `json:"user,omitempty"`
	UserID  string       `json:"userId,omitempty"`
	Email   string       `json:"email,omitempty"`

	// Limited marks a locally throttled request so the transport layer can
	// pick a 429 status. Not part of the wire envelope.
	Limited bool `json:"-"`
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// SignupOutcome carries the pending-verification ticket to be issued when
// the signup succeeded.
type SignupOutcome struct {
	Result
	Ticket auth.Ticket
}

// SessionOutcome carries the tokens to be written when authentication
// succeeded.
type SessionOutcome struct {
	Result
	AccessToken  string
	RefreshToken string
}
