package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/backend"
	"github.com/spec-kit/account-gateway/internal/domain"
	"github.com/spec-kit/account-gateway/internal/events"
	apperrors "github.com/spec-kit/account-gateway/pkg/util"
)

// DirectoryService fronts the backend's user management API. For privileged
// mutations it resolves both actor and target fresh from the backend and
// applies the role policy before any destructive call is forwarded; nothing
// here caches role data across requests.
type DirectoryService struct {
	client     *backend.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDirectoryService builds the service.
func NewDirectoryService(client *backend.Client, dispatcher events.Dispatcher, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{client: client, dispatcher: dispatcher, logger: logger}
}

// CurrentUser fetches the caller's own record.
func (s *DirectoryService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		return nil, s.backendError(err)
	}
	return user, nil
}

// UpdateProfile patches the caller's name, contact number, or password.
func (s *DirectoryService) UpdateProfile(ctx context.Context, token string, update backend.ProfileUpdate) Result {
	resp, err := s.client.UpdateProfile(ctx, token, update)
	if err != nil {
		return failure(s.failureMessage(err, "Update failed"))
	}
	return Result{Success: true, Message: resp.Message, User: resp.Data}
}

// RequestEmailChange starts the email change flow for the caller.
func (s *DirectoryService) RequestEmailChange(ctx context.Context, token, newEmail, password string) Result {
	resp, err := s.client.RequestEmailChange(ctx, token, backend.EmailChangeRequest{
		NewEmail: newEmail,
		Password: password,
	})
	if err != nil {
		return failure(s.failureMessage(err, "Email change request failed"))
	}
	return Result{Success: true, Message: resp.Message}
}

// VerifyEmailChange confirms the new address with its OTP.
func (s *DirectoryService) VerifyEmailChange(ctx context.Context, token, newEmail, otp string) Result {
	resp, err := s.client.VerifyEmailChange(ctx, token, backend.EmailChangeVerify{
		NewEmail: newEmail,
		OTP:      otp,
	})
	if err != nil {
		return failure(s.failureMessage(err, "Email verification failed"))
	}
	return Result{Success: true, Message: resp.Message, User: resp.Data}
}

// ListUsers fetches the full directory for the admin view.
func (s *DirectoryService) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return nil, s.backendError(err)
	}
	return users, nil
}

// ChangeRole assigns newRole to the target after enforcing the role policy.
// Policy violations abort before the backend mutation; backend-reported
// failures come back inside the result for verbatim display.
func (s *DirectoryService) ChangeRole(ctx context.Context, token, targetID string, newRole domain.Role) (Result, error) {
	actor, target, err := s.resolvePair(ctx, token, targetID)
	if err != nil {
		return Result{}, err
	}

	if !auth.CanChangeRole(actor, target) {
		return Result{}, apperrors.NewForbidden("you may not change this user's role")
	}
	if !auth.RoleAssignable(actor, target, newRole) {
		return Result{}, apperrors.NewForbidden("role not assignable by your role")
	}

	resp, err := s.client.ChangeRole(ctx, token, targetID, newRole)
	if err != nil {
		return failure(s.failureMessage(err, "Role change failed")), nil
	}

	s.publish(ctx, events.Event{
		Type:      events.EventRoleChanged,
		ActorID:   actor.ID,
		SubjectID: target.ID,
		Email:     target.Email,
		Payload:   events.RoleChangedPayload{OldRole: target.Role, NewRole: newRole},
	})

	return Result{Success: true, Message: resp.Message, User: resp.Data}, nil
}

// DeleteUser removes the target permanently after enforcing the role policy.
func (s *DirectoryService) DeleteUser(ctx context.Context, token, targetID string) (Result, error) {
	actor, target, err := s.resolvePair(ctx, token, targetID)
	if err != nil {
		return Result{}, err
	}

	if !auth.CanDelete(actor, target) {
		return Result{}, apperrors.NewForbidden("only superadmins may delete other users")
	}

	resp, err := s.client.DeleteUser(ctx, token, targetID)
	if err != nil {
		return failure(s.failureMessage(err, "Delete failed")), nil
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserDeleted,
		ActorID:   actor.ID,
		SubjectID: target.ID,
		Email:     target.Email,
		Payload:   events.UserDeletedPayload{Role: target.Role, Email: target.Email},
	})

	return Result{Success: true, Message: resp.Message}, nil
}

// resolvePair loads actor and target fresh from the backend. The decision
// must be computed against current roles, not edge-decoded claims.
func (s *DirectoryService) resolvePair(ctx context.Context, token, targetID string) (*domain.User, *domain.User, error) {
	actor, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		return nil, nil, s.backendError(err)
	}
	if actor == nil {
		return nil, nil, apperrors.NewUnauthorized("unable to resolve caller identity")
	}

	users, err := s.client.ListUsers(ctx, token)
	if err != nil {
		return nil, nil, s.backendError(err)
	}
	for i := range users {
		if users[i].ID == targetID {
			return actor, &users[i], nil
		}
	}
	return nil, nil, apperrors.NewNotFound("user", map[string]any{"id": targetID})
}

func (s *DirectoryService) publish(ctx context.Context, ev events.Event) {
	if s.dispatcher == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, ev)
}

func (s *DirectoryService) backendError(err error) error {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewDomainError("BACKEND_REJECTED", apiErr.Message, apiErr.StatusCode, nil)
	}
	if errors.Is(err, backend.ErrUnreachable) {
		return apperrors.NewBadGateway(err)
	}
	return apperrors.MapError(err)
}

func (s *DirectoryService) failureMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if errors.Is(err, backend.ErrUnreachable) {
		s.logger.Warn("backend unreachable", zap.Error(err))
		return genericNetworkMessage
	}
	s.logger.Error("unexpected backend client error", zap.Error(err))
	return genericNetworkMessage
}
