package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/account-gateway/internal/auth"
	"github.com/spec-kit/account-gateway/internal/backend"
	"github.com/spec-kit/account-gateway/internal/events"
	"github.com/spec-kit/account-gateway/internal/ratelimit"
)

// FlowService drives the authentication state machine:
// Anonymous -> PendingVerification -> Authenticated, with logout returning
// to Anonymous. It owns every backend round-trip of the auth flows; cookie
// writes happen in the transport layer from the outcomes returned here.
type FlowService struct {
	client     *backend.Client
	limiter    *ratelimit.ResendLimiter
	dispatcher events.Dispatcher
	ticketTTL  time.Duration
	logger     *zap.Logger
}

// NewFlowService builds the service.
func NewFlowService(client *backend.Client, limiter *ratelimit.ResendLimiter, dispatcher events.Dispatcher, ticketTTL time.Duration, logger *zap.Logger) *FlowService {
	return &FlowService{
		client:     client,
		limiter:    limiter,
		dispatcher: dispatcher,
		ticketTTL:  ticketTTL,
		logger:     logger,
	}
}

// Signup registers a new account. On success the caller must issue the
// returned pending-verification ticket; the state machine is then in
// PendingVerification for this signup.
func (s *FlowService) Signup(ctx context.Context, name, email, password, contactNumber string) SignupOutcome {
	resp, err := s.client.Signup(ctx, backend.SignupRequest{
		Name:          name,
		Email:         email,
		Password:      password,
		ContactNumber: contactNumber,
	})
	if err != nil {
		return SignupOutcome{Result: failure(s.failureMessage(err, "Signup failed"))}
	}

	s.publish(ctx, events.Event{
		Type:      events.EventUserSignedUp,
		SubjectID: resp.UserID,
		Email:     resp.Email,
	})

	return SignupOutcome{
		Result: Result{
			Success: true,
			Message: resp.Message,
			UserID:  resp.UserID,
			Email:   resp.Email,
		},
		Ticket: auth.NewTicket(resp.UserID, resp.Email),
	}
}

// VerifyOTP completes a pending signup. The encoded ticket must decode,
// match the submitted identifiers, and still be inside its validity window;
// otherwise the backend is never contacted. On success the caller writes the
// returned tokens and deletes the ticket, reaching Authenticated.
func (s *FlowService) VerifyOTP(ctx context.Context, encodedTicket, userID, email, otp string) SessionOutcome {
	ticket, err := auth.DecodeTicket(encodedTicket)
	if err != nil || ticket.Expired(s.ticketTTL) || !ticket.Matches(userID, email) {
		return SessionOutcome{Result: failure("Invalid verification parameters")}
	}

	resp, err := s.client.VerifyOTP(ctx, backend.VerifyOTPRequest{
		UserID: userID,
		Email:  email,
		OTP:    otp,
	})
	if err != nil {
		return SessionOutcome{Result: failure(s.failureMessage(err, "OTP verification failed"))}
	}

	s.publish(ctx, events.Event{
		Type:      events.EventOTPVerified,
		SubjectID: userID,
		Email:     email,
	})

	return SessionOutcome{
		Result:       Result{Success: true, Message: resp.Message, User: resp.User},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
}

// ResendOTP re-triggers OTP delivery for a pending signup. It neither
// consumes nor reissues the ticket. Resends are throttled per signup before
// the backend is contacted.
func (s *FlowService) ResendOTP(ctx context.Context, userID, email string) Result {
	if err := s.limiter.Allow(ctx, userID); err != nil {
		if errors.Is(err, ratelimit.ErrLimited) {
			res := failure("Too many resend attempts. Please wait before trying again.")
			res.Limited = true
			return res
		}
		// Redis being down must not block the flow; log and continue.
		s.logger.Warn("resend limiter unavailable", zap.Error(err))
	}

	resp, err := s.client.ResendOTP(ctx, userID, email)
	if err != nil {
		return failure(s.failureMessage(err, "Failed to resend OTP"))
	}
	return Result{Success: true, Message: resp.Message}
}

// Login authenticates credentials, skipping PendingVerification entirely.
// On success the caller writes the returned tokens.
func (s *FlowService) Login(ctx context.Context, email, password string) SessionOutcome {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return SessionOutcome{Result: failure(s.failureMessage(err, "Login failed"))}
	}

	var subjectID string
	if resp.User != nil {
		subjectID = resp.User.ID
	}
	s.publish(ctx, events.Event{
		Type:      events.EventSessionLogin,
		ActorID:   subjectID,
		SubjectID: subjectID,
		Email:     email,
	})

	return SessionOutcome{
		Result:       Result{Success: true, Message: resp.Message, User: resp.User},
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
}

// Logout notifies the backend best-effort. It never fails: the caller clears
// the cookie jar unconditionally regardless of this call's outcome.
func (s *FlowService) Logout(ctx context.Context, accessToken string) {
	if accessToken != "" {
		if err := s.client.Logout(ctx, accessToken); err != nil {
			s.logger.Debug("backend logout failed", zap.Error(err))
		}
	}

	var subjectID, email string
	if claims, err := auth.NewDecoder("").Decode(accessToken); err == nil {
		subjectID = claims.UserID
		email = claims.Email
	}
	s.publish(ctx, events.Event{
		Type:      events.EventSessionLogout,
		ActorID:   subjectID,
		SubjectID: subjectID,
		Email:     email,
	})
}

func (s *FlowService) publish(ctx context.Context, ev events.Event) {
	if s.dispatcher == nil {
		return
	}
	ev.ID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()
	_ = s.dispatcher.Publish(ctx, ev)
}

// failureMessage normalizes errors into user-facing text: backend messages
// verbatim, transport failures as a generic retry suggestion.
func (s *FlowService) failureMessage(err error, fallback string) string {
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
