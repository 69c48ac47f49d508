package worker

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/account-gateway/internal/events"
	"github.com/spec-kit/account-gateway/internal/repository"
)

var auditedEvents = []events.EventType{
	events.EventUserSignedUp,
	events.EventOTPVerified,
	events.EventSessionLogin,
	events.EventSessionLogout,
	events.EventRoleChanged,
	events.EventUserDeleted,
}

// StartAuditWorker subscribes the audit recorder to every auth and
// administration event. Recording failures are logged, never surfaced: the
// audit trail must not block user-facing operations.
func StartAuditWorker(dispatcher events.Dispatcher, audits repository.AuditRepository, logger *zap.Logger) {
	if dispatcher == nil || audits == nil {
		return
	}

	record := func(ctx context.Context, ev events.Event) error {
		if err := audits.Record(ctx, toAuditEvent(ev)); err != nil {
			logger.Warn("audit record failed",
				zap.String("event", string(ev.Type)),
				zap.Error(err),
			)
		}
		return nil
	}

	for _, eventType := range auditedEvents {
		dispatcher.Subscribe(eventType, record)
	}
}

func toAuditEvent(ev events.Event) *repository.AuditEvent {
	var payload []byte
	if ev.Payload != nil {
		if raw, err := json.Marshal(ev.Payload); err == nil {
			payload = raw
		}
	}
	return &repository.AuditEvent{
		ID:         ev.ID,
		EventType:  string(ev.Type),
		ActorID:    ev.ActorID,
		SubjectID:  ev.SubjectID,
		Email:      ev.Email,
		Payload:    payload,
		OccurredAt: ev.Timestamp,
	}
}
