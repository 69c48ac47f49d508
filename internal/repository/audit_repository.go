package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditEvent is a persisted record of an auth or administration event.
type AuditEvent struct {
	ID         string
	EventType  string
	ActorID    string
	SubjectID  string
	Email      string
	Payload    []byte
	OccurredAt time.Time
}

// AuditRepository defines persistence access for the audit trail.
type AuditRepository interface {
	Record(ctx context.Context, event *AuditEvent) error
	ListRecent(ctx context.Context, limit int) ([]AuditEvent, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Record(ctx context.Context, event *AuditEvent) error {
	const query = `
        INSERT INTO audit_events (id, event_type, actor_id, subject_id, email, payload, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		event.ID,
		event.EventType,
		event.ActorID,
		event.SubjectID,
		event.Email,
		event.Payload,
		event.OccurredAt,
	)
	return err
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
        SELECT id, event_type, actor_id, subject_id, email, payload, occurred_at
        FROM audit_events ORDER BY occurred_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEvent
	for rows.Next() {
		var ev AuditEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.EventType,
			&ev.ActorID,
			&ev.SubjectID,
			&ev.Email,
			&ev.Payload,
			&ev.OccurredAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
