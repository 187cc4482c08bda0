package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditRecord is one row in the audit trail.
type AuditRecord struct {
	ID          string
	EventType   string
	SubjectID   string
	ActorUserID *string
	Payload     []byte
	CreatedAt   time.Time
}

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, record *AuditRecord) error
	ListRecent(ctx context.Context, limit int) ([]AuditRecord, error)
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed implementation.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) Create(ctx context.Context, record *AuditRecord) error {
	const query = `
        INSERT INTO audit_events (id, event_type, subject_id, actor_user_id, payload)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		record.ID,
		record.EventType,
		record.SubjectID,
		record.ActorUserID,
		record.Payload,
	).Scan(&record.CreatedAt)
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
        SELECT id, event_type, subject_id, actor_user_id, payload, created_at
        FROM audit_events ORDER BY created_at DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []AuditRecord{}
	for rows.Next() {
		var record AuditRecord
		if err := rows.Scan(
			&record.ID,
			&record.EventType,
			&record.SubjectID,
			&record.ActorUserID,
			&record.Payload,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
