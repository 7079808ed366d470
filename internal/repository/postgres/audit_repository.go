package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tradecore/tradecore/api/internal/domain"
)

// AuditRepository records entity writes in the audit log. It runs on
// sqlx so the append-heavy audit path stays off the main pgx pool.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, input *domain.AuditLogInput) (*domain.AuditLog, error) {
	id := uuid.New()
	now := time.Now()

	metadataJSON, err := json.Marshal(input.Metadata)
	if err != nil {
		metadataJSON = []byte("{}")
	}

	query := `
		INSERT INTO audit_logs (id, entity, entity_id, action, actor_id, request_id, metadata, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		id, input.Entity, input.EntityID, input.Action,
		input.ActorID, input.RequestID, metadataJSON, now,
	)
	if err != nil {
		return nil, err
	}

	return &domain.AuditLog{
		ID:         id,
		Entity:     input.Entity,
		EntityID:   input.EntityID,
		Action:     input.Action,
		ActorID:    input.ActorID,
		RequestID:  input.RequestID,
		Metadata:   input.Metadata,
		RecordedAt: now,
	}, nil
}

// Get retrieves a single audit log entry
func (r *AuditRepository) Get(ctx context.Context, id uuid.UUID) (*domain.AuditLog, error) {
	query := `
		SELECT id, entity, entity_id, action, actor_id, request_id, metadata, recorded_at
		FROM audit_logs
		WHERE id = $1`

	var log domain.AuditLog
	var metadataJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&log.ID, &log.Entity, &log.EntityID, &log.Action,
		&log.ActorID, &log.RequestID, &metadataJSON, &log.RecordedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if metadataJSON != nil {
		json.Unmarshal(metadataJSON, &log.Metadata)
	}

	return &log, nil
}

// ListByEntity retrieves the most recent audit entries for one record
func (r *AuditRepository) ListByEntity(ctx context.Context, entity string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}

	query := `
		SELECT id, entity, entity_id, action, actor_id, request_id, metadata, recorded_at
		FROM audit_logs
		WHERE entity = $1 AND entity_id = $2
		ORDER BY recorded_at DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, entity, entityID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var log domain.AuditLog
		var metadataJSON []byte

		if err := rows.Scan(
			&log.ID, &log.Entity, &log.EntityID, &log.Action,
			&log.ActorID, &log.RequestID, &metadataJSON, &log.RecordedAt,
		); err != nil {
			return nil, err
		}

		if metadataJSON != nil {
			json.Unmarshal(metadataJSON, &log.Metadata)
		}

		logs = append(logs, log)
	}

	return logs, rows.Err()
}

// DeleteBefore deletes audit entries older than the given time
func (r *AuditRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM audit_logs WHERE recorded_at < $1", before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
