package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeAuditPrune is the task type for audit log retention pruning
const TypeAuditPrune = "audit:prune"

// AuditPrunePayload is the payload for audit prune tasks
type AuditPrunePayload struct {
	RetentionDays int `json:"retention_days"`
}

// NewAuditPruneTask creates an audit prune task
func NewAuditPruneTask(payload *AuditPrunePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit prune payload: %w", err)
	}
	return asynq.NewTask(TypeAuditPrune, data, asynq.MaxRetry(2), asynq.Timeout(10*time.Minute)), nil
}

// AuditPruner deletes audit entries past their retention window
type AuditPruner interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// AuditWorker prunes expired audit log entries on a schedule
type AuditWorker struct {
	logger *zap.Logger
	repo   AuditPruner
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(logger *zap.Logger, repo AuditPruner) *AuditWorker {
	return &AuditWorker{
		logger: logger,
		repo:   repo,
	}
}

// ProcessTask processes an audit prune task
func (w *AuditWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload AuditPrunePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal audit prune payload: %w", err)
	}

	retention := payload.RetentionDays
	if retention <= 0 {
		retention = 90
	}

	before := time.Now().AddDate(0, 0, -retention)

	deleted, err := w.repo.DeleteBefore(ctx, before)
	if err != nil {
		return fmt.Errorf("failed to prune audit logs: %w", err)
	}

	w.logger.Info("pruned audit logs",
		zap.Int("retention_days", retention),
		zap.Int64("deleted", deleted),
	)

	return nil
}
