package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/tradecore/tradecore/api/internal/config"
)

// TaskScheduler enqueues background tasks from the request path. It
// implements the service layer's CacheInvalidator and ExportScheduler
// contracts on top of an asynq client.
type TaskScheduler struct {
	client        *asynq.Client
	queueCritical string
	queueLow      string
}

// NewTaskScheduler creates a task scheduler around an asynq client. Queue
// names come from the worker config so producers target the same queues the
// worker server consumes; unset names fall back to the stock queue set.
func NewTaskScheduler(client *asynq.Client, cfg config.WorkerConfig) *TaskScheduler {
	s := &TaskScheduler{
		client:        client,
		queueCritical: cfg.QueueCritical,
		queueLow:      cfg.QueueLow,
	}
	if s.queueCritical == "" {
		s.queueCritical = "critical"
	}
	if s.queueLow == "" {
		s.queueLow = "low"
	}
	return s
}

// InvalidateEntity enqueues removal of every cached query result for an
// entity
func (s *TaskScheduler) InvalidateEntity(ctx context.Context, entity string) error {
	task, err := NewCacheInvalidationTask(&CacheInvalidationPayload{Entity: entity})
	if err != nil {
		return err
	}

	// Invalidation runs on the critical queue so stale results have the
	// shortest possible window.
	_, err = s.client.EnqueueContext(ctx, task, asynq.Queue(s.queueCritical))
	if err != nil {
		return fmt.Errorf("failed to enqueue invalidation for %s: %w", entity, err)
	}

	return nil
}

// ScheduleOrdersExport enqueues a background order export and returns
// the job ID
func (s *TaskScheduler) ScheduleOrdersExport(ctx context.Context, rawQuery string, requestedBy *uuid.UUID) (uuid.UUID, error) {
	jobID := uuid.New()

	task, err := NewOrdersExportTask(&OrdersExportPayload{
		JobID:       jobID,
		RawQuery:    rawQuery,
		RequestedBy: requestedBy,
	})
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := s.client.EnqueueContext(ctx, task, asynq.Queue(s.queueLow)); err != nil {
		return uuid.Nil, fmt.Errorf("failed to enqueue order export: %w", err)
	}

	return jobID, nil
}

// Close closes the underlying asynq client
func (s *TaskScheduler) Close() error {
	return s.client.Close()
}
