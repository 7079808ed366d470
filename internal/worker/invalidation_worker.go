package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/pkg/database"
	"github.com/tradecore/tradecore/api/internal/query"
)

// TypeCacheInvalidation is the task type for cached query invalidation
const TypeCacheInvalidation = "cache:invalidate"

// CacheInvalidationPayload is the payload for invalidation tasks
type CacheInvalidationPayload struct {
	Entity string `json:"entity"`
}

// NewCacheInvalidationTask creates a cache invalidation task
func NewCacheInvalidationTask(payload *CacheInvalidationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invalidation payload: %w", err)
	}
	return asynq.NewTask(TypeCacheInvalidation, data, asynq.MaxRetry(5), asynq.Timeout(time.Minute)), nil
}

// InvalidationWorker removes every cached query result for an entity
// after a write. Deletion runs here rather than on the request path so
// writes never pay for a keyspace scan.
type InvalidationWorker struct {
	logger *zap.Logger
	redis  *database.RedisDB
}

// NewInvalidationWorker creates a new invalidation worker
func NewInvalidationWorker(logger *zap.Logger, redis *database.RedisDB) *InvalidationWorker {
	return &InvalidationWorker{
		logger: logger,
		redis:  redis,
	}
}

// ProcessTask processes a cache invalidation task
func (w *InvalidationWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload CacheInvalidationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal invalidation payload: %w", err)
	}

	pattern := query.CachePattern(payload.Entity)

	deleted, err := w.redis.DelByPattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", pattern, err)
	}

	w.logger.Info("invalidated cached query results",
		zap.String("entity", payload.Entity),
		zap.Int64("keys", deleted),
	)

	return nil
}
