package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/pkg/logger"
)

// CacheInvalidator schedules removal of cached list results for an
// entity. The production implementation enqueues a background task so
// request latency never pays for a keyspace scan.
type CacheInvalidator interface {
	InvalidateEntity(ctx context.Context, entity string) error
}

// invalidateAll schedules invalidation for every affected entity. A
// write to one entity can stale cached listings of entities that embed
// it through includes, so each service declares the full set.
func invalidateAll(ctx context.Context, inv CacheInvalidator, entities ...string) {
	if inv == nil {
		return
	}
	for _, entity := range entities {
		if err := inv.InvalidateEntity(ctx, entity); err != nil {
			logger.Warn("failed to schedule cache invalidation",
				zap.String("entity", entity),
				zap.Error(err),
			)
		}
	}
}
