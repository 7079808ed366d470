package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/pkg/logger"
)

// AuditRepository defines audit log persistence operations
type AuditRepository interface {
	Create(ctx context.Context, input *domain.AuditLogInput) (*domain.AuditLog, error)
	ListByEntity(ctx context.Context, entity string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error)
}

// AuditService records entity writes. Recording is best effort; a failed
// audit write never fails the operation it describes.
type AuditService struct {
	repo AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(repo AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record appends an audit entry for one entity write
func (s *AuditService) Record(ctx context.Context, input *domain.AuditLogInput) {
	if s == nil || s.repo == nil {
		return
	}

	if _, err := s.repo.Create(ctx, input); err != nil {
		logger.Warn("failed to record audit entry",
			zap.String("entity", input.Entity),
			zap.String("entity_id", input.EntityID.String()),
			zap.String("action", string(input.Action)),
			zap.Error(err),
		)
	}
}

// History retrieves the most recent audit entries for one record
func (s *AuditService) History(ctx context.Context, entity string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	return s.repo.ListByEntity(ctx, entity, entityID, limit)
}
