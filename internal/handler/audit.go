package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/middleware"
)

// AuditQueryService defines the audit operations the handler needs
type AuditQueryService interface {
	History(ctx context.Context, entity string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error)
}

// auditedEntities names the entities with queryable audit history
var auditedEntities = map[string]bool{
	domain.EntityCompanies: true,
	domain.EntityUsers:     true,
	domain.EntityProducts:  true,
	domain.EntityOrders:    true,
	domain.EntityInventory: true,
}

// AuditHandler handles audit log endpoints
type AuditHandler struct {
	audit  AuditQueryService
	logger *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit AuditQueryService, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		audit:  audit,
		logger: logger,
	}
}

// History handles GET /v1/audit/:entity/:entityId
func (h *AuditHandler) History(c *fiber.Ctx) error {
	entity := c.Params("entity")
	if !auditedEntities[entity] {
		return errorResponse(c, fiber.StatusBadRequest, "Unknown entity: "+entity)
	}

	entityID, err := uuid.Parse(c.Params("entityId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid entity ID")
	}

	limit := c.QueryInt("limit", 0)

	entries, err := h.audit.History(c.Context(), entity, entityID, limit)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to load audit history")
	}

	return c.JSON(fiber.Map{
		"data": entries,
	})
}

// RegisterRoutes registers audit routes
func (h *AuditHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/audit/:entity/:entityId", auth.RequireRole(domain.UserRoleAdmin), h.History)
}
