package handler

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/middleware"
	"github.com/tradecore/tradecore/api/internal/query"
)

// InventoryService defines the inventory operations the handler needs
type InventoryService interface {
	List(ctx context.Context, params url.Values) (*query.PagedResult[domain.InventoryItem], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	Create(ctx context.Context, input *domain.InventoryInput, actorID *uuid.UUID) (*domain.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.InventoryUpdateInput, actorID *uuid.UUID) (*domain.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// InventoryHandler handles inventory endpoints
type InventoryHandler struct {
	inventory InventoryService
	logger    *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory InventoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// ListInventory handles GET /v1/inventory
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	result, err := h.inventory.List(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list inventory")
	}

	return c.JSON(result)
}

// GetInventoryItem handles GET /v1/inventory/:itemId
func (h *InventoryHandler) GetInventoryItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid inventory item ID")
	}

	item, err := h.inventory.Get(c.Context(), itemID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get inventory item")
	}

	return c.JSON(item)
}

// CreateInventoryItem handles POST /v1/inventory
func (h *InventoryHandler) CreateInventoryItem(c *fiber.Ctx) error {
	var input domain.InventoryInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse inventory item")
	}

	item, err := h.inventory.Create(c.Context(), &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create inventory item")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateInventoryItem handles PATCH /v1/inventory/:itemId
func (h *InventoryHandler) UpdateInventoryItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid inventory item ID")
	}

	var input domain.InventoryUpdateInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse inventory update")
	}

	item, err := h.inventory.Update(c.Context(), itemID, &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update inventory item")
	}

	return c.JSON(item)
}

// DeleteInventoryItem handles DELETE /v1/inventory/:itemId
func (h *InventoryHandler) DeleteInventoryItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid inventory item ID")
	}

	if err := h.inventory.Delete(c.Context(), itemID, middleware.ActorID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete inventory item")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/inventory", h.ListInventory)
	v1.Get("/inventory/:itemId", h.GetInventoryItem)
	v1.Post("/inventory", auth.RequireRole(domain.UserRoleMember), h.CreateInventoryItem)
	v1.Patch("/inventory/:itemId", auth.RequireRole(domain.UserRoleMember), h.UpdateInventoryItem)
	v1.Delete("/inventory/:itemId", auth.RequireRole(domain.UserRoleAdmin), h.DeleteInventoryItem)
}
