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

// OrderService defines the order operations the handler needs
type OrderService interface {
	List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Order], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Create(ctx context.Context, input *domain.OrderInput, actorID *uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, actorID *uuid.UUID) (*domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// OrdersHandler handles order endpoints
type OrdersHandler struct {
	orders OrderService
	logger *zap.Logger
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(orders OrderService, logger *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders: orders,
		logger: logger,
	}
}

// ListOrders handles GET /v1/orders
func (h *OrdersHandler) ListOrders(c *fiber.Ctx) error {
	result, err := h.orders.List(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list orders")
	}

	return c.JSON(result)
}

// GetOrder handles GET /v1/orders/:orderId
func (h *OrdersHandler) GetOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.orders.Get(c.Context(), orderID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get order")
	}

	return c.JSON(order)
}

// CreateOrder handles POST /v1/orders
func (h *OrdersHandler) CreateOrder(c *fiber.Ctx) error {
	var input domain.OrderInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse order")
	}

	order, err := h.orders.Create(c.Context(), &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create order")
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderStatus handles PATCH /v1/orders/:orderId/status
func (h *OrdersHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	var input struct {
		Status domain.OrderStatus `json:"status" validate:"required"`
	}
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse status update")
	}

	if !input.Status.IsValid() {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid order status: "+string(input.Status))
	}

	order, err := h.orders.UpdateStatus(c.Context(), orderID, input.Status, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update order status")
	}

	return c.JSON(order)
}

// DeleteOrder handles DELETE /v1/orders/:orderId
func (h *OrdersHandler) DeleteOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid order ID")
	}

	if err := h.orders.Delete(c.Context(), orderID, middleware.ActorID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete order")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers order routes
func (h *OrdersHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/orders", h.ListOrders)
	v1.Get("/orders/:orderId", h.GetOrder)
	v1.Post("/orders", auth.RequireRole(domain.UserRoleMember), h.CreateOrder)
	v1.Patch("/orders/:orderId/status", auth.RequireRole(domain.UserRoleMember), h.UpdateOrderStatus)
	v1.Delete("/orders/:orderId", auth.RequireRole(domain.UserRoleAdmin), h.DeleteOrder)
}
