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

// ProductService defines the product operations the handler needs
type ProductService interface {
	List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Product], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, input *domain.ProductInput, actorID *uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.ProductUpdateInput, actorID *uuid.UUID) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// ProductsHandler handles product endpoints
type ProductsHandler struct {
	products ProductService
	logger   *zap.Logger
}

// NewProductsHandler creates a new products handler
func NewProductsHandler(products ProductService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{
		products: products,
		logger:   logger,
	}
}

// ListProducts handles GET /v1/products
func (h *ProductsHandler) ListProducts(c *fiber.Ctx) error {
	result, err := h.products.List(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list products")
	}

	return c.JSON(result)
}

// GetProduct handles GET /v1/products/:productId
func (h *ProductsHandler) GetProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	product, err := h.products.Get(c.Context(), productID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get product")
	}

	return c.JSON(product)
}

// CreateProduct handles POST /v1/products
func (h *ProductsHandler) CreateProduct(c *fiber.Ctx) error {
	var input domain.ProductInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse product")
	}

	product, err := h.products.Create(c.Context(), &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create product")
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PATCH /v1/products/:productId
func (h *ProductsHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	var input domain.ProductUpdateInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse product update")
	}

	product, err := h.products.Update(c.Context(), productID, &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update product")
	}

	return c.JSON(product)
}

// DeleteProduct handles DELETE /v1/products/:productId
func (h *ProductsHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid product ID")
	}

	if err := h.products.Delete(c.Context(), productID, middleware.ActorID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete product")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers product routes
func (h *ProductsHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/products", h.ListProducts)
	v1.Get("/products/:productId", h.GetProduct)
	v1.Post("/products", auth.RequireRole(domain.UserRoleMember), h.CreateProduct)
	v1.Patch("/products/:productId", auth.RequireRole(domain.UserRoleMember), h.UpdateProduct)
	v1.Delete("/products/:productId", auth.RequireRole(domain.UserRoleAdmin), h.DeleteProduct)
}
