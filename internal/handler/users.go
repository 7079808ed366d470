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

// UserService defines the user operations the handler needs
type UserService interface {
	List(ctx context.Context, params url.Values) (*query.PagedResult[domain.User], error)
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, input *domain.UserInput, actorID *uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, input *domain.UserUpdateInput, actorID *uuid.UUID) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error
}

// UsersHandler handles user endpoints
type UsersHandler struct {
	users  UserService
	logger *zap.Logger
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(users UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		users:  users,
		logger: logger,
	}
}

// ListUsers handles GET /v1/users
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	result, err := h.users.List(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to list users")
	}

	return c.JSON(result)
}

// GetUser handles GET /v1/users/:userId
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	user, err := h.users.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get user")
	}

	return c.JSON(user)
}

// Me handles GET /v1/users/me
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return errorResponse(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.users.Get(c.Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to get user")
	}

	return c.JSON(user)
}

// CreateUser handles POST /v1/users
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var input domain.UserInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse user")
	}

	user, err := h.users.Create(c.Context(), &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to create user")
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUser handles PATCH /v1/users/:userId
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var input domain.UserUpdateInput
	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse user update")
	}

	user, err := h.users.Update(c.Context(), userID, &input, middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to update user")
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /v1/users/:userId
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	if err := h.users.Delete(c.Context(), userID, middleware.ActorID(c)); err != nil {
		return respondError(c, h.logger, err, "Failed to delete user")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RegisterRoutes registers user routes
func (h *UsersHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/users", h.ListUsers)
	v1.Get("/users/me", h.Me)
	v1.Get("/users/:userId", h.GetUser)
	v1.Post("/users", auth.RequireRole(domain.UserRoleAdmin), h.CreateUser)
	v1.Patch("/users/:userId", auth.RequireRole(domain.UserRoleAdmin), h.UpdateUser)
	v1.Delete("/users/:userId", auth.RequireRole(domain.UserRoleAdmin), h.DeleteUser)
}
