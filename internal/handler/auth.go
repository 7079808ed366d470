package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/service"
)

// AuthService defines the authentication operations the handler needs
type AuthService interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	auth   AuthService
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := parseBody(c, &input); err != nil {
		return respondError(c, h.logger, err, "Failed to parse login request")
	}

	result, err := h.auth.Login(c.Context(), input.Email, input.Password)
	if err != nil {
		return respondError(c, h.logger, err, "Failed to log in")
	}

	return c.JSON(result)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/v1/auth/login", h.Login)
}
