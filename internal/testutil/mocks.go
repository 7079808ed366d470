// Package testutil provides shared test utilities for the TradeCore API.
package testutil

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/middleware"
)

// TestUserMiddleware creates a middleware that sets the user ID in context.
// Use this in tests to simulate authenticated requests.
func TestUserMiddleware(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(string(middleware.ContextKeyUserID), userID)
		return c.Next()
	}
}

// TestAuthMiddleware creates a middleware that sets the full actor context.
// Use this in tests to simulate fully authenticated requests.
func TestAuthMiddleware(userID, companyID uuid.UUID, role domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(string(middleware.ContextKeyUserID), userID)
		c.Locals(string(middleware.ContextKeyCompanyID), companyID)
		c.Locals(string(middleware.ContextKeyRole), role)
		return c.Next()
	}
}
