package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/service"
)

// ContextKey type for context keys
type ContextKey string

const (
	// Context keys
	ContextKeyUserID    ContextKey = "userID"
	ContextKeyCompanyID ContextKey = "companyID"
	ContextKeyRole      ContextKey = "role"
)

// roleRank orders roles from least to most privileged
var roleRank = map[domain.UserRole]int{
	domain.UserRoleViewer: 0,
	domain.UserRoleMember: 1,
	domain.UserRoleAdmin:  2,
	domain.UserRoleOwner:  3,
}

// AuthMiddleware handles authentication
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth validates bearer token authentication
func (m *AuthMiddleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Authorization header required",
			})
		}

		claims, err := m.authService.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(string(ContextKeyUserID), claims.UserID)
		c.Locals(string(ContextKeyCompanyID), claims.CompanyID)
		c.Locals(string(ContextKeyRole), claims.Role)

		return c.Next()
	}
}

// RequireRole ensures the authenticated user holds at least the given role
func (m *AuthMiddleware) RequireRole(min domain.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := GetUserRole(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "User not authenticated",
			})
		}

		if roleRank[role] < roleRank[min] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "Forbidden",
				"message": "Insufficient role for this operation",
			})
		}

		return c.Next()
	}
}

// OptionalAuth tries to authenticate but continues even if it fails
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token != "" {
			if claims, err := m.authService.ParseToken(token); err == nil {
				c.Locals(string(ContextKeyUserID), claims.UserID)
				c.Locals(string(ContextKeyCompanyID), claims.CompanyID)
				c.Locals(string(ContextKeyRole), claims.Role)
			}
		}

		return c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// GetUserID gets the authenticated user ID from context
func GetUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(string(ContextKeyUserID)).(uuid.UUID)
	return userID, ok
}

// GetCompanyID gets the authenticated user's company ID from context
func GetCompanyID(c *fiber.Ctx) (uuid.UUID, bool) {
	companyID, ok := c.Locals(string(ContextKeyCompanyID)).(uuid.UUID)
	return companyID, ok
}

// GetUserRole gets the authenticated user's role from context
func GetUserRole(c *fiber.Ctx) (domain.UserRole, bool) {
	role, ok := c.Locals(string(ContextKeyRole)).(domain.UserRole)
	return role, ok
}

// ActorID returns the authenticated user ID as an audit actor reference,
// or nil when the request is unauthenticated
func ActorID(c *fiber.Ctx) *uuid.UUID {
	if userID, ok := GetUserID(c); ok {
		return &userID
	}
	return nil
}
