package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/service"
)

const testSecret = "test-secret-for-middleware"

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, config.JWTConfig{
		Secret: testSecret,
		Expiry: time.Hour,
		Issuer: "tradecore-test",
	})
}

func signTestToken(t *testing.T, userID, companyID uuid.UUID, role domain.UserRole) string {
	t.Helper()

	claims := service.Claims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	t.Run("returns 401 when no token provided", func(t *testing.T) {
		app := fiber.New()

		m := NewAuthMiddleware(testAuthService())
		app.Use(m.RequireAuth())
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "Authorization header required")
	})

	t.Run("returns 401 for garbage token", func(t *testing.T) {
		app := fiber.New()

		m := NewAuthMiddleware(testAuthService())
		app.Use(m.RequireAuth())
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("sets actor context for a valid token", func(t *testing.T) {
		app := fiber.New()

		userID := uuid.New()
		companyID := uuid.New()

		var gotUser, gotCompany uuid.UUID
		var gotRole domain.UserRole

		m := NewAuthMiddleware(testAuthService())
		app.Use(m.RequireAuth())
		app.Get("/test", func(c *fiber.Ctx) error {
			gotUser, _ = GetUserID(c)
			gotCompany, _ = GetCompanyID(c)
			gotRole, _ = GetUserRole(c)
			return c.SendStatus(200)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, userID, companyID, domain.UserRoleAdmin))
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, companyID, gotCompany)
		assert.Equal(t, domain.UserRoleAdmin, gotRole)
	})
}

func TestRequireRole(t *testing.T) {
	newApp := func(min domain.UserRole) *fiber.App {
		app := fiber.New()
		m := NewAuthMiddleware(testAuthService())
		app.Use(m.RequireAuth(), m.RequireRole(min))
		app.Get("/test", func(c *fiber.Ctx) error {
			return c.SendStatus(200)
		})
		return app
	}

	t.Run("allows role at or above the minimum", func(t *testing.T) {
		app := newApp(domain.UserRoleMember)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, uuid.New(), uuid.New(), domain.UserRoleOwner))
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("rejects role below the minimum", func(t *testing.T) {
		app := newApp(domain.UserRoleAdmin)

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, uuid.New(), uuid.New(), domain.UserRoleViewer))
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	t.Run("continues without auth", func(t *testing.T) {
		app := fiber.New()

		m := NewAuthMiddleware(testAuthService())
		app.Use(m.OptionalAuth())
		app.Get("/test", func(c *fiber.Ctx) error {
			assert.Nil(t, ActorID(c))
			return c.SendStatus(200)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("attaches actor when token is valid", func(t *testing.T) {
		app := fiber.New()

		userID := uuid.New()
		var actor *uuid.UUID

		m := NewAuthMiddleware(testAuthService())
		app.Use(m.OptionalAuth())
		app.Get("/test", func(c *fiber.Ctx) error {
			actor = ActorID(c)
			return c.SendStatus(200)
		})

		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, userID, uuid.New(), domain.UserRoleMember))
		_, err := app.Test(req)
		require.NoError(t, err)

		require.NotNil(t, actor)
		assert.Equal(t, userID, *actor)
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		setupRequest  func(*http.Request)
		expectedToken string
	}{
		{
			name: "token from Bearer header",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer some.jwt.token")
			},
			expectedToken: "some.jwt.token",
		},
		{
			name: "non-bearer scheme not returned",
			setupRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
			expectedToken: "",
		},
		{
			name:          "no Authorization header",
			setupRequest:  func(req *http.Request) {},
			expectedToken: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()

			var extractedToken string
			app.Get("/test", func(c *fiber.Ctx) error {
				extractedToken = extractBearerToken(c)
				return c.SendStatus(200)
			})

			req := httptest.NewRequest("GET", "/test", nil)
			tt.setupRequest(req)

			_, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedToken, extractedToken)
		})
	}
}
