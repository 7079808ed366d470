package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/domain"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/service"
	"github.com/tradecore/tradecore/api/internal/testutil"
)

func newAuthServiceUnderTest(userRepo *MockUserRepository) *service.AuthService {
	users := service.NewUserService(userRepo, new(MockCompanyRepository), nil, nil, nil, query.Options{})
	return service.NewAuthService(users, config.JWTConfig{
		Secret: "test-secret-please-rotate",
		Expiry: time.Hour,
		Issuer: "tradecore-test",
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("issues a token carrying the actor claims", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthServiceUnderTest(userRepo)

		hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
		require.NoError(t, err)

		user := testutil.NewTestUser(testutil.NewTestCompany().ID)
		user.Role = domain.UserRoleAdmin
		user.PasswordHash = string(hash)
		userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		result, err := svc.Login(context.Background(), user.Email, "hunter22")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, time.Minute)

		claims, err := svc.ParseToken(result.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.CompanyID, claims.CompanyID)
		assert.Equal(t, domain.UserRoleAdmin, claims.Role)
		assert.Equal(t, "tradecore-test", claims.Issuer)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthServiceUnderTest(userRepo)

		hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
		user := testutil.NewTestUser(testutil.NewTestCompany().ID)
		user.PasswordHash = string(hash)
		userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), user.Email, "wrong")

		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("rejects a disabled account", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthServiceUnderTest(userRepo)

		hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
		user := testutil.NewTestUser(testutil.NewTestCompany().ID)
		user.PasswordHash = string(hash)
		user.IsActive = false
		userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		_, err := svc.Login(context.Background(), user.Email, "hunter22")

		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})

	t.Run("hides unknown accounts behind the same error", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthServiceUnderTest(userRepo)

		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").
			Return(nil, apperrors.NotFound("user"))

		_, err := svc.Login(context.Background(), "ghost@example.com", "anything")

		require.Error(t, err)
		assert.True(t, apperrors.IsUnauthorized(err))
	})
}

func TestAuthService_ParseToken(t *testing.T) {
	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthServiceUnderTest(userRepo)

		hash, _ := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
		user := testutil.NewTestUser(testutil.NewTestCompany().ID)
		user.PasswordHash = string(hash)
		userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

		result, err := svc.Login(context.Background(), user.Email, "hunter22")
		require.NoError(t, err)

		other := service.NewAuthService(nil, config.JWTConfig{Secret: "different", Expiry: time.Hour})
		_, err = other.ParseToken(result.Token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		svc := newAuthServiceUnderTest(new(MockUserRepository))
		_, err := svc.ParseToken("not.a.token")
		assert.Error(t, err)
	})
}
