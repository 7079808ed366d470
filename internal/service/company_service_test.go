package service_test

import (
	"context"
	"net/url"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradecore/tradecore/api/internal/domain"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/pkg/logger"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/service"
	"github.com/tradecore/tradecore/api/internal/testutil"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	_ = logger.Init(logger.Config{
		Level:  "error", // Only show errors in tests to reduce noise
		Format: "console",
	})
	os.Exit(m.Run())
}

// MockCompanyRepository mocks company persistence for testing.
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyRepository) NameExists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) ListAll(ctx context.Context, includes []string) ([]domain.Company, error) {
	args := m.Called(ctx, includes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

// MockAuditRepository mocks the audit trail for testing.
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, input *domain.AuditLogInput) (*domain.AuditLog, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditLog), args.Error(1)
}

func (m *MockAuditRepository) ListByEntity(ctx context.Context, entity string, entityID uuid.UUID, limit int) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entity, entityID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

// MockInvalidator records which entity scopes were invalidated.
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) InvalidateEntity(ctx context.Context, entity string) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func newCompanyServiceUnderTest(repo *MockCompanyRepository, auditRepo *MockAuditRepository, inv *MockInvalidator) *service.CompanyService {
	return service.NewCompanyService(repo, service.NewAuditService(auditRepo), inv, nil, query.Options{})
}

func TestCompanyService_Create(t *testing.T) {
	t.Run("creates company and invalidates dependent caches", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		auditRepo := new(MockAuditRepository)
		inv := new(MockInvalidator)
		svc := newCompanyServiceUnderTest(repo, auditRepo, inv)

		repo.On("NameExists", mock.Anything, "Acme Logistics").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(input *domain.AuditLogInput) bool {
			return input.Entity == domain.EntityCompanies && input.Action == domain.AuditActionCreate
		})).Return(&domain.AuditLog{}, nil)
		inv.On("InvalidateEntity", mock.Anything, domain.EntityCompanies).Return(nil)
		inv.On("InvalidateEntity", mock.Anything, domain.EntityUsers).Return(nil)
		inv.On("InvalidateEntity", mock.Anything, domain.EntityOrders).Return(nil)

		actorID := uuid.New()
		company, err := svc.Create(context.Background(), &domain.CompanyInput{
			Name:          "Acme Logistics",
			Industry:      domain.IndustryLogistics,
			Email:         "ops@acme.test",
			EmployeeCount: 120,
		}, &actorID)

		require.NoError(t, err)
		assert.Equal(t, "Acme Logistics", company.Name)
		assert.True(t, company.IsActive)
		assert.NotEqual(t, uuid.Nil, company.ID)

		repo.AssertExpectations(t)
		auditRepo.AssertExpectations(t)
		inv.AssertExpectations(t)
	})

	t.Run("rejects a taken name with a conflict", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := newCompanyServiceUnderTest(repo, new(MockAuditRepository), new(MockInvalidator))

		repo.On("NameExists", mock.Anything, "Acme Logistics").Return(true, nil)

		_, err := svc.Create(context.Background(), &domain.CompanyInput{
			Name:     "Acme Logistics",
			Industry: domain.IndustryLogistics,
		}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown industry", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := newCompanyServiceUnderTest(repo, new(MockAuditRepository), new(MockInvalidator))

		_, err := svc.Create(context.Background(), &domain.CompanyInput{
			Name:     "Acme Logistics",
			Industry: domain.Industry("AGRICULTURE"),
		}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCompanyService_Update(t *testing.T) {
	t.Run("applies partial updates", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		auditRepo := new(MockAuditRepository)
		inv := new(MockInvalidator)
		svc := newCompanyServiceUnderTest(repo, auditRepo, inv)

		existing := testutil.NewTestCompany()
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Create", mock.Anything, mock.Anything).Return(&domain.AuditLog{}, nil)
		inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)

		count := 200
		updated, err := svc.Update(context.Background(), existing.ID, &domain.CompanyUpdateInput{
			EmployeeCount: &count,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 200, updated.EmployeeCount)
		assert.Equal(t, existing.Name, updated.Name)
		repo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := newCompanyServiceUnderTest(repo, new(MockAuditRepository), new(MockInvalidator))

		id := uuid.New()
		repo.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("company"))

		_, err := svc.Update(context.Background(), id, &domain.CompanyUpdateInput{}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestCompanyService_List(t *testing.T) {
	t.Run("filters and pages through the registry", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := newCompanyServiceUnderTest(repo, new(MockAuditRepository), new(MockInvalidator))

		active := testutil.NewTestCompany()
		inactive := testutil.NewTestCompany()
		inactive.Name = "Dormant Freight"
		inactive.IsActive = false
		repo.On("ListAll", mock.Anything, mock.Anything).
			Return([]domain.Company{*active, *inactive}, nil)

		params := url.Values{}
		params.Set("filter[isActive]", "true")

		result, err := svc.List(context.Background(), params)

		require.NoError(t, err)
		assert.Equal(t, 1, result.TotalCount)
		require.Len(t, result.Items, 1)
		assert.Equal(t, active.ID, result.Items[0].ID)
	})

	t.Run("reports every invalid clause at once", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		svc := newCompanyServiceUnderTest(repo, new(MockAuditRepository), new(MockInvalidator))

		params := url.Values{}
		params.Set("filter[bogus]", "1")
		params.Set("sort", "-mystery")

		_, err := svc.List(context.Background(), params)

		require.Error(t, err)
		verrs, ok := query.AsValidationErrors(err)
		require.True(t, ok)
		assert.Len(t, verrs, 2)
		repo.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
	})
}

func TestCompanyService_Delete(t *testing.T) {
	t.Run("deletes and records the removal", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		auditRepo := new(MockAuditRepository)
		inv := new(MockInvalidator)
		svc := newCompanyServiceUnderTest(repo, auditRepo, inv)

		existing := testutil.NewTestCompany()
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Delete", mock.Anything, existing.ID).Return(nil)
		auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(input *domain.AuditLogInput) bool {
			return input.Action == domain.AuditActionDelete
		})).Return(&domain.AuditLog{}, nil)
		inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)

		err := svc.Delete(context.Background(), existing.ID, nil)

		require.NoError(t, err)
		repo.AssertExpectations(t)
		auditRepo.AssertExpectations(t)
	})

	t.Run("audit failure never fails the delete", func(t *testing.T) {
		repo := new(MockCompanyRepository)
		auditRepo := new(MockAuditRepository)
		inv := new(MockInvalidator)
		svc := newCompanyServiceUnderTest(repo, auditRepo, inv)

		existing := testutil.NewTestCompany()
		repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Delete", mock.Anything, existing.ID).Return(nil)
		auditRepo.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)
		inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)

		err := svc.Delete(context.Background(), existing.ID, nil)

		require.NoError(t, err)
	})
}
