package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tradecore/tradecore/api/internal/domain"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/service"
	"github.com/tradecore/tradecore/api/internal/testutil"
)

// MockOrderRepository mocks order persistence for testing.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, includes []string) ([]domain.Order, error) {
	args := m.Called(ctx, includes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// MockUserRepository mocks user persistence for testing.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ListAll(ctx context.Context, includes []string) ([]domain.User, error) {
	args := m.Called(ctx, includes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockProductRepository mocks product persistence for testing.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListAll(ctx context.Context, includes []string) ([]domain.Product, error) {
	args := m.Called(ctx, includes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

type orderServiceMocks struct {
	orders    *MockOrderRepository
	companies *MockCompanyRepository
	users     *MockUserRepository
	products  *MockProductRepository
	audit     *MockAuditRepository
	inv       *MockInvalidator
}

func newOrderServiceUnderTest() (*service.OrderService, *orderServiceMocks) {
	m := &orderServiceMocks{
		orders:    new(MockOrderRepository),
		companies: new(MockCompanyRepository),
		users:     new(MockUserRepository),
		products:  new(MockProductRepository),
		audit:     new(MockAuditRepository),
		inv:       new(MockInvalidator),
	}
	svc := service.NewOrderService(
		m.orders,
		m.companies,
		m.users,
		m.products,
		service.NewAuditService(m.audit),
		m.inv,
		nil,
		query.Options{},
	)
	return svc, m
}

func TestOrderService_Create(t *testing.T) {
	t.Run("prices lines from the catalog and totals them", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		company := testutil.NewTestCompany()
		user := testutil.NewTestUser(company.ID)
		product := testutil.NewTestProduct()
		product.Price = 25.50

		m.companies.On("GetByID", mock.Anything, company.ID).Return(company, nil)
		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		m.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)
		m.orders.On("NextNumber", mock.Anything).Return("ORD-000101", nil)
		m.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.audit.On("Create", mock.Anything, mock.Anything).Return(&domain.AuditLog{}, nil)
		m.inv.On("InvalidateEntity", mock.Anything, domain.EntityOrders).Return(nil)

		order, err := svc.Create(context.Background(), &domain.OrderInput{
			CompanyID: company.ID,
			UserID:    user.ID,
			Items: []domain.OrderItemInput{
				{ProductID: product.ID, Quantity: 3},
			},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "ORD-000101", order.Number)
		assert.Equal(t, domain.OrderStatusPlaced, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 25.50, order.Items[0].UnitPrice)
		assert.InDelta(t, 76.50, order.Total, 0.001)
	})

	t.Run("keeps an explicit unit price", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		company := testutil.NewTestCompany()
		user := testutil.NewTestUser(company.ID)
		product := testutil.NewTestProduct()

		m.companies.On("GetByID", mock.Anything, company.ID).Return(company, nil)
		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		m.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)
		m.orders.On("NextNumber", mock.Anything).Return("ORD-000102", nil)
		m.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
		m.audit.On("Create", mock.Anything, mock.Anything).Return(&domain.AuditLog{}, nil)
		m.inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)

		order, err := svc.Create(context.Background(), &domain.OrderInput{
			CompanyID: company.ID,
			UserID:    user.ID,
			Items: []domain.OrderItemInput{
				{ProductID: product.ID, Quantity: 2, UnitPrice: 10},
			},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 10.0, order.Items[0].UnitPrice)
		assert.InDelta(t, 20.0, order.Total, 0.001)
	})

	t.Run("rejects a user from another company", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		company := testutil.NewTestCompany()
		user := testutil.NewTestUser(uuid.New())

		m.companies.On("GetByID", mock.Anything, company.ID).Return(company, nil)
		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		_, err := svc.Create(context.Background(), &domain.OrderInput{
			CompanyID: company.ID,
			UserID:    user.ID,
			Items: []domain.OrderItemInput{
				{ProductID: uuid.New(), Quantity: 1},
			},
		}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		company := testutil.NewTestCompany()
		user := testutil.NewTestUser(company.ID)
		product := testutil.NewTestProduct()
		product.IsActive = false

		m.companies.On("GetByID", mock.Anything, company.ID).Return(company, nil)
		m.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		m.products.On("GetByID", mock.Anything, product.ID).Return(product, nil)
		m.orders.On("NextNumber", mock.Anything).Return("ORD-000103", nil)

		_, err := svc.Create(context.Background(), &domain.OrderInput{
			CompanyID: company.ID,
			UserID:    user.ID,
			Items: []domain.OrderItemInput{
				{ProductID: product.ID, Quantity: 1},
			},
		}, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	transitions := []struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}{
		{"draft to placed", domain.OrderStatusDraft, domain.OrderStatusPlaced, true},
		{"placed to paid", domain.OrderStatusPlaced, domain.OrderStatusPaid, true},
		{"paid to shipped", domain.OrderStatusPaid, domain.OrderStatusShipped, true},
		{"shipped to delivered", domain.OrderStatusShipped, domain.OrderStatusDelivered, true},
		{"placed to cancelled", domain.OrderStatusPlaced, domain.OrderStatusCancelled, true},
		{"shipped to cancelled", domain.OrderStatusShipped, domain.OrderStatusCancelled, false},
		{"delivered to draft", domain.OrderStatusDelivered, domain.OrderStatusDraft, false},
		{"cancelled to placed", domain.OrderStatusCancelled, domain.OrderStatusPlaced, false},
	}

	for _, tt := range transitions {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newOrderServiceUnderTest()

			order := testutil.NewTestOrder(uuid.New(), uuid.New())
			order.Status = tt.from
			m.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)

			if tt.allowed {
				m.orders.On("UpdateStatus", mock.Anything, order.ID, tt.to).Return(nil)
				m.audit.On("Create", mock.Anything, mock.Anything).Return(&domain.AuditLog{}, nil)
				m.inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)
			}

			updated, err := svc.UpdateStatus(context.Background(), order.ID, tt.to, nil)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.IsConflict(err))
			}
		})
	}

	t.Run("rejects an unknown status", func(t *testing.T) {
		svc, _ := newOrderServiceUnderTest()

		_, err := svc.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatus("TELEPORTED"), nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestOrderService_Delete(t *testing.T) {
	t.Run("refuses to delete an in-flight order", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		order := testutil.NewTestOrder(uuid.New(), uuid.New())
		order.Status = domain.OrderStatusShipped
		m.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)

		err := svc.Delete(context.Background(), order.ID, nil)

		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		m.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes a cancelled order", func(t *testing.T) {
		svc, m := newOrderServiceUnderTest()

		order := testutil.NewTestOrder(uuid.New(), uuid.New())
		order.Status = domain.OrderStatusCancelled
		m.orders.On("GetByID", mock.Anything, order.ID).Return(order, nil)
		m.orders.On("Delete", mock.Anything, order.ID).Return(nil)
		m.audit.On("Create", mock.Anything, mock.Anything).Return(&domain.AuditLog{}, nil)
		m.inv.On("InvalidateEntity", mock.Anything, mock.Anything).Return(nil)

		err := svc.Delete(context.Background(), order.ID, nil)

		require.NoError(t, err)
		m.orders.AssertExpectations(t)
	})
}
