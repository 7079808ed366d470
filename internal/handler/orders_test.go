package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/testutil"
)

// MockOrderService mocks the order service for testing.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Order], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*query.PagedResult[domain.Order]), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, input *domain.OrderInput, actorID *uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, actorID *uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id, status, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func setupOrdersTestApp(mockSvc *MockOrderService) *fiber.App {
	app := fiber.New()
	app.Use(testutil.TestAuthMiddleware(uuid.New(), uuid.New(), domain.UserRoleMember))

	h := NewOrdersHandler(mockSvc, zap.NewNop())
	app.Get("/v1/orders", h.ListOrders)
	app.Get("/v1/orders/:orderId", h.GetOrder)
	app.Post("/v1/orders", h.CreateOrder)
	app.Patch("/v1/orders/:orderId/status", h.UpdateOrderStatus)
	app.Delete("/v1/orders/:orderId", h.DeleteOrder)

	return app
}

func TestOrdersHandler_ListOrders(t *testing.T) {
	t.Run("successfully lists orders with includes", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		order := testutil.NewTestOrder(uuid.New(), uuid.New())
		result := &query.PagedResult[domain.Order]{
			Items:      []domain.Order{*order},
			TotalCount: 1,
			Page:       1,
			PageSize:   20,
		}
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(params url.Values) bool {
			return params.Get("include") == "items"
		})).Return(result, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/orders?include=items&filter[status]=PLACED", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got query.PagedResult[domain.Order]
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		require.Len(t, got.Items, 1)
		assert.Len(t, got.Items[0].Items, 1)

		mockSvc.AssertExpectations(t)
	})
}

func TestOrdersHandler_CreateOrder(t *testing.T) {
	t.Run("successfully creates order", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		companyID := uuid.New()
		userID := uuid.New()
		productID := uuid.New()
		order := testutil.NewTestOrder(companyID, userID)

		mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(input *domain.OrderInput) bool {
			return input.CompanyID == companyID && len(input.Items) == 1 && input.Items[0].Quantity == 2
		}), mock.Anything).Return(order, nil)

		body, _ := json.Marshal(map[string]any{
			"companyId": companyID.String(),
			"userId":    userID.String(),
			"items": []map[string]any{
				{"productId": productID.String(), "quantity": 2},
			},
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 400 for an order without lines", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		body, _ := json.Marshal(map[string]any{
			"companyId": uuid.New().String(),
			"userId":    uuid.New().String(),
			"items":     []map[string]any{},
		})
		req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestOrdersHandler_UpdateOrderStatus(t *testing.T) {
	t.Run("successfully advances status", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		order := testutil.NewTestOrder(uuid.New(), uuid.New())
		order.Status = domain.OrderStatusPaid
		mockSvc.On("UpdateStatus", mock.Anything, order.ID, domain.OrderStatusPaid, mock.Anything).Return(order, nil)

		body, _ := json.Marshal(map[string]any{"status": "PAID"})
		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/"+order.ID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var got domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, domain.OrderStatusPaid, got.Status)

		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 400 for unknown status", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		body, _ := json.Marshal(map[string]any{"status": "TELEPORTED"})
		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/"+uuid.New().String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("returns 409 for an illegal transition", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		orderID := uuid.New()
		mockSvc.On("UpdateStatus", mock.Anything, orderID, domain.OrderStatusDraft, mock.Anything).
			Return(nil, apperrors.Conflict("cannot move order from DELIVERED to DRAFT"))

		body, _ := json.Marshal(map[string]any{"status": "DRAFT"})
		req := httptest.NewRequest(http.MethodPatch, "/v1/orders/"+orderID.String()+"/status", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})
}

func TestOrdersHandler_DeleteOrder(t *testing.T) {
	t.Run("returns 409 for an order still in flight", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		orderID := uuid.New()
		mockSvc.On("Delete", mock.Anything, orderID, mock.Anything).
			Return(apperrors.Conflict("only draft, cancelled or delivered orders can be deleted"))

		req := httptest.NewRequest(http.MethodDelete, "/v1/orders/"+orderID.String(), nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})

	t.Run("successfully deletes a delivered order", func(t *testing.T) {
		mockSvc := new(MockOrderService)
		app := setupOrdersTestApp(mockSvc)

		orderID := uuid.New()
		mockSvc.On("Delete", mock.Anything, orderID, mock.Anything).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/orders/"+orderID.String(), nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})
}
