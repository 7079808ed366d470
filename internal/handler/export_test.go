package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/query"
	"github.com/tradecore/tradecore/api/internal/testutil"
)

// MockExportService mocks the export service for testing.
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) FilteredOrders(ctx context.Context, params url.Values) ([]domain.Order, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockExportService) Schedule(ctx context.Context, params url.Values, requestedBy *uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, params, requestedBy)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func setupExportsTestApp(mockSvc *MockExportService) *fiber.App {
	app := fiber.New()
	app.Use(testutil.TestAuthMiddleware(uuid.New(), uuid.New(), domain.UserRoleMember))

	h := NewExportsHandler(mockSvc, zap.NewNop())
	app.Get("/v1/exports/orders", h.DownloadOrders)
	app.Post("/v1/exports/orders", h.ScheduleOrdersExport)

	return app
}

func TestExportsHandler_DownloadOrders(t *testing.T) {
	t.Run("streams filtered orders as CSV", func(t *testing.T) {
		mockSvc := new(MockExportService)
		app := setupExportsTestApp(mockSvc)

		first := testutil.NewTestOrder(uuid.New(), uuid.New())
		second := testutil.NewTestOrder(uuid.New(), uuid.New())
		mockSvc.On("FilteredOrders", mock.Anything, mock.Anything).
			Return([]domain.Order{*first, *second}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/exports/orders?filter[status]=PLACED", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(body)), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "id,number,company_id,user_id,status,total,items,placed_at,created_at", lines[0])
		assert.Contains(t, lines[1], first.Number)

		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 400 for an invalid filter", func(t *testing.T) {
		mockSvc := new(MockExportService)
		app := setupExportsTestApp(mockSvc)

		verrs := query.ValidationErrors{{Field: "bogus", Message: "unknown field"}}
		mockSvc.On("FilteredOrders", mock.Anything, mock.Anything).Return(nil, verrs)

		req := httptest.NewRequest(http.MethodGet, "/v1/exports/orders?filter[bogus]=1", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})
}

func TestExportsHandler_ScheduleOrdersExport(t *testing.T) {
	t.Run("schedules a background export", func(t *testing.T) {
		mockSvc := new(MockExportService)
		app := setupExportsTestApp(mockSvc)

		jobID := uuid.New()
		mockSvc.On("Schedule", mock.Anything, mock.Anything, mock.Anything).Return(jobID, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/exports/orders?filter[status]=DELIVERED", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)

		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, jobID.String(), result["jobId"])
		assert.Equal(t, "scheduled", result["status"])

		mockSvc.AssertExpectations(t)
	})

	t.Run("returns 500 when the queue is unavailable", func(t *testing.T) {
		mockSvc := new(MockExportService)
		app := setupExportsTestApp(mockSvc)

		mockSvc.On("Schedule", mock.Anything, mock.Anything, mock.Anything).Return(uuid.Nil, assert.AnError)

		req := httptest.NewRequest(http.MethodPost, "/v1/exports/orders", nil)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		mockSvc.AssertExpectations(t)
	})
}
