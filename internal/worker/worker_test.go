package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/config"
	"github.com/tradecore/tradecore/api/internal/domain"
)

func TestNewTaskScheduler_QueueNames(t *testing.T) {
	t.Run("targets the configured queues", func(t *testing.T) {
		s := NewTaskScheduler(nil, config.WorkerConfig{
			QueueCritical: "tc-critical",
			QueueLow:      "tc-low",
		})
		assert.Equal(t, "tc-critical", s.queueCritical)
		assert.Equal(t, "tc-low", s.queueLow)
	})

	t.Run("falls back to the stock queues", func(t *testing.T) {
		s := NewTaskScheduler(nil, config.WorkerConfig{})
		assert.Equal(t, "critical", s.queueCritical)
		assert.Equal(t, "low", s.queueLow)
	})
}

func TestNewCacheInvalidationTask(t *testing.T) {
	task, err := NewCacheInvalidationTask(&CacheInvalidationPayload{Entity: "orders"})
	require.NoError(t, err)
	assert.Equal(t, TypeCacheInvalidation, task.Type())

	var payload CacheInvalidationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "orders", payload.Entity)
}

func TestNewOrdersExportTask(t *testing.T) {
	requestedBy := uuid.New()
	jobID := uuid.New()

	task, err := NewOrdersExportTask(&OrdersExportPayload{
		JobID:       jobID,
		RawQuery:    "filter%5Bstatus%5D=PLACED&sort=-placedAt",
		RequestedBy: &requestedBy,
	})
	require.NoError(t, err)
	assert.Equal(t, TypeOrdersExport, task.Type())

	var payload OrdersExportPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, jobID, payload.JobID)
	require.NotNil(t, payload.RequestedBy)
	assert.Equal(t, requestedBy, *payload.RequestedBy)
}

func TestNewAuditPruneTask(t *testing.T) {
	task, err := NewAuditPruneTask(&AuditPrunePayload{RetentionDays: 30})
	require.NoError(t, err)
	assert.Equal(t, TypeAuditPrune, task.Type())

	var payload AuditPrunePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, 30, payload.RetentionDays)
}

// mockAuditPruner records the cutoff passed to DeleteBefore.
type mockAuditPruner struct {
	mock.Mock
}

func (m *mockAuditPruner) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

func TestAuditWorker_ProcessTask(t *testing.T) {
	t.Run("prunes entries older than the retention window", func(t *testing.T) {
		pruner := new(mockAuditPruner)
		worker := NewAuditWorker(zap.NewNop(), pruner)

		pruner.On("DeleteBefore", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
			expected := time.Now().AddDate(0, 0, -30)
			return before.Sub(expected).Abs() < time.Minute
		})).Return(int64(12), nil)

		task, err := NewAuditPruneTask(&AuditPrunePayload{RetentionDays: 30})
		require.NoError(t, err)

		require.NoError(t, worker.ProcessTask(context.Background(), task))
		pruner.AssertExpectations(t)
	})

	t.Run("falls back to 90 days when retention is unset", func(t *testing.T) {
		pruner := new(mockAuditPruner)
		worker := NewAuditWorker(zap.NewNop(), pruner)

		pruner.On("DeleteBefore", mock.Anything, mock.MatchedBy(func(before time.Time) bool {
			expected := time.Now().AddDate(0, 0, -90)
			return before.Sub(expected).Abs() < time.Minute
		})).Return(int64(0), nil)

		task, err := NewAuditPruneTask(&AuditPrunePayload{})
		require.NoError(t, err)

		require.NoError(t, worker.ProcessTask(context.Background(), task))
		pruner.AssertExpectations(t)
	})

	t.Run("fails on a malformed payload", func(t *testing.T) {
		worker := NewAuditWorker(zap.NewNop(), new(mockAuditPruner))

		task := asynq.NewTask(TypeAuditPrune, []byte("{not json"))
		assert.Error(t, worker.ProcessTask(context.Background(), task))
	})
}

func TestOrdersToCSV(t *testing.T) {
	orderID := uuid.New()
	order := domain.Order{
		ID:        orderID,
		CompanyID: uuid.New(),
		UserID:    uuid.New(),
		Number:    "ORD-000007",
		Status:    domain.OrderStatusShipped,
		Total:     149.5,
		PlacedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: uuid.New(), Quantity: 1, UnitPrice: 149.5},
		},
	}

	data, err := OrdersToCSV([]domain.Order{order})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, OrderCSVHeader(), records[0])
	row := records[1]
	assert.Equal(t, order.ID.String(), row[0])
	assert.Equal(t, "ORD-000007", row[1])
	assert.Equal(t, "SHIPPED", row[4])
	assert.Equal(t, "149.50", row[5])
	assert.Equal(t, "1", row[6])
	assert.Equal(t, "2025-06-01T12:00:00Z", row[7])
}

func TestOrdersToCSV_Empty(t *testing.T) {
	data, err := OrdersToCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OrderCSVHeader(), records[0])
}
