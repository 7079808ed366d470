package worker

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/service"
)

// TypeOrdersExport is the task type for background order exports
const TypeOrdersExport = "export:orders"

// OrdersExportPayload is the payload for order export tasks
type OrdersExportPayload struct {
	JobID       uuid.UUID  `json:"job_id"`
	RawQuery    string     `json:"raw_query"`
	RequestedBy *uuid.UUID `json:"requested_by,omitempty"`
}

// NewOrdersExportTask creates an order export task
func NewOrdersExportTask(payload *OrdersExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeOrdersExport, data, asynq.MaxRetry(3), asynq.Timeout(30*time.Minute)), nil
}

// ExportWorker renders filtered orders to CSV and uploads the file to
// object storage
type ExportWorker struct {
	logger      *zap.Logger
	exports     *service.ExportService
	minioClient *minio.Client
	bucket      string
}

// NewExportWorker creates a new export worker
func NewExportWorker(logger *zap.Logger, exports *service.ExportService, minioClient *minio.Client, bucket string) *ExportWorker {
	return &ExportWorker{
		logger:      logger,
		exports:     exports,
		minioClient: minioClient,
		bucket:      bucket,
	}
}

// ProcessTask processes an order export task
func (w *ExportWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload OrdersExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal export payload: %w", err)
	}

	w.logger.Info("processing order export",
		zap.String("job_id", payload.JobID.String()),
	)

	params, err := url.ParseQuery(payload.RawQuery)
	if err != nil {
		return fmt.Errorf("failed to parse export filter: %w", err)
	}

	orders, err := w.exports.FilteredOrders(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to resolve orders for export: %w", err)
	}

	data, err := OrdersToCSV(orders)
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	path := fmt.Sprintf("exports/orders/%s_%s.csv",
		time.Now().Format("20060102_150405"), payload.JobID.String()[:8])

	reader := bytes.NewReader(data)
	_, err = w.minioClient.PutObject(ctx, w.bucket, path, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}

	w.logger.Info("order export completed",
		zap.String("job_id", payload.JobID.String()),
		zap.String("path", path),
		zap.Int("orders", len(orders)),
		zap.Int("size", len(data)),
	)

	return nil
}

// OrdersToCSV renders orders in the export column layout
func OrdersToCSV(orders []domain.Order) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(OrderCSVHeader()); err != nil {
		return nil, err
	}

	for _, order := range orders {
		if err := writer.Write(OrderCSVRow(order)); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// OrderCSVHeader returns the export column names
func OrderCSVHeader() []string {
	return []string{"id", "number", "company_id", "user_id", "status", "total", "items", "placed_at", "created_at"}
}

// OrderCSVRow renders one order as an export row
func OrderCSVRow(order domain.Order) []string {
	return []string{
		order.ID.String(),
		order.Number,
		order.CompanyID.String(),
		order.UserID.String(),
		string(order.Status),
		strconv.FormatFloat(order.Total, 'f', 2, 64),
		strconv.Itoa(len(order.Items)),
		order.PlacedAt.Format(time.RFC3339),
		order.CreatedAt.Format(time.RFC3339),
	}
}
