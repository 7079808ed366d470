package handler

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/middleware"
	"github.com/tradecore/tradecore/api/internal/worker"
)

// ExportService defines the export operations the handler needs
type ExportService interface {
	FilteredOrders(ctx context.Context, params url.Values) ([]domain.Order, error)
	Schedule(ctx context.Context, params url.Values, requestedBy *uuid.UUID) (uuid.UUID, error)
}

// ExportsHandler handles order export endpoints
type ExportsHandler struct {
	exports ExportService
	logger  *zap.Logger
}

// NewExportsHandler creates a new exports handler
func NewExportsHandler(exports ExportService, logger *zap.Logger) *ExportsHandler {
	return &ExportsHandler{
		exports: exports,
		logger:  logger,
	}
}

// DownloadOrders handles GET /v1/exports/orders. The filter syntax is the
// same as the order listing; the result is unpaged CSV streamed to the
// client.
func (h *ExportsHandler) DownloadOrders(c *fiber.Ctx) error {
	orders, err := h.exports.FilteredOrders(c.Context(), queryParams(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to export orders")
	}

	filename := fmt.Sprintf("orders_%s.csv", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		writer := csv.NewWriter(w)

		if err := writer.Write(worker.OrderCSVHeader()); err != nil {
			h.logger.Warn("order export stream aborted", zap.Error(err))
			return
		}

		for i := range orders {
			if err := writer.Write(worker.OrderCSVRow(orders[i])); err != nil {
				h.logger.Warn("order export stream aborted", zap.Error(err))
				return
			}
			// Flush periodically so large exports stream instead of buffering
			if i%500 == 499 {
				writer.Flush()
				if err := w.Flush(); err != nil {
					return
				}
			}
		}

		writer.Flush()
	})

	return nil
}

// ScheduleOrdersExport handles POST /v1/exports/orders. The export runs in
// the background and lands in object storage.
func (h *ExportsHandler) ScheduleOrdersExport(c *fiber.Ctx) error {
	jobID, err := h.exports.Schedule(c.Context(), queryParams(c), middleware.ActorID(c))
	if err != nil {
		return respondError(c, h.logger, err, "Failed to schedule order export")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"jobId":  jobID,
		"status": "scheduled",
	})
}

// RegisterRoutes registers export routes
func (h *ExportsHandler) RegisterRoutes(app *fiber.App, auth *middleware.AuthMiddleware) {
	v1 := app.Group("/v1", auth.RequireAuth())

	v1.Get("/exports/orders", h.DownloadOrders)
	v1.Post("/exports/orders", auth.RequireRole(domain.UserRoleMember), h.ScheduleOrdersExport)
}
