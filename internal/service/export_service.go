package service

import (
	"context"
	"net/url"
	"sort"

	"github.com/google/uuid"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/query"
)

// ExportScheduler enqueues a background export job and returns its ID
type ExportScheduler interface {
	ScheduleOrdersExport(ctx context.Context, rawQuery string, requestedBy *uuid.UUID) (uuid.UUID, error)
}

// ExportService prepares order data for CSV export. Small exports are
// streamed inline by the handler; large ones are scheduled as background
// jobs that upload the file to object storage.
type ExportService struct {
	orders    OrderRepository
	scheduler ExportScheduler
	opts      query.Options
}

// NewExportService creates a new export service
func NewExportService(orders OrderRepository, scheduler ExportScheduler, opts query.Options) *ExportService {
	return &ExportService{
		orders:    orders,
		scheduler: scheduler,
		opts:      opts,
	}
}

// FilteredOrders resolves the full, unpaged result set for an export.
// The same filter and sort grammar as the list endpoint applies; page
// and pageSize are ignored.
func (s *ExportService) FilteredOrders(ctx context.Context, params url.Values) ([]domain.Order, error) {
	reg := domain.OrderRegistry()
	req := query.Parse(params, s.opts)

	var errs query.ValidationErrors

	pred, err := query.CompilePredicate(reg, req)
	if err != nil {
		if ve, ok := query.AsValidationErrors(err); ok {
			errs = append(errs, ve...)
		} else {
			return nil, err
		}
	}

	cmp, err := query.CompileSort(reg, req.Sorts)
	if err != nil {
		if ve, ok := query.AsValidationErrors(err); ok {
			errs = append(errs, ve...)
		} else {
			return nil, err
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	all, err := s.orders.ListAll(ctx, []string{"items"})
	if err != nil {
		return nil, err
	}

	matched := all
	if pred != nil {
		matched = make([]domain.Order, 0, len(all))
		for _, order := range all {
			if pred(order) {
				matched = append(matched, order)
			}
		}
	}

	if cmp != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return cmp(matched[i], matched[j]) < 0
		})
	}

	return matched, nil
}

// Schedule enqueues a background export of the filtered orders
func (s *ExportService) Schedule(ctx context.Context, params url.Values, requestedBy *uuid.UUID) (uuid.UUID, error) {
	return s.scheduler.ScheduleOrdersExport(ctx, params.Encode(), requestedBy)
}
