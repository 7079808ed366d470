package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/pkg/database"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
)

// OrderRepository defines order persistence operations
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	NextNumber(ctx context.Context) (string, error)
	ListAll(ctx context.Context, includes []string) ([]domain.Order, error)
}

// OrderService handles order operations
type OrderService struct {
	repo        OrderRepository
	companyRepo CompanyRepository
	userRepo    UserRepository
	productRepo ProductRepository
	audit       *AuditService
	invalidator CacheInvalidator
	lister      *Lister[domain.Order]
}

// NewOrderService creates a new order service
func NewOrderService(
	repo OrderRepository,
	companyRepo CompanyRepository,
	userRepo UserRepository,
	productRepo ProductRepository,
	audit *AuditService,
	invalidator CacheInvalidator,
	cache *database.Cache,
	opts query.Options,
) *OrderService {
	return &OrderService{
		repo:        repo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		productRepo: productRepo,
		audit:       audit,
		invalidator: invalidator,
		lister:      NewLister(domain.OrderRegistry(), query.SourceFunc[domain.Order](repo.ListAll), cache, opts),
	}
}

var orderCacheScope = []string{domain.EntityOrders}

// statusTransitions is the set of legal order lifecycle moves.
var statusTransitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusDraft:     {domain.OrderStatusPlaced, domain.OrderStatusCancelled},
	domain.OrderStatusPlaced:    {domain.OrderStatusPaid, domain.OrderStatusCancelled},
	domain.OrderStatusPaid:      {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:   {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered: {},
	domain.OrderStatusCancelled: {},
}

func canTransition(from, to domain.OrderStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// List runs a registry-driven query over orders
func (s *OrderService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Order], error) {
	return s.lister.List(ctx, params)
}

// Get retrieves an order by ID including its items
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// Create places a new order, pricing each line against the catalog
func (s *OrderService) Create(ctx context.Context, input *domain.OrderInput, actorID *uuid.UUID) (*domain.Order, error) {
	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.CompanyID != input.CompanyID {
		return nil, apperrors.Validation("user does not belong to the ordering company")
	}

	number, err := s.repo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	orderID := uuid.New()

	var total float64
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, apperrors.Validation(fmt.Sprintf("product %s is not orderable", product.SKU))
		}

		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.Price
		}

		item := domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		}
		total += item.LineTotal()
		items = append(items, item)
	}

	order := &domain.Order{
		ID:        orderID,
		CompanyID: input.CompanyID,
		UserID:    input.UserID,
		Number:    number,
		Status:    domain.OrderStatusPlaced,
		Total:     total,
		PlacedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityOrders,
		EntityID: order.ID,
		Action:   domain.AuditActionCreate,
		ActorID:  actorID,
		Metadata: map[string]string{"number": order.Number},
	})
	invalidateAll(ctx, s.invalidator, orderCacheScope...)

	return order, nil
}

// UpdateStatus transitions an order through its lifecycle
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, actorID *uuid.UUID) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid status: %s", status))
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canTransition(order.Status, status) {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot transition order from %s to %s", order.Status, status))
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = time.Now()

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityOrders,
		EntityID: id,
		Action:   domain.AuditActionUpdate,
		ActorID:  actorID,
		Metadata: map[string]string{"status": string(status)},
	})
	invalidateAll(ctx, s.invalidator, orderCacheScope...)

	return order, nil
}

// Delete deletes an order and its items
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Only terminal or draft orders may be removed.
	if order.Status != domain.OrderStatusDraft &&
		order.Status != domain.OrderStatusCancelled &&
		order.Status != domain.OrderStatusDelivered {
		return apperrors.Conflict(fmt.Sprintf("cannot delete order in status %s", order.Status))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityOrders,
		EntityID: id,
		Action:   domain.AuditActionDelete,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, orderCacheScope...)

	return nil
}
