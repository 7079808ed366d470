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

// InventoryRepository defines inventory persistence operations
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error)
	Exists(ctx context.Context, productID uuid.UUID, warehouseCode string) (bool, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, includes []string) ([]domain.InventoryItem, error)
}

// InventoryService handles warehouse stock operations
type InventoryService struct {
	repo        InventoryRepository
	productRepo ProductRepository
	audit       *AuditService
	invalidator CacheInvalidator
	lister      *Lister[domain.InventoryItem]
}

// NewInventoryService creates a new inventory service
func NewInventoryService(repo InventoryRepository, productRepo ProductRepository, audit *AuditService, invalidator CacheInvalidator, cache *database.Cache, opts query.Options) *InventoryService {
	return &InventoryService{
		repo:        repo,
		productRepo: productRepo,
		audit:       audit,
		invalidator: invalidator,
		lister:      NewLister(domain.InventoryRegistry(), query.SourceFunc[domain.InventoryItem](repo.ListAll), cache, opts),
	}
}

// inventoryCacheScope names every entity whose cached listings an
// inventory write can stale: products may embed inventory via includes.
var inventoryCacheScope = []string{domain.EntityInventory, domain.EntityProducts}

// List runs a registry-driven query over inventory records
func (s *InventoryService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.InventoryItem], error) {
	return s.lister.List(ctx, params)
}

// Get retrieves an inventory record by ID
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a stock record for a product in a warehouse
func (s *InventoryService) Create(ctx context.Context, input *domain.InventoryInput, actorID *uuid.UUID) (*domain.InventoryItem, error) {
	if _, err := s.productRepo.GetByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if input.Reserved > input.Quantity {
		return nil, apperrors.Validation("reserved cannot exceed quantity")
	}

	exists, err := s.repo.Exists(ctx, input.ProductID, input.WarehouseCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check inventory item: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("inventory record already exists for this product and warehouse")
	}

	item := &domain.InventoryItem{
		ID:            uuid.New(),
		ProductID:     input.ProductID,
		WarehouseCode: input.WarehouseCode,
		Quantity:      input.Quantity,
		Reserved:      input.Reserved,
		UpdatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityInventory,
		EntityID: item.ID,
		Action:   domain.AuditActionCreate,
		ActorID:  actorID,
		Metadata: map[string]string{"warehouse": item.WarehouseCode},
	})
	invalidateAll(ctx, s.invalidator, inventoryCacheScope...)

	return item, nil
}

// Update adjusts quantities on an inventory record
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, input *domain.InventoryUpdateInput, actorID *uuid.UUID) (*domain.InventoryItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Reserved != nil {
		item.Reserved = *input.Reserved
	}
	if item.Reserved > item.Quantity {
		return nil, apperrors.Validation("reserved cannot exceed quantity")
	}

	item.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityInventory,
		EntityID: item.ID,
		Action:   domain.AuditActionUpdate,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, inventoryCacheScope...)

	return item, nil
}

// Delete deletes an inventory record
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityInventory,
		EntityID: id,
		Action:   domain.AuditActionDelete,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, inventoryCacheScope...)

	return nil
}
