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

// ProductRepository defines product persistence operations
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, includes []string) ([]domain.Product, error)
}

// ProductService handles product catalog operations
type ProductService struct {
	repo        ProductRepository
	audit       *AuditService
	invalidator CacheInvalidator
	lister      *Lister[domain.Product]
}

// NewProductService creates a new product service
func NewProductService(repo ProductRepository, audit *AuditService, invalidator CacheInvalidator, cache *database.Cache, opts query.Options) *ProductService {
	return &ProductService{
		repo:        repo,
		audit:       audit,
		invalidator: invalidator,
		lister:      NewLister(domain.ProductRegistry(), query.SourceFunc[domain.Product](repo.ListAll), cache, opts),
	}
}

// productCacheScope names every entity whose cached listings a product
// write can stale: inventory records may embed the product via includes.
var productCacheScope = []string{domain.EntityProducts, domain.EntityInventory}

// List runs a registry-driven query over products
func (s *ProductService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Product], error) {
	return s.lister.List(ctx, params)
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, input *domain.ProductInput, actorID *uuid.UUID) (*domain.Product, error) {
	if !input.Category.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid category: %s", input.Category))
	}

	exists, err := s.repo.SKUExists(ctx, input.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check sku: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("sku already in use")
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		SKU:         input.SKU,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityProducts,
		EntityID: product.ID,
		Action:   domain.AuditActionCreate,
		ActorID:  actorID,
		Metadata: map[string]string{"sku": product.SKU},
	})
	invalidateAll(ctx, s.invalidator, productCacheScope...)

	return product, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input *domain.ProductUpdateInput, actorID *uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.Validation("price must not be negative")
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid category: %s", *input.Category))
		}
		product.Category = *input.Category
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityProducts,
		EntityID: product.ID,
		Action:   domain.AuditActionUpdate,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, productCacheScope...)

	return product, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityProducts,
		EntityID: id,
		Action:   domain.AuditActionDelete,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, productCacheScope...)

	return nil
}
