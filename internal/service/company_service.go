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

// CompanyRepository defines company persistence operations
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	NameExists(ctx context.Context, name string) (bool, error)
	ListAll(ctx context.Context, includes []string) ([]domain.Company, error)
}

// CompanyService handles company operations
type CompanyService struct {
	repo        CompanyRepository
	audit       *AuditService
	invalidator CacheInvalidator
	lister      *Lister[domain.Company]
}

// NewCompanyService creates a new company service
func NewCompanyService(repo CompanyRepository, audit *AuditService, invalidator CacheInvalidator, cache *database.Cache, opts query.Options) *CompanyService {
	return &CompanyService{
		repo:        repo,
		audit:       audit,
		invalidator: invalidator,
		lister:      NewLister(domain.CompanyRegistry(), query.SourceFunc[domain.Company](repo.ListAll), cache, opts),
	}
}

// companyCacheScope names every entity whose cached listings a company
// write can stale: users and orders may embed the company via includes.
var companyCacheScope = []string{domain.EntityCompanies, domain.EntityUsers, domain.EntityOrders}

// List runs a registry-driven query over companies
func (s *CompanyService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.Company], error) {
	return s.lister.List(ctx, params)
}

// Get retrieves a company by ID
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	return s.repo.GetByID(ctx, id)
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, input *domain.CompanyInput, actorID *uuid.UUID) (*domain.Company, error) {
	if !input.Industry.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid industry: %s", input.Industry))
	}

	exists, err := s.repo.NameExists(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check company name: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("company name already taken")
	}

	now := time.Now()
	company := &domain.Company{
		ID:            uuid.New(),
		Name:          input.Name,
		Industry:      input.Industry,
		Email:         input.Email,
		IsActive:      true,
		EmployeeCount: input.EmployeeCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityCompanies,
		EntityID: company.ID,
		Action:   domain.AuditActionCreate,
		ActorID:  actorID,
		Metadata: map[string]string{"name": company.Name},
	})
	invalidateAll(ctx, s.invalidator, companyCacheScope...)

	return company, nil
}

// Update updates a company
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, input *domain.CompanyUpdateInput, actorID *uuid.UUID) (*domain.Company, error) {
	company, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && *input.Name != company.Name {
		exists, err := s.repo.NameExists(ctx, *input.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check company name: %w", err)
		}
		if exists {
			return nil, apperrors.Conflict("company name already taken")
		}
		company.Name = *input.Name
	}
	if input.Industry != nil {
		if !input.Industry.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid industry: %s", *input.Industry))
		}
		company.Industry = *input.Industry
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}
	if input.EmployeeCount != nil {
		company.EmployeeCount = *input.EmployeeCount
	}

	company.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityCompanies,
		EntityID: company.ID,
		Action:   domain.AuditActionUpdate,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, companyCacheScope...)

	return company, nil
}

// Delete deletes a company
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityCompanies,
		EntityID: id,
		Action:   domain.AuditActionDelete,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, companyCacheScope...)

	return nil
}
