package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/pkg/database"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
	"github.com/tradecore/tradecore/api/internal/query"
)

// UserRepository defines user persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context, includes []string) ([]domain.User, error)
}

// UserService handles user operations
type UserService struct {
	repo        UserRepository
	companyRepo CompanyRepository
	audit       *AuditService
	invalidator CacheInvalidator
	lister      *Lister[domain.User]
}

// NewUserService creates a new user service
func NewUserService(repo UserRepository, companyRepo CompanyRepository, audit *AuditService, invalidator CacheInvalidator, cache *database.Cache, opts query.Options) *UserService {
	return &UserService{
		repo:        repo,
		companyRepo: companyRepo,
		audit:       audit,
		invalidator: invalidator,
		lister:      NewLister(domain.UserRegistry(), query.SourceFunc[domain.User](repo.ListAll), cache, opts),
	}
}

// userCacheScope names every entity whose cached listings a user write
// can stale: companies may embed users via includes.
var userCacheScope = []string{domain.EntityUsers, domain.EntityCompanies}

// List runs a registry-driven query over users
func (s *UserService) List(ctx context.Context, params url.Values) (*query.PagedResult[domain.User], error) {
	return s.lister.List(ctx, params)
}

// Get retrieves a user by ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create creates a new user with a hashed password
func (s *UserService) Create(ctx context.Context, input *domain.UserInput, actorID *uuid.UUID) (*domain.User, error) {
	if !input.Role.IsValid() {
		return nil, apperrors.Validation(fmt.Sprintf("invalid role: %s", input.Role))
	}

	// The owning company must exist.
	if _, err := s.companyRepo.GetByID(ctx, input.CompanyID); err != nil {
		return nil, err
	}

	exists, err := s.repo.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		CompanyID:    input.CompanyID,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityUsers,
		EntityID: user.ID,
		Action:   domain.AuditActionCreate,
		ActorID:  actorID,
		Metadata: map[string]string{"email": user.Email},
	})
	invalidateAll(ctx, s.invalidator, userCacheScope...)

	return user, nil
}

// Update updates a user
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input *domain.UserUpdateInput, actorID *uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		exists, err := s.repo.EmailExists(ctx, *input.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return nil, apperrors.Validation(fmt.Sprintf("invalid role: %s", *input.Role))
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityUsers,
		EntityID: user.ID,
		Action:   domain.AuditActionUpdate,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, userCacheScope...)

	return user, nil
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.audit.Record(ctx, &domain.AuditLogInput{
		Entity:   domain.EntityUsers,
		EntityID: id,
		Action:   domain.AuditActionDelete,
		ActorID:  actorID,
	})
	invalidateAll(ctx, s.invalidator, userCacheScope...)

	return nil
}

// VerifyPassword checks a user's credentials and returns the user on success
func (s *UserService) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperrors.Unauthorized("account disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return user, nil
}
