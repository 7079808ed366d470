package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tradecore/tradecore/api/internal/domain"
	"github.com/tradecore/tradecore/api/internal/pkg/database"
	apperrors "github.com/tradecore/tradecore/api/internal/pkg/errors"
)

// CompanyRepository handles company data operations in PostgreSQL
type CompanyRepository struct {
	db *database.PostgresDB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *database.PostgresDB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

const companyColumns = `id, name, industry, email, is_active, employee_count, created_at, updated_at`

func scanCompany(row pgx.Row) (domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Industry,
		&c.Email,
		&c.IsActive,
		&c.EmployeeCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// Create creates a new company
func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (id, name, industry, email, is_active, employee_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Industry,
		company.Email,
		company.IsActive,
		company.EmployeeCount,
		company.CreatedAt,
		company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetByID retrieves a company by ID
func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`

	company, err := scanCompany(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("company")
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return &company, nil
}

// Update updates a company
func (r *CompanyRepository) Update(ctx context.Context, company *domain.Company) error {
	query := `
		UPDATE companies
		SET name = $2, industry = $3, email = $4, is_active = $5, employee_count = $6, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.Industry,
		company.Email,
		company.IsActive,
		company.EmployeeCount,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	return nil
}

// Delete deletes a company
func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	return nil
}

// NameExists checks if a company name is already taken
func (r *CompanyRepository) NameExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM companies WHERE lower(name) = lower($1))`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check company name: %w", err)
	}

	return exists, nil
}

// ListAll retrieves every company, expanding the requested relations
func (r *CompanyRepository) ListAll(ctx context.Context, includes []string) ([]domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	for _, include := range includes {
		if include == "users" {
			if err := r.attachUsers(ctx, companies); err != nil {
				return nil, err
			}
		}
	}

	return companies, nil
}

// attachUsers loads users for each company in a single query
func (r *CompanyRepository) attachUsers(ctx context.Context, companies []domain.Company) error {
	if len(companies) == 0 {
		return nil
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load company users: %w", err)
	}
	defer rows.Close()

	byCompany := make(map[uuid.UUID][]domain.User)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		byCompany[user.CompanyID] = append(byCompany[user.CompanyID], user)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load company users: %w", err)
	}

	for i := range companies {
		companies[i].Users = byCompany[companies[i].ID]
	}

	return nil
}
