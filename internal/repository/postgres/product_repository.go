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

// ProductRepository handles product data operations in PostgreSQL
type ProductRepository struct {
	db *database.PostgresDB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *database.PostgresDB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, sku, name, description, price, category, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		product.ID,
		product.SKU,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// SKUExists checks if a SKU is already in use
func (r *ProductRepository) SKUExists(ctx context.Context, sku string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE lower(sku) = lower($1))`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}

	return exists, nil
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, is_active = $6, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Category,
		product.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete deletes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// ListAll retrieves every product, expanding the requested relations
func (r *ProductRepository) ListAll(ctx context.Context, includes []string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	for _, include := range includes {
		if include == "inventory" {
			if err := r.attachInventory(ctx, products); err != nil {
				return nil, err
			}
		}
	}

	return products, nil
}

// attachInventory loads inventory records for each product in a single query
func (r *ProductRepository) attachInventory(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY warehouse_code`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load product inventory: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[uuid.UUID][]domain.InventoryItem)
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return fmt.Errorf("failed to scan inventory item: %w", err)
		}
		byProduct[item.ProductID] = append(byProduct[item.ProductID], item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load product inventory: %w", err)
	}

	for i := range products {
		products[i].Inventory = byProduct[products[i].ID]
	}

	return nil
}
