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

// InventoryRepository handles inventory data operations in PostgreSQL
type InventoryRepository struct {
	db *database.PostgresDB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *database.PostgresDB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const inventoryColumns = `id, product_id, warehouse_code, quantity, reserved, updated_at`

func scanInventoryItem(row pgx.Row) (domain.InventoryItem, error) {
	var i domain.InventoryItem
	err := row.Scan(
		&i.ID,
		&i.ProductID,
		&i.WarehouseCode,
		&i.Quantity,
		&i.Reserved,
		&i.UpdatedAt,
	)
	return i, err
}

// Create creates a new inventory record
func (r *InventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (id, product_id, warehouse_code, quantity, reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		item.ID,
		item.ProductID,
		item.WarehouseCode,
		item.Quantity,
		item.Reserved,
		item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	return nil
}

// GetByID retrieves an inventory record by ID
func (r *InventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = $1`

	item, err := scanInventoryItem(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return &item, nil
}

// Exists checks if a product already has a record for a warehouse
func (r *InventoryRepository) Exists(ctx context.Context, productID uuid.UUID, warehouseCode string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE product_id = $1 AND warehouse_code = $2)`

	var exists bool
	err := r.db.Pool.QueryRow(ctx, query, productID, warehouseCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory item: %w", err)
	}

	return exists, nil
}

// Update updates an inventory record
func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items
		SET quantity = $2, reserved = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Pool.Exec(ctx, query, item.ID, item.Quantity, item.Reserved)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	return nil
}

// Delete deletes an inventory record
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM inventory_items WHERE id = $1`

	_, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	return nil
}

// ListAll retrieves every inventory record, expanding the requested relations
func (r *InventoryRepository) ListAll(ctx context.Context, includes []string) ([]domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY warehouse_code, product_id`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	for _, include := range includes {
		if include == "product" {
			if err := r.attachProducts(ctx, items); err != nil {
				return nil, err
			}
		}
	}

	return items, nil
}

// attachProducts loads the product for each inventory record in a single query
func (r *InventoryRepository) attachProducts(ctx context.Context, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `SELECT ` + productColumns + ` FROM products`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load inventory products: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		byID[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load inventory products: %w", err)
	}

	for i := range items {
		if product, ok := byID[items[i].ProductID]; ok {
			p := product
			items[i].Product = &p
		}
	}

	return nil
}
