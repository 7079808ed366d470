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

// OrderRepository handles order data operations in PostgreSQL
type OrderRepository struct {
	db *database.PostgresDB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *database.PostgresDB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, company_id, user_id, number, status, total, placed_at, created_at, updated_at`

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.ID,
		&o.CompanyID,
		&o.UserID,
		&o.Number,
		&o.Status,
		&o.Total,
		&o.PlacedAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}

// Create creates an order with its items in a single transaction
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO orders (id, company_id, user_id, number, status, total, placed_at, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`

		_, err := tx.Exec(ctx, query,
			order.ID,
			order.CompanyID,
			order.UserID,
			order.Number,
			order.Status,
			order.Total,
			order.PlacedAt,
			order.CreatedAt,
			order.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		itemQuery := `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)
		`

		for _, item := range order.Items {
			if _, err := tx.Exec(ctx, itemQuery,
				item.ID,
				item.OrderID,
				item.ProductID,
				item.Quantity,
				item.UnitPrice,
			); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		return nil
	})
}

// GetByID retrieves an order by ID including its items
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// UpdateStatus transitions an order to a new status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("order")
	}

	return nil
}

// Delete deletes an order and its items
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// NextNumber allocates the next order number from a sequence
func (r *OrderRepository) NextNumber(ctx context.Context) (string, error) {
	var seq int64
	err := r.db.Pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq)
	if err != nil {
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}

	return fmt.Sprintf("ORD-%06d", seq), nil
}

// ListAll retrieves every order, expanding the requested relations
func (r *OrderRepository) ListAll(ctx context.Context, includes []string) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for _, include := range includes {
		switch include {
		case "items":
			if err := r.attachItems(ctx, orders); err != nil {
				return nil, err
			}
		case "customer":
			if err := r.attachCustomers(ctx, orders); err != nil {
				return nil, err
			}
		}
	}

	return orders, nil
}

func (r *OrderRepository) listItems(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
	`

	rows, err := r.db.Pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// attachItems loads line items for each order in a single query
func (r *OrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	query := `SELECT id, order_id, product_id, quantity, unit_price FROM order_items`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return nil
}

// attachCustomers loads the ordering company for each order in a single query
func (r *OrderRepository) attachCustomers(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	query := `SELECT ` + companyColumns + ` FROM companies`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load order customers: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]domain.Company)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return fmt.Errorf("failed to scan company: %w", err)
		}
		byID[company.ID] = company
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load order customers: %w", err)
	}

	for i := range orders {
		if company, ok := byID[orders[i].CompanyID]; ok {
			c := company
			orders[i].Customer = &c
		}
	}

	return nil
}
