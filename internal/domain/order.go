package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a customer order
type Order struct {
	ID        uuid.UUID   `json:"id"`
	CompanyID uuid.UUID   `json:"companyId"`
	UserID    uuid.UUID   `json:"userId"`
	Number    string      `json:"number"`
	Status    OrderStatus `json:"status"`
	Total     float64     `json:"total"`
	PlacedAt  time.Time   `json:"placedAt"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`

	// Related data (populated on include)
	Items    []OrderItem `json:"items,omitempty"`
	Customer *Company    `json:"customer,omitempty"`
}

// OrderItem is a single line of an order
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
}

// LineTotal returns the extended price of the line
func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}

// OrderInput represents input for creating an order
type OrderInput struct {
	CompanyID uuid.UUID        `json:"companyId" validate:"required"`
	UserID    uuid.UUID        `json:"userId" validate:"required"`
	Items     []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderItemInput is one requested line of a new order
type OrderItemInput struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	UnitPrice float64   `json:"unitPrice" validate:"gte=0"`
}

// OrderUpdateInput represents input for updating an order
type OrderUpdateInput struct {
	Status *OrderStatus `json:"status,omitempty"`
}
