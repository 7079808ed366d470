package domain

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem represents the stock of one product in one warehouse
type InventoryItem struct {
	ID            uuid.UUID `json:"id"`
	ProductID     uuid.UUID `json:"productId"`
	WarehouseCode string    `json:"warehouseCode"`
	Quantity      int       `json:"quantity"`
	Reserved      int       `json:"reserved"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Related data (populated on include)
	Product *Product `json:"product,omitempty"`
}

// Available returns the quantity not held by reservations
func (i *InventoryItem) Available() int {
	return i.Quantity - i.Reserved
}

// InventoryInput represents input for creating an inventory record
type InventoryInput struct {
	ProductID     uuid.UUID `json:"productId" validate:"required"`
	WarehouseCode string    `json:"warehouseCode" validate:"required,max=32"`
	Quantity      int       `json:"quantity" validate:"gte=0"`
	Reserved      int       `json:"reserved,omitempty" validate:"omitempty,gte=0"`
}

// InventoryUpdateInput represents input for adjusting an inventory record
type InventoryUpdateInput struct {
	Quantity *int `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Reserved *int `json:"reserved,omitempty" validate:"omitempty,gte=0"`
}
