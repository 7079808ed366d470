package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog
type Product struct {
	ID          uuid.UUID       `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price"`
	Category    ProductCategory `json:"category"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	// Related data (populated on include)
	Inventory []InventoryItem `json:"inventory,omitempty"`
}

// ProductInput represents input for creating a product
type ProductInput struct {
	SKU         string          `json:"sku" validate:"required,sku,max=64"`
	Name        string          `json:"name" validate:"required,min=2,max=200"`
	Description string          `json:"description,omitempty"`
	Price       float64         `json:"price" validate:"gte=0"`
	Category    ProductCategory `json:"category" validate:"required"`
}

// ProductUpdateInput represents input for updating a product
type ProductUpdateInput struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *ProductCategory `json:"category,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}
