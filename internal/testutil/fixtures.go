package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradecore/tradecore/api/internal/domain"
)

// NewTestCompany creates a test company with default values.
func NewTestCompany() *domain.Company {
	return &domain.Company{
		ID:            uuid.New(),
		Name:          "Acme Logistics",
		Industry:      domain.IndustryLogistics,
		Email:         "ops@acme.test",
		IsActive:      true,
		EmployeeCount: 120,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

// NewTestUser creates a test user with default values.
func NewTestUser(companyID uuid.UUID) *domain.User {
	return &domain.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
		Role:      domain.UserRoleMember,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// NewTestProduct creates a test product with default values.
func NewTestProduct() *domain.Product {
	return &domain.Product{
		ID:        uuid.New(),
		SKU:       "SKU-" + uuid.New().String()[:8],
		Name:      "Test Widget",
		Price:     19.99,
		Category:  domain.CategoryHardware,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// NewTestOrder creates a placed test order with a single line.
func NewTestOrder(companyID, userID uuid.UUID) *domain.Order {
	orderID := uuid.New()
	return &domain.Order{
		ID:        orderID,
		CompanyID: companyID,
		UserID:    userID,
		Number:    "ORD-000042",
		Status:    domain.OrderStatusPlaced,
		Total:     39.98,
		PlacedAt:  time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Items: []domain.OrderItem{
			{
				ID:        uuid.New(),
				OrderID:   orderID,
				ProductID: uuid.New(),
				Quantity:  2,
				UnitPrice: 19.99,
			},
		},
	}
}

// NewTestInventoryItem creates a test inventory record with default values.
func NewTestInventoryItem(productID uuid.UUID) *domain.InventoryItem {
	return &domain.InventoryItem{
		ID:            uuid.New(),
		ProductID:     productID,
		WarehouseCode: "WH-EAST",
		Quantity:      50,
		Reserved:      5,
		UpdatedAt:     time.Now(),
	}
}
