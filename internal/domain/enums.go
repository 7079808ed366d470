package domain

// Industry classifies a company
type Industry string

const (
	IndustryRetail        Industry = "RETAIL"
	IndustryManufacturing Industry = "MANUFACTURING"
	IndustryLogistics     Industry = "LOGISTICS"
	IndustryServices      Industry = "SERVICES"
	IndustryOther         Industry = "OTHER"
)

// IsValid checks if the industry is valid
func (i Industry) IsValid() bool {
	switch i {
	case IndustryRetail, IndustryManufacturing, IndustryLogistics, IndustryServices, IndustryOther:
		return true
	}
	return false
}

// UserRole represents a user's role within their company
type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
	UserRoleViewer UserRole = "VIEWER"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleOwner, UserRoleAdmin, UserRoleMember, UserRoleViewer:
		return true
	}
	return false
}

// ProductCategory classifies a product
type ProductCategory string

const (
	CategoryHardware    ProductCategory = "HARDWARE"
	CategorySoftware    ProductCategory = "SOFTWARE"
	CategoryConsumable  ProductCategory = "CONSUMABLE"
	CategorySubscription ProductCategory = "SUBSCRIPTION"
)

// IsValid checks if the category is valid
func (c ProductCategory) IsValid() bool {
	switch c {
	case CategoryHardware, CategorySoftware, CategoryConsumable, CategorySubscription:
		return true
	}
	return false
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPlaced, OrderStatusPaid,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// AuditAction identifies the kind of write recorded in the audit log
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)
